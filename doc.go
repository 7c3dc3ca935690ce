// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a JSON scanner and event-driven stream parser,
// the input side of the document engine in package doc.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON over a complete
// input buffer. Call its Next method to iterate over the tokens. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jvalue.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v %q", s.Token(), s.Text())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates a lexical error in the input. Token text is not copied: Text
// returns a slice of the input buffer.
//
// The scanner optionally accepts comments and the non-finite number literals
// NaN, Infinity, and -Infinity, which are not part of standard JSON.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *jvalue.SyntaxError is returned, reporting the byte offset
// and line:column of the problem.
//
// Construct a Stream from the input, and call its Parse method. Parse
// returns nil if the input was fully processed without error. If a Handler
// method reports an error, parsing stops and that error is returned.
//
//	s := jvalue.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available. To parse an
// input that must consist of exactly one value, call ParseSingle, which
// reports an error for trailing input.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | Key                       | "key": (value follows)
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported.
//
// # Formatting
//
// Indent and Compact operate on JSON text: Indent re-flows compact text into
// an indented form, and Compact removes insignificant whitespace.
package jvalue
