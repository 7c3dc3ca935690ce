// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"errors"
	"io"

	"github.com/creachadair/jvalue"
)

// Options control the syntax accepted by ParseWithOptions. The zero value
// accepts standard JSON plus the literals NaN, Infinity, and -Infinity.
type Options struct {
	// Comments, if true, permits block and line comments.
	Comments bool

	// TrailingCommas, if true, permits a comma after the last member of an
	// object or the last element of a list.
	TrailingCommas bool

	// StrictNumbers, if true, rejects the literals NaN, Infinity, and
	// -Infinity.
	StrictNumbers bool
}

// Parse parses a single JSON value from src and returns a document holding
// it. Only whitespace may follow the value. In case of error, Parse reports
// a *StructuralError carrying the byte offset of the problem.
func Parse(src []byte) (*Document, error) { return ParseWithOptions(src, Options{}) }

// ParseString parses a single JSON value from src as Parse does.
func ParseString(src string) (*Document, error) { return Parse([]byte(src)) }

// ParseWithOptions parses a single JSON value from src as Parse does, with
// syntax extensions selected by opts.
func ParseWithOptions(src []byte, opts Options) (*Document, error) {
	st := jvalue.NewStream(src)
	st.AllowComments(opts.Comments)
	st.AllowTrailingCommas(opts.TrailingCommas)
	st.AllowNonFinite(!opts.StrictNumbers)

	var b Builder
	if err := st.ParseSingle(b.StreamHandler()); err != nil {
		var serr *jvalue.SyntaxError
		if errors.As(err, &serr) {
			return nil, &StructuralError{Offset: serr.Offset, Message: serr.Message, err: serr}
		}
		return nil, err
	}
	return b.Finish()
}

// ParseReader reads all of r and parses it as Parse does.
func ParseReader(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(src)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *Value) UnmarshalJSON(data []byte) error {
	d, err := Parse(data)
	if err != nil {
		return err
	}
	*v, err = d.TakeValue()
	return err
}
