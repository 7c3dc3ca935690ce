// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"bytes"
	"errors"

	"github.com/creachadair/jvalue/internal/escape"
	"github.com/tidwall/pretty"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(AppendQuote(nil, src)) }

// AppendQuote appends the JSON string encoding of src to dst and returns the
// extended slice.
func AppendQuote(dst []byte, src string) []byte { return escape.AppendQuote(dst, mem.S(src)) }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.B(src[1 : len(src)-1]))
}

// Compact returns a copy of src with all insignificant whitespace removed.
// The contents of quoted strings are not modified.
func Compact(src []byte) []byte { return pretty.Ugly(src) }

// Indent re-flows the JSON text in src so that each member of an object and
// each element of an array is on its own line, indented by width spaces per
// level of nesting. A newline is inserted after each "{", "[", and "," and
// before each "}" and "]"; a single space follows each ":". Empty objects and
// arrays are kept as "{}" and "[]", quoted strings are copied unmodified, and
// insignificant whitespace in src is discarded.
//
// Indent does not validate src. A negative width is treated as zero.
func Indent(src []byte, width int) []byte {
	width = max(width, 0)
	out := make([]byte, 0, len(src)+len(src)/2)
	depth := 0
	newline := func() {
		out = append(out, '\n')
		out = append(out, bytes.Repeat([]byte{' '}, depth*width)...)
	}

	var inString, escaped bool
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if inString {
			out = append(out, ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case ' ', '\t', '\r', '\n':
			// discard
		case '"':
			inString = true
			out = append(out, ch)
		case '{', '[':
			out = append(out, ch)
			if j := skipSpace(src, i+1); j < len(src) && src[j] == closerOf(ch) {
				out = append(out, src[j])
				i = j
				continue
			}
			depth++
			newline()
		case '}', ']':
			depth = max(depth-1, 0)
			newline()
			out = append(out, ch)
		case ',':
			out = append(out, ch)
			newline()
		case ':':
			out = append(out, ':', ' ')
		default:
			out = append(out, ch)
		}
	}
	return out
}

func closerOf(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}

func skipSpace(src []byte, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}
