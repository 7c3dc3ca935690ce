// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"math"
	"strconv"

	"github.com/creachadair/jvalue"
)

// AppendJSON appends the compact JSON encoding of v to dst and returns the
// extended slice. Non-finite floating-point values are encoded as the
// literals NaN, Infinity, and -Infinity, which Parse accepts.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.tag {
	case TagList:
		l := v.ref.(*list)
		dst = append(dst, '[')
		for i, e := range l.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.AppendJSON(dst)
		}
		return append(dst, ']')

	case TagObject:
		o := v.ref.(*object)
		dst = append(dst, '{')
		for i, m := range o.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = jvalue.AppendQuote(dst, m.key)
			dst = append(dst, ':')
			dst = m.val.AppendJSON(dst)
		}
		return append(dst, '}')
	}

	switch v.kind {
	case KindBool:
		return strconv.AppendBool(dst, v.bits != 0)
	case KindInt64:
		return strconv.AppendInt(dst, int64(v.bits), 10)
	case KindUint64:
		return strconv.AppendUint(dst, v.bits, 10)
	case KindFloat:
		return appendFloat(dst, float64(math.Float32frombits(uint32(v.bits))), 32)
	case KindDouble:
		return appendFloat(dst, math.Float64frombits(v.bits), 64)
	case KindString:
		return jvalue.AppendQuote(dst, v.str)
	case KindOpaque:
		return v.ref.(Marshaler).AppendJSON(dst)
	default:
		return append(dst, "null"...)
	}
}

// JSON returns the compact JSON encoding of v.
func (v Value) JSON() string { return string(v.AppendJSON(nil)) }

// MarshalJSON implements the json.Marshaler interface.
func (v Value) MarshalJSON() ([]byte, error) { return v.AppendJSON(nil), nil }

// appendFloat appends the shortest decimal representation of f that converts
// back to the same value at the given bit size. The result always reads as
// a floating-point number: if it would otherwise look like an integer, ".0"
// is appended.
func appendFloat(dst []byte, f float64, bits int) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(f, -1):
		return append(dst, "-Infinity"...)
	}

	// Use the same thresholds as encoding/json for switching to exponent
	// notation, but keep the shortest round-trip digits.
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, bits)
	if format == 'e' {
		// Clean up e-09 to e-9.
		if n := len(dst); n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}
