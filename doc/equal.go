// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"bytes"
	"math"
)

// Equal reports whether a and b are structurally equal: they have the same
// tag and kind, equal scalar values, and (for containers) equal entries in
// the same order. Floating-point NaN values are equal to each other.  Opaque
// values are equal if their encodings are identical.
func Equal(a, b Value) bool {
	if a.tag != b.tag || a.kind != b.kind {
		return false
	}
	switch a.tag {
	case TagList:
		x, y := a.ref.(*list), b.ref.(*list)
		if x == y {
			return true
		} else if len(x.elems) != len(y.elems) {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true

	case TagObject:
		x, y := a.ref.(*object), b.ref.(*object)
		if x == y {
			return true
		} else if len(x.members) != len(y.members) {
			return false
		}
		for i, m := range x.members {
			n := y.members[i]
			if m.key != n.key || !Equal(m.val, n.val) {
				return false
			}
		}
		return true
	}

	switch a.kind {
	case KindFloat:
		f, g := math.Float32frombits(uint32(a.bits)), math.Float32frombits(uint32(b.bits))
		return f == g || (math.IsNaN(float64(f)) && math.IsNaN(float64(g)))
	case KindDouble:
		f, g := math.Float64frombits(a.bits), math.Float64frombits(b.bits)
		return f == g || (math.IsNaN(f) && math.IsNaN(g))
	case KindString:
		return a.str == b.str
	case KindOpaque:
		return bytes.Equal(a.AppendJSON(nil), b.AppendJSON(nil))
	default:
		return a.bits == b.bits
	}
}
