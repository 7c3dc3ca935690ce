// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Scalar is the set of Go types that can be stored in a Value directly.
type Scalar interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// New returns a scalar Value holding x. Signed integer types are stored with
// kind KindInt64, unsigned types with KindUint64, float32 with KindFloat, and
// float64 with KindDouble.
func New[T Scalar](x T) Value {
	switch t := any(x).(type) {
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case float32:
		return Float32(t)
	case float64:
		return Float64(t)
	}
	panic("unreachable")
}

// ValueOf converts a Go value into a Value. The input may be nil, a Scalar,
// a Value, a *Document or Document (whose value is copied), a Marshaler,
// a []Value, a []any, or a map[string]any (whose members are ordered by key).
// Elements of slices and maps are converted recursively. ValueOf panics if v
// does not have one of these types.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Document:
		return mustSlot(t).Clone()
	case Document:
		return mustSlot(&t).Clone()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Uint(uint64(t))
	case uint8:
		return Uint(uint64(t))
	case uint16:
		return Uint(uint64(t))
	case uint32:
		return Uint(uint64(t))
	case uint64:
		return Uint(t)
	case float32:
		return Float32(t)
	case float64:
		return Float64(t)
	case []Value:
		return List(t...)
	case []any:
		vs := make([]Value, len(t))
		for i, elt := range t {
			vs[i] = ValueOf(elt)
		}
		return List(vs...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		ms := make([]Member, len(keys))
		for i, key := range keys {
			ms[i] = Field(key, t[key])
		}
		return Object(ms...)
	case Marshaler:
		return OpaqueOf(t)
	default:
		panic(fmt.Sprintf("doc: cannot convert %T to a Value", v))
	}
}

// A holder is a Value or a Document, either of which provides access to a
// stored value.
type holder interface {
	slotValue() (*Value, error)
}

func (v Value) slotValue() (*Value, error) { return &v, nil }

// As reports whether the value held by h has type T, meaning that Cast[T]
// would succeed.
func As[T Scalar](h holder) bool {
	_, err := Cast[T](h)
	return err == nil
}

// Cast returns the value held by h as a T. It reports a *TypeError if the
// value does not have the corresponding kind: bool requires KindBool, string
// requires KindString, signed integer types require KindInt64, unsigned
// integer types require KindUint64, float32 requires KindFloat, and float64
// requires KindDouble. Narrow integer types also require the value to be in
// range. h may be a Value or a Document.
func Cast[T Scalar](h holder) (T, error) {
	var zero T
	v, err := h.slotValue()
	if err != nil {
		return zero, err
	}
	if out, ok := castValue[T](v); ok {
		return out, nil
	}
	return zero, &TypeError{Want: typeName[T](), Got: describe(v)}
}

// castValue converts v to a T without coercion between kinds.
func castValue[T Scalar](v *Value) (T, bool) {
	var zero T
	if v.tag != TagScalar {
		return zero, false
	}
	var out any
	switch any(zero).(type) {
	case bool:
		if v.kind != KindBool {
			return zero, false
		}
		out = v.bits != 0
	case string:
		if v.kind != KindString {
			return zero, false
		}
		out = v.str
	case float32:
		if v.kind != KindFloat {
			return zero, false
		}
		out = math.Float32frombits(uint32(v.bits))
	case float64:
		if v.kind != KindDouble {
			return zero, false
		}
		out = math.Float64frombits(v.bits)
	case int, int8, int16, int32, int64:
		if v.kind != KindInt64 {
			return zero, false
		}
		return convertInt[T](int64(v.bits))
	case uint, uint8, uint16, uint32, uint64:
		if v.kind != KindUint64 {
			return zero, false
		}
		return convertUint[T](v.bits)
	}
	return out.(T), true
}

// convertInt converts z to the signed integer type T, reporting false if z is
// not representable.
func convertInt[T Scalar](z int64) (T, bool) {
	var zero T
	rt := reflect.TypeFor[T]()
	if rt.Kind() < reflect.Int || rt.Kind() > reflect.Int64 {
		return zero, false
	}
	if rv := reflect.New(rt).Elem(); !rv.OverflowInt(z) {
		rv.SetInt(z)
		return rv.Interface().(T), true
	}
	return zero, false
}

// convertUint converts z to the unsigned integer type T, reporting false if z
// is not representable.
func convertUint[T Scalar](z uint64) (T, bool) {
	var zero T
	rt := reflect.TypeFor[T]()
	if rt.Kind() < reflect.Uint || rt.Kind() > reflect.Uint64 {
		return zero, false
	}
	if rv := reflect.New(rt).Elem(); !rv.OverflowUint(z) {
		rv.SetUint(z)
		return rv.Interface().(T), true
	}
	return zero, false
}

// coerce converts v to a T, permitting conversions between numeric kinds
// when the value is exactly representable in T (or, for floating-point
// targets, when the conversion only rounds).
func coerce[T Scalar](v *Value) (T, bool) {
	if out, ok := castValue[T](v); ok || v.tag != TagScalar || !v.kind.isNumber() {
		return out, ok
	}
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		f := numberAsFloat(v)
		rv := reflect.New(reflect.TypeFor[T]()).Elem()
		rv.SetFloat(f)
		return rv.Interface().(T), true
	case int, int8, int16, int32, int64:
		switch v.kind {
		case KindUint64:
			if v.bits <= math.MaxInt64 {
				return convertInt[T](int64(v.bits))
			}
		case KindFloat, KindDouble:
			if f := numberAsFloat(v); f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
				return convertInt[T](int64(f))
			}
		}
	case uint, uint8, uint16, uint32, uint64:
		switch v.kind {
		case KindInt64:
			if z := int64(v.bits); z >= 0 {
				return convertUint[T](uint64(z))
			}
		case KindFloat, KindDouble:
			if f := numberAsFloat(v); f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 {
				return convertUint[T](uint64(f))
			}
		}
	}
	return zero, false
}

func numberAsFloat(v *Value) float64 {
	switch v.kind {
	case KindInt64:
		return float64(int64(v.bits))
	case KindUint64:
		return float64(v.bits)
	case KindFloat:
		return float64(math.Float32frombits(uint32(v.bits)))
	default:
		return math.Float64frombits(v.bits)
	}
}

func typeName[T any]() string { return reflect.TypeFor[T]().String() }

func mustSlot(d *Document) *Value {
	v, err := d.slotValue()
	if err != nil {
		panic(fmt.Sprintf("doc: ValueOf: %v", err))
	}
	return v
}
