// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import "math"

// A Value holds exactly one JSON-shaped datum: null, a Boolean, a signed or
// unsigned 64-bit integer, a 32- or 64-bit float, a string, a list of values,
// an object, or an opaque caller-defined value. The zero Value is null.
//
// Scalars other than opaque values are stored inline and never allocate.
// Lists, objects, and opaque values are boxed: the Value holds a pointer to
// the payload. A boxed list or object is owned by at most one slot of a
// document at a time; see Document for the ownership rules.
//
// Values are not safe for concurrent mutation.
type Value struct {
	tag  Tag
	kind Kind   // meaningful when tag == TagScalar
	bits uint64 // Bool, Int64, Uint64, Float, Double
	str  string // String
	ref  any    // *list, *object, or Marshaler
}

// A Marshaler is a caller-defined value that can encode itself as JSON.
// It is stored in a Value with kind KindOpaque.
type Marshaler interface {
	// AppendJSON appends the JSON encoding of the receiver to dst and returns
	// the extended slice. The encoding must be a single valid JSON value.
	AppendJSON(dst []byte) []byte
}

// A Member is a key-value pair used to construct an object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.  The value
// is converted as if by ValueOf.
func Field(key string, value any) Member { return Member{Key: key, Value: ValueOf(value)} }

// header records the ownership state shared by lists and objects.
type header struct {
	gen      uint64 // incremented whenever the slots of the container move or are released
	attached bool   // whether the container is stored in a slot
}

type list struct {
	header
	elems []Value
}

type object struct {
	header
	members []member
	index   *keyIndex // built on first keyed lookup
}

type member struct {
	key string
	val Value
}

// Null returns a null Value.
func Null() Value { return Value{} }

// Bool returns a Boolean Value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}
	return v
}

// Int returns a signed integer Value.
func Int(z int64) Value { return Value{kind: KindInt64, bits: uint64(z)} }

// Uint returns an unsigned integer Value.
func Uint(z uint64) Value { return Value{kind: KindUint64, bits: z} }

// Float32 returns a 32-bit floating-point Value.
func Float32(f float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(f))} }

// Float64 returns a 64-bit floating-point Value.
func Float64(f float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(f)} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// OpaqueOf returns an opaque Value that encodes itself using m.
// If m == nil, OpaqueOf returns null.
func OpaqueOf(m Marshaler) Value {
	if m == nil {
		return Value{}
	}
	return Value{kind: KindOpaque, ref: m}
}

// List returns a list Value containing vs.  Any element that is already
// stored in a document is copied, as if by Clone.
func List(vs ...Value) Value {
	l := &list{elems: make([]Value, len(vs))}
	for i, v := range vs {
		l.elems[i] = adopt(v)
	}
	return Value{tag: TagList, ref: l}
}

// Object returns an object Value containing the given members in order.
// Any member value that is already stored in a document is copied, as if by
// Clone.
func Object(ms ...Member) Value {
	o := &object{members: make([]member, len(ms))}
	for i, m := range ms {
		o.members[i] = member{key: m.Key, val: adopt(m.Value)}
	}
	return Value{tag: TagObject, ref: o}
}

// Tag reports the structural tag of v.
func (v Value) Tag() Tag { return v.tag }

// Kind reports the primitive subtag of v. It is meaningful only when v is a
// scalar; lists and objects report KindNull.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the JSON null value.
func (v Value) IsNull() bool { return v.tag == TagScalar && v.kind == KindNull }

// Inline reports whether the payload of v is stored inline, without a
// separate allocation.
func (v Value) Inline() bool { return v.ref == nil }

// Len reports the number of elements of a list or members of an object.
// It returns 0 for scalars.
func (v Value) Len() int {
	switch c := v.ref.(type) {
	case *list:
		return len(c.elems)
	case *object:
		return len(c.members)
	}
	return 0
}

// String returns the compact JSON encoding of v.
func (v Value) String() string { return string(v.AppendJSON(nil)) }

// Take moves the contents out of *v and returns them, leaving *v null.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Clone returns a deep copy of v that is not attached to any document.
// Scalars and opaque values are returned as-is.
func (v Value) Clone() Value {
	switch c := v.ref.(type) {
	case *list:
		cp := &list{elems: make([]Value, len(c.elems))}
		for i, e := range c.elems {
			cp.elems[i] = e.Clone()
			attach(cp.elems[i])
		}
		return Value{tag: TagList, ref: cp}
	case *object:
		cp := &object{members: make([]member, len(c.members))}
		for i, m := range c.members {
			cp.members[i] = member{key: m.key, val: m.val.Clone()}
			attach(cp.members[i].val)
		}
		return Value{tag: TagObject, ref: cp}
	}
	return v
}

// containerHeader returns the ownership header of v, or nil if v is not a
// list or object.
func (v Value) containerHeader() *header {
	switch c := v.ref.(type) {
	case *list:
		return &c.header
	case *object:
		return &c.header
	}
	return nil
}

func isAttached(v Value) bool {
	h := v.containerHeader()
	return h != nil && h.attached
}

// attach marks the container in v, if any, as stored in a slot.
func attach(v Value) {
	if h := v.containerHeader(); h != nil {
		h.attached = true
	}
}

// adopt returns v ready to be stored in a fresh container, copying it if it
// is already owned elsewhere.
func adopt(v Value) Value {
	if isAttached(v) {
		v = v.Clone()
	}
	attach(v)
	return v
}

// release detaches the container in v, if any, and invalidates every view
// into it or its descendants. It is called when v is removed from a slot.
func release(v Value) {
	if h := v.containerHeader(); h != nil {
		h.attached = false
		invalidateTree(v)
	}
}

func invalidateTree(v Value) {
	switch c := v.ref.(type) {
	case *list:
		c.gen++
		for _, e := range c.elems {
			invalidateTree(e)
		}
	case *object:
		c.gen++
		for _, m := range c.members {
			invalidateTree(m.val)
		}
	}
}

// holds reports whether h is the header of v or of any container nested
// within v.
func holds(v Value, h *header) bool {
	switch c := v.ref.(type) {
	case *list:
		if &c.header == h {
			return true
		}
		for _, e := range c.elems {
			if holds(e, h) {
				return true
			}
		}
	case *object:
		if &c.header == h {
			return true
		}
		for _, m := range c.members {
			if holds(m.val, h) {
				return true
			}
		}
	}
	return false
}
