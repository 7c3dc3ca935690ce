// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"fmt"
	"io"
	"iter"

	"github.com/creachadair/jvalue"
)

// A Document is a handle to a slot holding a Value.
//
// A root Document, as returned by NewDocument or Parse, owns its value.  A
// view Document, as returned by Key, Index, and At, refers to a slot inside a
// list or object owned by some other document. Views are small and may be
// copied freely; they do not allocate and own nothing.
//
// A view remains valid until its owning container moves or releases the
// slot it refers to: for example, when an append outgrows the container's
// storage, when a member is deleted or the container is cleared, or when the
// container itself is replaced. After that, every operation on the view
// reports ErrStaleView. Accessors that do not return an error (Len, Kind,
// Value, and so on) report zero values for a stale view; use Err to check.
//
// The zero Document is not valid. Documents are not safe for concurrent use
// by multiple goroutines without external synchronization.
type Document struct {
	slot  *Value
	owner *header // the container holding slot, or nil for a root
	gen   uint64  // the generation of owner when the view was created
}

// NewDocument returns a root document that owns v. If v is a list or object
// that is already stored in another document, NewDocument stores a copy.
func NewDocument(v Value) *Document {
	slot := new(Value)
	*slot = adopt(v)
	return &Document{slot: slot}
}

func (d Document) check() error {
	if d.slot == nil {
		return invalidOpf("uninitialized document")
	} else if d.owner != nil && d.owner.gen != d.gen {
		return ErrStaleView
	}
	return nil
}

func (d Document) slotValue() (*Value, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	return d.slot, nil
}

// Err reports nil if d is usable, or an error describing why not.
func (d Document) Err() error { return d.check() }

// IsRoot reports whether d is a root document.
func (d Document) IsRoot() bool { return d.slot != nil && d.owner == nil }

// Value returns the value stored in d. Lists and objects in the result are
// still owned by d; use Clone to obtain an independent copy, or TakeValue to
// move the value out.
func (d Document) Value() Value {
	if d.check() != nil {
		return Value{}
	}
	return *d.slot
}

// Tag reports the structural tag of d. A root document that holds an object
// reports TagRoot.
func (d Document) Tag() Tag {
	if d.check() != nil {
		return TagScalar
	} else if d.owner == nil && d.slot.tag == TagObject {
		return TagRoot
	}
	return d.slot.tag
}

// Kind reports the primitive subtag of the scalar in d.
func (d Document) Kind() Kind { return d.Value().kind }

// IsScalar reports whether d holds a scalar, including null.
func (d Document) IsScalar() bool { return d.check() == nil && d.slot.tag == TagScalar }

// IsList reports whether d holds a list.
func (d Document) IsList() bool { return d.check() == nil && d.slot.tag == TagList }

// IsObject reports whether d holds an object.
func (d Document) IsObject() bool { return d.check() == nil && d.slot.tag == TagObject }

// Len reports the number of elements or members in d, or 0 if d holds a
// scalar.
func (d Document) Len() int { return d.Value().Len() }

// Empty reports whether d is empty. A scalar is empty if it is null; a list
// or object is empty if it has no entries.
func (d Document) Empty() bool {
	v := d.Value()
	if v.tag == TagScalar {
		return v.kind == KindNull
	}
	return v.Len() == 0
}

func (d Document) asObject() (*object, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	o, ok := d.slot.ref.(*object)
	if !ok {
		return nil, invalidOpf("%s is not an object", describe(d.slot))
	}
	return o, nil
}

func (d Document) asList() (*list, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	l, ok := d.slot.ref.(*list)
	if !ok {
		return nil, invalidOpf("%s is not a list", describe(d.slot))
	}
	return l, nil
}

// Key returns a view of the value of the member of d with the given key.
// If the object has more than one member with that key, the last is used.
// It reports ErrInvalidKey if key == "", a *KeyError if the key is not
// present, and ErrInvalidOperation if d is not an object.
func (d Document) Key(key string) (Document, error) {
	if key == "" {
		return Document{}, ErrInvalidKey
	}
	o, err := d.asObject()
	if err != nil {
		return Document{}, err
	}
	i := o.find(key)
	if i < 0 {
		return Document{}, &KeyError{Key: key}
	}
	return Document{slot: &o.members[i].val, owner: &o.header, gen: o.gen}, nil
}

// Contains reports whether d is an object having a member with the given
// key.
func (d Document) Contains(key string) bool {
	if key == "" {
		return false
	}
	o, err := d.asObject()
	return err == nil && o.find(key) >= 0
}

// Index returns a view of the element of d at offset i.  It reports an
// *IndexError if i < 0 or i >= d.Len(), and ErrInvalidOperation if d is not a
// list.
func (d Document) Index(i int) (Document, error) {
	l, err := d.asList()
	if err != nil {
		return Document{}, err
	}
	if i < 0 || i >= len(l.elems) {
		return Document{}, &IndexError{Index: i, Len: len(l.elems)}
	}
	return Document{slot: &l.elems[i], owner: &l.header, gen: l.gen}, nil
}

// At traverses a sequential path of keys and indices starting from d and
// returns a view of the value at the end of the path. Each element of path
// must be a string, which selects an object member, or an int, which selects
// a list element. Negative indices count backward from the end of the list.
// An empty path returns d itself.
func (d Document) At(path ...any) (Document, error) {
	cur := d
	if err := cur.check(); err != nil {
		return Document{}, err
	}
	for i, elt := range path {
		var err error
		switch t := elt.(type) {
		case string:
			cur, err = cur.Key(t)
		case int:
			if t < 0 {
				t += cur.Len()
			}
			cur, err = cur.Index(t)
		default:
			err = invalidOpf("invalid path element %T", elt)
		}
		if err != nil {
			return Document{}, fmt.Errorf("path element %d: %w", i, err)
		}
	}
	return cur, nil
}

// checkInsert reports an error if v cannot be stored into a slot of the
// container with header h (which may be nil).
func checkInsert(v Value, h *header) error {
	if isAttached(v) {
		return ErrAttached
	} else if h != nil && holds(v, h) {
		return invalidOpf("value contains its destination")
	}
	return nil
}

// Assign replaces the value stored in d with v. The previous value is
// released, and any views into it become stale. Views of d itself remain
// valid and observe v.
//
// If v is a list or object, d takes ownership of it; Assign reports
// ErrAttached if v is already stored in a document.
func (d Document) Assign(v Value) error {
	if err := d.check(); err != nil {
		return err
	} else if err := checkInsert(v, d.owner); err != nil {
		return err
	}
	old := *d.slot
	attach(v)
	*d.slot = v
	release(old)
	return nil
}

// Set replaces the value of the member of d with the given key, or appends a
// new member if the key is not already present. The ownership rules of
// Assign apply to v.
func (d Document) Set(key string, v Value) error {
	if key == "" {
		return ErrInvalidKey
	}
	o, err := d.asObject()
	if err != nil {
		return err
	} else if err := checkInsert(v, &o.header); err != nil {
		return err
	}
	o.put(key, v)
	return nil
}

// Append adds vs to the end of the list in d. The ownership rules of Assign
// apply to each element of vs; if any is invalid, no elements are added.
// Views of existing elements become stale if the list must grow its storage.
func (d Document) Append(vs ...Value) error {
	l, err := d.asList()
	if err != nil {
		return err
	}
	for i, v := range vs {
		if err := checkInsert(v, &l.header); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		for _, w := range vs[:i] {
			if v.containerHeader() != nil && w.ref == v.ref {
				return fmt.Errorf("element %d: %w", i, ErrAttached)
			}
		}
	}
	if len(l.elems)+len(vs) > cap(l.elems) {
		l.gen++
	}
	for _, v := range vs {
		attach(v)
		l.elems = append(l.elems, v)
	}
	return nil
}

// Delete removes every member of d with the given key. It reports a
// *KeyError if there is no such member. Views of the members of d become
// stale.
func (d Document) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	o, err := d.asObject()
	if err != nil {
		return err
	}
	if o.find(key) < 0 {
		return &KeyError{Key: key}
	}
	o.gen++
	keep := o.members[:0]
	for _, m := range o.members {
		if m.key == key {
			release(m.val)
		} else {
			keep = append(keep, m)
		}
	}
	clear(o.members[len(keep):])
	o.members = keep
	o.index = nil
	return nil
}

// Clear removes all the members or elements of d. Views of its contents
// become stale. It reports ErrInvalidOperation if d holds a scalar.
func (d Document) Clear() error {
	if err := d.check(); err != nil {
		return err
	}
	switch c := d.slot.ref.(type) {
	case *list:
		c.gen++
		for _, e := range c.elems {
			release(e)
		}
		c.elems = nil
	case *object:
		c.gen++
		for _, m := range c.members {
			release(m.val)
		}
		c.members = nil
		c.index = nil
	default:
		return invalidOpf("cannot clear %s", describe(d.slot))
	}
	return nil
}

// TakeValue moves the value out of d and returns it, leaving null in its
// place. The result is not attached to any document, so it can be stored
// elsewhere. Views into the result remain valid.
func (d Document) TakeValue() (Value, error) {
	if err := d.check(); err != nil {
		return Value{}, err
	}
	out := d.slot.Take()
	if h := out.containerHeader(); h != nil {
		h.attached = false
	}
	return out, nil
}

// Take moves the value out of d into a new root document, leaving null in
// its place.
func (d Document) Take() (*Document, error) {
	v, err := d.TakeValue()
	if err != nil {
		return nil, err
	}
	return NewDocument(v), nil
}

// ToMap returns a map from each key of the object in d to a view of its
// value. If the object has duplicate keys, the map holds the last.
func (d Document) ToMap() (map[string]Document, error) {
	o, err := d.asObject()
	if err != nil {
		return nil, err
	}
	m := make(map[string]Document, len(o.members))
	for i := range o.members {
		m[o.members[i].key] = Document{slot: &o.members[i].val, owner: &o.header, gen: o.gen}
	}
	return m, nil
}

// ToList returns views of the elements of the list in d, in order.
func (d Document) ToList() ([]Document, error) {
	l, err := d.asList()
	if err != nil {
		return nil, err
	}
	out := make([]Document, len(l.elems))
	for i := range l.elems {
		out[i] = Document{slot: &l.elems[i], owner: &l.header, gen: l.gen}
	}
	return out, nil
}

// Members returns an iterator over the keys and value views of the object in
// d, in order. It yields nothing if d is not an object. Adding or removing
// members during iteration ends the iteration.
func (d Document) Members() iter.Seq2[string, Document] {
	return func(yield func(string, Document) bool) {
		o, err := d.asObject()
		if err != nil {
			return
		}
		gen := o.gen
		for i := 0; i < len(o.members) && o.gen == gen; i++ {
			if !yield(o.members[i].key, Document{slot: &o.members[i].val, owner: &o.header, gen: gen}) {
				return
			}
		}
	}
}

// Elements returns an iterator over the offsets and value views of the list
// in d, in order. It yields nothing if d is not a list. Appending to the list
// during iteration ends the iteration if the list grows its storage.
func (d Document) Elements() iter.Seq2[int, Document] {
	return func(yield func(int, Document) bool) {
		l, err := d.asList()
		if err != nil {
			return
		}
		gen := l.gen
		for i := 0; i < len(l.elems) && l.gen == gen; i++ {
			if !yield(i, Document{slot: &l.elems[i], owner: &l.header, gen: gen}) {
				return
			}
		}
	}
}

// AppendJSON appends the compact JSON encoding of d to dst.
func (d Document) AppendJSON(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}
	return d.slot.AppendJSON(dst), nil
}

// JSON returns the compact JSON encoding of d.
func (d Document) JSON() (string, error) {
	buf, err := d.AppendJSON(nil)
	return string(buf), err
}

// Indent returns the JSON encoding of d, formatted with each nesting level
// indented by width spaces.
func (d Document) Indent(width int) ([]byte, error) {
	buf, err := d.AppendJSON(nil)
	if err != nil {
		return nil, err
	}
	return jvalue.Indent(buf, width), nil
}

// WriteTo writes the compact JSON encoding of d to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	buf, err := d.AppendJSON(nil)
	if err != nil {
		return 0, err
	}
	nw, err := w.Write(buf)
	return int64(nw), err
}

// MarshalJSON implements the json.Marshaler interface.
func (d Document) MarshalJSON() ([]byte, error) { return d.AppendJSON(nil) }

// String returns the compact JSON encoding of d, or a description of the
// error if d is not valid.
func (d Document) String() string {
	s, err := d.JSON()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}

// find returns the position of the last member of o with the given key, or
// -1 if there is none. It builds the key index if necessary.
func (o *object) find(key string) int {
	if o.index == nil {
		o.index = newKeyIndex(o.members)
	}
	return o.index.lookup(o.members, key)
}

// put stores v as the value of key, replacing an existing value in place or
// appending a new member.
func (o *object) put(key string, v Value) {
	attach(v)
	if i := o.find(key); i >= 0 {
		old := o.members[i].val
		o.members[i].val = v
		release(old)
		return
	}
	if len(o.members) == cap(o.members) {
		o.gen++
	}
	o.members = append(o.members, member{key: key, val: v})
	o.index.add(o.members, len(o.members)-1)
}
