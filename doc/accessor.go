// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import "fmt"

// An Accessor is bound to a single named field of some Go value, and can
// encode the field as a Value or load it from a Document.
type Accessor interface {
	// Name reports the key under which the field is stored in an object.
	Name() string

	// Value returns the current contents of the field.
	Value() Value

	// AppendJSON appends the JSON encoding of the field to dst.
	AppendJSON(dst []byte) []byte

	// Load sets the field from the value in d.
	Load(d Document) error
}

// Bind returns an Accessor for the variable p, stored under the given name.
//
// Load accepts a value of the matching kind, and also converts between
// numeric kinds when the value fits the type of *p. Load leaves *p unchanged
// if it reports an error.
func Bind[T Scalar](name string, p *T) Accessor { return binding[T]{name: name, p: p} }

type binding[T Scalar] struct {
	name string
	p    *T
}

func (b binding[T]) Name() string                 { return b.name }
func (b binding[T]) Value() Value                 { return New(*b.p) }
func (b binding[T]) AppendJSON(dst []byte) []byte { return b.Value().AppendJSON(dst) }

func (b binding[T]) Load(d Document) error {
	v, err := d.slotValue()
	if err != nil {
		return err
	}
	x, ok := coerce[T](v)
	if !ok {
		return &TypeError{Want: typeName[T](), Got: describe(v)}
	}
	*b.p = x
	return nil
}

// EncodeFields returns a root document holding an object with one member for
// each accessor, in order.
func EncodeFields(fs ...Accessor) *Document {
	ms := make([]Member, len(fs))
	for i, f := range fs {
		ms[i] = Member{Key: f.Name(), Value: f.Value()}
	}
	return NewDocument(Object(ms...))
}

// LoadFields loads each accessor from the member of the object in d with the
// same name. A missing member is reported as a *KeyError. If a field fails to
// load, LoadFields stops and reports the error; fields loaded before that are
// not restored.
func LoadFields(d Document, fs ...Accessor) error {
	if _, err := d.asObject(); err != nil {
		return err
	}
	for _, f := range fs {
		v, err := d.Key(f.Name())
		if err != nil {
			return err
		}
		if err := f.Load(v); err != nil {
			return fmt.Errorf("field %q: %w", f.Name(), err)
		}
	}
	return nil
}
