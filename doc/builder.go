// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"errors"
	"strconv"

	"github.com/creachadair/jvalue"
)

// A Builder constructs a Document from a sequence of structural events,
// without building an intermediate tree. The zero value is ready for use.
//
// Each Begin must be matched by the corresponding End, and each value inside
// an object must be preceded by a Key. Once a complete root value has been
// built, call Finish to obtain the document. If any event is out of sequence,
// the Builder reports a *StructuralError and discards its partial state.
//
// StreamHandler adapts a Builder to receive events from a jvalue.Stream.
type Builder struct {
	stk  []frame
	root Value
	done bool // root is complete
}

// A frame is an open container awaiting its contents.
type frame struct {
	val    Value // list or object
	key    string
	hasKey bool // key is pending a value
}

func (f *frame) isObject() bool { return f.val.tag == TagObject }

// Reset discards any partial state of b.
func (b *Builder) Reset() {
	clear(b.stk)
	b.stk = b.stk[:0]
	b.root = Value{}
	b.done = false
}

func (b *Builder) fail(msg string, args ...any) error {
	b.Reset()
	return structuralf(msg, args...)
}

func (b *Builder) top() *frame {
	if len(b.stk) == 0 {
		return nil
	}
	return &b.stk[len(b.stk)-1]
}

// insert adds a completed value v to the innermost open container, or makes
// it the root if there is none.
func (b *Builder) insert(v Value, what string) error {
	f := b.top()
	switch {
	case f == nil:
		if b.done {
			return b.fail("%s after complete root value", what)
		}
		b.root, b.done = v, true
	case f.isObject():
		if !f.hasKey {
			return b.fail("%s in object without a key", what)
		}
		o := f.val.ref.(*object)
		attach(v)
		o.members = append(o.members, member{key: f.key, val: v})
		f.key, f.hasKey = "", false
	default:
		l := f.val.ref.(*list)
		attach(v)
		l.elems = append(l.elems, v)
	}
	return nil
}

// BeginObject opens a new object.
func (b *Builder) BeginObject() error {
	if err := b.checkOpen("object"); err != nil {
		return err
	}
	b.stk = append(b.stk, frame{val: Value{tag: TagObject, ref: new(object)}})
	return nil
}

// BeginArray opens a new list.
func (b *Builder) BeginArray() error {
	if err := b.checkOpen("array"); err != nil {
		return err
	}
	b.stk = append(b.stk, frame{val: Value{tag: TagList, ref: new(list)}})
	return nil
}

// checkOpen reports whether a value may begin at the current position.
func (b *Builder) checkOpen(what string) error {
	if f := b.top(); f == nil && b.done {
		return b.fail("%s after complete root value", what)
	} else if f != nil && f.isObject() && !f.hasKey {
		return b.fail("%s in object without a key", what)
	}
	return nil
}

// EndObject closes the innermost open container, which must be an object.
func (b *Builder) EndObject() error {
	f := b.top()
	if f == nil || !f.isObject() {
		return b.fail("end of object without matching begin")
	} else if f.hasKey {
		return b.fail("end of object after key %q with no value", f.key)
	}
	return b.pop("object")
}

// EndArray closes the innermost open container, which must be a list.
func (b *Builder) EndArray() error {
	f := b.top()
	if f == nil || f.isObject() {
		return b.fail("end of array without matching begin")
	}
	return b.pop("array")
}

func (b *Builder) pop(what string) error {
	v := b.stk[len(b.stk)-1].val
	b.stk[len(b.stk)-1] = frame{}
	b.stk = b.stk[:len(b.stk)-1]
	return b.insert(v, what)
}

// Key records the key for the next value in the innermost open object.
// Unlike Document.Set, Key accepts an empty key, since the JSON grammar
// permits one.
func (b *Builder) Key(key string) error {
	f := b.top()
	if f == nil || !f.isObject() {
		return b.fail("key %q outside of an object", key)
	} else if f.hasKey {
		return b.fail("key %q follows key %q with no value", key, f.key)
	}
	f.key, f.hasKey = key, true
	return nil
}

// Scalar adds a value to the innermost open container, or makes it the root
// if there is none. Although v is usually a scalar, it may be any Value that
// is not already stored in a document.
func (b *Builder) Scalar(v Value) error {
	if err := checkInsert(v, nil); err != nil {
		b.Reset()
		return err
	}
	return b.insert(v, "value")
}

// Finish returns a document holding the completed root value, and resets b
// for reuse. It reports a *StructuralError if the root value is incomplete.
func (b *Builder) Finish() (*Document, error) {
	if n := len(b.stk); n != 0 {
		return nil, b.fail("%d unclosed containers", n)
	} else if !b.done {
		return nil, b.fail("no value")
	}
	out := NewDocument(b.root)
	b.Reset()
	return out, nil
}

// StreamHandler returns a jvalue.Handler that delivers parse events to b.
// Scalar kinds are chosen by token: an Integer token becomes an int64 if it
// fits, otherwise a uint64 if it fits, otherwise a float64; a Number token
// (including NaN and the infinities) becomes a float64.
func (b *Builder) StreamHandler() jvalue.Handler { return streamHandler{b} }

type streamHandler struct{ b *Builder }

func (h streamHandler) BeginObject(loc jvalue.Anchor) error { return at(loc, h.b.BeginObject()) }
func (h streamHandler) EndObject(loc jvalue.Anchor) error   { return at(loc, h.b.EndObject()) }
func (h streamHandler) BeginArray(loc jvalue.Anchor) error  { return at(loc, h.b.BeginArray()) }
func (h streamHandler) EndArray(loc jvalue.Anchor) error    { return at(loc, h.b.EndArray()) }
func (streamHandler) EndOfInput(jvalue.Anchor)              {}

func (h streamHandler) Key(loc jvalue.Anchor) error {
	key, err := jvalue.Unquote(loc.Text())
	if err != nil {
		return at(loc, h.b.fail("invalid key: %v", err))
	}
	return at(loc, h.b.Key(string(key)))
}

func (h streamHandler) Value(loc jvalue.Anchor) error {
	v, err := decodeToken(loc.Token(), loc.Text())
	if err != nil {
		return at(loc, h.b.fail("invalid %v: %v", loc.Token(), err))
	}
	return at(loc, h.b.Scalar(v))
}

// at attaches the source offset of loc to a *StructuralError that lacks one.
func at(loc jvalue.Anchor, err error) error {
	var serr *StructuralError
	if errors.As(err, &serr) && serr.Offset < 0 {
		serr.Offset = loc.Location().Pos
	}
	return err
}

// decodeToken converts the text of a scalar token to a Value.
func decodeToken(tok jvalue.Token, text []byte) (Value, error) {
	switch tok {
	case jvalue.Null:
		return Null(), nil
	case jvalue.True:
		return Bool(true), nil
	case jvalue.False:
		return Bool(false), nil
	case jvalue.String:
		s, err := jvalue.Unquote(text)
		if err != nil {
			return Value{}, err
		}
		return String(string(s)), nil
	case jvalue.Integer:
		if z, err := strconv.ParseInt(string(text), 10, 64); err == nil {
			return Int(z), nil
		}
		if text[0] != '-' {
			if u, err := strconv.ParseUint(string(text), 10, 64); err == nil {
				return Uint(u), nil
			}
		}
		fallthrough
	case jvalue.Number:
		f, err := strconv.ParseFloat(string(text), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, err
		}
		return Float64(f), nil
	}
	return Value{}, structuralf("unexpected %v", tok)
}
