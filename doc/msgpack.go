// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"bytes"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// EncodeMsgpack implements the msgpack.CustomEncoder interface.
//
// Objects are encoded as maps with their members in order, including any
// duplicate keys, and lists as arrays. Integers are encoded in their full
// width (int64 or uint64), so that a decoded value has the same kind as the
// original. Opaque values are encoded as the value of their JSON encoding.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch c := v.ref.(type) {
	case *list:
		if err := enc.EncodeArrayLen(len(c.elems)); err != nil {
			return err
		}
		for _, e := range c.elems {
			if err := e.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case *object:
		if err := enc.EncodeMapLen(len(c.members)); err != nil {
			return err
		}
		for _, m := range c.members {
			if err := enc.EncodeString(m.key); err != nil {
				return err
			}
			if err := m.val.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	}

	switch v.kind {
	case KindBool:
		return enc.EncodeBool(v.bits != 0)
	case KindInt64:
		return enc.EncodeInt64(int64(v.bits))
	case KindUint64:
		return enc.EncodeUint64(v.bits)
	case KindFloat:
		return enc.EncodeFloat32(math.Float32frombits(uint32(v.bits)))
	case KindDouble:
		return enc.EncodeFloat64(math.Float64frombits(v.bits))
	case KindString:
		return enc.EncodeString(v.str)
	case KindOpaque:
		d, err := Parse(v.AppendJSON(nil))
		if err != nil {
			return fmt.Errorf("encode opaque value: %w", err)
		}
		return d.slot.EncodeMsgpack(enc)
	default:
		return enc.EncodeNil()
	}
}

// DecodeMsgpack implements the msgpack.CustomDecoder interface.
//
// Maps must have string keys. Integers encoded as uint64 decode with kind
// KindUint64; all other integers decode with kind KindInt64. Binary strings
// decode as strings. Extension types are not supported.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}
	switch {
	case c == msgpcode.Nil:
		*v = Null()
		return dec.DecodeNil()

	case c == msgpcode.False || c == msgpcode.True:
		b, err := dec.DecodeBool()
		*v = Bool(b)
		return err

	case c == msgpcode.Float:
		f, err := dec.DecodeFloat32()
		*v = Float32(f)
		return err

	case c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		*v = Float64(f)
		return err

	case c == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		*v = Uint(u)
		return err

	case msgpcode.IsFixedNum(c), c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32,
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		z, err := dec.DecodeInt64()
		*v = Int(z)
		return err

	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		*v = String(s)
		return err

	case msgpcode.IsBin(c):
		b, err := dec.DecodeBytes()
		*v = String(string(b))
		return err

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		vs := make([]Value, n)
		for i := range vs {
			if err := vs[i].DecodeMsgpack(dec); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		*v = List(vs...)
		return nil

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return err
		}
		ms := make([]Member, n)
		for i := range ms {
			key, err := dec.DecodeString()
			if err != nil {
				return fmt.Errorf("member %d key: %w", i, err)
			}
			ms[i].Key = key
			if err := ms[i].Value.DecodeMsgpack(dec); err != nil {
				return fmt.Errorf("member %q: %w", key, err)
			}
		}
		*v = Object(ms...)
		return nil
	}
	return fmt.Errorf("unsupported msgpack code %#x", c)
}

// MarshalMsgpack returns the msgpack encoding of the value in d.
func MarshalMsgpack(d Document) ([]byte, error) {
	v, err := d.slotValue()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	err = v.EncodeMsgpack(enc)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("encode msgpack: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack decodes a single msgpack value from data into a new root
// document.
func UnmarshalMsgpack(data []byte) (*Document, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	var v Value
	err := v.DecodeMsgpack(dec)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("decode msgpack: %d bytes of extra input", r.Len())
	}
	return NewDocument(v), nil
}
