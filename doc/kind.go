// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

// Tag is the structural classification of a Value or Document.
type Tag byte

// Constants defining the valid Tag values.
const (
	TagScalar Tag = iota // a single primitive datum; see Kind
	TagList              // an ordered sequence of values
	TagObject            // an ordered collection of key-value members
	TagRoot              // an object owned by a root Document
)

var tagStr = [...]string{
	TagScalar: "scalar",
	TagList:   "list",
	TagObject: "object",
	TagRoot:   "root object",
}

func (t Tag) String() string {
	if int(t) >= len(tagStr) {
		return "invalid tag"
	}
	return tagStr[t]
}

// Kind is the primitive subtag of a scalar Value. It records the exact Go
// type a scalar was constructed from, so that values survive a round trip
// through serialization without changing representation.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindNull   Kind = iota // JSON null
	KindInt64              // signed 64-bit integer
	KindUint64             // unsigned 64-bit integer
	KindFloat              // 32-bit floating point
	KindDouble             // 64-bit floating point
	KindBool               // true or false
	KindString             // UTF-8 text
	KindOpaque             // caller-defined value with its own encoding
)

var kindStr = [...]string{
	KindNull:   "null",
	KindInt64:  "int64",
	KindUint64: "uint64",
	KindFloat:  "float32",
	KindDouble: "float64",
	KindBool:   "bool",
	KindString: "string",
	KindOpaque: "opaque",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[k]
}

// isNumber reports whether k is one of the numeric kinds.
func (k Kind) isNumber() bool { return k >= KindInt64 && k <= KindDouble }
