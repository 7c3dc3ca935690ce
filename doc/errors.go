// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrStructural is reported for a malformed input text or an invalid
	// sequence of builder events. The concrete error is a *StructuralError.
	ErrStructural = errors.New("structural error")

	// ErrKeyNotFound is reported when an object does not contain a key.
	// The concrete error is a *KeyError.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfBounds is reported for a list index outside the list.
	// The concrete error is an *IndexError.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrTypeMismatch is reported by Cast when the stored value does not
	// have the requested type. The concrete error is a *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidKey is reported for an empty object key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidOperation is reported when an operation does not apply to the
	// value it was invoked on, such as indexing a scalar.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStaleView is reported by a view Document whose owner has been
	// modified in a way that moved or released the slot it refers to.
	// It wraps ErrInvalidOperation.
	ErrStaleView = fmt.Errorf("%w: stale view", ErrInvalidOperation)

	// ErrAttached is reported when a container value that is already stored
	// in a document is inserted somewhere else. Use Take to move it, or Clone
	// to copy it. It wraps ErrInvalidOperation.
	ErrAttached = fmt.Errorf("%w: value is already attached", ErrInvalidOperation)
)

// StructuralError is the concrete type of errors reported for malformed input
// text and for invalid sequences of Builder events.
type StructuralError struct {
	Offset  int // byte offset in the source text, or -1 if there is no text
	Message string

	err error
}

func structuralf(msg string, args ...any) *StructuralError {
	return &StructuralError{Offset: -1, Message: fmt.Sprintf(msg, args...)}
}

// Error satisfies the error interface.
func (e *StructuralError) Error() string {
	if e.Offset < 0 {
		return "structural error: " + e.Message
	}
	return fmt.Sprintf("structural error at offset %d: %s", e.Offset, e.Message)
}

// Is reports whether target is ErrStructural.
func (e *StructuralError) Is(target error) bool { return target == ErrStructural }

// Unwrap supports error wrapping. For errors reported while parsing text, it
// returns the underlying *jvalue.SyntaxError.
func (e *StructuralError) Unwrap() error { return e.err }

// KeyError is the concrete type of errors reported for a missing object key.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string { return fmt.Sprintf("key %q not found", e.Key) }

// Is reports whether target is ErrKeyNotFound.
func (e *KeyError) Is(target error) bool { return target == ErrKeyNotFound }

// IndexError is the concrete type of errors reported for a list index out of
// range.
type IndexError struct {
	Index, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of bounds (n=%d)", e.Index, e.Len)
}

// Is reports whether target is ErrIndexOutOfBounds.
func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfBounds }

// TypeError is the concrete type of errors reported by a failed Cast.
type TypeError struct {
	Want string // the requested Go type
	Got  string // a description of the stored value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

func invalidOpf(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(msg, args...))
}

// describe summarizes v for error messages.
func describe(v *Value) string {
	switch v.tag {
	case TagScalar:
		if v.kind == KindNull || v.kind == KindOpaque {
			return v.kind.String()
		}
		return v.kind.String() + " " + strconv.Quote(truncate(v.String(), 32))
	case TagList:
		return fmt.Sprintf("list (n=%d)", v.Len())
	default:
		return fmt.Sprintf("object (n=%d)", v.Len())
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
