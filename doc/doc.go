// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package doc implements a mutable in-memory model of JSON documents.
//
// A Value holds a single JSON datum: null, a Boolean, a number, a string, a
// list, or an object. Numbers keep the Go type they were created with, so an
// int64 is never silently converted to a float64 and back. Objects preserve
// the order of their members, and keyed lookup uses a hash index built the
// first time an object is searched.
//
// A Document is a handle to a stored Value. Parse returns a root document,
// which owns the value it holds. Navigating with Key, Index, or At returns
// view documents that refer to slots inside the root, and writing through a
// view changes the root in place:
//
//	d, err := doc.ParseString(`{"name":"x","tags":["a","b"]}`)
//	...
//	tags, err := d.Key("tags")
//	...
//	tags.Append(doc.String("c"))
//	fmt.Println(d) // {"name":"x","tags":["a","b","c"]}
//
// # Ownership
//
// Each list and object is stored in at most one place. Storing a container
// that is already part of a document reports ErrAttached; move it out first
// with Document.TakeValue, or copy it with Value.Clone. The List and Object
// constructors copy any attached arguments automatically.
//
// A view is invalidated when the slot it refers to moves or is released:
// when its container outgrows its storage, when members are deleted or the
// container is cleared, or when the container itself is replaced. Operations
// on an invalidated view report ErrStaleView rather than touching storage
// that no longer belongs to the document.
//
// # Building
//
// A Builder assembles a document from begin/end, key, and scalar events.
// Parse drives a Builder from the jvalue stream parser; callers may also
// drive one directly.
//
// Values and documents are not safe for concurrent mutation.
package doc
