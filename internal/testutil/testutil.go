// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

// Recorder is a jvalue.Handler that records a line of text for each event it
// receives. It also implements jvalue.CommentHandler.
type Recorder struct {
	buf bytes.Buffer
}

// Printf records a line of text in r.
func (r *Recorder) Printf(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&r.buf, msg, args...)
}

// Output returns the text recorded so far.
func (r *Recorder) Output() string { return r.buf.String() }

func (r *Recorder) BeginObject(loc jvalue.Anchor) error { r.Printf("BeginObject"); return nil }
func (r *Recorder) EndObject(loc jvalue.Anchor) error   { r.Printf("EndObject"); return nil }
func (r *Recorder) BeginArray(loc jvalue.Anchor) error  { r.Printf("BeginArray"); return nil }
func (r *Recorder) EndArray(loc jvalue.Anchor) error    { r.Printf("EndArray"); return nil }
func (r *Recorder) EndOfInput(loc jvalue.Anchor)        { r.Printf(".") }

func (r *Recorder) Key(loc jvalue.Anchor) error {
	r.Printf("Key <%s>", loc.Text())
	return nil
}

func (r *Recorder) Value(loc jvalue.Anchor) error {
	r.Printf("Value %s <%s>", loc.Token(), loc.Text())
	return nil
}

func (r *Recorder) Comment(loc jvalue.Anchor) {
	r.Printf("Comment %s", strings.TrimSpace(string(loc.Text())))
}

// DiffLines compares want and got line by line, ignoring leading and
// trailing whitespace, and returns a human-readable diff or "".
func DiffLines(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// Sample is a JSON document exercising every kind of value.
const Sample = `{
  "name": "sample",
  "count": 3,
  "big": 18446744073709551615,
  "neg": -9223372036854775808,
  "ratio": 0.25,
  "ok": true,
  "missing": null,
  "tags": ["a", "b", "c"],
  "nested": {"list": [1, [2, [3]], {}], "empty": []},
  "text": "tab\there é 😀"
}`
