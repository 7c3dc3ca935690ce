// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import (
	"fmt"
	"testing"
)

// withHash replaces keyHash for the duration of a test.
func withHash(t *testing.T, h func(string) uint64) {
	t.Helper()
	old := keyHash
	keyHash = h
	t.Cleanup(func() { keyHash = old })
}

func members(keys ...string) []member {
	ms := make([]member, len(keys))
	for i, k := range keys {
		ms[i] = member{key: k, val: Int(int64(i))}
	}
	return ms
}

func TestKeyIndex(t *testing.T) {
	ms := members("a", "b", "c", "b", "d")
	x := newKeyIndex(ms)
	if n := x.Len(); n != 4 {
		t.Errorf("Len: got %d, want 4", n)
	}
	tests := []struct {
		key  string
		want int
	}{
		{"a", 0}, {"b", 3}, {"c", 2}, {"d", 4}, {"e", -1}, {"", -1},
	}
	for _, test := range tests {
		if got := x.lookup(ms, test.key); got != test.want {
			t.Errorf("lookup(%q): got %d, want %d", test.key, got, test.want)
		}
	}
}

func TestKeyIndexCollisions(t *testing.T) {
	// Every key hashes to one of two values, so most lookups must walk a
	// collision chain.
	withHash(t, func(s string) uint64 { return uint64(len(s) % 2) })

	var keys []string
	for i := range 50 {
		keys = append(keys, fmt.Sprintf("key%d", i))
	}
	ms := members(keys...)
	x := newKeyIndex(ms)
	if n := x.Len(); n != len(keys) {
		t.Errorf("Len: got %d, want %d", n, len(keys))
	}
	for i, key := range keys {
		if got := x.lookup(ms, key); got != i {
			t.Errorf("lookup(%q): got %d, want %d", key, got, i)
		}
	}
	if got := x.lookup(ms, "nothing"); got != -1 {
		t.Errorf("lookup(nothing): got %d, want -1", got)
	}

	// A duplicate key in a chain replaces the earlier position.
	ms = append(ms, member{key: "key7", val: Null()})
	x.add(ms, len(ms)-1)
	if got := x.lookup(ms, "key7"); got != len(ms)-1 {
		t.Errorf("lookup(key7) after add: got %d, want %d", got, len(ms)-1)
	}
	if n := x.Len(); n != len(keys) {
		t.Errorf("Len after duplicate: got %d, want %d", n, len(keys))
	}
}

func TestObjectCollisions(t *testing.T) {
	withHash(t, func(string) uint64 { return 42 })

	d := NewDocument(Object())
	for i := range 10 {
		if err := d.Set(fmt.Sprintf("k%d", i), Int(int64(i))); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := d.Set("k3", String("three")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Delete("k5"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for i := range 10 {
		key := fmt.Sprintf("k%d", i)
		v, err := d.Key(key)
		switch {
		case i == 5:
			if err == nil {
				t.Errorf("Key(%q): got %v, want error", key, v)
			}
		case err != nil:
			t.Errorf("Key(%q): unexpected error: %v", key, err)
		case i == 3:
			if got := v.Value().str; got != "three" {
				t.Errorf("Key(%q): got %q, want three", key, got)
			}
		default:
			if got := int64(v.Value().bits); got != int64(i) {
				t.Errorf("Key(%q): got %d, want %d", key, got, i)
			}
		}
	}
}
