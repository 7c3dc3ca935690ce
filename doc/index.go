// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc

import "github.com/cespare/xxhash/v2"

// keyHash is the hash function used to index object keys.
// Tests may replace it to force collisions.
var keyHash = xxhash.Sum64String

// A keyIndex maps the hash of each key of an object to the position of the
// member with that key. Each lookup compares the stored key, so colliding
// hashes are resolved by chaining rather than by trusting the hash.
//
// When an object has duplicate keys, the index refers to the last one.
type keyIndex struct {
	slots map[uint64]int32   // hash → position of the first key with that hash
	more  map[uint64][]int32 // hash → positions of further distinct keys
}

// newKeyIndex builds an index over the keys of ms.
func newKeyIndex(ms []member) *keyIndex {
	x := &keyIndex{slots: make(map[uint64]int32, 2*len(ms))}
	for i := range ms {
		x.add(ms, i)
	}
	return x
}

// add records the key of ms[pos], replacing any previous position recorded
// for the same key.
func (x *keyIndex) add(ms []member, pos int) {
	key := ms[pos].key
	h := keyHash(key)
	first, ok := x.slots[h]
	if !ok || ms[first].key == key {
		x.slots[h] = int32(pos)
		return
	}
	chain := x.more[h]
	for i, p := range chain {
		if ms[p].key == key {
			chain[i] = int32(pos)
			return
		}
	}
	if x.more == nil {
		x.more = make(map[uint64][]int32)
	}
	x.more[h] = append(chain, int32(pos))
}

// lookup returns the position in ms of the member with the given key, or -1.
func (x *keyIndex) lookup(ms []member, key string) int {
	h := keyHash(key)
	first, ok := x.slots[h]
	if !ok {
		return -1
	} else if ms[first].key == key {
		return int(first)
	}
	for _, p := range x.more[h] {
		if ms[p].key == key {
			return int(p)
		}
	}
	return -1
}

// Len reports the number of distinct keys in the index.
func (x *keyIndex) Len() int {
	n := len(x.slots)
	for _, c := range x.more {
		n += len(c)
	}
	return n
}
