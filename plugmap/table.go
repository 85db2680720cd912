// table.go: fixed-size bin array backing a PlugMap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import (
	"sync/atomic"

	"github.com/agilira/plug"
)

// Bin size bounds, taken directly from the original table's
// DEFAULT_SIZE/MAX_SIZE, which are themselves log2 exponents fed
// straight into a `1 << size` bin count: a default of 16 bins, and a
// ceiling high enough that no real table ever reaches it.
const (
	defaultSizeLog2 = 4  // 1<<4 = 16 bins
	maxSizeLog2     = 32 // 1<<32 bins
)

// table is a fixed-size array of bins, each itself a Keep cell holding
// an entry chain. It never resizes: PlugMap picks a size up front and
// keeps it for the table's lifetime.
type table[K comparable, V any] struct {
	size       int
	capacity   int
	entryCount atomic.Int64
	entries    []*plug.Keep[entry[K, V]]
	// closed is a unique, never-dereferenced node address used as a
	// sentinel next/head value: CAS-ing a node's next cell to closed
	// "freezes" it during removal, distinguishing "this node is being
	// spliced out, do not append after it" from every real state
	// (nil, or a live successor). It is unique per table so distinct
	// tables never share sentinel identity.
	closed *entryNode[K, V]
}

// clampTableSize clamps a requested log2 bin count into
// [defaultSizeLog2, maxSizeLog2], matching the original table's
// `size.clamp(DEFAULT_SIZE, MAX_SIZE)`.
func clampTableSize(sizeLog2 int) int {
	if sizeLog2 < defaultSizeLog2 {
		return defaultSizeLog2
	}
	if sizeLog2 > maxSizeLog2 {
		return maxSizeLog2
	}
	return sizeLog2
}

func newTable[K comparable, V any](sizeLog2 int) *table[K, V] {
	sizeLog2 = clampTableSize(sizeLog2)

	capacity := 1 << sizeLog2
	entries := make([]*plug.Keep[entry[K, V]], capacity)
	for i := range entries {
		entries[i] = plug.NewKeep(entry[K, V]{})
	}

	return &table[K, V]{
		size:     sizeLog2,
		capacity: capacity,
		entries:  entries,
		closed:   &entryNode[K, V]{},
	}
}

// Length returns the number of bins in this table.
func (t *table[K, V]) Length() int {
	return t.capacity
}

func (t *table[K, V]) incEntryCount() int64 {
	return t.entryCount.Add(1)
}

func (t *table[K, V]) decEntryCount() int64 {
	return t.entryCount.Add(-1)
}

func (t *table[K, V]) binIndex(hash uint64) int {
	return int(hash) & (t.capacity - 1)
}

// bin returns the Keep for the bin that hash maps to.
func (t *table[K, V]) bin(hash uint64) *plug.Keep[entry[K, V]] {
	return t.entries[t.binIndex(hash)]
}

// BinAt returns the Keep for bin index, for diagnostics/iteration.
func (t *table[K, V]) BinAt(index int) *plug.Keep[entry[K, V]] {
	return t.entries[index]
}

// get looks up key, returning nil if it is not present.
func (t *table[K, V]) get(key K, hash uint64) *plug.Guard[V] {
	bin := t.bin(hash)
	cur := bin.Read()
	e := cur.Value()
	cur.Release()

	node := e.find(t.closed, key)
	if node == nil {
		return nil
	}
	return node.Value()
}

// insert publishes newNode into the bin newNode.hash maps to. If a node
// with the same key already exists, that node stays in the chain and
// only its value is replaced by newNode's. It returns the Guard over the
// replaced value, or nil if this was a fresh key.
func (t *table[K, V]) insert(newNode *entryNode[K, V]) *plug.Guard[V] {
	bin := t.bin(newNode.hash)

	for {
		cur := bin.Read()
		e := cur.Value()

		if e.head == nil {
			replaced, won := bin.Exchange(cur, entry[K, V]{head: newNode})
			cur.Release()
			if !won {
				replaced.Release()
				continue
			}
			replaced.Release()
			t.incEntryCount()
			return nil
		}

		cur.Release()
		replaced, ok := e.head.upsert(t.closed, newNode)
		if !ok {
			// the chain's head is concurrently being spliced out; the
			// bin may now point somewhere else entirely, so re-read it
			// and restart rather than continue walking a dead head.
			continue
		}
		if replaced == nil {
			t.incEntryCount()
		}
		return replaced
	}
}

// remove unlinks the node for key from the bin it hashes to, returning
// the Guard over its value, or nil if key was not present.
func (t *table[K, V]) remove(key K, hash uint64) *plug.Guard[V] {
	bin := t.bin(hash)

	for {
		cur := bin.Read()
		e := cur.Value()

		if e.head == nil {
			cur.Release()
			return nil
		}

		head := e.head
		if head.key != key {
			cur.Release()
			return removeFromChain(t.closed, head, key)
		}

		// Freeze head's own next cell before unseating it from the bin:
		// this is the same technique removeFromChain uses for interior
		// nodes, applied to the bin pointer itself, so a concurrent
		// insert that appends onto head right before it is removed
		// becomes the bin's new head instead of being dropped.
		after, won := head.closeTail(t.closed)
		if !won {
			cur.Release()
			continue
		}

		replaced, won := bin.Exchange(cur, entry[K, V]{head: after})
		cur.Release()
		if !won {
			replaced.Release()
			continue
		}
		replaced.Release()
		t.decEntryCount()
		return head.Value()
	}
}
