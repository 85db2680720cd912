// entry.go: chained bin entries for PlugMap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import (
	"github.com/agilira/plug"
)

// entry is the value held by each bin's Keep cell. A nil head means the
// bin is empty; otherwise head is the first node of the bin's chain.
type entry[K comparable, V any] struct {
	head *entryNode[K, V]
}

// find walks this bin's chain looking for key, returning nil if absent.
// closed is treated the same as a nil next cell: a node mid-removal is
// not a match for anything.
func (e entry[K, V]) find(closed *entryNode[K, V], key K) *entryNode[K, V] {
	if e.head == nil || e.head == closed {
		return nil
	}
	return e.head.find(closed, key)
}

// entryNode is one link in a bin's chain. value and next are themselves
// Keep cells, so a reader that has already walked to a node keeps using
// the same lock-free read/write protocol as a bare Keep for both the
// node's value and the rest of the chain.
type entryNode[K comparable, V any] struct {
	key   K
	hash  uint64
	value *plug.Keep[V]
	next  *plug.Keep[*entryNode[K, V]]
}

func newEntryNode[K comparable, V any](key K, val V, hash uint64) *entryNode[K, V] {
	return &entryNode[K, V]{
		key:   key,
		hash:  hash,
		value: plug.NewKeep(val),
		next:  plug.NewKeep[*entryNode[K, V]](nil),
	}
}

// find walks the chain starting at n, comparing keys, and returns the
// matching node or nil.
func (n *entryNode[K, V]) find(closed *entryNode[K, V], key K) *entryNode[K, V] {
	current := n
	for {
		if current.key == key {
			return current
		}

		g := current.next.Read()
		nxt := g.Value()
		g.Release()

		if nxt == nil || nxt == closed {
			return nil
		}
		current = nxt
	}
}

// upsert walks the chain starting at n (a bin's head) looking for a
// node whose key matches newNode's key. If found, its value is swapped
// for newNode's and the replaced value's Guard is returned. If the walk
// reaches a live tail instead, newNode is appended there via a CAS from
// nil, retried against the tail's current state if lost.
//
// It returns ok=false if a concurrent remove has closed a node this
// walk depends on (see removeAttempt/closeTail) — n itself may no
// longer be reachable from the bin, so the caller must re-read the bin
// and restart the whole operation rather than resume this walk.
func (n *entryNode[K, V]) upsert(closed *entryNode[K, V], newNode *entryNode[K, V]) (replaced *plug.Guard[V], ok bool) {
	current := n
	for {
		if current.key == newNode.key {
			g := newNode.value.Read()
			replaced := current.value.SwapPtr(g.Ptr())
			g.Release()
			return replaced, true
		}

		g := current.next.Read()
		nxt := g.Value()

		if nxt == closed {
			g.Release()
			return nil, false
		}

		if nxt != nil {
			g.Release()
			current = nxt
			continue
		}

		_, won := current.next.Exchange(g, newNode)
		g.Release()
		if !won {
			// the tail moved (another insert appended, or a remove
			// closed it); re-read current.next and retry from here.
			continue
		}
		return nil, true
	}
}

// Value returns a fresh Guard over this node's current value without
// walking the chain, for callers that already hold a node reference
// (for example table.get after find) and want to re-read it directly.
func (n *entryNode[K, V]) Value() *plug.Guard[V] {
	return n.value.Read()
}

// closeTail attempts to freeze n's next cell by CAS-ing it from
// whatever it currently holds to closed. A lost race (next already
// closed, or an insert appended there first) returns ok=false and the
// caller must not act on a stale "after" value — the node being
// removed may have just grown a new successor that must be preserved,
// not spliced away.
func (n *entryNode[K, V]) closeTail(closed *entryNode[K, V]) (after *entryNode[K, V], ok bool) {
	g := n.next.Read()
	cur := g.Value()

	if cur == closed {
		g.Release()
		return nil, false
	}

	_, won := n.next.Exchange(g, closed)
	g.Release()
	return cur, won
}

// removeAttempt makes one pass over the chain rooted at head looking
// for key. It returns (guard, true) for a definitive outcome — removed,
// or confirmed absent — and (nil, false) if a concurrent mutation
// forced a retry: the caller should re-walk from head rather than
// resume from wherever this attempt stopped.
func removeAttempt[K comparable, V any](closed *entryNode[K, V], head *entryNode[K, V], key K) (*plug.Guard[V], bool) {
	pred := head
	for {
		predNext := pred.next.Read()
		next := predNext.Value()

		if next == nil || next == closed {
			predNext.Release()
			return nil, true
		}

		if next.key != key {
			predNext.Release()
			pred = next
			continue
		}

		// Close next's own tail before splicing it out: this fails if
		// a concurrent insert just appended after next (or another
		// remover beat us to it), so we never drop an append that
		// landed between our read of next.next and this CAS.
		after, won := next.closeTail(closed)
		if !won {
			predNext.Release()
			return nil, false
		}

		replaced, won := pred.next.Exchange(predNext, after)
		predNext.Release()
		if !won {
			replaced.Release()
			return nil, false
		}
		replaced.Release()
		return next.value.Read(), true
	}
}

// removeFromChain unlinks key from the chain rooted at head, retrying
// removeAttempt from head on every concurrent-mutation signal until it
// reaches a definitive outcome.
func removeFromChain[K comparable, V any](closed *entryNode[K, V], head *entryNode[K, V], key K) *plug.Guard[V] {
	for {
		if g, done := removeAttempt(closed, head, key); done {
			return g
		}
	}
}
