// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package plug

import "sync/atomic"

// Keep is a handle onto a single mutation cell. Cloning a Keep shares the
// same cell and the same set of outstanding Guards; each clone must be
// released independently via Release. Reads, writes, swaps and
// compare-and-swap exchanges are all lock-free and safe to call from any
// number of goroutines concurrently, including while other goroutines
// hold Guards obtained from earlier reads or relabel this same handle
// via SwapWith.
type Keep[T any] struct {
	atom atomic.Pointer[trackedAtomic[T]]
}

// NewKeep allocates a new cell holding value.
func NewKeep[T any](value T) *Keep[T] {
	return NewKeepFromPtr(heapify(value))
}

// NewKeepFromPtr adopts an already-allocated value into a new cell
// without copying it.
func NewKeepFromPtr[T any](value *T) *Keep[T] {
	atom := newTrackedAtomic(value)
	atom.registerKeep()
	k := &Keep[T]{}
	k.atom.Store(atom)
	return k
}

// Read returns a Guard over the current value.
func (k *Keep[T]) Read() *Guard[T] {
	return k.atom.Load().read()
}

// Write replaces the current value. The previous value remains
// reachable through any Guards already obtained for it.
func (k *Keep[T]) Write(value T) {
	k.atom.Load().write(heapify(value))
}

// WritePtr is the pointer-adopting form of Write.
func (k *Keep[T]) WritePtr(value *T) {
	k.atom.Load().write(value)
}

// Swap replaces the current value and returns a Guard over the value
// that was current just before the swap.
func (k *Keep[T]) Swap(value T) *Guard[T] {
	return k.atom.Load().swap(heapify(value))
}

// SwapPtr is the pointer-adopting form of Swap.
func (k *Keep[T]) SwapPtr(value *T) *Guard[T] {
	return k.atom.Load().swap(value)
}

// Exchange replaces the current value with newValue only if the current
// value is still the one guarded by current — identity, not structural
// equality, is what gets compared. It returns a Guard over the replaced
// value and true on success, or a Guard over the actual current value
// and false on failure.
func (k *Keep[T]) Exchange(current *Guard[T], newValue T) (*Guard[T], bool) {
	return k.atom.Load().exchange(current, heapify(newValue))
}

// SwapGuard republishes g — a Guard previously obtained from this same
// Keep (via Read, Swap, or Exchange) — as the
// cell's current value, adopting g's existing domain registration
// instead of heap-allocating and registering a fresh copy. g must not
// be used or released by the caller afterward: ownership of its
// registration transfers to this Keep. It returns a Guard over the
// value that was current just before the swap.
func (k *Keep[T]) SwapGuard(g *Guard[T]) *Guard[T] {
	return k.atom.Load().swapGuard(g)
}

// SwapWith relabels which cell k and other each name: after it
// returns, k refers to the cell other used to refer to and vice versa.
// No value is copied or moved between cells, only the two handles'
// bookkeeping is exchanged, so any Guard obtained from either handle
// before the call keeps observing the value it originally read. The
// relabeling itself is a lock-free CAS pair: k is pinned to other's cell
// first, then other is pinned to k's original cell; either half losing
// its race to a concurrent SwapWith on the same handle causes the whole
// pair to retry against the fresh pointers.
func (k *Keep[T]) SwapWith(other *Keep[T]) {
	for {
		a := k.atom.Load()
		b := other.atom.Load()
		if a == b {
			return
		}
		if !k.atom.CompareAndSwap(a, b) {
			continue
		}
		if other.atom.CompareAndSwap(b, a) {
			return
		}
		// other moved under us; undo our half and retry the whole pair.
		k.atom.CompareAndSwap(b, a)
	}
}

// Clone returns a second Keep handle sharing the same cell. Both handles
// must be released independently via Release.
func (k *Keep[T]) Clone() *Keep[T] {
	atom := k.atom.Load()
	atom.registerKeep()
	clone := &Keep[T]{}
	clone.atom.Store(atom)
	return clone
}

// Release lets go of this handle's share of the cell. Once every clone
// of a Keep and every Guard obtained from it has released, the cell's
// bookkeeping becomes unreachable and is collected normally.
func (k *Keep[T]) Release() {
	k.atom.Load().unregisterKeep()
}
