// map.go: PlugMap, a concurrent hash map built out of Keep cells
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import (
	"fmt"
	"hash/maphash"

	"github.com/agilira/plug"
)

// Hasher computes a 64-bit hash for a key. BuildHasher in maphash.Hash
// form, matching the std::hash::BuildHasher role in the original.
type Hasher[K comparable] func(key K) uint64

// PlugMap is a fixed-size, chained hash map whose bins and entry chain
// links are themselves Keep cells, giving every bucket the same
// lock-free read/write semantics as a bare Keep.
type PlugMap[K comparable, V any] struct {
	table   *plug.Keep[*table[K, V]]
	hasher  Hasher[K]
	metrics plug.MetricsCollector
	clock   plug.TimeProvider
}

// New creates a PlugMap with the default initial size and a
// randomly-seeded maphash hasher.
func New[K comparable, V any]() *PlugMap[K, V] {
	m, err := NewWithConfig[K, V](DefaultConfig[K]())
	if err != nil {
		// DefaultConfig is always valid; a failure here is a programming
		// error in this package, not a caller mistake.
		panic(err)
	}
	return m
}

// NewWithConfig creates a PlugMap per cfg. See Config for the available
// knobs and their defaults.
func NewWithConfig[K comparable, V any](cfg Config[K]) (*PlugMap[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = defaultHasher[K]()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = plug.NoOpMetricsCollector{}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = plug.NewSystemTimeProvider()
	}

	return &PlugMap[K, V]{
		table:   plug.NewKeep(newTable[K, V](cfg.InitialTableSize)),
		hasher:  hasher,
		metrics: metrics,
		clock:   clock,
	}, nil
}

// defaultHasher builds a Hasher backed by hash/maphash, seeded once per
// call so distinct PlugMap instances do not share a hash-flooding seed.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		var h maphash.Hash
		h.SetSeed(seed)
		writeHashable(&h, key)
		return h.Sum64()
	}
}

// writeHashable feeds key's bytes into h. string and []byte keys hash
// their bytes directly; any other comparable type falls back to its
// formatted representation. Callers with performance-sensitive
// non-string keys should supply their own Hasher via Config instead.
func writeHashable(h *maphash.Hash, key any) {
	switch k := key.(type) {
	case string:
		_, _ = h.WriteString(k)
	case []byte:
		_, _ = h.Write(k)
	default:
		_, _ = h.WriteString(fmt.Sprintf("%v", k))
	}
}

func (m *PlugMap[K, V]) hash(key K) uint64 {
	return m.hasher(key)
}

// Get looks up the value associated with key. It returns nil if no such
// value exists.
func (m *PlugMap[K, V]) Get(key K) *plug.Guard[V] {
	start := m.clock.Now()
	tbl := m.table.Read()
	defer tbl.Release()

	result := tbl.Value().get(key, m.hash(key))
	m.metrics.RecordMapGet(m.clock.Now()-start, result != nil, 0)
	return result
}

// Insert inserts a new key-value pair into the map, or updates the
// value for key if it was already present. It returns the Guard over
// the value that key previously held, or nil if key is new.
func (m *PlugMap[K, V]) Insert(key K, val V) *plug.Guard[V] {
	start := m.clock.Now()
	hash := m.hash(key)
	node := newEntryNode(key, val, hash)

	tbl := m.table.Read()
	defer tbl.Release()

	old := tbl.Value().insert(node)
	m.metrics.RecordMapInsert(m.clock.Now()-start, old != nil, 0)
	return old
}

// Remove tries to remove key from the map, returning the Guard over its
// value if it was present.
func (m *PlugMap[K, V]) Remove(key K) *plug.Guard[V] {
	start := m.clock.Now()
	tbl := m.table.Read()
	defer tbl.Release()

	result := tbl.Value().remove(key, m.hash(key))
	m.metrics.RecordMapRemove(m.clock.Now()-start, result != nil)
	return result
}

// Len returns the number of bins currently backing the map. This is the
// table width, not the number of stored entries — PlugMap does not
// resize, so this value is fixed for the map's lifetime.
func (m *PlugMap[K, V]) Len() int {
	tbl := m.table.Read()
	defer tbl.Release()
	return tbl.Value().Length()
}
