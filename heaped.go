// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package plug

// Keep's constructors accept values two ways: by value, in which case
// Plug heap-allocates a slot and copies the value in, or by a pointer
// the caller already allocated, in which case Plug adopts it without a
// copy. Both paths end up at the same *T the mutation domain tracks.
//
// NewKeep(v) is the common case. NewKeepFromPtr(p) exists for callers
// building a large or self-referential T in place and wanting to avoid
// the extra copy NewKeep would otherwise perform.
func heapify[T any](value T) *T {
	v := new(T)
	*v = value
	return v
}
