// entry_test.go: tests for bin chain entries
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import "testing"

func TestEntry_FindEmpty(t *testing.T) {
	var e entry[string, int]
	closed := &entryNode[string, int]{}
	if e.find(closed, "anything") != nil {
		t.Error("expected nil find on an empty entry")
	}
}

func TestEntryNode_FindWalksChain(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	mid := newEntryNode("b", 2, 1)
	tail := newEntryNode("c", 3, 1)

	head.next.Write(mid)
	mid.next.Write(tail)

	if head.find(closed, "c") != tail {
		t.Error("expected to find tail node by walking the chain")
	}
	if head.find(closed, "missing") != nil {
		t.Error("expected nil for an absent key")
	}
	if head.find(closed, "a") != head {
		t.Error("expected find on the head's own key to return itself")
	}
}

func TestEntryNode_UpsertAppendsWhenNoMatch(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	newNode := newEntryNode("b", 2, 1)

	old, ok := head.upsert(closed, newNode)
	if !ok {
		t.Fatal("expected upsert to succeed with no contention")
	}
	if old != nil {
		t.Fatal("expected nil old value when appending a new key")
	}

	g := head.next.Read()
	defer g.Release()
	if g.Value() != newNode {
		t.Error("expected newNode to be appended as head.next")
	}
}

func TestEntryNode_UpsertSwapsOnMatch(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	replacement := newEntryNode("a", 99, 1)

	old, ok := head.upsert(closed, replacement)
	if !ok {
		t.Fatal("expected upsert to succeed with no contention")
	}
	if old == nil || old.Value() != 1 {
		t.Fatal("expected old value 1")
	}
	old.Release()

	g := head.Value()
	if g.Value() != 99 {
		t.Errorf("got %d, want 99", g.Value())
	}
	g.Release()
}

func TestRemoveFromChain_NotFound(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	if removeFromChain(closed, head, "missing") != nil {
		t.Error("expected nil for an absent key")
	}
}

func TestRemoveFromChain_Interior(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	mid := newEntryNode("b", 2, 1)
	tail := newEntryNode("c", 3, 1)
	head.next.Write(mid)
	mid.next.Write(tail)

	g := removeFromChain(closed, head, "b")
	if g == nil || g.Value() != 2 {
		t.Fatal("expected to remove mid=2")
	}
	g.Release()

	if head.find(closed, "b") != nil {
		t.Error("b should no longer be findable")
	}
	if head.find(closed, "c") != tail {
		t.Error("c should still be reachable after removing b")
	}
}

func TestEntryNode_CloseTailFreezesNext(t *testing.T) {
	closed := &entryNode[string, int]{}
	head := newEntryNode("a", 1, 1)
	tail := newEntryNode("b", 2, 1)
	head.next.Write(tail)

	after, won := head.closeTail(closed)
	if !won {
		t.Fatal("expected closeTail to win with no contention")
	}
	if after != tail {
		t.Errorf("expected after == tail, got %v", after)
	}

	if _, won := head.closeTail(closed); won {
		t.Error("expected a second closeTail to fail once already closed")
	}
}
