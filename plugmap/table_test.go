// table_test.go: tests for the fixed-size bin table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package plugmap

import "testing"

// TestTable_SizeClamping exercises clampTableSize directly rather than
// constructing a table at the extremes: maxSizeLog2 is 32, and a real
// table at that size would allocate 1<<32 bins.
func TestTable_SizeClamping(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize int
	}{
		{"below default", 0, defaultSizeLog2},
		{"at default", defaultSizeLog2, defaultSizeLog2},
		{"above max", 100, maxSizeLog2},
		{"at max", maxSizeLog2, maxSizeLog2},
		{"in range", defaultSizeLog2 + 2, defaultSizeLog2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampTableSize(tt.size); got != tt.wantSize {
				t.Errorf("clampTableSize(%d) = %d, want %d", tt.size, got, tt.wantSize)
			}
		})
	}
}

func TestTable_NewTableUsesClampedSize(t *testing.T) {
	tbl := newTable[string, int](defaultSizeLog2 + 2)
	wantSize := defaultSizeLog2 + 2
	if tbl.size != wantSize {
		t.Errorf("size = %d, want %d", tbl.size, wantSize)
	}
	if tbl.Length() != 1<<wantSize {
		t.Errorf("Length() = %d, want %d", tbl.Length(), 1<<wantSize)
	}

	below := newTable[string, int](0)
	if below.size != defaultSizeLog2 {
		t.Errorf("size = %d, want %d", below.size, defaultSizeLog2)
	}
}

func TestTable_InsertGetRemove(t *testing.T) {
	tbl := newTable[string, int](defaultSizeLog2)

	if old := tbl.insert(newEntryNode("k1", 1, 100)); old != nil {
		t.Fatal("expected nil for fresh key")
	}

	g := tbl.get("k1", 100)
	if g == nil || g.Value() != 1 {
		t.Fatal("expected to find k1=1")
	}
	g.Release()

	old := tbl.insert(newEntryNode("k1", 2, 100))
	if old == nil || old.Value() != 1 {
		t.Fatal("expected old value 1 on update")
	}
	old.Release()

	removed := tbl.remove("k1", 100)
	if removed == nil || removed.Value() != 2 {
		t.Fatal("expected to remove k1=2")
	}
	removed.Release()

	if tbl.get("k1", 100) != nil {
		t.Fatal("k1 should be gone")
	}
}

func TestTable_EntryCount(t *testing.T) {
	tbl := newTable[string, int](defaultSizeLog2)

	tbl.insert(newEntryNode("a", 1, 1))
	tbl.insert(newEntryNode("b", 2, 2))
	if got := tbl.entryCount.Load(); got != 2 {
		t.Errorf("entryCount = %d, want 2", got)
	}

	// Updating an existing key must not change the count.
	tbl.insert(newEntryNode("a", 11, 1))
	if got := tbl.entryCount.Load(); got != 2 {
		t.Errorf("entryCount after update = %d, want 2", got)
	}

	tbl.remove("a", 1)
	if got := tbl.entryCount.Load(); got != 1 {
		t.Errorf("entryCount after remove = %d, want 1", got)
	}
}

func TestTable_BinAt(t *testing.T) {
	tbl := newTable[string, int](defaultSizeLog2)
	for i := 0; i < tbl.Length(); i++ {
		g := tbl.BinAt(i).Read()
		if g.Value().head != nil {
			t.Errorf("bin %d should start empty", i)
		}
		g.Release()
	}
}
