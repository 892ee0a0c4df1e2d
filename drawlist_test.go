// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ctx

import "testing"

func TestDrawListAppendAndAt(t *testing.T) {
	list := NewDrawList()
	idx := list.Append(Entry{Op: OpMoveTo}, Entry{Op: OpCont})
	if idx != 0 {
		t.Errorf("first Append index = %d, want 0", idx)
	}
	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	if list.At(0).Op != OpMoveTo || list.At(1).Op != OpCont {
		t.Error("entries not stored in order")
	}
}

func TestDrawListGrowthPolicy(t *testing.T) {
	list := NewDrawList()
	for i := 0; i < 1000; i++ {
		list.Append(Entry{Op: OpLineTo})
	}
	if list.Len() != 1000 {
		t.Fatalf("Len = %d, want 1000", list.Len())
	}
	if list.Cap() < list.Len() {
		t.Errorf("Cap() = %d should be >= Len() = %d", list.Cap(), list.Len())
	}
}

func TestDrawListTruncate(t *testing.T) {
	list := NewDrawList()
	for i := 0; i < 5; i++ {
		list.Append(Entry{Op: OpLineTo})
	}
	list.Truncate(2)
	if list.Len() != 2 {
		t.Errorf("Len after Truncate(2) = %d, want 2", list.Len())
	}
}

func TestDrawListTruncateClampsBitpackPos(t *testing.T) {
	list := NewDrawList()
	for i := 0; i < 5; i++ {
		list.Append(Entry{Op: OpLineTo})
	}
	list.BitpackPos = 4
	list.Truncate(2)
	if list.BitpackPos != 2 {
		t.Errorf("BitpackPos after Truncate(2) = %d, want 2", list.BitpackPos)
	}
}

func TestDrawListView(t *testing.T) {
	buf := make([]Entry, 3)
	list := NewDrawListView(buf)
	if list.Flags&FlagDoesNotOwnEntries == 0 {
		t.Fatal("expected FlagDoesNotOwnEntries to be set")
	}
	for i := 0; i < 3; i++ {
		list.Append(Entry{Op: OpLineTo})
	}
	if list.Len() != 3 {
		t.Fatalf("Len = %d, want 3", list.Len())
	}
	// a 4th append must fail silently: the view never reallocates
	before := list.Len()
	list.Append(Entry{Op: OpLineTo})
	if list.Len() != before {
		t.Errorf("Append beyond view capacity should be a silent no-op, got Len = %d", list.Len())
	}
}

func TestCursorWalksContinuations(t *testing.T) {
	list := NewDrawList()
	list.Append(Entry{Op: OpMoveTo}) // 0 continuations
	var quad Entry
	quad.Op = OpQuadTo
	list.Append(quad, Entry{Op: OpCont}) // 1 continuation

	c := NewCursor(list, 0)

	e, cont, ok := c.Next()
	if !ok || e.Op != OpMoveTo || len(cont) != 0 {
		t.Fatalf("first Next: e=%v cont=%v ok=%v", e, cont, ok)
	}

	e, cont, ok = c.Next()
	if !ok || e.Op != OpQuadTo || len(cont) != 1 {
		t.Fatalf("second Next: e=%v cont=%v ok=%v", e, cont, ok)
	}

	_, _, ok = c.Next()
	if ok {
		t.Error("expected end of list")
	}
}

func TestCursorExpandsBitpack(t *testing.T) {
	list := NewDrawList()
	for i := 0; i < 4; i++ {
		list.Append(relLineTo(1, 1))
	}
	Bitpack(list)

	c := NewCursor(list, ExpandBitpack)
	count := 0
	for {
		e, _, ok := c.Next()
		if !ok {
			break
		}
		if e.Op != OpRelLineTo {
			t.Errorf("expanded entry %d op = %v, want OpRelLineTo", count, e.Op)
		}
		count++
	}
	if count != 4 {
		t.Errorf("got %d expanded entries, want 4", count)
	}
}

func TestCursorWithoutExpandSeesPackedOp(t *testing.T) {
	list := NewDrawList()
	for i := 0; i < 4; i++ {
		list.Append(relLineTo(1, 1))
	}
	Bitpack(list)

	c := NewCursor(list, 0)
	e, _, ok := c.Next()
	if !ok || e.Op != OpRelLineToX4 {
		t.Errorf("without ExpandBitpack, expected raw OpRelLineToX4, got %v ok=%v", e.Op, ok)
	}
}
