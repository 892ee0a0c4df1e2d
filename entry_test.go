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

func TestEntryF32RoundTrip(t *testing.T) {
	var e Entry
	e.SetF32(0, 3.5)
	e.SetF32(1, -12.25)
	if got := e.F32(0); got != 3.5 {
		t.Errorf("F32(0) = %v, want 3.5", got)
	}
	if got := e.F32(1); got != -12.25 {
		t.Errorf("F32(1) = %v, want -12.25", got)
	}
}

func TestEntryU32RoundTrip(t *testing.T) {
	var e Entry
	e.SetU32(0, 0xdeadbeef)
	e.SetU32(1, 42)
	if got := e.U32(0); got != 0xdeadbeef {
		t.Errorf("U32(0) = %#x, want 0xdeadbeef", got)
	}
	if got := e.U32(1); got != 42 {
		t.Errorf("U32(1) = %v, want 42", got)
	}
}

func TestEntryS16RoundTrip(t *testing.T) {
	var e Entry
	vals := []int16{1234, -1234, 0, 32767, -32768}
	for i, v := range vals[:4] {
		e.SetS16(i, v)
	}
	for i, v := range vals[:4] {
		if got := e.S16(i); got != v {
			t.Errorf("S16(%d) = %d, want %d", i, got, v)
		}
	}
}

func TestEntryS8RoundTrip(t *testing.T) {
	var e Entry
	vals := []int8{1, -1, 0, 127, -128}
	for i, v := range vals {
		e.SetS8(i, v)
	}
	for i, v := range vals {
		if got := e.S8(i); got != v {
			t.Errorf("S8(%d) = %d, want %d", i, got, v)
		}
	}
}

func TestContsForEntry(t *testing.T) {
	cases := []struct {
		name string
		e    Entry
		want int
	}{
		{"MoveTo", Entry{Op: OpMoveTo}, 0},
		{"LineTo", Entry{Op: OpLineTo}, 0},
		{"QuadTo", Entry{Op: OpQuadTo}, 1},
		{"CurveTo", Entry{Op: OpCurveTo}, 2},
		{"Arc", Entry{Op: OpArc}, 2},
		{"ArcTo", Entry{Op: OpArcTo}, 2},
		{"Rectangle", Entry{Op: OpRectangle}, 1},
		{"RoundRectangle", Entry{Op: OpRoundRectangle}, 2},
		{"RelLineToX4", Entry{Op: OpRelLineToX4}, 1},
		{"LineDash", Entry{Op: OpLineDash}, 0},
		{"Color", Entry{Op: OpColor}, 0},
		{"Save", Entry{Op: OpSave}, 0},
		{"unknown", Entry{Op: Opcode(255)}, 0},
	}
	for _, c := range cases {
		if got := ContsForEntry(c.e); got != c.want {
			t.Errorf("%s: ContsForEntry = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestContsForEntryData(t *testing.T) {
	var e Entry
	e.Op = OpData
	e.SetU32(1, 0) // block length 0
	if got := ContsForEntry(e); got != 0 {
		t.Errorf("OpData blockLength=0: ContsForEntry = %d, want 0", got)
	}
	e.SetU32(1, 5)
	if got := ContsForEntry(e); got != 4 {
		t.Errorf("OpData blockLength=5: ContsForEntry = %d, want 4", got)
	}
}
