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

func TestEncodeDecodeWireEdgeRoundTrip(t *testing.T) {
	e := EncodeWireEdge(1.5, 2.5, 10.25, 20.75, true)
	x0, y0, x1, y1 := e.Decode()
	const tol = 1.0 / subdiv
	if abs(x0-1.5) > tol || abs(y0-2.5) > tol || abs(x1-10.25) > tol || abs(y1-20.75) > tol {
		t.Errorf("round trip = (%v,%v)-(%v,%v), want ~(1.5,2.5)-(10.25,20.75)", x0, y0, x1, y1)
	}
	if e.Code != edgeNew {
		t.Errorf("Code = %v, want edgeNew", e.Code)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEncodeWireEdgeFlipsDescendingEdges(t *testing.T) {
	e := EncodeWireEdge(0, 10, 5, 0, false)
	if e.Code != edgeFlipped {
		t.Errorf("Code = %v, want edgeFlipped", e.Code)
	}
	// endpoints should have been swapped so y0 <= y1
	if e.Y0 > e.Y1 {
		t.Errorf("Y0=%d > Y1=%d after flip", e.Y0, e.Y1)
	}
}

func TestClampSubpixelSaturates(t *testing.T) {
	if got := clampSubpixel(1e9); got != 32767 {
		t.Errorf("clampSubpixel(huge) = %d, want 32767", got)
	}
	if got := clampSubpixel(-1e9); got != -32768 {
		t.Errorf("clampSubpixel(-huge) = %d, want -32768", got)
	}
}

func TestClassifySlopeBucket(t *testing.T) {
	steep := EncodeWireEdge(0, 0, 0.1, 10, false)
	if got := classifySlopeBucket(steep); got != bucketAA3 {
		t.Errorf("near-vertical slope bucket = %v, want bucketAA3", got)
	}

	horizontal := WireEdge{X0: 0, Y0: 5, X1: 10, Y1: 5}
	if got := classifySlopeBucket(horizontal); got != bucketAA15 {
		t.Errorf("horizontal (dy=0) edge bucket = %v, want bucketAA15", got)
	}
}

func TestWireEdgesFromEntries(t *testing.T) {
	segs := [][2]float64{{0, 0}, {1, 1}, {2, 0}}
	edges := WireEdgesFromEntries(segs)
	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}
	if edges[0].Code != edgeNew {
		t.Errorf("first edge Code = %v, want edgeNew", edges[0].Code)
	}
}

func TestWireEdgesFromEntriesTooShort(t *testing.T) {
	if got := WireEdgesFromEntries([][2]float64{{0, 0}}); got != nil {
		t.Errorf("single-point input should yield nil, got %v", got)
	}
}
