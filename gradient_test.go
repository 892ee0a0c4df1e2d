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

func TestSampleStopsEndpoints(t *testing.T) {
	stops := []GradientStop{
		{Offset: 0, Color: RGBA(1, 0, 0, 1)},
		{Offset: 1, Color: RGBA(0, 0, 1, 1)},
	}
	if got := sampleStops(stops, 0); got.Components != (RGBA(1, 0, 0, 1)).Components {
		t.Errorf("sample at t=0 = %v, want first stop color", got)
	}
	if got := sampleStops(stops, 1); got.Components != (RGBA(0, 0, 1, 1)).Components {
		t.Errorf("sample at t=1 = %v, want last stop color", got)
	}
}

func TestSampleStopsInterpolatesMidpoint(t *testing.T) {
	stops := []GradientStop{
		{Offset: 0, Color: RGBA(0, 0, 0, 1)},
		{Offset: 1, Color: RGBA(1, 1, 1, 1)},
	}
	mid := sampleStops(stops, 0.5)
	if mid.Components[0] < 0.49 || mid.Components[0] > 0.51 {
		t.Errorf("midpoint red component = %v, want ~0.5", mid.Components[0])
	}
}

func TestSampleStopsSingleStop(t *testing.T) {
	stops := []GradientStop{{Offset: 0.3, Color: Gray(0.7)}}
	got := sampleStops(stops, 0.9)
	if got.Components[0] != 0.7 {
		t.Errorf("single-stop sample = %v, want the only stop's color", got)
	}
}

func TestSortedStopsOrdersByOffset(t *testing.T) {
	stops := []GradientStop{
		{Offset: 0.8, Color: Gray(0.8)},
		{Offset: 0.1, Color: Gray(0.1)},
		{Offset: 0.5, Color: Gray(0.5)},
	}
	sorted := sortedStops(stops)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Offset > sorted[i].Offset {
			t.Fatalf("sortedStops not ordered: %v", sorted)
		}
	}
	// original slice is untouched
	if stops[0].Offset != 0.8 {
		t.Error("sortedStops should not mutate its input")
	}
}

func TestLerpColorSameModel(t *testing.T) {
	a := Gray(0)
	b := Gray(1)
	mid := lerpColor(a, b, 0.5)
	if mid.Model != ModelGray {
		t.Errorf("lerpColor should preserve shared model, got %v", mid.Model)
	}
	if mid.Components[0] < 0.49 || mid.Components[0] > 0.51 {
		t.Errorf("lerpColor(0.5) gray = %v, want ~0.5", mid.Components[0])
	}
}

func TestLerpColorDifferentModelFallsBackToRGBA8(t *testing.T) {
	a := Gray(0)
	b := CMYKA(0, 0, 0, 0, 1)
	mid := lerpColor(a, b, 0.5)
	if mid.Model != ModelRGBA {
		t.Errorf("cross-model lerpColor should fall back to RGBA, got %v", mid.Model)
	}
}

func TestPrimeGradientLUTIdempotent(t *testing.T) {
	s := &Source{}
	s.AddStop(0, RGBA(1, 0, 0, 1))
	s.AddStop(1, RGBA(0, 0, 1, 1))
	s.primeGradientLUT()
	first := s.cache.straight
	s.primeGradientLUT() // second call should be a no-op (cache already valid)
	if s.cache.straight != first {
		t.Error("primeGradientLUT should be idempotent once cache.valid is set")
	}
}

func TestSampleLinearEndpoints(t *testing.T) {
	s := &Source{}
	s.SetLinearGradient(0, 0, 10, 0)
	s.AddStop(0, RGBA(0, 0, 0, 1))
	s.AddStop(1, RGBA(1, 1, 1, 1))

	start := s.SampleLinear(0, 0)
	end := s.SampleLinear(10, 0)
	if start[0] > 10 {
		t.Errorf("SampleLinear at start = %v, want near black", start)
	}
	if end[0] < 245 {
		t.Errorf("SampleLinear at end = %v, want near white", end)
	}
}

func TestSampleRadialEndpoints(t *testing.T) {
	s := &Source{}
	s.SetRadialGradient(0, 0, 0, 0, 0, 10)
	s.AddStop(0, RGBA(0, 0, 0, 1))
	s.AddStop(1, RGBA(1, 1, 1, 1))

	center := s.SampleRadial(0, 0)
	edge := s.SampleRadial(10, 0)
	if center[0] > 10 {
		t.Errorf("SampleRadial at center = %v, want near black", center)
	}
	if edge[0] < 245 {
		t.Errorf("SampleRadial at edge radius = %v, want near white", edge)
	}
}

func TestLutLookupClampsRange(t *testing.T) {
	var lut [gradientLUTSize][4]uint8
	lut[0] = [4]uint8{1, 2, 3, 4}
	lut[gradientLUTSize-1] = [4]uint8{5, 6, 7, 8}
	if got := lutLookup(lut[:], -1); got != lut[0] {
		t.Errorf("lutLookup(-1) = %v, want %v", got, lut[0])
	}
	if got := lutLookup(lut[:], 2); got != lut[gradientLUTSize-1] {
		t.Errorf("lutLookup(2) = %v, want %v", got, lut[gradientLUTSize-1])
	}
}
