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

func TestSetLinearGradientParameterization(t *testing.T) {
	s := &Source{}
	s.SetLinearGradient(0, 0, 10, 0)
	if s.Kind != SourceLinearGradient {
		t.Fatalf("Kind = %v, want SourceLinearGradient", s.Kind)
	}
	if s.LinearLength != 10 {
		t.Errorf("LinearLength = %v, want 10", s.LinearLength)
	}
	if s.LinearStart != 0 {
		t.Errorf("LinearStart = %v, want 0", s.LinearStart)
	}
	if s.LinearEnd != 10 {
		t.Errorf("LinearEnd = %v, want 10", s.LinearEnd)
	}
}

func TestSetLinearGradientDegenerateNoRDelta(t *testing.T) {
	s := &Source{}
	s.SetLinearGradient(5, 5, 5, 5) // zero-length gradient
	if s.LinearRDelta != 0 {
		t.Errorf("degenerate gradient should leave RDelta at zero, got %v", s.LinearRDelta)
	}
}

func TestSetRadialGradientParameterization(t *testing.T) {
	s := &Source{}
	s.SetRadialGradient(0, 0, 2, 0, 0, 8)
	if s.Kind != SourceRadialGradient {
		t.Fatalf("Kind = %v, want SourceRadialGradient", s.Kind)
	}
	want := 1.0 / 6.0
	if s.RadialRDelta != want {
		t.Errorf("RadialRDelta = %v, want %v", s.RadialRDelta, want)
	}
}

func TestAddStopRespectsCap(t *testing.T) {
	s := &Source{}
	for i := 0; i < maxGradientStops+5; i++ {
		s.AddStop(float64(i)/float64(maxGradientStops+5), Gray(0.5))
	}
	if len(s.Stops) != maxGradientStops {
		t.Errorf("Stops len = %d, want capped at %d", len(s.Stops), maxGradientStops)
	}
}

func TestAddStopInvalidatesCache(t *testing.T) {
	s := &Source{}
	s.SetLinearGradient(0, 0, 1, 0)
	s.AddStop(0, Gray(0))
	s.primeGradientLUT()
	if !s.cache.valid {
		t.Fatal("expected cache to be primed")
	}
	s.AddStop(1, Gray(1))
	if s.cache.valid {
		t.Error("AddStop should invalidate the gradient cache")
	}
}

func TestIsOpaqueSolidColor(t *testing.T) {
	opaque := Source{Kind: SourceSolidColor, Color: RGBA(1, 0, 0, 1)}
	if !opaque.IsOpaqueSolidColor() {
		t.Error("expected opaque solid color to report true")
	}

	transparent := Source{Kind: SourceSolidColor, Color: RGBA(1, 0, 0, 0.5)}
	if transparent.IsOpaqueSolidColor() {
		t.Error("expected translucent solid color to report false")
	}

	gradient := Source{Kind: SourceLinearGradient}
	if gradient.IsOpaqueSolidColor() {
		t.Error("expected gradient source to report false")
	}
}

func TestMax1(t *testing.T) {
	if got := max1(0); got != 1 {
		t.Errorf("max1(0) = %v, want 1", got)
	}
	if got := max1(5); got != 5 {
		t.Errorf("max1(5) = %v, want 5", got)
	}
}
