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

import "seehuhn.de/go/ctx/internal/geom"

// SourceKind discriminates the Source tagged union (§3).
type SourceKind int

const (
	SourceSolidColor SourceKind = iota
	SourceLinearGradient
	SourceRadialGradient
	SourceTexture
	SourceInheritFill // stroke source that follows the fill source
)

// GradientStop is one entry in a gradient's stop array (max
// maxGradientStops per state, §3).
type GradientStop struct {
	Offset float64 // in [0,1]
	Color  Color
}

// Source is a tagged union of paint sources: solid color, linear
// gradient, radial gradient, texture, or "inherit fill" — exactly the
// union §3 describes, modeled as a Go struct with a discriminant field
// rather than an interface, since the rasterizer's hot per-pixel sampler
// switches on Kind and an interface call there would cost an indirection
// per pixel.
type Source struct {
	Kind  SourceKind
	Color Color

	// Linear gradient: endpoints precomputed (§3).
	LinearDX, LinearDY, LinearLength float64
	LinearStart, LinearEnd           float64
	LinearRDelta                     float64

	// Radial gradient: two circles plus rdelta.
	RadialX0, RadialY0, RadialR0 float64
	RadialX1, RadialY1, RadialR1 float64
	RadialRDelta                 float64

	Stops []GradientStop

	// Texture.
	Texture     *Buffer
	TextureOrigin geom.Vec2
	TextureInverse geom.Matrix

	cache gradientCache
}

// SetLinearGradient precomputes the endpoint parameterization §4.9
// describes: (dx, dy, length, start, end, rdelta=1/(end-start)).
func (s *Source) SetLinearGradient(x0, y0, x1, y1 float64) {
	s.Kind = SourceLinearGradient
	dx := x1 - x0
	dy := y1 - y0
	length := geom.Vec2{X: dx, Y: dy}.Length()
	s.LinearDX, s.LinearDY, s.LinearLength = dx, dy, length
	s.LinearStart = (dx*x0 + dy*y0) / max1(length)
	s.LinearEnd = (dx*x1 + dy*y1) / max1(length)
	if s.LinearEnd != s.LinearStart {
		s.LinearRDelta = 1 / (s.LinearEnd - s.LinearStart)
	}
	s.cache.valid = false
}

// SetRadialGradient sets up a two-circle radial gradient.
func (s *Source) SetRadialGradient(x0, y0, r0, x1, y1, r1 float64) {
	s.Kind = SourceRadialGradient
	s.RadialX0, s.RadialY0, s.RadialR0 = x0, y0, r0
	s.RadialX1, s.RadialY1, s.RadialR1 = x1, y1, r1
	if r1 != r0 {
		s.RadialRDelta = 1 / (r1 - r0)
	}
	s.cache.valid = false
}

// AddStop appends a gradient stop, clamped to maxGradientStops (§3).
func (s *Source) AddStop(offset float64, c Color) {
	if len(s.Stops) >= maxGradientStops {
		return
	}
	s.Stops = append(s.Stops, GradientStop{Offset: offset, Color: c})
	s.cache.valid = false
}

func max1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// IsOpaqueSolidColor reports whether s is a solid color with alpha == 1,
// the condition the compositor's decision table (§4.8) uses to route
// into the fastest fill kernel.
func (s *Source) IsOpaqueSolidColor() bool {
	return s.Kind == SourceSolidColor && s.Color.Alpha() >= 1
}
