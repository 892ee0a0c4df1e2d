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

import "math"

// gradientLUTSize is the default LUT length (§3, §4.9).
const gradientLUTSize = 256

// gradientCache holds the two parallel 256-entry RGBA LUTs (straight and
// alpha-premultiplied) §3 describes, plus the dirty flag that gates
// lazy re-priming.
type gradientCache struct {
	valid     bool
	straight  [gradientLUTSize][4]uint8
	premult   [gradientLUTSize][4]uint8
}

// prime walks v in [0,1] across gradientLUTSize steps, interpolates the
// stop array, and writes both LUT variants (§4.9 "Gradient LUT prime").
// Stops interpolate in the gradient's own tagged color representation
// (the SUPPLEMENTED FEATURES decision in SPEC_FULL.md) rather than always
// through sRGB, so a Lab/LCH gradient doesn't pass through sRGB
// primaries: interpolation walks Components directly when both
// neighboring stops share a model, and falls back to RGBA8 interpolation
// only when they don't.
func (s *Source) primeGradientLUT() {
	if s.cache.valid || len(s.Stops) == 0 {
		return
	}
	stops := sortedStops(s.Stops)
	for i := 0; i < gradientLUTSize; i++ {
		t := float64(i) / float64(gradientLUTSize-1)
		c := sampleStops(stops, t)
		rgba8 := c.ToRGBA8()
		s.cache.straight[i] = rgba8
		a := rgba8[3]
		s.cache.premult[i] = [4]uint8{
			premultByte(rgba8[0], a),
			premultByte(rgba8[1], a),
			premultByte(rgba8[2], a),
			a,
		}
	}
	s.cache.valid = true
}

func premultByte(c, a uint8) uint8 {
	return uint8(uint32(c) * uint32(a) / 255)
}

func sortedStops(stops []GradientStop) []GradientStop {
	out := append([]GradientStop(nil), stops...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Offset > out[j].Offset; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// sampleStops interpolates the (already offset-sorted) stop array at t.
// Testable property (§8): sampling at t=0 equals the first stop's color
// and at t=1 the last stop's color.
func sampleStops(stops []GradientStop, t float64) Color {
	if len(stops) == 1 {
		return stops[0].Color
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			frac := (t - a.Offset) / span
			return lerpColor(a.Color, b.Color, frac)
		}
	}
	return last.Color
}

// lerpColor interpolates in the shared model when both colors use the
// same one; otherwise it falls back to RGBA8 interpolation.
func lerpColor(a, b Color, t float64) Color {
	if a.Model == b.Model {
		out := Color{Model: a.Model}
		n := len(a.modelChannels())
		if hasAlphaModel(a.Model) {
			n++
		}
		for i := 0; i < n; i++ {
			out.Components[i] = a.Components[i] + (b.Components[i]-a.Components[i])*t
		}
		return out
	}
	ar := a.ToRGBA8()
	br := b.ToRGBA8()
	var out [4]float64
	for i := range out {
		out[i] = (float64(ar[i]) + (float64(br[i])-float64(ar[i]))*t) / 255
	}
	return RGBA(out[0], out[1], out[2], out[3])
}

func hasAlphaModel(m ColorModel) bool {
	switch m {
	case ModelGrayAlpha, ModelRGBA, ModelDeviceRGBA, ModelCMYKA, ModelDeviceCMYKA, ModelLabAlpha, ModelLCHAlpha:
		return true
	default:
		return false
	}
}

// SampleLinear returns the straight-alpha LUT color at device point
// (x,y) for a linear-gradient source, per §4.9's
// t = ((dx*x+dy*y)/length - start) * rdelta formula.
func (s *Source) SampleLinear(x, y float64) [4]uint8 {
	s.primeGradientLUT()
	t := ((s.LinearDX*x+s.LinearDY*y)/max1(s.LinearLength) - s.LinearStart) * s.LinearRDelta
	return lutLookup(s.cache.straight[:], t)
}

// SampleRadial returns the straight-alpha LUT color at device point
// (x,y) for a radial-gradient source: t = (hypot(x-x0,y-y0) - r0) * rdelta.
func (s *Source) SampleRadial(x, y float64) [4]uint8 {
	s.primeGradientLUT()
	t := (math.Hypot(x-s.RadialX0, y-s.RadialY0) - s.RadialR0) * s.RadialRDelta
	return lutLookup(s.cache.straight[:], t)
}

func lutLookup(lut [][4]uint8, t float64) [4]uint8 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	idx := int(t*float64(gradientLUTSize-1) + 0.5)
	if idx >= gradientLUTSize {
		idx = gradientLUTSize - 1
	}
	return lut[idx]
}
