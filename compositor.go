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

// CompositingMode selects the Porter-Duff operator pair (F_s, F_d) the
// compositor applies before blending (§4.8).
type CompositingMode int

const (
	CompositingClear CompositingMode = iota
	CompositingCopy
	CompositingSourceOver
	CompositingDestinationOver
	CompositingSourceIn
	CompositingDestinationIn
	CompositingSourceOut
	CompositingDestinationOut
	CompositingSourceAtop
	CompositingDestinationAtop
	CompositingXOR
	CompositingLighter
)

// porterDuffFactors returns the (Fs, Fd) alpha factors for the given
// compositing mode, parameterized by source alpha as and destination
// alpha ad (§4.8's Porter-Duff factor table).
func porterDuffFactors(mode CompositingMode, as, ad float64) (fs, fd float64) {
	switch mode {
	case CompositingClear:
		return 0, 0
	case CompositingCopy:
		return 1, 0
	case CompositingSourceOver:
		return 1, 1 - as
	case CompositingDestinationOver:
		return 1 - ad, 1
	case CompositingSourceIn:
		return ad, 0
	case CompositingDestinationIn:
		return 0, as
	case CompositingSourceOut:
		return 1 - ad, 0
	case CompositingDestinationOut:
		return 0, 1 - as
	case CompositingSourceAtop:
		return ad, 1 - as
	case CompositingDestinationAtop:
		return 1 - ad, as
	case CompositingXOR:
		return 1 - ad, 1 - as
	case CompositingLighter:
		return 1, 1
	default:
		return 1, 1 - as
	}
}

// BlendMode selects the per-channel blend function applied before the
// Porter-Duff alpha compositing step (§4.8).
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAddition
	BlendSubtraction
	BlendDivision
)

// blendChannel applies mode to one (source, backdrop) channel pair, both
// in [0,1]. The separable blend functions (§4.8's formula table).
func blendChannel(mode BlendMode, cs, cb float64) float64 {
	switch mode {
	case BlendNormal:
		return cs
	case BlendMultiply:
		return cs * cb
	case BlendScreen:
		return cs + cb - cs*cb
	case BlendOverlay:
		return blendHardLightFn(cb, cs)
	case BlendDarken:
		return minF(cs, cb)
	case BlendLighten:
		return maxF(cs, cb)
	case BlendColorDodge:
		return blendColorDodge(cs, cb)
	case BlendColorBurn:
		return blendColorBurn(cs, cb)
	case BlendHardLight:
		return blendHardLightFn(cs, cb)
	case BlendSoftLight:
		return blendSoftLight(cs, cb)
	case BlendDifference:
		return absF(cs - cb)
	case BlendExclusion:
		return cs + cb - 2*cs*cb
	case BlendAddition:
		return minF(1, cs+cb)
	case BlendSubtraction:
		return maxF(0, cb-cs)
	case BlendDivision:
		if cs == 0 {
			return 1
		}
		return minF(1, cb/cs)
	default:
		return cs
	}
}

func blendColorDodge(cs, cb float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs == 1 {
		return 1
	}
	return minF(1, cb/(1-cs))
}

func blendColorBurn(cs, cb float64) float64 {
	if cb == 1 {
		return 1
	}
	if cs == 0 {
		return 0
	}
	return 1 - minF(1, (1-cb)/cs)
}

func blendHardLightFn(cs, cb float64) float64 {
	if cs <= 0.5 {
		return 2 * cs * cb
	}
	return 1 - 2*(1-cs)*(1-cb)
}

func blendSoftLight(cs, cb float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = sqrtF(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrtF(v float64) float64 {
	// Newton's method to one-ULP-ish precision; avoids pulling in math
	// for a single call site used only by the soft-light tail.
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 8; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

// isNonSeparable reports whether mode mixes HSL components across
// channels (Hue/Saturation/Color/Luminosity), which need the §4.8
// HSL-family clip routines instead of per-channel blendChannel.
func isNonSeparable(mode BlendMode) bool {
	switch mode {
	case BlendHue, BlendSaturation, BlendColor, BlendLuminosity:
		return true
	default:
		return false
	}
}

func lum(c [3]float64) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := minF(c[0], minF(c[1], c[2]))
	x := maxF(c[0], maxF(c[1], c[2]))
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

func sat(c [3]float64) float64 {
	return maxF(c[0], maxF(c[1], c[2])) - minF(c[0], minF(c[1], c[2]))
}

func setSat(c [3]float64, s float64) [3]float64 {
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[hi] > c[lo] {
		c[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		c[hi] = s
	} else {
		c[mid] = 0
		c[hi] = 0
	}
	c[lo] = 0
	return c
}

// blendNonSeparable applies a Hue/Saturation/Color/Luminosity blend to a
// full (source, backdrop) RGB triple (§4.8).
func blendNonSeparable(mode BlendMode, cs, cb [3]float64) [3]float64 {
	switch mode {
	case BlendHue:
		return setLum(setSat(cs, sat(cb)), lum(cb))
	case BlendSaturation:
		return setLum(setSat(cb, sat(cs)), lum(cb))
	case BlendColor:
		return setLum(cs, lum(cb))
	case BlendLuminosity:
		return setLum(cb, lum(cs))
	default:
		return cs
	}
}

// kernelKind names the dispatch decision the compositor's table (§4.8)
// picks among, purely for documentation/testing: chooseKernel only
// classifies a combination, no compositing code dispatches on the result,
// and there are no SIMD kernels, since the pack carries no
// vector-intrinsics library to ground an AVX2 port on (see DESIGN.md).
type kernelKind int

const (
	kernelNop kernelKind = iota
	kernelClearNormal
	kernelCopyNormal
	kernelSourceOverNormalOpaqueColorSolid
	kernelSourceOverNormalColor
	kernelSourceOverNormalLinearGradient
	kernelSourceOverNormalRadialGradient
	kernelSourceOverNormalFragment
	kernelGeneric
)

// chooseKernel implements the compositor's decision table (§4.8): the
// cheapest kernel that is exact for the given (mode, blend, source) combo.
func chooseKernel(mode CompositingMode, blend BlendMode, src *Source) kernelKind {
	if mode == CompositingClear {
		return kernelClearNormal
	}
	if mode == CompositingCopy && blend == BlendNormal {
		return kernelCopyNormal
	}
	if mode != CompositingSourceOver || blend != BlendNormal {
		return kernelGeneric
	}
	switch src.Kind {
	case SourceSolidColor:
		if src.IsOpaqueSolidColor() {
			return kernelSourceOverNormalOpaqueColorSolid
		}
		return kernelSourceOverNormalColor
	case SourceLinearGradient:
		return kernelSourceOverNormalLinearGradient
	case SourceRadialGradient:
		return kernelSourceOverNormalRadialGradient
	case SourceTexture:
		return kernelSourceOverNormalFragment
	default:
		return kernelGeneric
	}
}

// CompositePixel blends one straight-alpha source RGBA8 sample onto a
// straight-alpha backdrop RGBA8 pixel using mode/blend, scaled by
// coverage and the current global alpha (§4.8). Both inputs and the
// result are straight (non-premultiplied) alpha.
func CompositePixel(mode CompositingMode, blend BlendMode, src [4]uint8, coverage float32, globalAlpha float64, dst [4]uint8) [4]uint8 {
	as := float64(src[3]) / 255 * float64(coverage) * globalAlpha
	ad := float64(dst[3]) / 255

	cs := [3]float64{float64(src[0]) / 255, float64(src[1]) / 255, float64(src[2]) / 255}
	cb := [3]float64{float64(dst[0]) / 255, float64(dst[1]) / 255, float64(dst[2]) / 255}

	var blended [3]float64
	if isNonSeparable(blend) {
		blended = blendNonSeparable(blend, cs, cb)
	} else {
		for i := range blended {
			blended[i] = blendChannel(blend, cs[i], cb[i])
		}
	}
	// Mix the raw and blended source colors by backdrop alpha, per the
	// standard "blend only where there is backdrop" compositing formula,
	// before the Porter-Duff alpha factors are applied.
	mixed := [3]float64{
		cs[0] + ad*(blended[0]-cs[0]),
		cs[1] + ad*(blended[1]-cs[1]),
		cs[2] + ad*(blended[2]-cs[2]),
	}

	fs, fd := porterDuffFactors(mode, as, ad)
	outA := as*fs + ad*fd
	var out [4]uint8
	if outA <= 0 {
		return [4]uint8{0, 0, 0, 0}
	}
	for i := 0; i < 3; i++ {
		v := (as*fs*mixed[i] + ad*fd*cb[i]) / outA
		out[i] = clamp8(v)
	}
	out[3] = clamp8(outA)
	return out
}
