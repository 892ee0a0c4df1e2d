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

import "golang.org/x/image/math/f32"

// PixelFormat identifies one of the output buffer layouts this engine
// composites into (§4.8/§6).
type PixelFormat int

const (
	FormatGray1 PixelFormat = iota
	FormatGray2
	FormatGray4
	FormatGray8
	FormatGrayAlpha8
	FormatRGB8
	FormatRGBA8
	FormatBGRA8
	FormatRGB565
	FormatRGB565BE
	FormatRGB332
	FormatRGBAF
	FormatGrayF
	FormatGrayAlphaF
	FormatCMYK8
	FormatCMYKA8
	FormatCMYKAF
)

// FormatInfo describes one pixel format's packing and the hooks the
// compositor needs to convert to/from its own straight-alpha RGBA8
// working representation (§4.8).
type FormatInfo struct {
	Format         PixelFormat
	Components     int
	BitsPerPixel   int
	EffectiveBPP   int // bytes actually advanced per pixel when packed tighter than a byte boundary
	DitherRB       bool
	DitherG        bool
	CompositeFormat PixelFormat // format the compositor should accumulate in before a final pack

	// ToComponents/FromComponents convert one pixel between this format's
	// packed byte representation and straight-alpha float32 RGBA in
	// f32.Vec4 form (reusing golang.org/x/image/math/f32's vector type
	// instead of a bespoke [4]float32 alias, since nothing about this
	// conversion needs anything f32.Vec4 doesn't already provide).
	ToComponents   func(pixel []byte) f32.Vec4
	FromComponents func(c f32.Vec4, pixel []byte)

	// ApplyCoverage blends src (straight alpha) onto dst at the given
	// analytic coverage in [0,1], writing the packed result back into dst.
	ApplyCoverage func(dst []byte, src f32.Vec4, coverage float32)

	Setup func() []byte // returns a zeroed scratch pixel of this format's width
}

var formatTable = map[PixelFormat]*FormatInfo{
	FormatGray8:     {Format: FormatGray8, Components: 1, BitsPerPixel: 8, EffectiveBPP: 1},
	FormatGrayAlpha8: {Format: FormatGrayAlpha8, Components: 2, BitsPerPixel: 16, EffectiveBPP: 2},
	FormatRGB8:      {Format: FormatRGB8, Components: 3, BitsPerPixel: 24, EffectiveBPP: 3},
	FormatRGBA8:     {Format: FormatRGBA8, Components: 4, BitsPerPixel: 32, EffectiveBPP: 4},
	FormatBGRA8:     {Format: FormatBGRA8, Components: 4, BitsPerPixel: 32, EffectiveBPP: 4},
	FormatRGB565:    {Format: FormatRGB565, Components: 3, BitsPerPixel: 16, EffectiveBPP: 2, DitherRB: true, DitherG: true},
	FormatRGB565BE:  {Format: FormatRGB565BE, Components: 3, BitsPerPixel: 16, EffectiveBPP: 2, DitherRB: true, DitherG: true},
	FormatRGB332:    {Format: FormatRGB332, Components: 3, BitsPerPixel: 8, EffectiveBPP: 1, DitherRB: true, DitherG: true},
	FormatRGBAF:     {Format: FormatRGBAF, Components: 4, BitsPerPixel: 128, EffectiveBPP: 16},
	FormatGrayF:     {Format: FormatGrayF, Components: 1, BitsPerPixel: 32, EffectiveBPP: 4},
	FormatGrayAlphaF: {Format: FormatGrayAlphaF, Components: 2, BitsPerPixel: 64, EffectiveBPP: 8},
	FormatCMYK8:     {Format: FormatCMYK8, Components: 4, BitsPerPixel: 32, EffectiveBPP: 4},
	FormatCMYKA8:    {Format: FormatCMYKA8, Components: 5, BitsPerPixel: 40, EffectiveBPP: 5},
	FormatCMYKAF:    {Format: FormatCMYKAF, Components: 5, BitsPerPixel: 160, EffectiveBPP: 20},
	FormatGray1:     {Format: FormatGray1, Components: 1, BitsPerPixel: 1},
	FormatGray2:     {Format: FormatGray2, Components: 1, BitsPerPixel: 2},
	FormatGray4:     {Format: FormatGray4, Components: 1, BitsPerPixel: 4},
}

func init() {
	formatTable[FormatRGB8].CompositeFormat = FormatRGBA8
	formatTable[FormatRGB565].CompositeFormat = FormatRGBA8
	formatTable[FormatRGB565BE].CompositeFormat = FormatRGBA8
	formatTable[FormatRGB332].CompositeFormat = FormatRGBA8
	formatTable[FormatGray8].CompositeFormat = FormatGrayAlpha8
	formatTable[FormatGrayF].CompositeFormat = FormatGrayAlphaF
	formatTable[FormatCMYK8].CompositeFormat = FormatCMYKA8

	formatTable[FormatRGBA8].ToComponents = rgba8ToComponents
	formatTable[FormatRGBA8].FromComponents = componentsToRGBA8
	formatTable[FormatRGBA8].ApplyCoverage = applyCoverageRGBA8

	formatTable[FormatBGRA8].ToComponents = bgra8ToComponents
	formatTable[FormatBGRA8].FromComponents = componentsToBGRA8
	formatTable[FormatBGRA8].ApplyCoverage = applyCoverageBGRA8
}

// LookupFormat returns the FormatInfo for f, or nil if unknown.
func LookupFormat(f PixelFormat) *FormatInfo { return formatTable[f] }

func rgba8ToComponents(pixel []byte) f32.Vec4 {
	return f32.Vec4{
		float32(pixel[0]) / 255, float32(pixel[1]) / 255,
		float32(pixel[2]) / 255, float32(pixel[3]) / 255,
	}
}

func componentsToRGBA8(c f32.Vec4, pixel []byte) {
	pixel[0] = clampByte(c[0])
	pixel[1] = clampByte(c[1])
	pixel[2] = clampByte(c[2])
	pixel[3] = clampByte(c[3])
}

func bgra8ToComponents(pixel []byte) f32.Vec4 {
	return f32.Vec4{
		float32(pixel[2]) / 255, float32(pixel[1]) / 255,
		float32(pixel[0]) / 255, float32(pixel[3]) / 255,
	}
}

func componentsToBGRA8(c f32.Vec4, pixel []byte) {
	pixel[2] = clampByte(c[0])
	pixel[1] = clampByte(c[1])
	pixel[0] = clampByte(c[2])
	pixel[3] = clampByte(c[3])
}

func clampByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func applyCoverageRGBA8(dst []byte, src f32.Vec4, coverage float32) {
	applyCoverageGeneric(dst, src, coverage, rgba8ToComponents, componentsToRGBA8)
}

func applyCoverageBGRA8(dst []byte, src f32.Vec4, coverage float32) {
	applyCoverageGeneric(dst, src, coverage, bgra8ToComponents, componentsToBGRA8)
}

func applyCoverageGeneric(dst []byte, src f32.Vec4, coverage float32, to func([]byte) f32.Vec4, from func(f32.Vec4, []byte)) {
	bg := to(dst)
	a := src[3] * coverage
	out := f32.Vec4{
		src[0]*a + bg[0]*(1-a),
		src[1]*a + bg[1]*(1-a),
		src[2]*a + bg[2]*(1-a),
		a + bg[3]*(1-a),
	}
	from(out, dst)
}
