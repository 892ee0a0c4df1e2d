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

import (
	"math"

	"seehuhn.de/go/icc"
)

// ColorModel identifies which representation of Color is canonical.
// The integer part of a `color` command's leading float selects one of
// these (§6 "Color model parameter"); bit 9 (+512) separately marks the
// source as the stroke source rather than the fill source, so callers
// mask it off before switching on Model.
type ColorModel int

const (
	ModelGray ColorModel = iota
	ModelGrayAlpha
	ModelRGB
	ModelRGBA
	ModelDeviceRGB
	ModelDeviceRGBA
	ModelCMYK
	ModelCMYKA
	ModelDeviceCMYK
	ModelDeviceCMYKA
	ModelLab
	ModelLabAlpha
	ModelLCH
	ModelLCHAlpha
)

// StrokeSourceBit is bit 9 (+512) of a `color` command's model float,
// marking that the color being set is the stroke source rather than the
// fill source (§6).
const StrokeSourceBit = 512

// validMask bits, one per cache lane, recording which representations of
// a Color have been computed and are safe to reuse.
type validMask uint8

const (
	validRGBA8 validMask = 1 << iota
	validRGBAF
	validGray
	validCMYK
	validLab
	validLCH
)

// Color is a tagged, lazily-converting color value: Gray/RGB/CMYK/LAB/LCH
// with or without alpha, tracking which representations are canonical
// (original) versus cached on demand (§4.11).
type Color struct {
	Model ColorModel
	// Components holds up to 4 channel values in the Model's own order
	// (gray:[g], rgb:[r,g,b], cmyk:[c,m,y,k], lab:[l,a,b], lch:[l,c,h]),
	// plus alpha as the last populated slot when the model carries one.
	Components [5]float64

	valid  validMask // which cache lanes below are populated
	rgba8  [4]uint8
	rgbaF  [4]float32
}

// Alpha returns the color's alpha channel, defaulting to 1 (opaque) for
// alpha-less models.
func (c Color) Alpha() float64 {
	switch c.Model {
	case ModelGrayAlpha, ModelRGBA, ModelDeviceRGBA, ModelCMYKA, ModelDeviceCMYKA, ModelLabAlpha, ModelLCHAlpha:
		return c.Components[len(c.modelChannels())]
	default:
		return 1
	}
}

func (c Color) modelChannels() []float64 {
	switch c.Model {
	case ModelGray, ModelGrayAlpha:
		return c.Components[:1]
	case ModelRGB, ModelRGBA, ModelDeviceRGB, ModelDeviceRGBA:
		return c.Components[:3]
	case ModelCMYK, ModelCMYKA, ModelDeviceCMYK, ModelDeviceCMYKA:
		return c.Components[:4]
	case ModelLab, ModelLabAlpha, ModelLCH, ModelLCHAlpha:
		return c.Components[:3]
	default:
		return c.Components[:0]
	}
}

// modelChannelsWithAlpha returns the color's components in wire order:
// the model's own channels, followed by alpha when the model carries one
// — the slice encodeColorEntry packs into an OpColor/OpShadowColor entry.
func (c Color) modelChannelsWithAlpha() []float64 {
	channels := c.modelChannels()
	switch c.Model {
	case ModelGrayAlpha, ModelRGBA, ModelDeviceRGBA, ModelCMYKA, ModelDeviceCMYKA, ModelLabAlpha, ModelLCHAlpha:
		out := make([]float64, len(channels)+1)
		copy(out, channels)
		out[len(channels)] = c.Components[len(channels)]
		return out
	default:
		out := make([]float64, len(channels))
		copy(out, channels)
		return out
	}
}

// Gray builds an opaque gray color.
func Gray(g float64) Color { return Color{Model: ModelGray, Components: [5]float64{g}} }

// GrayAlpha builds a gray color with alpha.
func GrayAlpha(g, a float64) Color {
	return Color{Model: ModelGrayAlpha, Components: [5]float64{g, a}}
}

// RGBA builds an sRGB color with alpha, matching the `rgba` command.
func RGBA(r, g, b, a float64) Color {
	return Color{Model: ModelRGBA, Components: [5]float64{r, g, b, a}}
}

// CMYKA builds a CMYK color with alpha, matching the `cmyka` command.
func CMYKA(c, m, y, k, a float64) Color {
	return Color{Model: ModelCMYKA, Components: [5]float64{c, m, y, k, a}}
}

// ToRGBA8 returns the color as premultiplied-free 8-bit RGBA, computing
// and caching the conversion on first use (§4.11: "requesting RGBA8 from
// an LCH color populates and flags the RGBA8 cache lane"). When no
// external CMS is bound, CMYK->RGB and LCH/Lab->RGB use the naive
// analytic formulas the spec sanctions as the no-CMS fallback.
func (c *Color) ToRGBA8() [4]uint8 {
	if c.valid&validRGBA8 != 0 {
		return c.rgba8
	}
	r, g, b, a := c.toLinearRGBA()
	out := [4]uint8{clamp8(r), clamp8(g), clamp8(b), clamp8(a)}
	c.rgba8 = out
	c.valid |= validRGBA8
	return out
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// toLinearRGBA computes (r,g,b,a) in [0,1] regardless of the stored
// model, using the naive analytic conversions §4.11 specifies for the
// no-external-CMS case.
func (c *Color) toLinearRGBA() (r, g, b, a float64) {
	a = c.Alpha()
	switch c.Model {
	case ModelGray, ModelGrayAlpha:
		g0 := c.Components[0]
		return g0, g0, g0, a
	case ModelRGB, ModelRGBA, ModelDeviceRGB, ModelDeviceRGBA:
		return c.Components[0], c.Components[1], c.Components[2], a
	case ModelCMYK, ModelCMYKA, ModelDeviceCMYK, ModelDeviceCMYKA:
		cc, m, y, k := c.Components[0], c.Components[1], c.Components[2], c.Components[3]
		return (1 - cc) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k), a
	case ModelLab, ModelLabAlpha:
		rr, gg, bb, _ := labToRGB(c.Components[0], c.Components[1], c.Components[2])
		return rr, gg, bb, a
	case ModelLCH, ModelLCHAlpha:
		l, ch, h := c.Components[0], c.Components[1], c.Components[2]
		aStar, bStar := polarToLab(ch, h)
		rr, gg, bb, _ := labToRGB(l, aStar, bStar)
		return rr, gg, bb, a
	default:
		return 0, 0, 0, a
	}
}

func polarToLab(chroma, hueDeg float64) (a, b float64) {
	rad := hueDeg * math.Pi / 180
	return chroma * math.Cos(rad), chroma * math.Sin(rad)
}

// labToRGB is the classic CIE L*a*b* (D65) -> sRGB approximation used
// when no external CMS is bound (§4.11). The channels it returns are
// gamma-encoded, not linear, and the returned alpha is always 1.
func labToRGB(l, a, b float64) (r, g, bl, alpha float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	xr := labInv(fx) * 0.95047
	yr := labInv(fy) * 1.0
	zr := labInv(fz) * 1.08883

	r = xr*3.2406 + yr*-1.5372 + zr*-0.4986
	g = xr*-0.9689 + yr*1.8758 + zr*0.0415
	bl = xr*0.0557 + yr*-0.2040 + zr*1.0570

	r = gammaEncode(r)
	g = gammaEncode(g)
	bl = gammaEncode(bl)
	return r, g, bl, 1
}

func labInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func gammaEncode(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// colorModelComponentCount returns how many float64 values (channels, plus
// alpha as the last one when the model carries it) a color in model packs
// into an OpColor/OpShadowColor entry — the count ContsForEntry needs to
// size that entry's continuations.
func colorModelComponentCount(m ColorModel) int {
	switch m {
	case ModelGray:
		return 1
	case ModelGrayAlpha:
		return 2
	case ModelRGB, ModelDeviceRGB, ModelLab, ModelLCH:
		return 3
	case ModelRGBA, ModelDeviceRGBA, ModelCMYK, ModelDeviceCMYK, ModelLabAlpha, ModelLCHAlpha:
		return 4
	case ModelCMYKA, ModelDeviceCMYKA:
		return 5
	default:
		return 0
	}
}

// encodeColorEntry packs model (with StrokeSourceBit folded in when
// stroke is set) into slot 0 of op's leading entry as a float, and spreads
// components starting at slot 1, two floats per continuation after that —
// the layout ContsForEntry's OpColor/OpShadowColor case reads back via
// colorModelComponentCount.
func encodeColorEntry(op Opcode, model ColorModel, stroke bool, components []float64) (Entry, []Entry) {
	raw := int(model)
	if stroke {
		raw |= StrokeSourceBit
	}
	e := Entry{Op: op}
	e.SetF32(0, float32(raw))
	if len(components) == 0 {
		return e, nil
	}
	e.SetF32(1, float32(components[0]))
	return e, packRestFloats(components[1:])
}

// decodeColorEntry is encodeColorEntry's inverse.
func decodeColorEntry(e Entry, cont []Entry) (model ColorModel, stroke bool, components []float64) {
	raw := int(e.F32(0) + 0.5)
	stroke = raw&StrokeSourceBit != 0
	model = ColorModel(raw &^ StrokeSourceBit)
	n := colorModelComponentCount(model)
	if n == 0 {
		return model, stroke, nil
	}
	components = make([]float64, 0, n)
	components = append(components, float64(e.F32(1)))
	idx := 1
	for _, c := range cont {
		for slot := 0; slot < 2 && idx < n; slot++ {
			components = append(components, float64(c.F32(slot)))
			idx++
		}
	}
	return model, stroke, components
}

// colorFromComponents reconstructs a Color from a decoded model and its
// component slice (channels in the model's own order, alpha last).
func colorFromComponents(model ColorModel, components []float64) Color {
	var c Color
	c.Model = model
	copy(c.Components[:], components)
	return c
}

// ColorSpace binds a numbered slot (§4.11) to either an ICC profile blob
// or a well-known name. When Profile is non-nil, device<->user conversion
// for that slot should route through it; otherwise the naive analytic
// formulas in toLinearRGBA are used directly.
type ColorSpace struct {
	Name    string
	Profile *icc.Profile
}

// Color-space slot numbers (§4.11: "device-RGB, user-RGB, device-CMYK,
// user-CMYK, texture").
const (
	SlotDeviceRGB = iota
	SlotUserRGB
	SlotDeviceCMYK
	SlotUserCMYK
	SlotTexture
	numColorSpaceSlots
)
