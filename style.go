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
	"seehuhn.de/go/ctx/internal/geom"
	"seehuhn.de/go/pdf/graphics"
)

// This file rounds out Context's public surface (§6) beyond the path and
// solid-color operations in context.go: stroke style, transform, the
// remaining paint sources (gradients, textures), and text. Each method
// follows the same shape as context.go's path ops — update the live
// state the rasterizer reads, then append the matching opcode so the
// draw list stays a faithful record of what was called.

// LineCap sets the stroke end-cap style.
func (c *Context) LineCap(cap graphics.LineCapStyle) {
	c.gs().Cap = cap
	c.appendFloats(OpLineCap, float64(cap))
}

// LineJoin sets the stroke join style.
func (c *Context) LineJoin(join graphics.LineJoinStyle) {
	c.gs().Join = join
	c.appendFloats(OpLineJoin, float64(join))
}

// MiterLimit sets the miter-join clamp ratio.
func (c *Context) MiterLimit(limit float64) {
	c.gs().MiterLimit = limit
	c.appendFloats(OpMiterLimit, limit)
}

// LineDash sets the dash pattern; an empty pattern means solid.
func (c *Context) LineDash(dashes []float64) {
	c.gs().Dash = append([]float64(nil), dashes...)
	e, conts := encodeCountedFloats(OpLineDash, dashes)
	c.List.Append(e, conts...)
}

// LineDashOffset sets the phase the dash pattern starts at.
func (c *Context) LineDashOffset(offset float64) {
	c.gs().DashPhase = offset
	c.appendFloats(OpLineDashOffset, offset)
}

// GlobalAlpha sets the state's overall alpha multiplier, in [0,1].
func (c *Context) GlobalAlpha(a float64) {
	c.gs().SetGlobalAlpha(a)
	c.appendFloats(OpGlobalAlpha, a)
}

// CompositingMode sets the Porter-Duff operator pair used before blending.
func (c *Context) CompositingMode(mode CompositingMode) {
	c.gs().CompositingMode = mode
	c.appendFloats(OpCompositingMode, float64(mode))
}

// BlendMode sets the per-channel blend function applied before compositing.
func (c *Context) BlendMode(mode BlendMode) {
	c.gs().BlendMode = mode
	c.appendFloats(OpBlendMode, float64(mode))
}

// FillRule sets the winding rule fill/clip uses.
func (c *Context) FillRule(rule FillRule) {
	c.gs().FillRule = rule
	c.appendFloats(OpFillRule, float64(rule))
}

// ShadowColor sets the drop-shadow color.
func (c *Context) ShadowColor(col Color) {
	c.gs().ShadowColor = col
	c.setColor(OpShadowColor, false, col)
}

// ShadowBlur sets the drop-shadow blur radius.
func (c *Context) ShadowBlur(blur float64) {
	c.gs().ShadowBlur = blur
	c.appendFloats(OpShadowBlur, blur)
}

// ShadowOffset sets the drop-shadow offset, in user space.
func (c *Context) ShadowOffset(dx, dy float64) {
	c.gs().ShadowOffset = geom.Vec2{X: dx, Y: dy}
	c.appendFloats(OpShadowOffset, dx, dy)
}

// ImageSmoothing toggles bilinear/box texture sampling versus nearest.
func (c *Context) ImageSmoothing(on bool) {
	c.gs().ImageSmoothing = on
	v := 0.0
	if on {
		v = 1
	}
	c.appendFloats(OpImageSmoothing, v)
}

// ColorSpace binds cs to slot (one of the SlotXxx constants), spilling
// cs.Name as a trailing byte blob the way OpTexture/OpDefineTexture spill
// an eid, since an *icc.Profile itself has no compact wire form here.
func (c *Context) ColorSpace(slot int, cs *ColorSpace) {
	if slot < 0 || slot >= numColorSpaceSlots {
		return
	}
	c.gs().ColorSpace[slot] = cs
	name := ""
	if cs != nil {
		name = cs.Name
	}
	e, conts := encodeStringBlock(OpColorSpace, func(e *Entry) { e.SetF32(0, float32(slot)) }, name)
	c.List.Append(e, conts...)
}

// Identity resets the CTM to the identity transform.
func (c *Context) Identity() {
	c.gs().CTM = geom.Identity
	c.List.Append(Entry{Op: OpIdentity})
}

// Translate post-multiplies the CTM by a translation.
func (c *Context) Translate(dx, dy float64) {
	g := c.gs()
	g.CTM = g.CTM.Mul(geom.Translate(dx, dy))
	c.appendFloats(OpTranslate, dx, dy)
}

// Scale post-multiplies the CTM by a scale.
func (c *Context) Scale(sx, sy float64) {
	g := c.gs()
	g.CTM = g.CTM.Mul(geom.Scale(sx, sy))
	c.appendFloats(OpScale, sx, sy)
}

// Rotate post-multiplies the CTM by a rotation, angle in radians.
func (c *Context) Rotate(angle float64) {
	g := c.gs()
	g.CTM = g.CTM.Mul(geom.Rotate(angle))
	c.appendFloats(OpRotate, angle)
}

// ApplyTransform post-multiplies the CTM by m (§4.4 apply_transform).
func (c *Context) ApplyTransform(m geom.Matrix) {
	g := c.gs()
	g.CTM = g.CTM.Mul(m)
	c.appendFloats(OpApplyTransform, m[0], m[1], m[2], m[3], m[4], m[5])
}

// SetTransform replaces the CTM outright with m.
func (c *Context) SetTransform(m geom.Matrix) {
	c.gs().CTM = m
	c.appendFloats(OpSetTransform, m[0], m[1], m[2], m[3], m[4], m[5])
}

// strokeFlag is the trailing stroke-or-fill float LinearGradient,
// RadialGradient and GradientAddStop pack into their entries, the same
// convention OpColor uses for StrokeSourceBit.
func strokeFlag(stroke bool) float64 {
	if stroke {
		return 1
	}
	return 0
}

func (c *Context) source(stroke bool) *Source {
	if stroke {
		return &c.gs().Stroke
	}
	return &c.gs().Fill
}

// LinearGradient sets the fill (or stroke, when stroke is set) source to
// a linear gradient between (x0,y0) and (x1,y1). Stops are added
// separately via GradientAddStop.
func (c *Context) LinearGradient(x0, y0, x1, y1 float64, stroke bool) {
	src := c.source(stroke)
	*src = Source{Kind: SourceLinearGradient}
	src.SetLinearGradient(x0, y0, x1, y1)
	c.appendFloats(OpLinearGradient, x0, y0, x1, y1, strokeFlag(stroke))
}

// RadialGradient sets the fill (or stroke) source to a two-circle radial
// gradient.
func (c *Context) RadialGradient(x0, y0, r0, x1, y1, r1 float64, stroke bool) {
	src := c.source(stroke)
	*src = Source{Kind: SourceRadialGradient}
	src.SetRadialGradient(x0, y0, r0, x1, y1, r1)
	c.appendFloats(OpRadialGradient, x0, y0, r0, x1, y1, r1, strokeFlag(stroke))
}

// GradientAddStop appends a stop to the active gradient source; the
// color is always serialized as straight RGBA on the wire regardless of
// the Color's own model, a deliberate simplification (see DESIGN.md).
func (c *Context) GradientAddStop(offset float64, col Color, stroke bool) {
	src := c.source(stroke)
	src.AddStop(offset, col)
	rgba := col.ToRGBA8()
	r := float64(rgba[0]) / 255
	g := float64(rgba[1]) / 255
	b := float64(rgba[2]) / 255
	a := float64(rgba[3]) / 255
	c.appendFloats(OpGradientAddStop, offset, strokeFlag(stroke), r, g, b, a)
}

// DefineTexture registers a buffer's identity with the context's texture
// EID database, so later Texture calls referencing the same eid within
// its eviction window are accepted (§4.9/§3 texture EID database).
func (c *Context) DefineTexture(eid string, width, height int) {
	c.Textures.Define(eid, width, height, c.frame)
	e, conts := encodeStringBlock(OpDefineTexture, nil, eid)
	c.List.Append(e, conts...)
}

// Texture sets the fill (or stroke) source to sample buf, anchored at
// origin in user space with inverse mapping device->texture precomputed
// from the CTM (§4.9). buf's EID must already be valid in the texture
// database (see DefineTexture); Texture is a no-op otherwise.
func (c *Context) Texture(eid string, buf *Buffer, originX, originY float64, stroke bool) {
	if !c.Textures.Valid(eid, c.frame) {
		return
	}
	inv := c.gs().CTM.Invert()
	src := c.source(stroke)
	*src = Source{
		Kind:           SourceTexture,
		Texture:        buf,
		TextureOrigin:  geom.Vec2{X: originX, Y: originY},
		TextureInverse: inv,
	}
	e, conts := encodeStringBlock(OpTexture, func(e *Entry) { e.SetF32(0, float32(strokeFlag(stroke))) }, eid)
	c.List.Append(e, conts...)
}

// Font selects the active font by its index into the process-wide font
// table (§4's "font table ... process-wide, append-only array").
func (c *Context) Font(index int) {
	c.gs().FontIndex = index
	c.appendFloats(OpFont, float64(index))
}

// FontSize sets the active font size, in user-space units.
func (c *Context) FontSize(size float64) {
	c.gs().FontSize = size
	c.appendFloats(OpFontSize, size)
}

// Text fills s set with the current font at the current point.
func (c *Context) Text(s string) {
	data, conts := encodeStringBlock(OpData, nil, s)
	c.List.Append(data, conts...)
	c.List.Append(Entry{Op: OpText})
}

// StrokeText strokes s's outline instead of filling it.
func (c *Context) StrokeText(s string) {
	data, conts := encodeStringBlock(OpData, nil, s)
	c.List.Append(data, conts...)
	c.List.Append(Entry{Op: OpStrokeText})
}

// Glyph draws a single glyph by ID at (x,y), bypassing word/kerning
// shaping (§13's non-goal: "no font shaping beyond per-glyph kerning
// pairs" still allows direct glyph placement).
func (c *Context) Glyph(gid int, x, y float64) {
	c.appendFloats(OpGlyph, float64(gid), x, y)
}

// TextAlign selects horizontal text anchoring.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

// TextBaseline selects the vertical anchor line glyphs are placed on.
type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

// TextDirection selects the text layout direction.
type TextDirection int

const (
	TextDirectionLTR TextDirection = iota
	TextDirectionRTL
)

// TextAlign sets horizontal text anchoring, stored in the keyed property
// store since it has no dedicated GState field (§3: "text-align ... used
// for properties without a dedicated field").
func (c *Context) TextAlign(align TextAlign) {
	c.gs().KeyDBSet("text-align", float64(align))
	c.appendFloats(OpTextAlign, float64(align))
}

// TextBaseline sets the vertical text anchor line.
func (c *Context) TextBaseline(baseline TextBaseline) {
	c.gs().KeyDBSet("text-baseline", float64(baseline))
	c.appendFloats(OpTextBaseline, float64(baseline))
}

// TextDirection sets the text layout direction.
func (c *Context) TextDirection(dir TextDirection) {
	c.gs().KeyDBSet("text-direction", float64(dir))
	c.appendFloats(OpTextDirection, float64(dir))
}
