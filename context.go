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
	"crypto/sha1"
	"encoding/binary"
	"math"

	"seehuhn.de/go/ctx/internal/geom"
)

// group is one offscreen layer pushed by start_group and popped by
// end_group (§3/§4.6's supplemented "real offscreen-composited layers"
// behavior): its own Buffer, composited back into the parent on pop using
// the state's CompositingMode/BlendMode/GlobalAlpha at the time
// start_group was called.
type group struct {
	buf          *Buffer
	mode         CompositingMode
	blend        BlendMode
	alpha        float64
}

// Context is the public canvas-shaped API surface (§6): it owns the draw
// list, the graphics-state stack, path construction, and the rasterizer/
// compositor pipeline that turns recorded commands into pixels in Target.
type Context struct {
	List   *DrawList
	States *GStateStack
	Path   *PathBuilder
	Raster *Rasterizer

	Target *Buffer

	Textures   *TextureEIDDB
	ShapeCache *ShapeCache
	Hasher     *TileHasher

	groups []group
	frame  int
}

// NewContext returns a context that paints into target.
func NewContext(target *Buffer) *Context {
	clip := geom.Rect{LLx: 0, LLy: 0, URx: float64(target.Width), URy: float64(target.Height)}
	return &Context{
		List:       NewDrawList(),
		States:     NewGStateStack(),
		Path:       NewPathBuilder(),
		Raster:     NewRasterizer(clip),
		Target:     target,
		Textures:   NewTextureEIDDB(),
		ShapeCache: NewShapeCache(),
		Hasher:     NewTileHasher(float64(target.Width), float64(target.Height), HashRows, HashCols),
	}
}

// gs is shorthand for the active graphics state.
func (c *Context) gs() *GState { return c.States.Current() }

// appendFloats appends an entry of op carrying vals as its payload (plus
// continuations as needed) to the draw list — the common path every
// path-construction and fixed-arity style opcode below uses to record
// what PathBuilder/GState were just told, so the list this Context builds
// actually replays what it drew (§6, §8 round-trip).
func (c *Context) appendFloats(op Opcode, vals ...float64) {
	e := Entry{Op: op}
	conts := packFloatsIntoEntry(&e, vals)
	c.List.Append(e, conts...)
}

// MoveTo, LineTo, CurveTo, QuadTo, ClosePath, Rectangle, RoundRectangle,
// Arc and ArcTo forward to the path builder so the rasterizer sees the
// geometry immediately, and append the matching opcode to the draw list
// so the same geometry can be formatted, parsed back, and replayed (§6,
// §8's "parse(format_long(L)) == L" round-trip property).
func (c *Context) MoveTo(x, y float64) {
	c.Path.MoveTo(x, y)
	c.appendFloats(OpMoveTo, x, y)
}
func (c *Context) RelMoveTo(dx, dy float64) {
	c.Path.RelMoveTo(dx, dy)
	c.appendFloats(OpRelMoveTo, dx, dy)
}
func (c *Context) LineTo(x, y float64) {
	c.Path.LineTo(x, y)
	c.appendFloats(OpLineTo, x, y)
}
func (c *Context) RelLineTo(dx, dy float64) {
	c.Path.RelLineTo(dx, dy)
	c.appendFloats(OpRelLineTo, dx, dy)
}
func (c *Context) QuadTo(cx, cy, x, y float64) {
	c.Path.QuadTo(cx, cy, x, y)
	c.appendFloats(OpQuadTo, cx, cy, x, y)
}
func (c *Context) RelQuadTo(cx, cy, x, y float64) {
	c.Path.RelQuadTo(cx, cy, x, y)
	c.appendFloats(OpRelQuadTo, cx, cy, x, y)
}
func (c *Context) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.Path.CurveTo(c1x, c1y, c2x, c2y, x, y)
	c.appendFloats(OpCurveTo, c1x, c1y, c2x, c2y, x, y)
}
func (c *Context) RelCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.Path.RelCurveTo(c1x, c1y, c2x, c2y, x, y)
	c.appendFloats(OpRelCurveTo, c1x, c1y, c2x, c2y, x, y)
}
func (c *Context) ClosePath() {
	c.Path.ClosePath()
	c.List.Append(Entry{Op: OpClosePath})
}
func (c *Context) Rectangle(x, y, w, h float64) {
	c.Path.Rectangle(x, y, w, h)
	c.appendFloats(OpRectangle, x, y, w, h)
}
func (c *Context) RoundRectangle(x, y, w, h, r float64) {
	c.Path.RoundRectangle(x, y, w, h, r)
	c.appendFloats(OpRoundRectangle, x, y, w, h, r)
}

// Arc appends a circular arc; direction is recorded as +1 (endAngle >=
// startAngle, counter-clockwise) or -1, matching entry.go's documented
// (x,y,radius,start,end,direction) OpArc payload.
func (c *Context) Arc(cx, cy, r, a0, a1 float64) {
	c.Path.Arc(cx, cy, r, a0, a1)
	dir := 1.0
	if a1 < a0 {
		dir = -1
	}
	c.appendFloats(OpArc, cx, cy, r, a0, a1, dir)
}
func (c *Context) ArcTo(x0, y0, x1, y1, r float64) {
	c.Path.ArcTo(x0, y0, x1, y1, r)
	c.appendFloats(OpArcTo, x0, y0, x1, y1, r)
}
func (c *Context) BeginPath() {
	c.Path.BeginPath()
	c.List.Append(Entry{Op: OpBeginPath})
}

// setColor is the draw-list half of SetFillColor/SetStrokeColor and
// ShadowColor: it appends an OpColor (or OpShadowColor) entry carrying the
// model and components, so the color a client set is recoverable from the
// draw list alone. The callers update the graphics state themselves.
func (c *Context) setColor(op Opcode, stroke bool, col Color) {
	e, conts := encodeColorEntry(op, col.Model, stroke, col.modelChannelsWithAlpha())
	c.List.Append(e, conts...)
}

// SetFillColor sets the fill source to a solid color.
func (c *Context) SetFillColor(col Color) {
	c.gs().Fill = Source{Kind: SourceSolidColor, Color: col}
	c.setColor(OpColor, false, col)
}

// SetStrokeColor sets the stroke source to a solid color.
func (c *Context) SetStrokeColor(col Color) {
	c.gs().Stroke = Source{Kind: SourceSolidColor, Color: col}
	c.setColor(OpColor, true, col)
}

// SetLineWidth sets the current stroke width.
func (c *Context) SetLineWidth(w float64) {
	c.gs().LineWidth = w
	c.appendFloats(OpLineWidth, w)
}

// Save pushes the graphics state.
func (c *Context) Save() { c.States.Save() }

// Restore pops the graphics state, replaying surviving clip entries if
// the popped frame had appended any (§4.6).
func (c *Context) Restore() {
	c.States.Restore(func(surviving []*GState) {
		if len(surviving) == 0 {
			return
		}
		clip := geom.Rect{LLx: 0, LLy: 0, URx: float64(c.Target.Width), URy: float64(c.Target.Height)}
		for _, g := range surviving {
			if g.Clipped {
				clip = clip.Intersect(g.Clip)
			}
		}
		c.Raster.Clip = clip
	})
}

// applyClip intersects the current clip rect with the path's control-
// polygon bounding box (a conservative rectangular clip, matching how
// Rasterizer.Clip itself is rectangular) and records the change for
// replay on restore.
func (c *Context) applyClip() {
	g := c.gs()
	if b, ok := c.Path.Bounds(); ok {
		if g.Clipped {
			g.Clip = g.Clip.Intersect(b)
		} else {
			g.Clip = b
			g.Clipped = true
		}
		c.Raster.Clip = g.Clip
	}
	idx := c.List.Len()
	g.RecordClip(idx)
}

// Clip intersects the clip region with the current path without
// painting it (§6).
func (c *Context) Clip() {
	c.applyClip()
	c.List.Append(Entry{Op: OpClip})
}

// shapeHashFromEdges folds a path's WireEdge fixed-point encoding (§3),
// plus rule, through SHA-1 into the 64-bit identity ShapeCache indexes
// by — two paths built from slightly different floats but the same
// sub-pixel shape collide to one entry.
func (c *Context) shapeHashFromEdges(edges []WireEdge, rule FillRule) uint64 {
	buf := make([]byte, 0, len(edges)*10+1)
	for _, e := range edges {
		// classifySlopeBucket's AA3/5/15 classification (§4.6) is folded
		// into the hash preimage alongside Code: two edges that are
		// otherwise identical but fall into different adaptive-AA
		// buckets must not collide to the same cached mask.
		var tmp [10]byte
		tmp[0] = byte(e.Code)
		tmp[1] = byte(classifySlopeBucket(e))
		binary.LittleEndian.PutUint16(tmp[2:4], uint16(e.X0))
		binary.LittleEndian.PutUint16(tmp[4:6], uint16(e.Y0))
		binary.LittleEndian.PutUint16(tmp[6:8], uint16(e.X1))
		binary.LittleEndian.PutUint16(tmp[8:10], uint16(e.Y1))
		buf = append(buf, tmp[:]...)
	}
	buf = append(buf, byte(rule))
	sum := sha1.Sum(buf)
	return binary.LittleEndian.Uint64(sum[:8])
}

// deviceBounds returns the current path's control-polygon bbox (the same
// conservative box applyClip uses) mapped through the CTM into device
// pixels, for sizing a ShapeCache mask.
func (c *Context) deviceBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	b, has := c.Path.Bounds()
	if !has {
		return 0, 0, 0, 0, false
	}
	ctm := c.gs().CTM
	corners := [4]geom.Vec2{
		{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
		{X: b.LLx, Y: b.URy}, {X: b.URx, Y: b.URy},
	}
	dp := ctm.Apply(corners[0])
	dxMin, dxMax, dyMin, dyMax := dp.X, dp.X, dp.Y, dp.Y
	for _, p := range corners[1:] {
		dp = ctm.Apply(p)
		dxMin, dxMax = math.Min(dxMin, dp.X), math.Max(dxMax, dp.X)
		dyMin, dyMax = math.Min(dyMin, dp.Y), math.Max(dyMax, dp.Y)
	}
	return int(math.Floor(dxMin)), int(math.Ceil(dxMax)),
		int(math.Floor(dyMin)), int(math.Ceil(dyMax)), true
}

// replayMask composites a cached coverage mask directly, bypassing the
// rasterizer entirely on a ShapeCache hit.
func (c *Context) replayMask(mask []byte, xMin, yMin, width, height int) {
	for row := 0; row < height; row++ {
		rowBytes := mask[row*width : (row+1)*width]
		cov := make([]float32, width)
		for i, b := range rowBytes {
			cov[i] = float32(b) / 255
		}
		c.emitCoverage(yMin+row, xMin, cov)
	}
}

// Fill paints the current path with the fill source using rule, then
// (unless preserve is set) clears the path (§6). Small paths (§4.6) are
// keyed by shapeHashFromEdges into Context.ShapeCache: a hit replays the stored
// coverage mask instead of re-rasterizing the geometry.
func (c *Context) Fill(preserve bool) {
	g := c.gs()
	c.Raster.CTM = g.CTM

	xMin, xMax, yMin, yMax, boundsOK := c.deviceBounds()
	width, height := xMax-xMin, yMax-yMin
	cacheable := c.ShapeCache.Enabled() && boundsOK && width > 0 && height > 0 && width*height <= maxShapeCacheMaskBytes

	var hash uint64
	var edges []WireEdge
	if cacheable {
		edges = c.Path.WireEdges(g.CTM)
		if wxMin, wxMax, wyMin, wyMax, wok := WireEdgesBounds(edges); wok {
			// The quantized wire geometry must agree with the CTM-space
			// bbox within a pixel of slack; a bigger gap means the
			// fixed-point round-trip distorted the shape enough that a
			// cached mask keyed on it would paint the wrong footprint.
			if wxMin < float64(xMin)-1 || wxMax > float64(xMax)+1 ||
				wyMin < float64(yMin)-1 || wyMax > float64(yMax)+1 {
				cacheable = false
			}
		}
	}
	if cacheable {
		hash = c.shapeHashFromEdges(edges, g.FillRule)
		if mask, hit := c.ShapeCache.Lookup(hash, width, height); hit {
			c.replayMask(mask, xMin, yMin, width, height)
			c.List.Append(Entry{Op: OpFill})
			if !preserve {
				c.Path.BeginPath()
			}
			return
		}
	}

	emit := c.emitCoverage
	var mask []byte
	if cacheable {
		mask = make([]byte, width*height)
		emit = func(y, spanXMin int, cov []float32) {
			c.emitCoverage(y, spanXMin, cov)
			row := y - yMin
			if row < 0 || row >= height {
				return
			}
			for i, cv := range cov {
				x := spanXMin + i - xMin
				if x < 0 || x >= width {
					continue
				}
				mask[row*width+x] = coverageByteFromFloat(cv)
			}
		}
	}

	switch g.FillRule {
	case FillRuleEvenOdd:
		c.Raster.FillEvenOdd(&c.Path.Data, emit)
	default:
		c.Raster.FillNonZero(&c.Path.Data, emit)
	}
	if cacheable {
		c.ShapeCache.Store(hash, width, height, mask)
	}
	c.List.Append(Entry{Op: OpFill})
	if !preserve {
		c.Path.BeginPath()
	}
}

// Stroke paints the current path's outline with the stroke source, then
// (unless preserve is set) clears the path (§6).
func (c *Context) Stroke(preserve bool) {
	g := c.gs()
	c.Raster.CTM = g.CTM
	c.Raster.Width = g.LineWidth
	c.Raster.Cap = g.Cap
	c.Raster.Join = g.Join
	c.Raster.MiterLimit = g.MiterLimit
	c.Raster.Dash = g.Dash
	c.Raster.DashPhase = g.DashPhase
	c.Raster.Stroke(&c.Path.Data, func(y, xMin int, cov []float32) {
		c.emitCoverageFrom(&g.Stroke, y, xMin, cov)
	})
	c.List.Append(Entry{Op: OpStroke})
	if !preserve {
		c.Path.BeginPath()
	}
}

// emitCoverage is the rasterizer's per-span callback: it composites one
// scanline span of analytic coverage into the active target (the current
// group's buffer, if any, else c.Target) using the active fill source.
func (c *Context) emitCoverage(y, xMin int, cov []float32) {
	c.emitCoverageFrom(&c.gs().Fill, y, xMin, cov)
}

// emitCoverageFrom is emitCoverage with an explicit paint source; Stroke
// uses it to paint with the stroke source.
func (c *Context) emitCoverageFrom(src *Source, y, xMin int, cov []float32) {
	g := c.gs()
	target := c.Target
	if len(c.groups) > 0 {
		target = c.groups[len(c.groups)-1].buf
	}
	if target == nil || target.Format == nil || target.Format.ApplyCoverage == nil {
		return
	}
	for i, cv := range cov {
		x := xMin + i
		if x < 0 || x >= target.Width || y < 0 || y >= target.Height {
			continue
		}
		rgba := c.sampleSource(src, float64(x)+0.5, float64(y)+0.5)
		off := y*target.Stride + x*target.Format.EffectiveBPP
		if off+target.Format.EffectiveBPP > len(target.Data) {
			continue
		}
		pixel := target.Data[off : off+target.Format.EffectiveBPP]
		srcVec := rgba8ToVec4(rgba)
		target.Format.ApplyCoverage(pixel, srcVec, cv*float32(g.GlobalAlpha))
	}
}

func rgba8ToVec4(c [4]uint8) (v [4]float32) {
	for i := range v {
		v[i] = float32(c[i]) / 255
	}
	return v
}

// sampleSource returns the straight-alpha RGBA8 color src contributes at
// device point (x,y).
func (c *Context) sampleSource(src *Source, x, y float64) [4]uint8 {
	switch src.Kind {
	case SourceLinearGradient:
		return src.SampleLinear(x, y)
	case SourceRadialGradient:
		return src.SampleRadial(x, y)
	case SourceTexture:
		return src.SampleTexture(x, y, c.gs().ImageSmoothing)
	case SourceInheritFill:
		return c.sampleSource(&c.gs().Fill, x, y)
	default:
		return src.Color.ToRGBA8()
	}
}

// StartGroup pushes a fresh offscreen layer the size of Target, so
// subsequent drawing composites into it instead of Target directly
// (§4.6 supplemented feature).
func (c *Context) StartGroup() {
	g := c.gs()
	buf := &Buffer{
		Width: c.Target.Width, Height: c.Target.Height,
		Stride: c.Target.Width * 4,
		Format: LookupFormat(FormatRGBA8),
		Data:   make([]byte, c.Target.Width*c.Target.Height*4),
	}
	c.groups = append(c.groups, group{buf: buf, mode: g.CompositingMode, blend: g.BlendMode, alpha: g.GlobalAlpha})
	c.List.Append(Entry{Op: OpStartGroup})
}

// EndGroup pops the top offscreen layer and composites it onto whatever
// is beneath (the parent group, or Target) using the mode/blend/alpha
// recorded when the group was started.
func (c *Context) EndGroup() {
	if len(c.groups) == 0 {
		return
	}
	grp := c.groups[len(c.groups)-1]
	c.groups = c.groups[:len(c.groups)-1]
	dst := c.Target
	if len(c.groups) > 0 {
		dst = c.groups[len(c.groups)-1].buf
	}
	compositeBuffer(dst, grp.buf, grp.mode, grp.blend, grp.alpha)
	c.List.Append(Entry{Op: OpEndGroup})
}

func compositeBuffer(dst, src *Buffer, mode CompositingMode, blend BlendMode, alpha float64) {
	for y := 0; y < src.Height && y < dst.Height; y++ {
		for x := 0; x < src.Width && x < dst.Width; x++ {
			so := y*src.Stride + x*4
			do := y*dst.Stride + x*4
			if so+4 > len(src.Data) || do+4 > len(dst.Data) {
				continue
			}
			s := [4]uint8{src.Data[so], src.Data[so+1], src.Data[so+2], src.Data[so+3]}
			d := [4]uint8{dst.Data[do], dst.Data[do+1], dst.Data[do+2], dst.Data[do+3]}
			out := CompositePixel(mode, blend, s, 1, alpha, d)
			dst.Data[do], dst.Data[do+1], dst.Data[do+2], dst.Data[do+3] = out[0], out[1], out[2], out[3]
		}
	}
}

// Reset clears the draw list, resets the graphics-state stack to a
// single default frame, and re-arms the rasterizer over the full target
// (mirrors the teacher's Rasteriser.Reset, generalized to the whole
// context rather than just the scanline engine).
func (c *Context) Reset() {
	c.List.Truncate(0)
	c.States = NewGStateStack()
	c.Path.BeginPath()
	clip := geom.Rect{LLx: 0, LLy: 0, URx: float64(c.Target.Width), URy: float64(c.Target.Height)}
	c.Raster.Reset(clip)
	c.groups = nil
	c.List.Append(Entry{Op: OpReset})
}

// NextFrame advances the tile-damage hasher to a new frame and evicts
// stale texture EID entries.
func (c *Context) NextFrame() {
	c.frame++
	c.Hasher.BeginFrame()
	c.Textures.Evict(c.frame)
}
