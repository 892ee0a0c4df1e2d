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

	"seehuhn.de/go/ctx/internal/geom"
)

// PathBuilder is the canvas-level path-construction API (§4.5/§6): it
// tracks the current pen position and subpath-start point so relative
// commands and close_path work, and accumulates a bounding box as points
// are added, expressing everything down to the absolute-coordinate,
// cubic/line primitives internal/geom.Data understands.
type PathBuilder struct {
	Data geom.Data

	x, y           float64 // current point, device-independent user space
	startX, startY float64
	hasCurrent     bool

	scanMin, scanMax geom.Vec2
	haveBounds       bool
}

// NewPathBuilder returns an empty path builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

func (p *PathBuilder) addPoint(v geom.Vec2) {
	if !p.haveBounds {
		p.scanMin, p.scanMax = v, v
		p.haveBounds = true
		return
	}
	p.scanMin.X = math.Min(p.scanMin.X, v.X)
	p.scanMin.Y = math.Min(p.scanMin.Y, v.Y)
	p.scanMax.X = math.Max(p.scanMax.X, v.X)
	p.scanMax.Y = math.Max(p.scanMax.Y, v.Y)
}

// Bounds returns the control-polygon bounding box accumulated so far.
func (p *PathBuilder) Bounds() (geom.Rect, bool) {
	if !p.haveBounds {
		return geom.Rect{}, false
	}
	return geom.Rect{LLx: p.scanMin.X, LLy: p.scanMin.Y, URx: p.scanMax.X, URy: p.scanMax.Y}, true
}

// BeginPath discards any path built so far.
func (p *PathBuilder) BeginPath() {
	p.Data.Reset()
	p.hasCurrent = false
	p.haveBounds = false
}

// MoveTo starts a new subpath at (x,y).
func (p *PathBuilder) MoveTo(x, y float64) {
	p.Data.MoveTo(geom.Vec2{X: x, Y: y})
	p.x, p.y = x, y
	p.startX, p.startY = x, y
	p.hasCurrent = true
	p.addPoint(geom.Vec2{X: x, Y: y})
}

// RelMoveTo starts a new subpath at an offset from the current point.
func (p *PathBuilder) RelMoveTo(dx, dy float64) { p.MoveTo(p.x+dx, p.y+dy) }

// LineTo appends a straight segment to (x,y).
func (p *PathBuilder) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	p.Data.LineTo(geom.Vec2{X: x, Y: y})
	p.x, p.y = x, y
	p.addPoint(geom.Vec2{X: x, Y: y})
}

// RelLineTo appends a straight segment to an offset from the current point.
func (p *PathBuilder) RelLineTo(dx, dy float64) { p.LineTo(p.x+dx, p.y+dy) }

// QuadTo appends a quadratic Bézier segment.
func (p *PathBuilder) QuadTo(cx, cy, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cx, cy)
	}
	p.Data.QuadTo(geom.Vec2{X: cx, Y: cy}, geom.Vec2{X: x, Y: y})
	p.addPoint(geom.Vec2{X: cx, Y: cy})
	p.addPoint(geom.Vec2{X: x, Y: y})
	p.x, p.y = x, y
}

// RelQuadTo appends a quadratic Bézier segment with offsets from the
// current point.
func (p *PathBuilder) RelQuadTo(cx, cy, x, y float64) {
	px, py := p.x, p.y
	p.QuadTo(px+cx, py+cy, px+x, py+y)
}

// CurveTo appends a cubic Bézier segment.
func (p *PathBuilder) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(c1x, c1y)
	}
	p.Data.CubeTo(geom.Vec2{X: c1x, Y: c1y}, geom.Vec2{X: c2x, Y: c2y}, geom.Vec2{X: x, Y: y})
	p.addPoint(geom.Vec2{X: c1x, Y: c1y})
	p.addPoint(geom.Vec2{X: c2x, Y: c2y})
	p.addPoint(geom.Vec2{X: x, Y: y})
	p.x, p.y = x, y
}

// RelCurveTo appends a cubic Bézier segment with offsets from the current
// point.
func (p *PathBuilder) RelCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.CurveTo(p.x+c1x, p.y+c1y, p.x+c2x, p.y+c2y, p.x+x, p.y+y)
}

// ClosePath closes the current subpath and moves the pen back to its start.
func (p *PathBuilder) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.Data.Close()
	p.x, p.y = p.startX, p.startY
}

// Rectangle appends a closed rectangular subpath.
func (p *PathBuilder) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// RoundRectangle appends a closed rectangular subpath with circular-arc
// corners of the given radius, composed from four quarter-arcs plus four
// straight sides (§4.5). A radius that would overlap the opposite side is
// clamped to half the smaller dimension.
func (p *PathBuilder) RoundRectangle(x, y, w, h, r float64) {
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.arcQuadrant(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.arcQuadrant(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.arcQuadrant(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.arcQuadrant(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.ClosePath()
}

// arcQuadrant appends the circular arc from angle a0 to a1 as a single
// cubic Bézier (the standard 4/3*tan(theta/4) control-point
// approximation, theta = a1-a0, negative for a clockwise sweep), good
// enough for a sweep of up to 90 degrees to stay within ordinary
// flattening tolerance.
func (p *PathBuilder) arcQuadrant(cx, cy, r, a0, a1 float64) {
	k := 4.0 / 3 * math.Tan((a1-a0)/4) // 4/3*(sqrt(2)-1) for a quarter turn
	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	dx0, dy0 := -math.Sin(a0)*r*k, math.Cos(a0)*r*k
	dx1, dy1 := -math.Sin(a1)*r*k, math.Cos(a1)*r*k
	if !p.hasCurrent {
		p.MoveTo(x0, y0)
	}
	p.CurveTo(x0+dx0, y0+dy0, x1-dx1, y1-dy1, x1, y1)
}

// arcSegmentCount picks how many cubic segments approximate a sweep of
// |angle| radians at the given radius, matching the "min(120, radius*2*pi)"
// resolution rule (§4.5) applied per-segment rather than to the whole
// circle: each segment covers at most pi/2 radians, unless that radius
// cap (never below 1) is smaller, in which case small-radius arcs get
// fewer segments that each cover more than pi/2.
func arcSegmentCount(radius, angle float64) int {
	maxSegs := int(math.Min(120, radius*2*math.Pi))
	if maxSegs < 1 {
		maxSegs = 1
	}
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	if n > maxSegs {
		n = maxSegs
	}
	return n
}

// Arc appends a circular arc from startAngle to endAngle (radians, counter
// clockwise when endAngle > startAngle) centered at (cx,cy) with the
// given radius, connected to the current point with a line if a subpath
// is already open.
func (p *PathBuilder) Arc(cx, cy, r, startAngle, endAngle float64) {
	n := arcSegmentCount(r, endAngle-startAngle)
	step := (endAngle - startAngle) / float64(n)
	x0, y0 := cx+r*math.Cos(startAngle), cy+r*math.Sin(startAngle)
	if !p.hasCurrent {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	for i := 0; i < n; i++ {
		a0 := startAngle + step*float64(i)
		a1 := a0 + step
		p.arcQuadrant(cx, cy, r, a0, a1)
	}
}

// ArcTo appends a tangent-circle arc between the current point and (x1,y1)
// via the corner point (x0,y0), matching the classic two-tangent-line
// construction (§4.5). When the current point, (x0,y0) and (x1,y1) are
// (near-)collinear, no circle has two distinct tangent points, so this
// degrades to a plain LineTo as the spec's degenerate-input fallback.
func (p *PathBuilder) ArcTo(x0, y0, x1, y1, radius float64) {
	if !p.hasCurrent {
		p.MoveTo(x0, y0)
		return
	}
	px, py := p.x, p.y
	v0 := geom.Vec2{X: px - x0, Y: py - y0}
	v1 := geom.Vec2{X: x1 - x0, Y: y1 - y0}
	len0 := v0.Length()
	len1 := v1.Length()
	if len0 < 1e-12 || len1 < 1e-12 {
		p.LineTo(x0, y0)
		return
	}
	cosAngle := v0.Dot(v1) / (len0 * len1)
	cosAngle = math.Max(-1, math.Min(1, cosAngle))
	sinHalf := math.Sqrt((1 - cosAngle) / 2)
	if sinHalf < 1e-9 {
		p.LineTo(x0, y0)
		return
	}
	// tangent lengths along each incoming direction
	tanLen := radius / math.Tan(math.Acos(cosAngle)/2+1e-300)
	if math.IsInf(tanLen, 0) || math.IsNaN(tanLen) {
		p.LineTo(x0, y0)
		return
	}
	u0 := geom.Vec2{X: v0.X / len0, Y: v0.Y / len0}
	u1 := geom.Vec2{X: v1.X / len1, Y: v1.Y / len1}
	t0 := geom.Vec2{X: x0 + u0.X*tanLen, Y: y0 + u0.Y*tanLen}
	t1 := geom.Vec2{X: x0 + u1.X*tanLen, Y: y0 + u1.Y*tanLen}

	p.LineTo(t0.X, t0.Y)

	cross := u0.Cross(u1)
	// center lies along the bisector at distance radius/sinHalf from the corner
	bis := geom.Vec2{X: u0.X + u1.X, Y: u0.Y + u1.Y}
	blen := bis.Length()
	if blen < 1e-12 {
		p.LineTo(t1.X, t1.Y)
		return
	}
	bis = geom.Vec2{X: bis.X / blen, Y: bis.Y / blen}
	centerDist := radius / sinHalf
	center := geom.Vec2{X: x0 + bis.X*centerDist, Y: y0 + bis.Y*centerDist}

	a0 := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	if cross > 0 {
		for a1 > a0 {
			a1 -= 2 * math.Pi
		}
	} else {
		for a1 < a0 {
			a1 += 2 * math.Pi
		}
	}
	n := arcSegmentCount(radius, a1-a0)
	step := (a1 - a0) / float64(n)
	for i := 0; i < n; i++ {
		s0 := a0 + step*float64(i)
		s1 := s0 + step
		p.arcQuadrant(center.X, center.Y, radius, s0, s1)
	}
}

// flattenTolerance returns the device-space flatness tolerance
// 2/(sx^2+sy^2) for the given CTM scale factors (§4.5), used by adaptive
// cubic subdivision when a path must be flattened at construction time
// rather than left for the rasterizer to flatten lazily.
func flattenTolerance(sx, sy float64) float64 {
	denom := sx*sx + sy*sy
	if denom <= 0 {
		return 2
	}
	return 2 / denom
}

const maxAdaptiveSubdivDepth = 8

// FlattenCubicAdaptive recursively subdivides a cubic Bézier until both
// control points lie within tolerance of the chord p0-p3, or
// maxAdaptiveSubdivDepth is reached,
// and appends the resulting polyline's vertices (excluding p0) to out.
func FlattenCubicAdaptive(p0, c1, c2, p3 geom.Vec2, tolerance float64, out []geom.Vec2) []geom.Vec2 {
	return flattenCubicRec(p0, c1, c2, p3, tolerance, 0, out)
}

func flattenCubicRec(p0, c1, c2, p3 geom.Vec2, tol float64, depth int, out []geom.Vec2) []geom.Vec2 {
	if depth >= maxAdaptiveSubdivDepth || cubicFlatEnough(p0, c1, c2, p3, tol) {
		return append(out, p3)
	}
	// de Casteljau split at t=0.5
	p01 := mid(p0, c1)
	p12 := mid(c1, c2)
	p23 := mid(c2, p3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	p0123 := mid(p012, p123)

	out = flattenCubicRec(p0, p01, p012, p0123, tol, depth+1, out)
	out = flattenCubicRec(p0123, p123, p23, p3, tol, depth+1, out)
	return out
}

func mid(a, b geom.Vec2) geom.Vec2 {
	return geom.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func cubicFlatEnough(p0, c1, c2, p3 geom.Vec2, tol float64) bool {
	d1 := pointLineDist(c1, p0, p3)
	d2 := pointLineDist(c2, p0, p3)
	return d1 <= tol && d2 <= tol
}

func pointLineDist(p, a, b geom.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs((p.X-a.X)*dy-(p.Y-a.Y)*dx) / length
}

// quadToCubic elevates a quadratic Bézier (p0, ctrl, p1) to the
// equivalent cubic control points, so quad segments can flatten through
// the same FlattenCubicAdaptive machinery as cube segments.
func quadToCubic(p0, ctrl, p1 geom.Vec2) (c1, c2 geom.Vec2) {
	c1 = geom.Vec2{X: p0.X + 2.0/3*(ctrl.X-p0.X), Y: p0.Y + 2.0/3*(ctrl.Y-p0.Y)}
	c2 = geom.Vec2{X: p1.X + 2.0/3*(ctrl.X-p1.X), Y: p1.Y + 2.0/3*(ctrl.Y-p1.Y)}
	return c1, c2
}

// Subpaths walks p.Data and returns one flattened polyline per subpath
// (each a slice of consecutive vertices, curves replaced by their
// FlattenCubicAdaptive approximation at the given tolerance), the same
// decomposition collectPathEdges performs internally for rasterization.
func (p *PathBuilder) Subpaths(tolerance float64) [][]geom.Vec2 {
	var subpaths [][]geom.Vec2
	var cur []geom.Vec2
	var start, pen geom.Vec2
	coordIdx := 0
	for _, cmd := range p.Data.Cmds {
		switch cmd {
		case geom.CmdMoveTo:
			if len(cur) > 1 {
				subpaths = append(subpaths, cur)
			}
			pen = p.Data.Coords[coordIdx]
			start = pen
			cur = []geom.Vec2{pen}
		case geom.CmdLineTo:
			pen = p.Data.Coords[coordIdx]
			cur = append(cur, pen)
		case geom.CmdQuadTo:
			ctrl, dest := p.Data.Coords[coordIdx], p.Data.Coords[coordIdx+1]
			c1, c2 := quadToCubic(pen, ctrl, dest)
			cur = FlattenCubicAdaptive(pen, c1, c2, dest, tolerance, cur)
			pen = dest
		case geom.CmdCubeTo:
			c1, c2, dest := p.Data.Coords[coordIdx], p.Data.Coords[coordIdx+1], p.Data.Coords[coordIdx+2]
			cur = FlattenCubicAdaptive(pen, c1, c2, dest, tolerance, cur)
			pen = dest
		case geom.CmdClose:
			if pen != start {
				cur = append(cur, start)
				pen = start
			}
		}
		coordIdx += geom.NumCoords(cmd)
	}
	if len(cur) > 1 {
		subpaths = append(subpaths, cur)
	}
	return subpaths
}

// WireEdges flattens the path, maps every vertex through ctm into device
// space, and encodes each subpath's segments into the fixed-point
// WireEdge wire format (§3) — the representation a cache or codec layer
// hashes or transmits instead of the raw float path. Flattening tolerance
// is derived from ctm's scale via flattenTolerance, the same conversion
// §4.5 prescribes for flattening at construction time under a known CTM.
// This is the path-level counterpart to WireEdgesFromEntries, giving it a
// concrete, non-test caller: ShapeCache keys on the byte-identical
// encoding of this slice rather than on raw float64 coordinates, so two
// paths that are the same device-space shape (including sub-pixel phase
// introduced by ctm) collide to the same cache entry.
func (p *PathBuilder) WireEdges(ctm geom.Matrix) []WireEdge {
	sx := math.Hypot(ctm[0], ctm[1])
	sy := math.Hypot(ctm[2], ctm[3])
	userTolerance := flattenTolerance(sx, sy)
	var out []WireEdge
	for _, sub := range p.Subpaths(userTolerance) {
		segs := make([][2]float64, len(sub))
		for i, v := range sub {
			dp := ctm.Apply(v)
			segs[i] = [2]float64{dp.X, dp.Y}
		}
		out = append(out, WireEdgesFromEntries(segs)...)
	}
	return out
}
