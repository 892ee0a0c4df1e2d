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
	"testing"

	"seehuhn.de/go/ctx/internal/geom"
	"seehuhn.de/go/pdf/graphics"
)

func TestContextLineStyleSettersUpdateStateAndList(t *testing.T) {
	c := newTestContext(4, 4)
	before := c.List.Len()

	c.LineCap(graphics.LineCapRound)
	c.LineJoin(graphics.LineJoinBevel)
	c.MiterLimit(4)
	c.LineDash([]float64{1, 2, 3})
	c.LineDashOffset(0.5)

	g := c.gs()
	if g.Cap != graphics.LineCapRound {
		t.Errorf("Cap = %v, want round", g.Cap)
	}
	if g.Join != graphics.LineJoinBevel {
		t.Errorf("Join = %v, want bevel", g.Join)
	}
	if g.MiterLimit != 4 {
		t.Errorf("MiterLimit = %v, want 4", g.MiterLimit)
	}
	if len(g.Dash) != 3 || g.Dash[0] != 1 || g.Dash[2] != 3 {
		t.Errorf("Dash = %v, want [1 2 3]", g.Dash)
	}
	if g.DashPhase != 0.5 {
		t.Errorf("DashPhase = %v, want 0.5", g.DashPhase)
	}
	if c.List.Len() != before+6 {
		t.Errorf("List.Len() = %d, want %d", c.List.Len(), before+6)
	}
}

func TestContextTransformOpsComposeCTM(t *testing.T) {
	c := newTestContext(4, 4)

	c.Translate(2, 3)
	got := c.gs().CTM.Apply(geom.Vec2{X: 0, Y: 0})
	if got.X != 2 || got.Y != 3 {
		t.Fatalf("after Translate, origin maps to %v, want (2,3)", got)
	}

	c.Identity()
	if c.gs().CTM != geom.Identity {
		t.Errorf("Identity did not reset CTM: %v", c.gs().CTM)
	}

	c.Scale(2, 5)
	got = c.gs().CTM.Apply(geom.Vec2{X: 1, Y: 1})
	if got.X != 2 || got.Y != 5 {
		t.Fatalf("after Scale, (1,1) maps to %v, want (2,5)", got)
	}

	c.SetTransform(geom.Translate(10, 0))
	got = c.gs().CTM.Apply(geom.Vec2{X: 0, Y: 0})
	if got.X != 10 || got.Y != 0 {
		t.Fatalf("SetTransform did not replace CTM: origin maps to %v", got)
	}

	c.ApplyTransform(geom.Translate(0, 5))
	got = c.gs().CTM.Apply(geom.Vec2{X: 0, Y: 0})
	if got.X != 10 || got.Y != 5 {
		t.Fatalf("ApplyTransform did not post-multiply: origin maps to %v", got)
	}
}

func TestContextRotateAppliesRightAngle(t *testing.T) {
	c := newTestContext(4, 4)
	c.Rotate(math.Pi / 2)
	got := c.gs().CTM.Apply(geom.Vec2{X: 1, Y: 0})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("after Rotate(pi/2), (1,0) maps to %v, want ~(0,1)", got)
	}
}

func TestContextGradientSourcesUpdateState(t *testing.T) {
	c := newTestContext(4, 4)

	c.LinearGradient(0, 0, 10, 0, false)
	if c.gs().Fill.Kind != SourceLinearGradient {
		t.Errorf("Fill.Kind = %v, want SourceLinearGradient", c.gs().Fill.Kind)
	}
	c.GradientAddStop(0, RGBA(1, 0, 0, 1), false)
	c.GradientAddStop(1, RGBA(0, 0, 1, 1), false)
	if len(c.gs().Fill.Stops) != 2 {
		t.Errorf("Fill.Stops has %d entries, want 2", len(c.gs().Fill.Stops))
	}

	c.RadialGradient(0, 0, 1, 5, 5, 2, true)
	if c.gs().Stroke.Kind != SourceRadialGradient {
		t.Errorf("Stroke.Kind = %v, want SourceRadialGradient", c.gs().Stroke.Kind)
	}
}

func TestContextTextureRequiresDefine(t *testing.T) {
	c := newTestContext(4, 4)
	buf := &Buffer{Width: 2, Height: 2, Stride: 8, Format: LookupFormat(FormatRGBA8), Data: make([]byte, 16)}

	beforeKind := c.gs().Fill.Kind
	c.Texture("undefined-eid", buf, 0, 0, false)
	if c.gs().Fill.Kind != beforeKind {
		t.Errorf("Texture with unregistered eid mutated the fill source: Kind = %v, want %v", c.gs().Fill.Kind, beforeKind)
	}

	c.DefineTexture("tex1", 2, 2)
	c.Texture("tex1", buf, 1, 2, false)
	if c.gs().Fill.Kind != SourceTexture {
		t.Errorf("Fill.Kind = %v, want SourceTexture after a defined eid", c.gs().Fill.Kind)
	}
	if c.gs().Fill.Texture != buf {
		t.Errorf("Fill.Texture = %v, want %v", c.gs().Fill.Texture, buf)
	}
}

func TestContextColorSpaceBindsSlot(t *testing.T) {
	c := newTestContext(4, 4)
	cs := &ColorSpace{Name: "srgb-test"}
	c.ColorSpace(SlotDeviceRGB, cs)
	if c.gs().ColorSpace[SlotDeviceRGB] != cs {
		t.Errorf("ColorSpace slot not bound to %v", cs)
	}
	c.ColorSpace(-1, cs) // out of range, must be a no-op
	c.ColorSpace(numColorSpaceSlots, cs)
}

func TestContextTextPropertiesUseKeyDB(t *testing.T) {
	c := newTestContext(4, 4)
	c.TextAlign(TextAlignCenter)
	c.TextBaseline(TextBaselineMiddle)
	c.TextDirection(TextDirectionRTL)

	if v, ok := c.gs().KeyDBGet("text-align"); !ok || v != float64(TextAlignCenter) {
		t.Errorf("text-align = %v, %v, want %v, true", v, ok, TextAlignCenter)
	}
	if v, ok := c.gs().KeyDBGet("text-baseline"); !ok || v != float64(TextBaselineMiddle) {
		t.Errorf("text-baseline = %v, %v, want %v, true", v, ok, TextBaselineMiddle)
	}
	if v, ok := c.gs().KeyDBGet("text-direction"); !ok || v != float64(TextDirectionRTL) {
		t.Errorf("text-direction = %v, %v, want %v, true", v, ok, TextDirectionRTL)
	}
}

func TestContextPathMethodsAppendDrawListEntries(t *testing.T) {
	c := newTestContext(10, 10)
	before := c.List.Len()
	c.MoveTo(1, 1)
	c.LineTo(2, 2)
	c.CurveTo(3, 1, 4, 2, 5, 1)
	c.QuadTo(6, 0, 7, 1)
	c.ClosePath()
	if c.List.Len() == before {
		t.Fatalf("path methods did not append any draw list entries")
	}
	if len(c.Path.Data.Cmds) == 0 {
		t.Errorf("path methods did not record geometry on PathBuilder")
	}
}

func TestPathBuilderWireEdgesAndSubpaths(t *testing.T) {
	p := NewPathBuilder()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.ClosePath()

	subs := p.Subpaths(0.1)
	if len(subs) != 1 {
		t.Fatalf("Subpaths returned %d subpaths, want 1", len(subs))
	}
	if len(subs[0]) < 3 {
		t.Fatalf("Subpaths polyline has %d vertices, want at least 3", len(subs[0]))
	}

	edges := p.WireEdges(geom.Identity)
	if len(edges) == 0 {
		t.Fatalf("WireEdges returned no edges for a non-degenerate closed path")
	}
	xMin, xMax, yMin, yMax, ok := WireEdgesBounds(edges)
	if !ok {
		t.Fatalf("WireEdgesBounds reported ok=false for a non-empty edge slice")
	}
	if xMin < -0.5 || xMax > 10.5 || yMin < -0.5 || yMax > 10.5 {
		t.Errorf("WireEdgesBounds = (%v,%v,%v,%v), want within [0,10]", xMin, xMax, yMin, yMax)
	}

	scaled := p.WireEdges(geom.Scale(2, 2))
	sxMin, sxMax, _, _, ok := WireEdgesBounds(scaled)
	if !ok || sxMax-sxMin < xMax-xMin {
		t.Errorf("WireEdges under a 2x CTM did not produce a wider device-space span")
	}
}

func TestContextFillShapeCacheHitReusesMask(t *testing.T) {
	c := newTestContext(16, 16)
	c.ShapeCache.Enable(true)
	c.SetFillColor(RGBA(1, 0, 0, 1))
	c.Rectangle(2, 2, 8, 8)
	c.Fill(false)

	first := append([]byte(nil), c.Target.Data...)

	c.SetFillColor(RGBA(1, 0, 0, 1))
	c.Rectangle(2, 2, 8, 8)
	c.Fill(false)

	second := c.Target.Data
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("byte %d differs after a cached refill: %d vs %d", i, first[i], second[i])
		}
	}
}
