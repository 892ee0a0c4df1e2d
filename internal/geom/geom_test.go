package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVec2Ops(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	w := Vec2{X: 1, Y: 2}

	if got := v.Add(w); got != (Vec2{4, 6}) {
		t.Errorf("Add: got %v", got)
	}
	if got := v.Sub(w); got != (Vec2{2, 2}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := v.Mul(2); got != (Vec2{6, 8}) {
		t.Errorf("Mul: got %v", got)
	}
	if got := v.Dot(w); got != 11 {
		t.Errorf("Dot: got %v, want 11", got)
	}
	if got := v.Length(); !almostEqual(got, 5) {
		t.Errorf("Length: got %v, want 5", got)
	}
	if got := v.Cross(w); got != 2 {
		t.Errorf("Cross: got %v, want 2", got)
	}
}

func TestMatrixApply(t *testing.T) {
	m := Translate(10, 20)
	p := m.Apply(Vec2{X: 1, Y: 2})
	if p != (Vec2{11, 22}) {
		t.Errorf("Apply: got %v, want {11 22}", p)
	}

	// translation has no effect on directions
	d := m.ApplyDirection(Vec2{X: 1, Y: 2})
	if d != (Vec2{1, 2}) {
		t.Errorf("ApplyDirection: got %v, want {1 2}", d)
	}
}

func TestMatrixMulIdentity(t *testing.T) {
	m := Scale(2, 3)
	if got := m.Mul(Identity); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
	if got := Identity.Mul(m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
}

func TestMatrixMulOrder(t *testing.T) {
	// Scale then translate: a point at (1,0) scaled by 2 moves to (2,0),
	// then translated by (10,0) lands at (12,0).
	m := Scale(2, 2).Mul(Translate(10, 0))
	got := m.Apply(Vec2{X: 1, Y: 0})
	if !almostEqual(got.X, 12) || !almostEqual(got.Y, 0) {
		t.Errorf("Apply: got %v, want {12 0}", got)
	}
}

func TestMatrixChainedBuilders(t *testing.T) {
	m1 := Scale(2, 2).Translate(10, 0)
	m2 := Scale(2, 2).Mul(Translate(10, 0))
	if m1 != m2 {
		t.Errorf("chained builder %v != explicit Mul %v", m1, m2)
	}
}

func TestMatrixRotateDeg(t *testing.T) {
	m1 := RotateDeg(90)
	m2 := Rotate(math.Pi / 2)
	for i := range m1 {
		if !almostEqual(m1[i], m2[i]) {
			t.Errorf("RotateDeg(90)[%d] = %v, want %v", i, m1[i], m2[i])
		}
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Scale(2, 4).Translate(10, 20)
	inv := m.Invert()
	got := inv.Apply(m.Apply(Vec2{X: 3, Y: 5}))
	if !almostEqual(got.X, 3) || !almostEqual(got.Y, 5) {
		t.Errorf("round-trip through inverse: got %v, want {3 5}", got)
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	m := Matrix{} // all zero, determinant 0
	if got := m.Invert(); got != (Matrix{}) {
		t.Errorf("Invert of singular matrix: got %v, want zero matrix", got)
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	m := Scale(3, 3)
	if got := m.ScaleFactor(); !almostEqual(got, 3) {
		t.Errorf("ScaleFactor: got %v, want 3", got)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	b := Rect{LLx: 5, LLy: 5, URx: 15, URy: 15}
	got := a.Intersect(b)
	want := Rect{LLx: 5, LLy: 5, URx: 10, URy: 10}
	if got != want {
		t.Errorf("Intersect: got %v, want %v", got, want)
	}

	c := Rect{LLx: 20, LLy: 20, URx: 30, URy: 30}
	if got := a.Intersect(c); !got.IsZero() {
		t.Errorf("disjoint Intersect: got %v, want zero", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	if !r.Contains(5, 5) {
		t.Error("expected (5,5) to be contained")
	}
	if r.Contains(10, 10) {
		t.Error("upper-right corner should be exclusive")
	}
	if r.Contains(-1, 5) {
		t.Error("(-1,5) should not be contained")
	}
}

func TestDataBuilderChaining(t *testing.T) {
	d := NewData().MoveTo(Vec2{X: 0, Y: 0}).
		LineTo(Vec2{X: 10, Y: 0}).
		QuadTo(Vec2{X: 10, Y: 5}, Vec2{X: 10, Y: 10}).
		CubeTo(Vec2{X: 5, Y: 10}, Vec2{X: 0, Y: 10}, Vec2{X: 0, Y: 5}).
		Close()

	wantCmds := []Command{CmdMoveTo, CmdLineTo, CmdQuadTo, CmdCubeTo, CmdClose}
	if len(d.Cmds) != len(wantCmds) {
		t.Fatalf("got %d commands, want %d", len(d.Cmds), len(wantCmds))
	}
	for i, c := range wantCmds {
		if d.Cmds[i] != c {
			t.Errorf("Cmds[%d] = %v, want %v", i, d.Cmds[i], c)
		}
	}
	if len(d.Coords) != 1+1+2+3+0 {
		t.Errorf("got %d coords, want 7", len(d.Coords))
	}
}

func TestDataResetAndEmpty(t *testing.T) {
	d := NewData().MoveTo(Vec2{X: 1, Y: 1}).LineTo(Vec2{X: 2, Y: 2})
	if d.IsEmpty() {
		t.Fatal("expected non-empty path")
	}
	d.Reset()
	if !d.IsEmpty() {
		t.Error("expected empty path after Reset")
	}
	if len(d.Coords) != 0 {
		t.Error("expected empty Coords after Reset")
	}
}

func TestDataBounds(t *testing.T) {
	d := NewData().MoveTo(Vec2{X: -5, Y: 2}).LineTo(Vec2{X: 10, Y: -3}).LineTo(Vec2{X: 4, Y: 8})
	r, ok := d.Bounds()
	if !ok {
		t.Fatal("expected ok=true for non-empty path")
	}
	want := Rect{LLx: -5, LLy: -3, URx: 10, URy: 8}
	if r != want {
		t.Errorf("Bounds: got %v, want %v", r, want)
	}

	empty := NewData()
	if _, ok := empty.Bounds(); ok {
		t.Error("expected ok=false for empty path")
	}
}

func TestNumCoords(t *testing.T) {
	cases := []struct {
		cmd  Command
		want int
	}{
		{CmdMoveTo, 1},
		{CmdLineTo, 1},
		{CmdQuadTo, 2},
		{CmdCubeTo, 3},
		{CmdClose, 0},
	}
	for _, c := range cases {
		if got := NumCoords(c.cmd); got != c.want {
			t.Errorf("NumCoords(%v) = %d, want %d", c.cmd, got, c.want)
		}
	}
}
