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
	"testing"

	"seehuhn.de/go/ctx/internal/geom"
)

func TestNewGStateDefaults(t *testing.T) {
	g := NewGState()
	if g.CTM != geom.Identity {
		t.Errorf("CTM = %v, want Identity", g.CTM)
	}
	if g.LineWidth != 1 {
		t.Errorf("LineWidth = %v, want 1", g.LineWidth)
	}
	if g.MiterLimit != 10 {
		t.Errorf("MiterLimit = %v, want 10", g.MiterLimit)
	}
	if g.GlobalAlpha != 1 || g.GlobalAlphaU8 != 255 {
		t.Errorf("GlobalAlpha = %v/%v, want 1/255", g.GlobalAlpha, g.GlobalAlphaU8)
	}
	if g.FillRule != FillRuleNonZero {
		t.Errorf("FillRule = %v, want FillRuleNonZero", g.FillRule)
	}
}

func TestSetGlobalAlphaClamps(t *testing.T) {
	g := NewGState()
	g.SetGlobalAlpha(-1)
	if g.GlobalAlpha != 0 || g.GlobalAlphaU8 != 0 {
		t.Errorf("negative alpha: got %v/%v, want 0/0", g.GlobalAlpha, g.GlobalAlphaU8)
	}
	g.SetGlobalAlpha(2)
	if g.GlobalAlpha != 1 || g.GlobalAlphaU8 != 255 {
		t.Errorf("alpha > 1: got %v/%v, want 1/255", g.GlobalAlpha, g.GlobalAlphaU8)
	}
	g.SetGlobalAlpha(0.5)
	if g.GlobalAlphaU8 != 128 {
		t.Errorf("alpha 0.5: GlobalAlphaU8 = %d, want 128", g.GlobalAlphaU8)
	}
}

func TestGStateCloneIndependence(t *testing.T) {
	g := NewGState()
	g.Dash = []float64{1, 2, 3}
	g.KeyDBSet("foo", 42)

	clone := g.clone()
	clone.Dash[0] = 99
	clone.KeyDBSet("foo", 100)

	if g.Dash[0] != 1 {
		t.Error("mutating clone's Dash affected original")
	}
	if v, _ := g.KeyDBGet("foo"); v != 42 {
		t.Errorf("mutating clone's keydb affected original: got %v", v)
	}
}

func TestGStateStackSaveRestore(t *testing.T) {
	s := NewGStateStack()
	s.Current().LineWidth = 5

	s.Save()
	s.Current().LineWidth = 10
	if s.Depth() != 1 {
		t.Errorf("Depth after Save = %d, want 1", s.Depth())
	}

	s.Restore(nil)
	if s.Current().LineWidth != 5 {
		t.Errorf("LineWidth after Restore = %v, want 5", s.Current().LineWidth)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth after Restore = %d, want 0", s.Depth())
	}
}

func TestGStateStackRestorePastBottomIsNoOp(t *testing.T) {
	s := NewGStateStack()
	s.Current().LineWidth = 7
	s.Restore(nil) // no frames saved; must not panic or change state
	if s.Current().LineWidth != 7 {
		t.Errorf("LineWidth after no-op Restore = %v, want 7", s.Current().LineWidth)
	}
}

func TestGStateStackRestoreTriggersClipReconstruction(t *testing.T) {
	s := NewGStateStack()
	s.Save()
	s.Current().RecordClip(3)

	called := false
	s.Restore(func(surviving []*GState) {
		called = true
		if len(surviving) == 0 {
			t.Error("expected at least one surviving frame")
		}
	})
	if !called {
		t.Error("expected reconstructClip callback when popped frame recorded a clip")
	}
}

func TestGStateStackRestoreWithoutClipSkipsCallback(t *testing.T) {
	s := NewGStateStack()
	s.Save()

	called := false
	s.Restore(func(surviving []*GState) { called = true })
	if called {
		t.Error("reconstructClip should not be called when no clip was recorded")
	}
}

func TestKeyDBSetGet(t *testing.T) {
	g := NewGState()
	if _, ok := g.KeyDBGet("missing"); ok {
		t.Error("expected ok=false for missing key")
	}
	g.KeyDBSet("alpha", 1.5)
	v, ok := g.KeyDBGet("alpha")
	if !ok || v != 1.5 {
		t.Errorf("KeyDBGet(alpha) = %v, %v; want 1.5, true", v, ok)
	}
	g.KeyDBSet("alpha", 2.5) // overwrite
	v, _ = g.KeyDBGet("alpha")
	if v != 2.5 {
		t.Errorf("after overwrite: KeyDBGet(alpha) = %v, want 2.5", v)
	}
}

func TestKeyDBSetEvictsNothingButDropsWhenFull(t *testing.T) {
	g := NewGState()
	for i := 0; i < maxKeyDBEntries; i++ {
		g.KeyDBSet(string(rune('a'+i%26))+string(rune('A'+i/26)), float64(i))
	}
	before := len(g.keydb)
	g.KeyDBSet("brand-new-key-that-does-not-collide-zz", 999)
	if len(g.keydb) != before {
		t.Errorf("expected silent drop once keydb is full: len went from %d to %d", before, len(g.keydb))
	}
}

func TestKeyDBStringRoundTrip(t *testing.T) {
	g := NewGState()
	g.KeyDBSetString("label", "hello world")
	s, ok := g.KeyDBGetString("label")
	if !ok || s != "hello world" {
		t.Errorf("KeyDBGetString = %q, %v; want %q, true", s, ok, "hello world")
	}
}

func TestKeyDBGetStringRejectsPlainFloat(t *testing.T) {
	g := NewGState()
	g.KeyDBSet("numeric", 3.14)
	if _, ok := g.KeyDBGetString("numeric"); ok {
		t.Error("expected ok=false retrieving a plain float as a string")
	}
}

func TestStrhashDeterministic(t *testing.T) {
	if strhash("lineWidth") != strhash("lineWidth") {
		t.Error("strhash should be deterministic")
	}
	if strhash("lineWidth") == strhash("lineHeight") {
		t.Error("different strings should (overwhelmingly likely) hash differently")
	}
}
