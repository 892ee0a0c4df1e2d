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

import "testing"

func newTestContext(w, h int) *Context {
	buf := &Buffer{
		Width: w, Height: h, Stride: w * 4,
		Format: LookupFormat(FormatRGBA8),
		Data:   make([]byte, w*h*4),
	}
	return NewContext(buf)
}

func TestNewContextClipCoversTarget(t *testing.T) {
	c := newTestContext(10, 20)
	if c.Raster.Clip.URx != 10 || c.Raster.Clip.URy != 20 {
		t.Errorf("initial clip = %v, want full-target rect", c.Raster.Clip)
	}
}

func TestContextFillSolidColor(t *testing.T) {
	c := newTestContext(8, 8)
	c.SetFillColor(RGBA(1, 0, 0, 1))
	c.Rectangle(1, 1, 4, 4)
	c.Fill(false)

	off := 3*c.Target.Stride + 3*4
	px := c.Target.Data[off : off+4]
	if px[0] != 255 || px[3] != 255 {
		t.Errorf("filled pixel = %v, want opaque red", px)
	}

	// Fill without preserve should have cleared the path.
	if _, ok := c.Path.Bounds(); ok {
		t.Error("expected path to be cleared after non-preserving Fill")
	}
}

func TestContextFillPreserveKeepsPath(t *testing.T) {
	c := newTestContext(8, 8)
	c.SetFillColor(RGBA(0, 1, 0, 1))
	c.Rectangle(0, 0, 2, 2)
	c.Fill(true)
	if _, ok := c.Path.Bounds(); !ok {
		t.Error("expected path to survive a preserving Fill")
	}
}

func TestContextSaveRestoreClip(t *testing.T) {
	c := newTestContext(20, 20)
	c.Save()
	c.Rectangle(2, 2, 5, 5)
	c.Clip()
	clippedW := c.Raster.Clip.URx - c.Raster.Clip.LLx
	if clippedW != 5 {
		t.Errorf("clip width after Clip() = %v, want 5", clippedW)
	}
	c.Restore()
	if c.Raster.Clip.URx != 20 {
		t.Errorf("clip after Restore = %v, want reverted to full target", c.Raster.Clip)
	}
}

func TestContextStartEndGroupComposites(t *testing.T) {
	c := newTestContext(4, 4)
	c.StartGroup()
	c.SetFillColor(RGBA(0, 0, 1, 1))
	c.Rectangle(0, 0, 4, 4)
	c.Fill(false)
	c.EndGroup()

	px := c.Target.Data[0:4]
	if px[2] != 255 || px[3] != 255 {
		t.Errorf("composited group pixel = %v, want opaque blue", px)
	}
}

func TestContextEndGroupWithoutStartIsNoOp(t *testing.T) {
	c := newTestContext(4, 4)
	c.EndGroup() // should not panic
}

func TestContextResetClearsState(t *testing.T) {
	c := newTestContext(4, 4)
	c.Rectangle(0, 0, 1, 1)
	c.Save()
	c.Reset()
	if c.List.Len() != 1 {
		t.Errorf("after Reset, List.Len() = %d, want 1 (the reset entry)", c.List.Len())
	}
	if _, ok := c.Path.Bounds(); ok {
		t.Error("expected path cleared after Reset")
	}
}

func TestContextNextFrameAdvancesFrameCounter(t *testing.T) {
	c := newTestContext(4, 4)
	before := c.frame
	c.NextFrame()
	if c.frame != before+1 {
		t.Errorf("frame = %d, want %d", c.frame, before+1)
	}
}
