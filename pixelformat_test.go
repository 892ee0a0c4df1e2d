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

	"golang.org/x/image/math/f32"
)

func TestLookupFormatKnownAndUnknown(t *testing.T) {
	if LookupFormat(FormatRGBA8) == nil {
		t.Fatal("expected FormatRGBA8 to be registered")
	}
	if got := LookupFormat(PixelFormat(999)); got != nil {
		t.Errorf("expected nil for unknown format, got %v", got)
	}
}

func TestFormatCompositeFormats(t *testing.T) {
	cases := []struct {
		in   PixelFormat
		want PixelFormat
	}{
		{FormatRGB8, FormatRGBA8},
		{FormatGray8, FormatGrayAlpha8},
		{FormatCMYK8, FormatCMYKA8},
	}
	for _, c := range cases {
		info := LookupFormat(c.in)
		if info.CompositeFormat != c.want {
			t.Errorf("%v.CompositeFormat = %v, want %v", c.in, info.CompositeFormat, c.want)
		}
	}
}

func TestRGBA8ComponentsRoundTrip(t *testing.T) {
	pixel := []byte{255, 128, 0, 255}
	c := rgba8ToComponents(pixel)
	if c[0] != 1 || c[3] != 1 {
		t.Errorf("rgba8ToComponents(%v) = %v", pixel, c)
	}
	out := make([]byte, 4)
	componentsToRGBA8(c, out)
	if out[0] != 255 || out[2] != 0 {
		t.Errorf("componentsToRGBA8 round trip = %v, want original channels preserved", out)
	}
}

func TestBGRA8ComponentsSwapsChannels(t *testing.T) {
	pixel := []byte{0, 128, 255, 255} // B=0 G=128 R=255 A=255
	c := bgra8ToComponents(pixel)
	if c[0] != 1 { // red component should read from pixel[2]
		t.Errorf("bgra8ToComponents red = %v, want 1", c[0])
	}
	if c[2] != 0 { // blue component should read from pixel[0]
		t.Errorf("bgra8ToComponents blue = %v, want 0", c[2])
	}

	out := make([]byte, 4)
	componentsToBGRA8(c, out)
	if out[2] != 255 || out[0] != 0 {
		t.Errorf("componentsToBGRA8 = %v, want R=255 at index 2, B=0 at index 0", out)
	}
}

func TestClampByte(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{-1, 0},
		{0, 0},
		{1, 255},
		{2, 255},
	}
	for _, c := range cases {
		if got := clampByte(c.in); got != c.want {
			t.Errorf("clampByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestApplyCoverageRGBA8FullCoverageReplaces(t *testing.T) {
	dst := []byte{0, 0, 0, 0}
	src := f32.Vec4{1, 0, 0, 1}
	applyCoverageRGBA8(dst, src, 1)
	if dst[0] != 255 || dst[3] != 255 {
		t.Errorf("full coverage apply = %v, want opaque red", dst)
	}
}

func TestApplyCoverageRGBA8ZeroCoverageLeavesBackground(t *testing.T) {
	dst := []byte{10, 20, 30, 255}
	before := append([]byte(nil), dst...)
	src := f32.Vec4{1, 1, 1, 1}
	applyCoverageRGBA8(dst, src, 0)
	for i := range dst {
		if dst[i] != before[i] {
			t.Errorf("zero coverage should leave background unchanged, got %v, want %v", dst, before)
			break
		}
	}
}
