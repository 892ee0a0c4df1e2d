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
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

// TestCompositePixelMatchesXImageDrawOver cross-checks CompositePixel's
// source-over/normal-blend path, pixel by pixel, against
// golang.org/x/image/draw's Over operator applied to the same
// straight-alpha NRGBA source and destination. The two implementations
// reach the result through different arithmetic (CompositePixel works in
// straight-alpha float64, x/image/draw composites in premultiplied
// uint32), so agreement here is a genuine cross-check of the compositor's
// default Porter-Duff/blend path rather than a restatement of its own
// formula.
func TestCompositePixelMatchesXImageDrawOver(t *testing.T) {
	srcPixels := [][4]uint8{
		{255, 0, 0, 255},
		{0, 255, 0, 128},
		{0, 0, 255, 64},
		{200, 150, 50, 200},
		{10, 20, 30, 0},
		{255, 255, 255, 255},
	}
	dstPixels := [][4]uint8{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{10, 20, 30, 200},
		{0, 0, 0, 0},
		{100, 100, 100, 100},
		{128, 128, 128, 40},
	}

	for i, s := range srcPixels {
		d := dstPixels[i]

		got := CompositePixel(CompositingSourceOver, BlendNormal, s, 1, 1, d)

		srcImg := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		srcImg.SetNRGBA(0, 0, color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]})
		dstImg := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		dstImg.SetNRGBA(0, 0, color.NRGBA{R: d[0], G: d[1], B: d[2], A: d[3]})

		draw.Draw(dstImg, dstImg.Bounds(), srcImg, image.Point{}, draw.Over)
		want := dstImg.NRGBAAt(0, 0)

		const tol = 2
		if absDiff(got[0], want.R) > tol || absDiff(got[1], want.G) > tol ||
			absDiff(got[2], want.B) > tol || absDiff(got[3], want.A) > tol {
			t.Errorf("pixel %d: CompositePixel=%v, x/image/draw=%v (src=%v dst=%v)",
				i, got, [4]uint8{want.R, want.G, want.B, want.A}, s, d)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
