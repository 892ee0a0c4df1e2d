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

func TestPorterDuffFactorsSourceOver(t *testing.T) {
	fs, fd := porterDuffFactors(CompositingSourceOver, 0.6, 0.3)
	if fs != 1 {
		t.Errorf("source-over fs = %v, want 1", fs)
	}
	if fd != 0.4 {
		t.Errorf("source-over fd = %v, want 0.4", fd)
	}
}

func TestPorterDuffFactorsClearAndCopy(t *testing.T) {
	if fs, fd := porterDuffFactors(CompositingClear, 1, 1); fs != 0 || fd != 0 {
		t.Errorf("clear = (%v,%v), want (0,0)", fs, fd)
	}
	if fs, fd := porterDuffFactors(CompositingCopy, 1, 1); fs != 1 || fd != 0 {
		t.Errorf("copy = (%v,%v), want (1,0)", fs, fd)
	}
}

func TestBlendChannelNormal(t *testing.T) {
	if got := blendChannel(BlendNormal, 0.3, 0.8); got != 0.3 {
		t.Errorf("BlendNormal = %v, want 0.3 (source wins)", got)
	}
}

func TestBlendChannelMultiply(t *testing.T) {
	if got := blendChannel(BlendMultiply, 0.5, 0.5); got != 0.25 {
		t.Errorf("BlendMultiply(0.5,0.5) = %v, want 0.25", got)
	}
}

func TestBlendChannelScreen(t *testing.T) {
	if got := blendChannel(BlendScreen, 1, 1); got != 1 {
		t.Errorf("BlendScreen(1,1) = %v, want 1", got)
	}
	if got := blendChannel(BlendScreen, 0, 0); got != 0 {
		t.Errorf("BlendScreen(0,0) = %v, want 0", got)
	}
}

func TestBlendChannelDarkenLighten(t *testing.T) {
	if got := blendChannel(BlendDarken, 0.2, 0.8); got != 0.2 {
		t.Errorf("BlendDarken = %v, want 0.2", got)
	}
	if got := blendChannel(BlendLighten, 0.2, 0.8); got != 0.8 {
		t.Errorf("BlendLighten = %v, want 0.8", got)
	}
}

func TestBlendChannelDifference(t *testing.T) {
	if got := blendChannel(BlendDifference, 0.9, 0.3); got < 0.59 || got > 0.61 {
		t.Errorf("BlendDifference(0.9,0.3) = %v, want ~0.6", got)
	}
}

func TestIsNonSeparable(t *testing.T) {
	for _, m := range []BlendMode{BlendHue, BlendSaturation, BlendColor, BlendLuminosity} {
		if !isNonSeparable(m) {
			t.Errorf("%v should be non-separable", m)
		}
	}
	if isNonSeparable(BlendMultiply) {
		t.Error("BlendMultiply should be separable")
	}
}

func TestLumAndSat(t *testing.T) {
	white := [3]float64{1, 1, 1}
	if got := lum(white); got < 0.99 {
		t.Errorf("lum(white) = %v, want ~1", got)
	}
	if got := sat(white); got != 0 {
		t.Errorf("sat(white) = %v, want 0 (no spread)", got)
	}
	red := [3]float64{1, 0, 0}
	if got := sat(red); got != 1 {
		t.Errorf("sat(red) = %v, want 1", got)
	}
}

func TestSetLumPreservesTargetLuminosity(t *testing.T) {
	c := [3]float64{0.2, 0.4, 0.6}
	out := setLum(c, 0.9)
	if got := lum(out); got < 0.89 || got > 0.91 {
		t.Errorf("setLum result luminosity = %v, want ~0.9", got)
	}
}

func TestChooseKernelClear(t *testing.T) {
	src := &Source{Kind: SourceSolidColor, Color: RGBA(1, 0, 0, 1)}
	if got := chooseKernel(CompositingClear, BlendNormal, src); got != kernelClearNormal {
		t.Errorf("chooseKernel(Clear) = %v, want kernelClearNormal", got)
	}
}

func TestChooseKernelOpaqueSolidFastPath(t *testing.T) {
	src := &Source{Kind: SourceSolidColor, Color: RGBA(1, 0, 0, 1)}
	got := chooseKernel(CompositingSourceOver, BlendNormal, src)
	if got != kernelSourceOverNormalOpaqueColorSolid {
		t.Errorf("chooseKernel(opaque solid) = %v, want kernelSourceOverNormalOpaqueColorSolid", got)
	}
}

func TestChooseKernelFallsBackToGeneric(t *testing.T) {
	src := &Source{Kind: SourceSolidColor, Color: RGBA(1, 0, 0, 1)}
	got := chooseKernel(CompositingSourceOver, BlendMultiply, src)
	if got != kernelGeneric {
		t.Errorf("chooseKernel(non-normal blend) = %v, want kernelGeneric", got)
	}
}

func TestCompositePixelSourceOverOpaqueReplacesDest(t *testing.T) {
	src := [4]uint8{255, 0, 0, 255}
	dst := [4]uint8{0, 0, 255, 255}
	got := CompositePixel(CompositingSourceOver, BlendNormal, src, 1, 1, dst)
	if got[0] != 255 || got[1] != 0 || got[2] != 0 || got[3] != 255 {
		t.Errorf("opaque source-over = %v, want pure red opaque", got)
	}
}

func TestCompositePixelZeroCoverageLeavesNoSource(t *testing.T) {
	src := [4]uint8{255, 0, 0, 255}
	dst := [4]uint8{0, 0, 0, 0}
	got := CompositePixel(CompositingSourceOver, BlendNormal, src, 0, 1, dst)
	want := [4]uint8{0, 0, 0, 0}
	if got != want {
		t.Errorf("zero-coverage composite over transparent dest = %v, want %v", got, want)
	}
}

func TestCompositePixelClearProducesTransparentBlack(t *testing.T) {
	src := [4]uint8{255, 255, 255, 255}
	dst := [4]uint8{10, 20, 30, 255}
	got := CompositePixel(CompositingClear, BlendNormal, src, 1, 1, dst)
	want := [4]uint8{0, 0, 0, 0}
	if got != want {
		t.Errorf("Clear composite = %v, want %v", got, want)
	}
}
