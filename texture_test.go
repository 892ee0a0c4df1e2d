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

func makeTestBuffer(w, h int, fill [4]uint8) *Buffer {
	data := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		copy(data[i*4:], fill[:])
	}
	return &Buffer{Data: data, Width: w, Height: h, Stride: w * 4}
}

func TestEIDForPixelsDeterministic(t *testing.T) {
	pixels := []byte{1, 2, 3, 4}
	a := EIDForPixels(pixels)
	b := EIDForPixels(pixels)
	if a != b {
		t.Errorf("EIDForPixels not deterministic: %q vs %q", a, b)
	}
	if EIDForPixels([]byte{5, 6, 7, 8}) == a {
		t.Error("different pixels should (overwhelmingly likely) produce different EIDs")
	}
}

func TestTextureEIDDBValidAndEvict(t *testing.T) {
	db := NewTextureEIDDB()
	db.Define("tex1", 10, 10, 5)

	if !db.Valid("tex1", 5) {
		t.Error("expected tex1 valid at defining frame")
	}
	if !db.Valid("tex1", 7) {
		t.Error("expected tex1 valid within eviction window")
	}
	if db.Valid("tex1", 8) {
		t.Error("expected tex1 invalid past eviction window")
	}
	if db.Valid("unknown", 5) {
		t.Error("expected unknown EID to be invalid")
	}
}

func TestTextureEIDDBEvict(t *testing.T) {
	db := NewTextureEIDDB()
	db.Define("old", 10, 10, 0)
	db.Define("new", 10, 10, 10)
	db.Evict(10)
	if db.Valid("old", 10) {
		t.Error("expected old entry to be evicted")
	}
	if !db.Valid("new", 10) {
		t.Error("expected fresh entry to survive eviction")
	}
}

func TestChooseTextureSampleMode(t *testing.T) {
	if got := chooseTextureSampleMode(false, 1); got != sampleNearest {
		t.Errorf("smoothing off: got %v, want sampleNearest", got)
	}
	if got := chooseTextureSampleMode(true, 1); got != sampleNearest {
		t.Errorf("scale=1: got %v, want sampleNearest", got)
	}
	if got := chooseTextureSampleMode(true, 0.2); got != sampleBox {
		t.Errorf("scale=0.2 (minify): got %v, want sampleBox", got)
	}
	if got := chooseTextureSampleMode(true, 3); got != sampleBilinear {
		t.Errorf("scale=3 (magnify): got %v, want sampleBilinear", got)
	}
}

func TestTexelAtOutOfBounds(t *testing.T) {
	buf := makeTestBuffer(2, 2, [4]uint8{10, 20, 30, 40})
	if got := texelAt(buf, -1, 0); got != ([4]uint8{}) {
		t.Errorf("out-of-bounds texelAt = %v, want zero", got)
	}
	if got := texelAt(buf, 0, 0); got != ([4]uint8{10, 20, 30, 40}) {
		t.Errorf("in-bounds texelAt = %v, want {10 20 30 40}", got)
	}
}

func TestSampleNearestTexel(t *testing.T) {
	buf := makeTestBuffer(4, 4, [4]uint8{1, 2, 3, 4})
	got := sampleNearestTexel(buf, 1.5, 2.5)
	if got != ([4]uint8{1, 2, 3, 4}) {
		t.Errorf("sampleNearestTexel = %v, want {1 2 3 4}", got)
	}
}

func TestSampleBoxTexelsUniformBufferReturnsConstant(t *testing.T) {
	buf := makeTestBuffer(10, 10, [4]uint8{100, 150, 200, 255})
	got := sampleBoxTexels(buf, 5, 5, 2)
	if got != ([4]uint8{100, 150, 200, 255}) {
		t.Errorf("box sample of uniform buffer = %v, want {100 150 200 255}", got)
	}
}

func TestSampleBilinearTexelsUniformBufferReturnsConstant(t *testing.T) {
	buf := makeTestBuffer(10, 10, [4]uint8{50, 60, 70, 255})
	got := sampleBilinearTexels(buf, 5.3, 5.7)
	if got != ([4]uint8{50, 60, 70, 255}) {
		t.Errorf("bilinear sample of uniform buffer = %v, want {50 60 70 255}", got)
	}
}

func TestSampleTextureNilReturnsTransparent(t *testing.T) {
	s := &Source{Kind: SourceTexture}
	got := s.SampleTexture(0, 0, true)
	if got != ([4]uint8{}) {
		t.Errorf("SampleTexture with nil Texture = %v, want zero", got)
	}
}

func TestSampleTextureIdentityTransform(t *testing.T) {
	buf := makeTestBuffer(4, 4, [4]uint8{9, 8, 7, 255})
	s := &Source{
		Kind:           SourceTexture,
		Texture:        buf,
		TextureInverse: geom.Identity,
	}
	got := s.SampleTexture(1, 1, false)
	if got != ([4]uint8{9, 8, 7, 255}) {
		t.Errorf("SampleTexture identity = %v, want {9 8 7 255}", got)
	}
}
