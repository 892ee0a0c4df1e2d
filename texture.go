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
	"fmt"
	"math"

	"seehuhn.de/go/ctx/internal/geom"
)

// Buffer is a texture/framebuffer (§3): raw pixels plus format, stable
// identity, and an optional lazily-materialized color-managed copy.
type Buffer struct {
	Data     []byte
	Width    int
	Height   int
	Stride   int
	Format   *FormatInfo
	EID      string
	FrameLastUsed int

	UserData interface{}
	FreeFunc func(interface{})

	ColorSpace *ColorSpace

	// ColorManaged points at the lazily materialized device-space copy.
	// A value equal to the buffer itself (compared by pointer) means "no
	// conversion needed" — the spec's "identity pointer equal to self"
	// rule, which this Go port expresses directly as self-reference
	// instead of a tagged C union.
	ColorManaged *Buffer
}

// EIDForPixels computes a stable identity for pixels lacking a
// caller-supplied EID, via SHA-1 — one of the two primitives (with
// Ascii85) the spec explicitly sanctions as a black-box building block
// rather than something to reimplement (§1).
func EIDForPixels(pixels []byte) string {
	sum := sha1.Sum(pixels)
	return fmt.Sprintf("%x", sum)
}

// textureEIDEntry is one row of the per-context texture EID database
// (§3): textures not referenced within two frames are evicted.
type textureEIDEntry struct {
	eid           string
	frame         int
	width, height int
}

// TextureEIDDB tracks which EIDs are currently valid for `texture`
// references, evicting entries unused for more than two frames.
type TextureEIDDB struct {
	entries map[string]*textureEIDEntry
}

// NewTextureEIDDB returns an empty database.
func NewTextureEIDDB() *TextureEIDDB {
	return &TextureEIDDB{entries: make(map[string]*textureEIDEntry)}
}

const textureEvictAfterFrames = 2

// Define registers or refreshes eid's presence at the given frame.
func (db *TextureEIDDB) Define(eid string, width, height, frame int) {
	db.entries[eid] = &textureEIDEntry{eid: eid, frame: frame, width: width, height: height}
}

// Valid reports whether eid is a currently known, unevicted texture —
// the check that gates emission of TEXTURE references into the draw
// list (§3).
func (db *TextureEIDDB) Valid(eid string, currentFrame int) bool {
	e, ok := db.entries[eid]
	if !ok {
		return false
	}
	return currentFrame-e.frame <= textureEvictAfterFrames
}

// Evict removes entries not referenced within the last two frames.
func (db *TextureEIDDB) Evict(currentFrame int) {
	for eid, e := range db.entries {
		if currentFrame-e.frame > textureEvictAfterFrames {
			delete(db.entries, eid)
		}
	}
}

// textureSampleMode selects nearest/box/bilinear sampling by CTM scale
// (§4.9).
type textureSampleMode int

const (
	sampleNearest textureSampleMode = iota
	sampleBox
	sampleBilinear
)

func chooseTextureSampleMode(smoothing bool, scale float64) textureSampleMode {
	if !smoothing {
		return sampleNearest
	}
	if scale >= 0.99 && scale <= 1.01 {
		return sampleNearest
	}
	if scale < 0.5 {
		return sampleBox
	}
	return sampleBilinear
}

// SampleTexture returns the straight-alpha RGBA8 color at device point
// (x,y) for a texture source, applying the source's inverse transform to
// find texture space coordinates (§4.9). Out-of-bounds yields transparent
// black.
func (s *Source) SampleTexture(x, y float64, smoothing bool) [4]uint8 {
	if s.Texture == nil {
		return [4]uint8{}
	}
	tp := s.TextureInverse.Apply(geom.Vec2{X: x, Y: y}).Sub(s.TextureOrigin)
	// The sampling mode follows the texture-to-device scale, the
	// reciprocal of the inverse transform's scale factor.
	scale := 1.0
	if inv := s.TextureInverse.ScaleFactor(); inv > 0 {
		scale = 1 / inv
	}
	mode := chooseTextureSampleMode(smoothing, scale)

	switch mode {
	case sampleNearest:
		return sampleNearestTexel(s.Texture, tp.X, tp.Y)
	case sampleBox:
		half := int(math.Floor(1 / scale / 2))
		return sampleBoxTexels(s.Texture, tp.X, tp.Y, half)
	default:
		return sampleBilinearTexels(s.Texture, tp.X, tp.Y)
	}
}

func texelAt(buf *Buffer, x, y int) [4]uint8 {
	if x < 0 || y < 0 || x >= buf.Width || y >= buf.Height {
		return [4]uint8{}
	}
	off := y*buf.Stride + x*4
	if off+4 > len(buf.Data) {
		return [4]uint8{}
	}
	return [4]uint8{buf.Data[off], buf.Data[off+1], buf.Data[off+2], buf.Data[off+3]}
}

func sampleNearestTexel(buf *Buffer, x, y float64) [4]uint8 {
	return texelAt(buf, int(math.Floor(x)), int(math.Floor(y)))
}

func sampleBoxTexels(buf *Buffer, x, y float64, half int) [4]uint8 {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	var sum [4]int
	n := 0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			t := texelAt(buf, cx+dx, cy+dy)
			for i := range sum {
				sum[i] += int(t[i])
			}
			n++
		}
	}
	if n == 0 {
		return [4]uint8{}
	}
	return [4]uint8{uint8(sum[0] / n), uint8(sum[1] / n), uint8(sum[2] / n), uint8(sum[3] / n)}
}

func sampleBilinearTexels(buf *Buffer, x, y float64) [4]uint8 {
	x -= 0.5
	y -= 0.5
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := texelAt(buf, x0, y0)
	c10 := texelAt(buf, x0+1, y0)
	c01 := texelAt(buf, x0, y0+1)
	c11 := texelAt(buf, x0+1, y0+1)

	var out [4]uint8
	for i := range out {
		top := float64(c00[i])*(1-fx) + float64(c10[i])*fx
		bot := float64(c01[i])*(1-fx) + float64(c11[i])*fx
		out[i] = uint8(top*(1-fy) + bot*fy + 0.5)
	}
	return out
}
