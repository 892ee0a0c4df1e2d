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
	"seehuhn.de/go/ctx/internal/geom"
	"seehuhn.de/go/pdf/graphics"
)

// maxGStateDepth is the typical fixed stack depth the design calls for
// (§3: "typical depth 10"). ctx grows past it rather than refusing a
// save, but code that wants the embedded fixed-buffer behavior can check
// len(stack) against this before saving.
const maxGStateDepth = 10

// maxKeyDBEntries is the keydb's fixed capacity (§3).
const maxKeyDBEntries = 64

// maxGradientStops is the maximum number of stops a gradient source may
// index (§3).
const maxGradientStops = 16

// keyDBEntry is one (hash, float) pair in a GState's keyed property store.
type keyDBEntry struct {
	hash  uint32
	value float64
}

// stringpoolColorMagic distinguishes a stored color blob from a plain
// string spilled into the stringpool (§3: "Magic byte 127").
const stringpoolColorMagic = 127

// stringpoolOffsetBase is the float encoding base for keydb entries that
// point into the stringpool: value = -90000 + offset.
const stringpoolOffsetBase = -90000.0

// GState is the graphics state the spec names in §3/§4.4: transform,
// stroke style, paint sources, compositing parameters, clip, and the
// keyed property store for properties with no dedicated field.
type GState struct {
	CTM geom.Matrix

	LineWidth  float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64

	GlobalAlpha   float64 // float mirror
	GlobalAlphaU8 uint8   // u8 mirror, kept in sync by SetGlobalAlpha

	Fill   Source
	Stroke Source

	FillRule        FillRule
	CompositingMode CompositingMode
	BlendMode       BlendMode

	FontIndex int
	FontSize  float64

	ShadowColor  Color
	ShadowBlur   float64
	ShadowOffset geom.Vec2

	ImageSmoothing bool

	Clip        geom.Rect
	Clipped     bool
	clipBlobIdx []int // indices, within the owning Context's draw list, of `clip` entries appended since the enclosing save

	ColorSpace [numColorSpaceSlots]*ColorSpace

	keydb      []keyDBEntry
	stringpool []byte
}

// FillRule selects the winding rule used by fill/clip.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// NewGState returns a GState with the engine's documented defaults.
func NewGState() *GState {
	return &GState{
		CTM:             geom.Identity,
		LineWidth:       1,
		Cap:             graphics.LineCapButt,
		Join:            graphics.LineJoinMiter,
		MiterLimit:      10,
		GlobalAlpha:     1,
		GlobalAlphaU8:   255,
		FillRule:        FillRuleNonZero,
		CompositingMode: CompositingSourceOver,
		BlendMode:       BlendNormal,
		FontSize:        12,
		ImageSmoothing:  true,
	}
}

// SetGlobalAlpha sets both the float and u8 mirrors from a is in [0,1].
func (g *GState) SetGlobalAlpha(a float64) {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	g.GlobalAlpha = a
	g.GlobalAlphaU8 = uint8(a*255 + 0.5)
}

// clone makes a value copy of g suitable for pushing onto the save stack,
// deep-copying the slices save/restore must not let two frames alias
// (Dash, keydb, stringpool, clipBlobIdx).
func (g *GState) clone() *GState {
	c := *g
	c.Dash = append([]float64(nil), g.Dash...)
	c.keydb = append([]keyDBEntry(nil), g.keydb...)
	c.stringpool = append([]byte(nil), g.stringpool...)
	c.clipBlobIdx = nil // a fresh frame has appended no clips yet
	return &c
}

// GStateStack implements save/restore (§4.4): save pushes the current
// GState and continues with a deep copy of it, so keydb entries an inner
// frame adds are discarded on restore; restore pops, and if the
// popped frame had appended clip entries, triggers clip-buffer
// reconstruction by replaying the surviving stack's clip blobs.
type GStateStack struct {
	cur   *GState
	stack []*GState
}

// NewGStateStack returns a stack with one default frame.
func NewGStateStack() *GStateStack {
	return &GStateStack{cur: NewGState()}
}

// Current returns the active graphics state.
func (s *GStateStack) Current() *GState { return s.cur }

// Depth returns the number of saved frames below the current one.
func (s *GStateStack) Depth() int { return len(s.stack) }

// Save pushes the current state.
func (s *GStateStack) Save() {
	s.stack = append(s.stack, s.cur)
	s.cur = s.cur.clone()
}

// Restore pops to the previous state. If the popped frame recorded any
// clip entries, reconstructClip is invoked with the surviving stack (from
// bottom to the new current frame) so the caller can rebuild the
// accumulated clip mask (§4.6 "After restore from a clipped frame, all
// clip blobs in the surviving stack are replayed"). Restoring past the
// bottom frame is a no-op, matching the spec's "no error codes" stance.
func (s *GStateStack) Restore(reconstructClip func(surviving []*GState)) {
	if len(s.stack) == 0 {
		return
	}
	popped := s.cur
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if len(popped.clipBlobIdx) > 0 && reconstructClip != nil {
		surviving := make([]*GState, 0, len(s.stack)+1)
		surviving = append(surviving, s.stack...)
		surviving = append(surviving, s.cur)
		reconstructClip(surviving)
	}
}

// RecordClip notes that the current frame appended a clip entry at list
// index idx, so a later Restore past this frame knows to reconstruct.
func (g *GState) RecordClip(idx int) {
	g.clipBlobIdx = append(g.clipBlobIdx, idx)
}

// strhash is the parser's order-sensitive fold used both to resolve
// textual command words (§4.3) and, here, to hash keydb property names.
// It shifts in 5 bits per byte, keeps the low 52 bits, and folds them to
// 32 bits at the end. Letters (either case) map to 1-26, digits to 27-36
// (so the codes for 5-9 spill into the neighbouring position) and every
// other byte to 31, matching the source's word-hashing scheme closely
// enough to share one implementation between the parser and the keydb.
func strhash(s string) uint32 {
	var h uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var v uint64
		switch {
		case c >= 'a' && c <= 'z':
			v = uint64(c-'a') + 1
		case c >= 'A' && c <= 'Z':
			v = uint64(c-'A') + 1
		case c >= '0' && c <= '9':
			v = uint64(c-'0') + 27
		default:
			v = 31
		}
		h = (h<<5 | v) & ((1 << 52) - 1)
	}
	return uint32(h ^ (h >> 32))
}

// KeyDBSet stores a float property under name, overwriting the value of
// an existing entry with the same hash. Silently drops the write once the table
// is full (§7 resource-limit behavior: "silently drop the offending
// append").
func (g *GState) KeyDBSet(name string, value float64) {
	h := strhash(name)
	for i := range g.keydb {
		if g.keydb[i].hash == h {
			g.keydb[i].value = value
			return
		}
	}
	if len(g.keydb) >= maxKeyDBEntries {
		return
	}
	g.keydb = append(g.keydb, keyDBEntry{hash: h, value: value})
}

// KeyDBGet retrieves a float property by name.
func (g *GState) KeyDBGet(name string) (float64, bool) {
	h := strhash(name)
	for i := range g.keydb {
		if g.keydb[i].hash == h {
			return g.keydb[i].value, true
		}
	}
	return 0, false
}

// KeyDBSetString spills s into the stringpool and records a keydb entry
// whose float value decodes back to the pool offset (§3).
func (g *GState) KeyDBSetString(name string, s string) {
	offset := len(g.stringpool)
	g.stringpool = append(g.stringpool, s...)
	g.stringpool = append(g.stringpool, 0) // NUL-terminated
	g.KeyDBSet(name, stringpoolOffsetBase+float64(offset))
}

// KeyDBGetString retrieves a spilled string by name.
func (g *GState) KeyDBGetString(name string) (string, bool) {
	v, ok := g.KeyDBGet(name)
	if !ok || v < stringpoolOffsetBase {
		return "", false
	}
	offset := int(v - stringpoolOffsetBase)
	if offset < 0 || offset >= len(g.stringpool) {
		return "", false
	}
	end := offset
	for end < len(g.stringpool) && g.stringpool[end] != 0 {
		end++
	}
	return string(g.stringpool[offset:end]), true
}
