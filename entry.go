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

import "math"

// Entry is the draw list's atomic record: one opcode byte plus an 8-byte
// payload union. The payload can be viewed as 2 float32s, 2 uint32/int32s,
// 4 uint16/int16s, or 8 bytes; the struct keeps the raw bytes and exposes
// typed accessors rather than a Go union (Go has none) so that on-disk
// layout stays exactly 9 bytes, matching the wire format.
type Entry struct {
	Op      Opcode
	Payload [8]byte
}

// F32 reads payload slot i (0 or 1) as a float32.
func (e Entry) F32(i int) float32 {
	bits := uint32(e.Payload[i*4]) | uint32(e.Payload[i*4+1])<<8 |
		uint32(e.Payload[i*4+2])<<16 | uint32(e.Payload[i*4+3])<<24
	return math.Float32frombits(bits)
}

// SetF32 writes v into payload slot i (0 or 1).
func (e *Entry) SetF32(i int, v float32) {
	bits := math.Float32bits(v)
	e.Payload[i*4+0] = byte(bits)
	e.Payload[i*4+1] = byte(bits >> 8)
	e.Payload[i*4+2] = byte(bits >> 16)
	e.Payload[i*4+3] = byte(bits >> 24)
}

// U32 reads payload slot i (0 or 1) as a uint32.
func (e Entry) U32(i int) uint32 {
	return uint32(e.Payload[i*4]) | uint32(e.Payload[i*4+1])<<8 |
		uint32(e.Payload[i*4+2])<<16 | uint32(e.Payload[i*4+3])<<24
}

// SetU32 writes v into payload slot i (0 or 1).
func (e *Entry) SetU32(i int, v uint32) {
	e.Payload[i*4+0] = byte(v)
	e.Payload[i*4+1] = byte(v >> 8)
	e.Payload[i*4+2] = byte(v >> 16)
	e.Payload[i*4+3] = byte(v >> 24)
}

// S16 reads payload slot i (0..3) as an int16.
func (e Entry) S16(i int) int16 {
	return int16(uint16(e.Payload[i*2]) | uint16(e.Payload[i*2+1])<<8)
}

// SetS16 writes v into payload slot i (0..3).
func (e *Entry) SetS16(i int, v int16) {
	e.Payload[i*2+0] = byte(v)
	e.Payload[i*2+1] = byte(v >> 8)
}

// S8 reads payload byte i (0..7) as a signed int8 delta.
func (e Entry) S8(i int) int8 {
	return int8(e.Payload[i])
}

// SetS8 writes v into payload byte i (0..7).
func (e *Entry) SetS8(i int, v int8) {
	e.Payload[i] = byte(v)
}

// Opcode identifies the kind of record an Entry holds. Values in the
// printable-ASCII range mirror the textual single-letter short form
// (§4.2); values ≥128 are property setters with no natural mnemonic
// letter.
type Opcode byte

// Core structural opcodes.
const (
	OpCont Opcode = 0 // CONT: continuation payload for the preceding entry
	OpNop  Opcode = 1 // placeholder used by the bitpack pass before compaction
	OpData Opcode = 2 // DATA: (byte_length, block_length) header for a blob
	OpDataRev Opcode = 3 // DATA_REV: mirrored tail entry for reverse traversal
)

// Path-construction opcodes (textual short forms in parens, §4.2).
const (
	OpMoveTo Opcode = 'M'
	OpLineTo Opcode = 'L'
	OpCurveTo Opcode = 'C'
	OpQuadTo Opcode = 'Q'
	OpArc Opcode = 'A'
	OpArcTo Opcode = 'B' // ctx uses "arcTo" distinct from ellipse arc
	OpRectangle Opcode = 'R'
	OpRoundRectangle Opcode = 'r'
	OpClosePath Opcode = 'Z'
	OpBeginPath Opcode = 'N' // "new path"

	OpRelMoveTo Opcode = 'm'
	OpRelLineTo Opcode = 'l'
	OpRelCurveTo Opcode = 'c'
	OpRelQuadTo Opcode = 'q'
	OpRelArcTo Opcode = 'b'

	// Bitpacked runs of small-displacement relative line-tos (§4.1): the
	// lead entry's 8 payload bytes hold four (dx,dy) S8 deltas and the one
	// continuation after it is empty, so the opcode's trailing digit names
	// how many line-tos it replaces.
	OpRelLineToX4 Opcode = 200
)

// Paint and state opcodes.
const (
	OpFill Opcode = 'f'
	OpStroke Opcode = 's'
	OpPreserve Opcode = 'p'
	OpClip Opcode = 'j'

	OpSave Opcode = 'S'
	OpRestore Opcode = 'T'
	OpStartGroup Opcode = 'G'
	OpEndGroup Opcode = 'g'
	OpReset Opcode = 'x'
)

// Style-setting opcodes (≥128, no natural single letter).
const (
	OpColor Opcode = 128 + iota
	OpLinearGradient
	OpRadialGradient
	OpGradientAddStop
	OpTexture
	OpDefineTexture
	OpLineWidth
	OpLineCap
	OpLineJoin
	OpMiterLimit
	OpLineDash
	OpLineDashOffset
	OpGlobalAlpha
	OpCompositingMode
	OpBlendMode
	OpFillRule
	OpShadowColor
	OpShadowBlur
	OpShadowOffset
	OpImageSmoothing
	OpColorSpace
	OpFont
	OpFontSize
	OpText
	OpStrokeText
	OpGlyph
	OpTextAlign
	OpTextBaseline
	OpTextDirection
	OpIdentity
	OpTranslate
	OpScale
	OpRotate
	OpApplyTransform
	OpSetTransform
)

// blobContinuations returns the number of CONT entries that follow a DATA
// header given the block length already read from that header.
func blobContinuations(blockLength uint32) int {
	if blockLength == 0 {
		return 0
	}
	return int(blockLength) - 1
}

// contsForFixedFloats returns how many CONT entries are needed to pack n
// floats when both of the leading entry's payload slots hold floats (the
// ordinary case: path and transform opcodes carry no other header data).
func contsForFixedFloats(n int) int {
	if n <= 2 {
		return 0
	}
	return (n - 2 + 1) / 2
}

// contsForCountedFloats returns how many CONT entries are needed to pack
// n floats when the leading entry's first slot is spent on a count or
// model tag instead of a float, leaving only the second slot for data
// (OpColor, OpShadowColor, OpLineDash).
func contsForCountedFloats(n int) int {
	if n <= 1 {
		return 0
	}
	return (n - 1 + 1) / 2
}

// packRestFloats packs vals two-per-slot into freshly allocated
// continuation entries, used once a caller has already placed the leading
// values into the header entry itself.
func packRestFloats(vals []float64) []Entry {
	var conts []Entry
	slot := 0
	var cur *Entry
	for _, v := range vals {
		if cur == nil || slot == 2 {
			conts = append(conts, Entry{})
			cur = &conts[len(conts)-1]
			slot = 0
		}
		cur.SetF32(slot, float32(v))
		slot++
	}
	return conts
}

// encodeCountedFloats packs vals into an entry of the given opcode whose
// first payload slot holds len(vals) as a uint32 count and whose second
// slot (plus continuations) holds the values themselves — the layout
// OpLineDash uses for its variable-length dash array.
func encodeCountedFloats(op Opcode, vals []float64) (Entry, []Entry) {
	e := Entry{Op: op}
	e.SetU32(0, uint32(len(vals)))
	if len(vals) == 0 {
		return e, nil
	}
	e.SetF32(1, float32(vals[0]))
	return e, packRestFloats(vals[1:])
}

// decodeCountedFloats is encodeCountedFloats's inverse.
func decodeCountedFloats(e Entry, cont []Entry) []float64 {
	n := int(e.U32(0))
	if n == 0 {
		return nil
	}
	out := make([]float64, 0, n)
	out = append(out, float64(e.F32(1)))
	idx := 1
	for _, c := range cont {
		for slot := 0; slot < 2 && idx < n; slot++ {
			out = append(out, float64(c.F32(slot)))
			idx++
		}
	}
	return out
}

// encodeStringBlock packs s into a DATA header entry (block length, one
// more than the number of continuations, in slot 1) plus continuation
// entries holding its raw bytes 8 per continuation, the last one
// zero-padded — the same layout Parser.emitStringData uses for string
// literals, reused here for the eid/name blobs OpTexture, OpDefineTexture
// and OpColorSpace carry.
func encodeStringBlock(op Opcode, leadSlot0 func(*Entry), s string) (Entry, []Entry) {
	data := []byte(s)
	e := Entry{Op: op}
	if leadSlot0 != nil {
		leadSlot0(&e)
	}
	var conts []Entry
	for i := 0; i < len(data); i += 8 {
		var c Entry
		end := i + 8
		if end > len(data) {
			end = len(data)
		}
		copy(c.Payload[:], data[i:end])
		conts = append(conts, c)
	}
	e.SetU32(1, uint32(len(conts)+1))
	return e, conts
}

// decodeStringBlock is encodeStringBlock's inverse: given the header entry
// and its continuations, it reconstructs the string bytes, dropping the
// zero padding of the last continuation (so trailing NUL bytes of the
// original string are dropped as well).
func decodeStringBlock(e Entry, cont []Entry) string {
	n := blobContinuations(e.U32(1))
	if n == 0 {
		return ""
	}
	buf := make([]byte, 0, n*8)
	for i := 0; i < n && i < len(cont); i++ {
		buf = append(buf, cont[i].Payload[:]...)
	}
	for len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}

// ContsForEntry returns the number of CONT entries that must follow e —
// conts_for_entry in the source design, a pure, total function of the
// leading opcode (and, for DATA-carrying or variable-length ops, fields
// embedded in e's own payload). Iteration and the bitpack pass both rely
// on this being total: every opcode, including ones this build doesn't
// otherwise interpret, must resolve to a deterministic continuation count
// so a cursor can always skip forward.
func ContsForEntry(e Entry) int {
	switch e.Op {
	case OpData:
		return blobContinuations(e.U32(1))
	case OpMoveTo, OpLineTo, OpRelMoveTo, OpRelLineTo:
		return 0 // (x,y) fits in one f32 pair
	case OpQuadTo, OpRelQuadTo:
		return contsForFixedFloats(4) // (cx,cy,x,y)
	case OpCurveTo, OpRelCurveTo:
		return contsForFixedFloats(6) // (c1x,c1y,c2x,c2y,x,y)
	case OpArc:
		return contsForFixedFloats(6) // (x,y,radius,start,end,direction)
	case OpArcTo, OpRelArcTo:
		return contsForFixedFloats(5) // (x0,y0,x1,y1,radius)
	case OpRectangle:
		return contsForFixedFloats(4) // (x,y,w,h)
	case OpRoundRectangle:
		return contsForFixedFloats(5) // (x,y,w,h,radius)
	case OpRelLineToX4:
		return 1 // all eight S8 deltas sit in the lead entry; one empty CONT follows
	case OpLineDash:
		return contsForCountedFloats(int(e.U32(0))) // count in slot 0, values from slot 1
	case OpColor, OpShadowColor:
		model := ColorModel(int(e.F32(0)) &^ StrokeSourceBit)
		return contsForCountedFloats(colorModelComponentCount(model))
	case OpLinearGradient:
		return contsForFixedFloats(5) // (x0,y0,x1,y1,strokeFlag)
	case OpRadialGradient:
		return contsForFixedFloats(7) // (x0,y0,r0,x1,y1,r1,strokeFlag)
	case OpGradientAddStop:
		return contsForFixedFloats(6) // (offset,strokeFlag,r,g,b,a)
	case OpDefineTexture, OpTexture:
		return blobContinuations(e.U32(1)) // eid bytes, DATA-style
	case OpColorSpace:
		return blobContinuations(e.U32(1)) // slot in F32(0), name bytes DATA-style
	case OpApplyTransform, OpSetTransform:
		return contsForFixedFloats(6) // 2x3 affine matrix
	case OpText, OpStrokeText:
		return 0 // string payload carried by a preceding DATA entry
	case OpGlyph:
		return contsForFixedFloats(3) // (gid,x,y)
	default:
		return 0
	}
}
