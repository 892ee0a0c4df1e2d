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
	"encoding/ascii85"
	"strconv"
	"strings"
)

// isTextualOpcode reports whether op's byte value doubles as its own
// textual single-letter short form (§4.2) — true for the path, paint and
// save/restore/group opcodes below 128, false for the structural
// CONT/NOP/DATA opcodes and for the ≥128 property setters, which have no
// natural mnemonic letter.
func isTextualOpcode(op Opcode) bool {
	switch op {
	case OpMoveTo, OpRelMoveTo, OpLineTo, OpRelLineTo, OpCurveTo, OpRelCurveTo,
		OpQuadTo, OpRelQuadTo, OpArc, OpArcTo, OpRelArcTo, OpRectangle,
		OpRoundRectangle, OpClosePath, OpBeginPath, OpFill, OpStroke,
		OpPreserve, OpClip, OpSave, OpRestore, OpStartGroup, OpEndGroup, OpReset:
		return true
	default:
		return false
	}
}

// FormatNumber renders v using the shortest decimal form that round-trips
// through strconv.ParseFloat (§4.2 "smallest round-tripping form"),
// dropping a trailing ".0" the way the textual format prefers integers
// written bare.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.HasSuffix(s, ".0") {
		s = s[:len(s)-2]
	}
	return s
}

// FormatString escapes s for inclusion in a single-quoted textual string
// literal (§4.2): backslash and the quote character itself are escaped,
// matching the parser's string_apos/string_quot states.
func FormatString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}

// FormatColor writes c in its own model's textual form, except that an
// RGB or RGBA color whose three channels are equal is written as gray or
// graya (keeping its alpha). CMYK, Lab and LCH colors are written as they
// are, without reduction; the device RGB/CMYK models and unknown models
// are written as "gray 0".
func FormatColor(c Color) string {
	switch c.Model {
	case ModelGray:
		return "gray " + FormatNumber(c.Components[0])
	case ModelGrayAlpha:
		return "graya " + FormatNumber(c.Components[0]) + " " + FormatNumber(c.Components[1])
	case ModelRGB:
		if isGrayRGB(c) {
			return "gray " + FormatNumber(c.Components[0])
		}
		return "rgb " + joinNumbers(c.Components[:3])
	case ModelRGBA:
		if isGrayRGB(c) {
			return "graya " + FormatNumber(c.Components[0]) + " " + FormatNumber(c.Components[3])
		}
		return "rgba " + joinNumbers(c.Components[:4])
	case ModelCMYK:
		return "cmyk " + joinNumbers(c.Components[:4])
	case ModelCMYKA:
		return "cmyka " + joinNumbers(c.Components[:5])
	case ModelLab:
		return "lab " + joinNumbers(c.Components[:3])
	case ModelLabAlpha:
		return "laba " + joinNumbers(c.Components[:4])
	case ModelLCH:
		return "lch " + joinNumbers(c.Components[:3])
	case ModelLCHAlpha:
		return "lcha " + joinNumbers(c.Components[:4])
	default:
		return "gray 0"
	}
}

func isGrayRGB(c Color) bool {
	return c.Components[0] == c.Components[1] && c.Components[1] == c.Components[2]
}

func joinNumbers(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, " ")
}

// EncodeDataBlock Ascii85-encodes payload for a DATA entry's trailing
// blob, matching the parser's string_a85 state and §1's sanctioning of
// Ascii85 as a black-box primitive.
func EncodeDataBlock(payload []byte) string {
	var b strings.Builder
	enc := ascii85.NewEncoder(&b)
	_, _ = enc.Write(payload)
	_ = enc.Close()
	return b.String()
}

// FormatOpcode renders a single structural/path opcode as its one-letter
// textual short form, or "" if op has none (property setters spell out
// their own keyword instead, via the parser's word table).
func FormatOpcode(op Opcode) string {
	if !isTextualOpcode(op) {
		return ""
	}
	return string(rune(op))
}

// ParseOpcodeWord resolves a single-letter textual short form back to its
// opcode.
func ParseOpcodeWord(word string) (Opcode, bool) {
	if len(word) != 1 {
		return 0, false
	}
	op := Opcode(word[0])
	if !isTextualOpcode(op) {
		return 0, false
	}
	return op, true
}
