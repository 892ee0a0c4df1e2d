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

// subdiv is SUBDIV from the GLOSSARY: the fixed-point sub-pixel
// resolution for x within the edge list, and the scale factor the
// bitpack pass uses to store relative line-to deltas as signed bytes.
const subdiv = 8

// bitpackMaxMagnitude is the largest delta (in user-space units) the
// bitpack pass will fold into a single signed byte: 114/SUBDIV, leaving
// headroom below the S8 range so that rounding during pack/unpack never
// overflows (§4.1).
const bitpackMaxMagnitude = 114.0 / subdiv

// Bitpack walks list from list.BitpackPos to len(entries)-4, matching runs
// of four consecutive OpRelLineTo entries whose magnitudes are all below
// bitpackMaxMagnitude and rewriting them to a single OpRelLineToX4 entry
// plus one continuation. It never rewrites past BitpackPos more than once
// and leaves a short residue at the tail uncompressed until more data
// arrives, matching the source's "idempotent, never crosses FLUSH" rule.
func Bitpack(list *DrawList) {
	entries := list.entries
	pos := list.BitpackPos
	for pos+4 <= len(entries) {
		ok := true
		var deltas [8]int8
		for i := 0; i < 4; i++ {
			e := entries[pos+i]
			if e.Op != OpRelLineTo {
				ok = false
				break
			}
			dx := e.F32(0)
			dy := e.F32(1)
			if dx < -bitpackMaxMagnitude || dx > bitpackMaxMagnitude ||
				dy < -bitpackMaxMagnitude || dy > bitpackMaxMagnitude {
				ok = false
				break
			}
			deltas[i*2] = int8(dx * subdiv)
			deltas[i*2+1] = int8(dy * subdiv)
		}
		if !ok {
			pos++
			continue
		}

		var lead, cont Entry
		lead.Op = OpRelLineToX4
		for i := 0; i < 8; i++ {
			lead.SetS8(i, deltas[i])
		}
		cont.Op = OpCont

		entries[pos] = lead
		entries[pos+1] = cont
		entries[pos+2] = Entry{Op: OpNop}
		entries[pos+3] = Entry{Op: OpNop}
		pos += 4
	}

	// Compaction shifts everything after a packed run down by the NOPs it
	// removes, so the scan position moves down by the NOPs before it.
	removed := 0
	for _, e := range entries[:pos] {
		if e.Op == OpNop {
			removed++
		}
	}
	list.BitpackPos = pos - removed
	list.entries = compactNops(entries)
	if list.BitpackPos > len(list.entries) {
		list.BitpackPos = len(list.entries)
	}
}

// compactNops removes OpNop placeholders left by Bitpack, sliding later
// entries down. This is the "second pass" the design calls for.
func compactNops(entries []Entry) []Entry {
	w := 0
	for r := 0; r < len(entries); r++ {
		if entries[r].Op == OpNop {
			continue
		}
		entries[w] = entries[r]
		w++
	}
	return entries[:w]
}

// Expand returns a new DrawList equal to list with every bitpacked run
// expanded back to its canonical OpRelLineTo form (the expand side of
// §4.1's round-trip contract). Unlike Cursor's ExpandBitpack flag, this
// materializes the whole list — useful for round-trip tests and for
// feeding a list to back ends that don't implement the compact opcodes.
func Expand(list *DrawList) *DrawList {
	out := NewDrawList()
	c := NewCursor(list, ExpandBitpack)
	for {
		e, cont, ok := c.Next()
		if !ok {
			break
		}
		out.Append(e, cont...)
	}
	out.Flags = list.Flags &^ FlagBitpack
	return out
}
