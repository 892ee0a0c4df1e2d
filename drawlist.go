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

// ListFlags is the draw list's flags word.
type ListFlags uint32

const (
	FlagEdgeList ListFlags = 1 << iota
	FlagCurrentPath
	FlagDoesNotOwnEntries
	FlagScreenSpace
	FlagRelative
	FlagBitpack
)

// Default and hard-cap sizes for draw-list growth (§3, §5 "hard caps").
const (
	defaultListMin = 64
	defaultListMax = 1 << 20 // 1M entries (~9MiB) — embedded-safe ceiling
)

// DrawList is an ordered sequence of Entry records with a count, an
// allocated capacity, and a bitpack cursor tracking the prefix already
// compressed. Resizing follows a >=1.5x growth policy bounded by min/max.
// When FlagDoesNotOwnEntries is set, entries is a caller-owned view and is
// never reallocated — appends beyond its length fail silently, matching
// the "fails silently at the hard maximum" contract every resource-limited
// append in this engine follows (§7).
type DrawList struct {
	entries    []Entry
	Flags      ListFlags
	BitpackPos int // prefix already scanned/compacted by the bitpack pass

	minCap, maxCap int
}

// NewDrawList returns an empty, owning draw list with default growth
// bounds.
func NewDrawList() *DrawList {
	return &DrawList{minCap: defaultListMin, maxCap: defaultListMax}
}

// NewDrawListView returns a non-owning draw list backed by buf. Appends
// that would exceed len(buf) are dropped, per the embedded "doesn't-own"
// contract.
func NewDrawListView(buf []Entry) *DrawList {
	return &DrawList{entries: buf[:0], Flags: FlagDoesNotOwnEntries, minCap: len(buf), maxCap: len(buf)}
}

// Len returns the number of entries currently stored.
func (d *DrawList) Len() int { return len(d.entries) }

// Cap returns the allocated capacity.
func (d *DrawList) Cap() int { return cap(d.entries) }

// Entries returns the live entry slice. The caller must not retain it
// across further appends — growth may reallocate the backing array.
func (d *DrawList) Entries() []Entry { return d.entries }

// At returns the entry at position i.
func (d *DrawList) At(i int) Entry { return d.entries[i] }

// grow applies the >=1.5x growth policy, bounded by minCap/maxCap.
func (d *DrawList) grow(need int) bool {
	if len(d.entries)+need <= cap(d.entries) {
		return true
	}
	if d.Flags&FlagDoesNotOwnEntries != 0 {
		return false // views never reallocate
	}
	newCap := cap(d.entries)
	if newCap < d.minCap {
		newCap = d.minCap
	}
	for newCap < len(d.entries)+need {
		grown := newCap + newCap/2 // 1.5x
		if grown <= newCap {
			grown = newCap + need
		}
		newCap = grown
	}
	if newCap > d.maxCap {
		newCap = d.maxCap
	}
	if newCap < len(d.entries)+need {
		return false // hard maximum reached
	}
	next := make([]Entry, len(d.entries), newCap)
	copy(next, d.entries)
	d.entries = next
	return true
}

// Append adds a leading entry plus its continuations (already packed by
// the caller into cont) to the list, returning the index of the leading
// entry. On hitting the hard maximum it fails silently, returning the
// current count — intentional for embedded use (§4.1, §7): callers
// cannot distinguish a successful append of nothing from a dropped one,
// by design.
func (d *DrawList) Append(leading Entry, cont ...Entry) int {
	idx := len(d.entries)
	need := 1 + len(cont)
	if !d.grow(need) {
		return idx
	}
	d.entries = append(d.entries, leading)
	d.entries = append(d.entries, cont...)
	return idx
}

// Truncate drops all entries from pos onward, destroying them (§3
// "Entries ... destroyed by draw-list truncation or free").
func (d *DrawList) Truncate(pos int) {
	d.entries = d.entries[:pos]
	if d.BitpackPos > pos {
		d.BitpackPos = pos
	}
}

// ExpandBitpack, when passed to NewCursor, requests that compact opcodes be
// expanded to their canonical form during the walk.
type IterFlags uint32

const ExpandBitpack IterFlags = 1

// Cursor walks a DrawList entry-by-entry, advancing by 1+ContsForEntry(e)
// each step and transparently expanding bitpacked runs when requested.
type Cursor struct {
	list    *DrawList
	pos     int
	flags   IterFlags
	expand  []Entry // private expansion buffer
	expPos  int
}

// NewCursor returns a cursor positioned at the start of list.
func NewCursor(list *DrawList, flags IterFlags) *Cursor {
	return &Cursor{list: list, flags: flags}
}

// Pos returns the cursor's current position in the underlying list (not
// meaningful while draining an expansion buffer).
func (c *Cursor) Pos() int { return c.pos }

// Next returns the next leading entry and its continuations, or ok=false
// at end of list.
func (c *Cursor) Next() (e Entry, cont []Entry, ok bool) {
	if c.expPos < len(c.expand) {
		e = c.expand[c.expPos]
		c.expPos++
		return e, nil, true
	}
	if c.pos >= c.list.Len() {
		return Entry{}, nil, false
	}
	e = c.list.At(c.pos)

	if c.flags&ExpandBitpack != 0 && e.Op == OpRelLineToX4 {
		c.expand = expandRelLineToX4(c.list, c.pos, c.expand[:0])
		c.pos += 1 + ContsForEntry(e)
		if len(c.expand) > 0 {
			first := c.expand[0]
			c.expPos = 1
			return first, nil, true
		}
		return c.Next()
	}

	n := ContsForEntry(e)
	if c.pos+1+n > c.list.Len() {
		n = c.list.Len() - c.pos - 1
	}
	cont = c.list.entries[c.pos+1 : c.pos+1+n]
	c.pos += 1 + n
	return e, cont, true
}

// expandRelLineToX4 expands a bitpacked run of four relative line-tos
// back into four OpRelLineTo entries (§4.1's expand(bitpack(S)) == S
// contract, up to the 1/SUBDIV tolerance baked in at pack time).
func expandRelLineToX4(list *DrawList, pos int, out []Entry) []Entry {
	lead := list.At(pos)
	var cont Entry
	if pos+1 < list.Len() {
		cont = list.At(pos + 1)
	}
	deltas := [8]int8{
		lead.S8(0), lead.S8(1), lead.S8(2), lead.S8(3),
		lead.S8(4), lead.S8(5), lead.S8(6), lead.S8(7),
	}
	contDeltas := [8]int8{
		cont.S8(0), cont.S8(1), cont.S8(2), cont.S8(3),
		cont.S8(4), cont.S8(5), cont.S8(6), cont.S8(7),
	}
	all := append(deltas[:], contDeltas[:]...)
	for i := 0; i < 4; i++ {
		dx := float32(all[i*2]) / subdivScale
		dy := float32(all[i*2+1]) / subdivScale
		var ent Entry
		ent.Op = OpRelLineTo
		ent.SetF32(0, dx)
		ent.SetF32(1, dy)
		out = append(out, ent)
	}
	return out
}

// subdivScale matches the bitpack pass's magnitude budget: deltas are
// stored as signed bytes scaled by SUBDIV (see bitpack.go).
const subdivScale = float32(subdiv)
