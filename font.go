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
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// Font wraps an sfnt.Font to supply exactly what the text commands need:
// advance widths and kerning pairs for glyph placement. Shaping, hinting
// and glyph-outline rasterization are out of scope here — glyphs are
// positioned by the caller (or a higher-level shaping library) and
// reach this engine as already-resolved glyph IDs plus pen positions via
// OpGlyph, matching the "glyph outlines are opaque paths to this engine"
// non-goal.
type Font struct {
	sf *sfnt.Font

	unitsPerEm float64
	widthCache map[glyph.ID]float64
}

// LoadFont wraps an already-parsed sfnt.Font.
func LoadFont(sf *sfnt.Font) *Font {
	upm := float64(sf.UnitsPerEm)
	if upm <= 0 {
		upm = 1000
	}
	return &Font{sf: sf, unitsPerEm: upm, widthCache: make(map[glyph.ID]float64)}
}

// GlyphIndex resolves a rune to a glyph ID via the font's cmap.
func (f *Font) GlyphIndex(r rune) glyph.ID {
	return f.sf.CMap.Lookup(r)
}

// AdvanceWidth returns gid's advance width in font-design units scaled to
// a 1-em-unit em square (multiply by FontSize to get device units),
// caching per glyph since a text run re-queries the same glyphs often.
func (f *Font) AdvanceWidth(gid glyph.ID) float64 {
	if w, ok := f.widthCache[gid]; ok {
		return w
	}
	w := float64(f.sf.GlyphWidth(gid)) / f.unitsPerEm
	f.widthCache[gid] = w
	return w
}

// KernPair returns the additional advance (in em units) to apply between
// consecutive glyphs left, right, or 0 if the font has no kerning data
// for that pair (§4.2's "text run" operation consults this per adjacent
// glyph pair before advancing the pen).
func (f *Font) KernPair(left, right glyph.ID) float64 {
	if f.sf.Kern == nil {
		return 0
	}
	adj, ok := f.sf.Kern.Lookup(left, right)
	if !ok {
		return 0
	}
	return float64(adj) / f.unitsPerEm
}

// LayoutRun positions a sequence of already-resolved glyph IDs along the
// baseline starting at (x, y), applying kerning between consecutive
// glyphs and scaling advances by fontSize, returning each glyph's pen
// position and the run's total advance.
func (f *Font) LayoutRun(gids []glyph.ID, x, y, fontSize float64) (positions []struct{ X, Y float64 }, totalAdvance float64) {
	positions = make([]struct{ X, Y float64 }, len(gids))
	pen := x
	for i, gid := range gids {
		if i > 0 {
			pen += f.KernPair(gids[i-1], gid) * fontSize
		}
		positions[i] = struct{ X, Y float64 }{pen, y}
		pen += f.AdvanceWidth(gid) * fontSize
	}
	return positions, pen - x
}
