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
	"math"
)

// HashRows and HashCols are the default tile grid a TileHasher folds
// per-pixel damage into (§4.10).
const (
	HashRows = 8
	HashCols = 8
)

// TileHasher accumulates a per-tile fingerprint of everything drawn into
// a frame, so the scheduler can skip recompositing tiles whose hash
// didn't change since the previous frame (§4.10). Each tile's hash is a
// running XOR of SHA-1 digests of the (opcode, operands) bytes that
// touched it, rather than a hash of final pixels: a no-op redraw of
// identical content is detected cheaply without re-running the
// rasterizer. XOR is order-independent, so two frames that draw the same
// shapes in a different order hash the same and are not reported dirty.
type TileHasher struct {
	rows, cols int
	tileW, tileH float64
	current  [][20]byte
	previous [][20]byte
}

// NewTileHasher returns a hasher dividing a canvasW x canvasH surface
// into rows x cols tiles.
func NewTileHasher(canvasW, canvasH float64, rows, cols int) *TileHasher {
	if rows <= 0 {
		rows = HashRows
	}
	if cols <= 0 {
		cols = HashCols
	}
	h := &TileHasher{
		rows: rows, cols: cols,
		tileW: canvasW / float64(cols),
		tileH: canvasH / float64(rows),
		current:  make([][20]byte, rows*cols),
		previous: make([][20]byte, rows*cols),
	}
	return h
}

// BeginFrame rotates the current accumulator into previous and clears
// the working set for a new frame.
func (h *TileHasher) BeginFrame() {
	copy(h.previous, h.current)
	for i := range h.current {
		h.current[i] = [20]byte{}
	}
}

func (h *TileHasher) tileIndex(x, y float64) (int, bool) {
	col := int(x / tileOrOne(h.tileW))
	row := int(y / tileOrOne(h.tileH))
	if col < 0 || col >= h.cols || row < 0 || row >= h.rows {
		return 0, false
	}
	return row*h.cols + col, true
}

func tileOrOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// Touch XORs payload's digest into every tile whose bounding box
// [x0,y0]-[x1,y1] overlaps.
func (h *TileHasher) Touch(x0, y0, x1, y1 float64, payload []byte) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	colMin := max(int(math.Floor(x0/tileOrOne(h.tileW))), 0)
	colMax := min(int(math.Floor(x1/tileOrOne(h.tileW))), h.cols-1)
	rowMin := max(int(math.Floor(y0/tileOrOne(h.tileH))), 0)
	rowMax := min(int(math.Floor(y1/tileOrOne(h.tileH))), h.rows-1)
	if colMin > colMax || rowMin > rowMax {
		return // the box lies entirely outside the surface
	}
	digest := sha1.Sum(payload)
	for r := rowMin; r <= rowMax; r++ {
		for c := colMin; c <= colMax; c++ {
			idx := r*h.cols + c
			for i := range digest {
				h.current[idx][i] ^= digest[i]
			}
		}
	}
}

// Dirty reports whether the tile at (row, col) changed since the
// previous frame.
func (h *TileHasher) Dirty(row, col int) bool {
	idx := row*h.cols + col
	return h.current[idx] != h.previous[idx]
}

// DirtyTiles returns the (row, col) pairs of every tile that changed.
func (h *TileHasher) DirtyTiles() [][2]int {
	var out [][2]int
	for r := 0; r < h.rows; r++ {
		for c := 0; c < h.cols; c++ {
			if h.Dirty(r, c) {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}
