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
	"runtime"
	"sync"
)

// Tile is one rectangular piece of the output surface a worker renders
// independently (§5).
type Tile struct {
	Row, Col      int
	X0, Y0, X1, Y1 int
}

// TileJob is one unit of work a Scheduler hands to a worker: render the
// draw list's entries (already filtered to those overlapping Tile) into
// the tile.
type TileJob struct {
	Tile Tile
	Run  func(tile Tile)
}

// Scheduler partitions a canvas into a tile grid and runs each tile's
// job on a bounded worker pool (§5's concurrency/resource model: work is
// tile-parallel, with no shared mutable rasterizer state crossing
// goroutine boundaries — each worker gets its own Rasterizer).
type Scheduler struct {
	TileWidth, TileHeight int
	Workers               int
}

// NewScheduler returns a scheduler with the given tile size, defaulting
// Workers to GOMAXPROCS when workers <= 0.
func NewScheduler(tileWidth, tileHeight, workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if tileWidth <= 0 {
		tileWidth = 64
	}
	if tileHeight <= 0 {
		tileHeight = 64
	}
	return &Scheduler{TileWidth: tileWidth, TileHeight: tileHeight, Workers: workers}
}

// Tiles returns the tile grid covering a canvasW x canvasH surface.
func (s *Scheduler) Tiles(canvasW, canvasH int) []Tile {
	var tiles []Tile
	rows := (canvasH + s.TileHeight - 1) / s.TileHeight
	cols := (canvasW + s.TileWidth - 1) / s.TileWidth
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0, y0 := c*s.TileWidth, r*s.TileHeight
			x1, y1 := x0+s.TileWidth, y0+s.TileHeight
			if x1 > canvasW {
				x1 = canvasW
			}
			if y1 > canvasH {
				y1 = canvasH
			}
			tiles = append(tiles, Tile{Row: r, Col: c, X0: x0, Y0: y0, X1: x1, Y1: y1})
		}
	}
	return tiles
}

// Run dispatches tiles to Workers goroutines and blocks until every tile's
// job has completed. A nil hasher/dirty filter runs every tile; when
// dirty is non-nil, only tiles for which it returns true are scheduled —
// the hook a caller wires to TileHasher.Dirty to skip unchanged tiles.
func (s *Scheduler) Run(tiles []Tile, render func(tile Tile), dirty func(row, col int) bool) {
	jobs := make(chan Tile)
	var wg sync.WaitGroup
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				render(t)
			}
		}()
	}
	for _, t := range tiles {
		if dirty != nil && !dirty(t.Row, t.Col) {
			continue
		}
		jobs <- t
	}
	close(jobs)
	wg.Wait()
}
