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
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewSchedulerDefaults(t *testing.T) {
	s := NewScheduler(0, 0, 0)
	if s.TileWidth != 64 || s.TileHeight != 64 {
		t.Errorf("default tile size = %dx%d, want 64x64", s.TileWidth, s.TileHeight)
	}
	if s.Workers <= 0 {
		t.Errorf("Workers = %d, want > 0", s.Workers)
	}
}

func TestSchedulerTilesCoversCanvas(t *testing.T) {
	s := NewScheduler(10, 10, 1)
	tiles := s.Tiles(25, 15)
	if len(tiles) != 3*2 {
		t.Fatalf("len(tiles) = %d, want 6", len(tiles))
	}
	// last tile in a row should be clipped to the canvas width
	var foundClipped bool
	for _, tl := range tiles {
		if tl.X1 == 25 && tl.X1-tl.X0 != 10 {
			foundClipped = true
		}
	}
	if !foundClipped {
		t.Error("expected the rightmost column of tiles to be clipped to canvas width")
	}
}

func TestSchedulerRunVisitsEveryTile(t *testing.T) {
	s := NewScheduler(10, 10, 4)
	tiles := s.Tiles(20, 20)

	var mu sync.Mutex
	seen := make(map[[2]int]bool)
	s.Run(tiles, func(tl Tile) {
		mu.Lock()
		seen[[2]int{tl.Row, tl.Col}] = true
		mu.Unlock()
	}, nil)

	if len(seen) != len(tiles) {
		t.Errorf("visited %d tiles, want %d", len(seen), len(tiles))
	}
}

func TestSchedulerRunSkipsNonDirtyTiles(t *testing.T) {
	s := NewScheduler(10, 10, 2)
	tiles := s.Tiles(20, 20)

	var count int32
	s.Run(tiles, func(tl Tile) {
		atomic.AddInt32(&count, 1)
	}, func(row, col int) bool {
		return row == 0 && col == 0
	})

	if count != 1 {
		t.Errorf("dirty-filtered run visited %d tiles, want 1", count)
	}
}
