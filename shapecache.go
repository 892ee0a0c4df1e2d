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

// defaultShapeCacheSlots is the fixed slot count a ShapeCache allocates
// by default (§3/§4.6).
const defaultShapeCacheSlots = 160

// maxShapeCacheMaskBytes bounds the device-space bounding box a fill is
// willing to cache a coverage mask for; paths covering more pixels than
// this are always rasterized fresh rather than growing an unbounded mask.
const maxShapeCacheMaskBytes = 512 * 512

// coverageByteFromFloat quantizes a [0,1] coverage value to a single
// byte for storage in a cached mask.
func coverageByteFromFloat(cv float32) byte {
	if cv <= 0 {
		return 0
	}
	if cv >= 1 {
		return 255
	}
	return byte(cv*255 + 0.5)
}

// shapeCacheEntry holds one rasterized, reusable coverage mask: the
// shape's identity hash, its footprint, a use counter that each cache hit
// bumps (Store overwrites a slot without consulting it), and the packed
// coverage bytes themselves.
type shapeCacheEntry struct {
	hash          uint64
	width, height int
	uses          int
	data          []byte
	occupied      bool
}

// ShapeCache stores rasterized masks for repeatedly-drawn identical
// shapes (same path, same fill rule, same sub-pixel phase) keyed by hash,
// open-addressed into a fixed slot table, and is disabled by default
// since most callers redraw few shapes often enough to amortize the
// lookup cost (§4.6).
type ShapeCache struct {
	slots   []shapeCacheEntry
	enabled bool
}

// NewShapeCache returns a cache with the default slot count, disabled
// until Enable is called.
func NewShapeCache() *ShapeCache {
	return &ShapeCache{slots: make([]shapeCacheEntry, defaultShapeCacheSlots)}
}

// Enable turns shape caching on or off.
func (c *ShapeCache) Enable(on bool) { c.enabled = on }

// Enabled reports whether the cache is currently active.
func (c *ShapeCache) Enabled() bool { return c.enabled }

func (c *ShapeCache) slotFor(hash uint64) int {
	return int(hash % uint64(len(c.slots)))
}

// Lookup returns the cached mask for hash/width/height if present,
// bumping its use counter, or (nil, false) on a miss.
func (c *ShapeCache) Lookup(hash uint64, width, height int) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	i := c.slotFor(hash)
	e := &c.slots[i]
	if e.occupied && e.hash == hash && e.width == width && e.height == height {
		e.uses++
		return e.data, true
	}
	return nil, false
}

// Store inserts a freshly-rasterized mask, evicting whatever previously
// occupied the slot (open addressing with a single probe: a cache miss on
// a collision simply re-rasterizes, it never chains, trading a few extra
// misses for O(1) eviction).
func (c *ShapeCache) Store(hash uint64, width, height int, data []byte) {
	if !c.enabled {
		return
	}
	i := c.slotFor(hash)
	c.slots[i] = shapeCacheEntry{
		hash: hash, width: width, height: height,
		data: data, occupied: true, uses: 1,
	}
}

// Resize changes the slot count, evicting every entry (§4.6: "eviction on
// resize" — entries are keyed by `hash % len(slots)`, so a resize
// invalidates the whole table rather than rehash it in place).
func (c *ShapeCache) Resize(slots int) {
	if slots <= 0 {
		slots = defaultShapeCacheSlots
	}
	c.slots = make([]shapeCacheEntry, slots)
}
