package slide

import (
	"errors"
	"math"
	"slices"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

// SurfaceFactory creates an off-screen surface of the given pixel size.
type SurfaceFactory func(width, height int) *gg.Context

// tileEntry is the cached state of one slide from its previous frame.
// len(tiles) equals the number of tiles produced in that frame; identity
// holds one fingerprint per object, or nothing after a failed frame.
type tileEntry struct {
	resID    int64
	tiles    []*gg.ImageBuf
	identity []Fingerprint
}

// FrameStats describes how one frame's object layer was produced.
type FrameStats struct {
	Objects  int
	TileSize int
	Tiles    int
	Hits     int
	Misses   int
}

// TileStats contains cumulative tile cache statistics for monitoring.
type TileStats struct {
	// Entries is the number of slides with cached tiles.
	Entries int
	// Hits is the number of tiles blitted from cache.
	Hits uint64
	// Misses is the number of tiles redrawn.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first tile.
	HitRate float64
	// Draws is the number of object draw routine invocations.
	Draws uint64
	// Failures is the number of object fingerprint and draw routines that
	// failed.
	Failures uint64
}

// TileCache keeps, per slide, the composited tiles of the previous frame and
// the fingerprints they were drawn from.
//
// Objects are grouped in paint order into blocks of TileSize(n) objects.
// A block whose fingerprints are all unchanged, at an unchanged resolution
// and object count, is blitted from its cached tile. Any other block is
// redrawn onto a fresh off-screen surface.
//
// Entries are never evicted automatically; use Forget for deleted slides.
// TileCache is not safe for concurrent use.
type TileCache struct {
	registry   *Registry
	newSurface SurfaceFactory
	entries    map[model.SlideID]*tileEntry

	// Statistics (atomic for zero-allocation reads)
	hits     atomic.Uint64
	misses   atomic.Uint64
	draws    atomic.Uint64
	failures atomic.Uint64
}

// NewTileCache creates a tile cache dispatching through reg.
// If newSurface is nil, gg.NewContext is used.
func NewTileCache(reg *Registry, newSurface SurfaceFactory) *TileCache {
	if newSurface == nil {
		newSurface = defaultSurface
	}
	return &TileCache{
		registry:   reg,
		newSurface: newSurface,
		entries:    make(map[model.SlideID]*tileEntry),
	}
}

func defaultSurface(width, height int) *gg.Context {
	return gg.NewContext(width, height)
}

// TileSize returns the number of objects per tile for a slide of n objects:
// round(sqrt(n)), at least 1.
func TileSize(n int) int {
	size := int(math.Round(math.Sqrt(float64(n))))
	if size < 1 {
		return 1
	}
	return size
}

// Paint composites the objects of s onto dc, reusing unchanged tiles from
// the previous frame of s. The cache entry of s is replaced unconditionally.
//
// Object failures do not stop the pass: every other object still draws.
// The returned error joins one *ObjectError per failed fingerprint or draw
// routine.
func (c *TileCache) Paint(dc *gg.Context, res Resolution, s *model.Slide) (FrameStats, error) {
	objects := s.Objects
	n := len(objects)
	size := TileSize(n)
	resID := resolutionID(dc.Width(), dc.Height())

	var errs []error

	// unknown marks objects whose fingerprint failed; their block always
	// redraws.
	current := make([]Fingerprint, n)
	unknown := make([]bool, n)
	for i, obj := range objects {
		if obj == nil {
			current[i] = Fingerprint{}
			continue
		}
		fp, err := c.registry.fingerprint(res, obj)
		if err != nil {
			c.failures.Add(1)
			errs = append(errs, &ObjectError{Index: i, ID: obj.ID(), Kind: obj.Kind(), Err: err})
			unknown[i] = true
		}
		current[i] = fp
	}

	prev := c.entries[s.ID()]
	shapeMatches := prev != nil && prev.resID == resID && len(prev.identity) == n

	stats := FrameStats{Objects: n, TileSize: size}
	tiles := make([]*gg.ImageBuf, 0, (n+size-1)/size)

	for start := 0; start < n; start += size {
		end := min(start+size, n)
		k := start / size

		if shapeMatches && k < len(prev.tiles) && !slices.Contains(unknown[start:end], true) &&
			groupEqual(prev.identity[start:end], current[start:end]) {
			tile := prev.tiles[k]
			dc.DrawImage(tile, 0, 0)
			tiles = append(tiles, tile)
			stats.Hits++
			c.hits.Add(1)
			continue
		}

		stats.Misses++
		c.misses.Add(1)

		surface := c.newSurface(dc.Width(), dc.Height())
		for i := start; i < end; i++ {
			if err := c.drawObject(surface, res, i, objects[i]); err != nil {
				errs = append(errs, err)
			}
		}
		tile := gg.ImageBufFromImage(surface.Image())
		_ = surface.Close()

		dc.DrawImage(tile, 0, 0)
		tiles = append(tiles, tile)
	}

	stats.Tiles = len(tiles)
	c.entries[s.ID()] = &tileEntry{
		resID:    resID,
		tiles:    tiles,
		identity: current,
	}
	return stats, errors.Join(errs...)
}

// drawObject draws one object, converting a panic into an error.
// Objects without a renderer are logged and skipped.
func (c *TileCache) drawObject(dc *gg.Context, res Resolution, index int, obj model.Object) (err error) {
	if obj == nil {
		return nil
	}
	r, err := c.registry.Dispatch(obj)
	if err != nil {
		Logger().Warn("slide: skipping object", "index", index, "id", obj.ID(), "err", err)
		return nil
	}

	c.draws.Add(1)
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
		if err != nil {
			c.failures.Add(1)
			err = &ObjectError{Index: index, ID: obj.ID(), Kind: obj.Kind(), Err: err}
		}
	}()

	dc.Push()
	defer dc.Pop()
	return r.Draw(dc, res, obj)
}

// ResetIdentity drops the stored fingerprints of a slide but keeps its
// tiles, forcing every tile of the next frame to miss.
func (c *TileCache) ResetIdentity(id model.SlideID) {
	if e, ok := c.entries[id]; ok {
		e.identity = nil
	}
}

// Forget removes the cache entry of a slide.
func (c *TileCache) Forget(id model.SlideID) {
	delete(c.entries, id)
}

// Len returns the number of slides with a cache entry.
func (c *TileCache) Len() int {
	return len(c.entries)
}

// Stats returns cumulative statistics.
func (c *TileCache) Stats() TileStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return TileStats{
		Entries:  len(c.entries),
		Hits:     hits,
		Misses:   misses,
		HitRate:  hitRate,
		Draws:    c.draws.Load(),
		Failures: c.failures.Load(),
	}
}

// ResetStats resets all statistics counters to zero.
func (c *TileCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.draws.Store(0)
	c.failures.Store(0)
}
