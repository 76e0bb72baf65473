package observability

import (
	"context"
	"sync/atomic"
)

// Counters tallies stack and cache events. The zero value is ready to use
// and safe for concurrent draws.
type Counters struct {
	layouts     atomic.Int64
	separated   atomic.Int64
	draws       atomic.Int64
	drawn       atomic.Int64
	culled      atomic.Int64
	highlighted atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

var (
	_ StackHooks = (*Counters)(nil)
	_ CacheHooks = (*Counters)(nil)
)

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Layouts     int64 `json:"layouts"`
	Separated   int64 `json:"separated"`
	Draws       int64 `json:"draws"`
	Drawn       int64 `json:"pieces_drawn"`
	Culled      int64 `json:"pieces_culled"`
	Highlighted int64 `json:"highlights"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

func (c *Counters) OnLayout(_ string, _ int, separated bool) {
	c.layouts.Add(1)
	if separated {
		c.separated.Add(1)
	}
}

func (c *Counters) OnDraw(_ string, s DrawStats) {
	c.draws.Add(1)
	c.drawn.Add(int64(s.Drawn))
	c.culled.Add(int64(s.Culled))
	c.highlighted.Add(int64(s.Highlighted))
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.cacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) {}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Layouts:     c.layouts.Load(),
		Separated:   c.separated.Load(),
		Draws:       c.draws.Load(),
		Drawn:       c.drawn.Load(),
		Culled:      c.culled.Load(),
		Highlighted: c.highlighted.Load(),
		CacheHits:   c.cacheHits.Load(),
		CacheMisses: c.cacheMisses.Load(),
	}
}
