// Package observability lets callers watch layout, painting, rendering and
// caching without the libraries depending on a metrics backend.
//
// Hooks are process-wide and default to no-ops. Register replacements once
// at startup:
//
//	counters := &observability.Counters{}
//	observability.SetStackHooks(counters)
//	observability.SetCacheHooks(counters)
//
// Stack hooks fire on the paint path, so implementations must return quickly
// and must not draw.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// DrawStats summarizes one stack draw call.
type DrawStats struct {
	Mode        string // "two-pass" or "single-pass"
	Pieces      int    // pieces in the stack
	Drawn       int    // pieces painted
	Culled      int    // visible pieces skipped by the viewport check
	Highlighted int    // highlighter invocations
}

// StackHooks receives events from the stack renderers.
type StackHooks interface {
	// OnLayout records a layout computation. separated reports whether
	// location markers were moved aside.
	OnLayout(stackID string, pieces int, separated bool)
	OnDraw(stackID string, stats DrawStats)
}

// PipelineHooks receives events from the scene rendering pipeline.
type PipelineHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is one of the
// cache.KeyType constants.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

type NoopStackHooks struct{}

func (NoopStackHooks) OnLayout(string, int, bool) {}
func (NoopStackHooks) OnDraw(string, DrawStats)   {}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook. Loads are lock free since stack hooks are
// read on every draw.
type slot[T any] struct {
	p   atomic.Pointer[T]
	def T
}

func (s *slot[T]) get() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return s.def
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }
func (s *slot[T]) reset()  { s.p.Store(nil) }

var (
	stackSlot    = slot[StackHooks]{def: NoopStackHooks{}}
	pipelineSlot = slot[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{def: NoopCacheHooks{}}
)

// SetStackHooks registers h. A nil h is ignored.
func SetStackHooks(h StackHooks) {
	if h != nil {
		stackSlot.set(h)
	}
}

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

func Stack() StackHooks       { return stackSlot.get() }
func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	stackSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
}
