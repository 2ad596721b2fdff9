// Package observability provides hooks for metrics and tracing.
//
// Hooks let a host attach instrumentation without the chart packages
// depending on a metrics backend. Register implementations once at startup;
// libraries call the registered hooks and fall back to no-ops otherwise.
//
// # Usage
//
//	func main() {
//	    observability.SetChartHooks(&myChartHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Emitting an event:
//
//	observability.Chart().OnUpdate(ctx, observability.UpdateStats{Entering: 100})
package observability

import (
	"context"
	"sync"
	"time"
)

// UpdateStats summarises one chart update.
type UpdateStats struct {
	Value      float64
	Entering   int
	Persisting int
	Exiting    int
	Duration   time.Duration
}

// ChartHooks receives events from chart controllers.
type ChartHooks interface {
	// OnUpdate records an update that emitted a frame.
	OnUpdate(ctx context.Context, stats UpdateStats)

	// OnSkip records an update ignored for lack of data.
	OnSkip(ctx context.Context)

	// OnDestroy records a controller teardown.
	OnDestroy(ctx context.Context)
}

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnUpdate(context.Context, UpdateStats) {}
func (NoopChartHooks) OnSkip(context.Context)                {}
func (NoopChartHooks) OnDestroy(context.Context)             {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	chartHooks  ChartHooks  = NoopChartHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetChartHooks registers custom chart hooks. Nil is ignored.
func SetChartHooks(h ChartHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		chartHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Chart returns the registered chart hooks.
func Chart() ChartHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return chartHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	chartHooks = NoopChartHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
