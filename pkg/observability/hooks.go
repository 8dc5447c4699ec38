// Package observability reports what dressform does to an installed [Hooks]
// value: every draft, every rendered piece, every cache lookup on the
// artifact and manifest stores, and every API request.
//
// Nothing is reported until [Install] is called; the default is [Nop]. The
// CLI installs [LogHooks] when it runs at debug level. Embedders that want
// metrics implement [Hooks] themselves:
//
//	observability.Install(myMetrics{})
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Cache kinds.
const (
	KindArtifact = "artifact"
	KindManifest = "manifest"
)

// CacheOutcome is the result of one cache access.
type CacheOutcome string

const (
	CacheHit   CacheOutcome = "hit"
	CacheMiss  CacheOutcome = "miss"
	CacheStore CacheOutcome = "store"
)

// DraftEvent describes one bodice and sleeve draft.
type DraftEvent struct {
	Figure   string
	Split    string
	Warnings []string // warning codes
	Duration time.Duration
	Err      error
}

// RenderEvent describes the rendering of one piece in every requested format.
type RenderEvent struct {
	Piece     string
	Formats   []string
	Artifacts int
	Duration  time.Duration
	Err       error
}

// CacheEvent describes one access to the artifact or manifest store.
type CacheEvent struct {
	Kind    string
	Outcome CacheOutcome
	Bytes   int
}

// RequestEvent describes one served API request. Route is the chi route
// pattern when the request matched one. Err is the handler error, if any.
type RequestEvent struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
	Err      error
}

// Hooks receives events. Implementations must be safe for concurrent use;
// batch runs and the API report from many goroutines.
type Hooks interface {
	Drafted(ctx context.Context, e DraftEvent)
	Rendered(ctx context.Context, e RenderEvent)
	Cached(ctx context.Context, e CacheEvent)
	Served(ctx context.Context, e RequestEvent)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Drafted(context.Context, DraftEvent)    {}
func (Nop) Rendered(context.Context, RenderEvent)  {}
func (Nop) Cached(context.Context, CacheEvent)     {}
func (Nop) Served(context.Context, RequestEvent)  {}

type installed struct{ h Hooks }

var current atomic.Pointer[installed]

// Install makes h receive all subsequent events. A nil h restores [Nop].
func Install(h Hooks) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&installed{h: h})
}

// Current returns the installed hooks.
func Current() Hooks {
	if in := current.Load(); in != nil {
		return in.h
	}
	return Nop{}
}

// Reset restores [Nop].
func Reset() { current.Store(nil) }

// LogHooks writes every event to Logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

func (l LogHooks) Drafted(_ context.Context, e DraftEvent) {
	l.Logger.Debug("event: draft", withErr(e.Err,
		"figure", e.Figure, "split", e.Split, "warnings", e.Warnings, "duration", e.Duration)...)
}

func (l LogHooks) Rendered(_ context.Context, e RenderEvent) {
	l.Logger.Debug("event: render", withErr(e.Err,
		"piece", e.Piece, "formats", e.Formats, "artifacts", e.Artifacts, "duration", e.Duration)...)
}

func (l LogHooks) Cached(_ context.Context, e CacheEvent) {
	l.Logger.Debug("event: cache", "kind", e.Kind, "outcome", e.Outcome, "bytes", e.Bytes)
}

func (l LogHooks) Served(_ context.Context, e RequestEvent) {
	l.Logger.Debug("event: request", withErr(e.Err,
		"method", e.Method, "route", e.Route, "status", e.Status, "duration", e.Duration)...)
}

func withErr(err error, kv ...any) []any {
	if err != nil {
		kv = append(kv, "error", err)
	}
	return kv
}
