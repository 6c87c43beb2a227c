// Package tagger picks an extraction strategy for a configuration and
// returns candidate tags for a piece of content.
package tagger

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goautotags/internal/remote"
)

// Dispatcher maps methods to strategy factories. Register all strategies
// before the Dispatcher is shared; Extract itself is safe for concurrent use.
type Dispatcher struct {
	factories map[Method]Factory
}

// New returns a Dispatcher with the built-in and remote strategies. A nil
// adapter selects a default remote.Extractor.
func New(adapter *remote.Extractor) *Dispatcher {
	if adapter == nil {
		adapter = &remote.Extractor{}
	}
	d := &Dispatcher{factories: make(map[Method]Factory, 2)}
	d.Register(MethodBuiltin, BuiltinFactory)
	d.Register(MethodRemote, RemoteFactory(adapter))
	return d
}

// Register adds or replaces the strategy for m.
func (d *Dispatcher) Register(m Method, f Factory) {
	d.factories[m] = f
}

// Supports reports whether a strategy is registered for m.
func (d *Dispatcher) Supports(m Method) bool {
	_, ok := d.factories[m]
	return ok
}

// Extract returns candidate tags for content using the strategy selected by
// cfg. Strategies are never mixed: an empty remote result is returned as is.
// An unknown method yields an empty result.
func (d *Dispatcher) Extract(ctx context.Context, content string, cfg Config) []string {
	f, ok := d.factories[cfg.Method()]
	if !ok {
		log.Warn().Str("method", string(cfg.Method())).Msg("unsupported extraction method")
		return []string{}
	}
	return normalize(f(cfg).Extract(ctx, content))
}

// normalize guarantees a non-nil slice owned by the caller. Order and
// duplicates are preserved.
func normalize(tags []string) []string {
	out := make([]string, 0, len(tags))
	return append(out, tags...)
}
