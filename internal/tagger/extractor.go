package tagger

import (
	"context"

	"github.com/hyperifyio/goautotags/internal/keywords"
	"github.com/hyperifyio/goautotags/internal/remote"
)

// Extractor is one keyword extraction strategy.
// Implementations must be safe for concurrent use and must not fail hard:
// "no candidates" is an empty slice.
type Extractor interface {
	Extract(ctx context.Context, content string) []string
}

// Factory builds the Extractor for a configuration.
type Factory func(cfg Config) Extractor

// Builtin is the local frequency ranker.
type Builtin struct{}

func (Builtin) Extract(_ context.Context, content string) []string {
	return keywords.Rank(content)
}

// Remote binds the completion-service adapter to a credential.
type Remote struct {
	Adapter    *remote.Extractor
	Credential string
}

func (r Remote) Extract(ctx context.Context, content string) []string {
	if r.Adapter == nil {
		return []string{}
	}
	return r.Adapter.Extract(ctx, content, r.Credential)
}

// none is used when a strategy cannot run for the given configuration.
type none struct{}

func (none) Extract(context.Context, string) []string { return []string{} }

// RemoteFactory returns a Factory for the remote strategy. Without a
// credential it yields an extractor that never touches the network.
func RemoteFactory(adapter *remote.Extractor) Factory {
	return func(cfg Config) Extractor {
		if !cfg.HasCredential() {
			return none{}
		}
		return Remote{Adapter: adapter, Credential: cfg.APIKey()}
	}
}

// BuiltinFactory returns the built-in ranker regardless of configuration.
func BuiltinFactory(Config) Extractor { return Builtin{} }
