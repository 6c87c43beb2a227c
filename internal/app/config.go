package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goautotags/internal/remote"
	"github.com/hyperifyio/goautotags/internal/tagger"
)

// Config holds runtime configuration for the host application.
type Config struct {
	// Extraction
	Method    string
	APIKey    string
	AutoApply bool

	// LLM
	LLMBaseURL     string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float32
	LLMTimeout     time.Duration

	// CLI / server
	InputPath  string
	JSONOutput bool
	ListenAddr string
	Verbose    bool
}

// ExtractionConfig validates the method selector once and returns the
// immutable per-call configuration for the dispatcher. An unsupported
// selector is logged and passed through; the dispatcher maps it to an empty
// result.
func (c Config) ExtractionConfig() tagger.Config {
	m, err := tagger.ParseMethod(c.Method)
	if err != nil {
		log.Warn().Err(err).Msg("extraction method not supported; no tags will be suggested")
	}
	return tagger.NewConfig(m, c.APIKey, c.AutoApply)
}

// RemoteExtractor returns the completion-service adapter described by c.
func (c Config) RemoteExtractor() *remote.Extractor {
	return &remote.Extractor{
		BaseURL:     c.LLMBaseURL,
		Model:       c.LLMModel,
		MaxTokens:   c.LLMMaxTokens,
		Temperature: c.LLMTemperature,
		Timeout:     c.LLMTimeout,
	}
}
