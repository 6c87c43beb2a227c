// Package remote asks an OpenAI-compatible completion service for keywords.
// Every failure is soft: the caller receives an empty list and the cause is
// logged for diagnostics.
package remote

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goautotags/internal/llm"
)

const (
	DefaultModel       = "gpt-3.5-turbo-instruct"
	DefaultMaxTokens   = 60
	DefaultTemperature = float32(0.5)
	DefaultTimeout     = 60 * time.Second

	promptPrefix = "Extract relevant keywords from the following text:\n\n"
)

// ClientFactory builds a completion client bound to one credential.
type ClientFactory func(credential string) llm.Client

// Extractor sends content to a completion endpoint and splits the reply into
// keywords. The zero value talks to the public OpenAI API with defaults.
type Extractor struct {
	// BaseURL of the OpenAI-compatible API; empty uses llm.DefaultBaseURL.
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32

	// Timeout bounds the whole round trip. Zero means DefaultTimeout.
	Timeout time.Duration

	// NewClient overrides client construction, mainly for tests.
	NewClient ClientFactory
}

// Prompt returns the instruction sent for content.
func Prompt(content string) string {
	return promptPrefix + content
}

// Extract returns the keywords the service proposes for content, in the
// order it produced them. No ranking, filtering or de-duplication is applied.
// An empty credential returns immediately without any network activity.
func (e *Extractor) Extract(ctx context.Context, content, credential string) []string {
	if strings.TrimSpace(credential) == "" {
		return []string{}
	}
	timeout := e.timeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.CompletionRequest{
		Model:       e.ModelName(),
		Prompt:      Prompt(content),
		MaxTokens:   e.maxTokens(),
		N:           1,
		Temperature: e.temperature(),
	}
	resp, err := e.client(credential, timeout).CreateCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("model", req.Model).Msg("remote keyword extraction failed")
		return []string{}
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("model", req.Model).Msg("remote keyword extraction returned no choices")
		return []string{}
	}
	tags := ParseKeywords(resp.Choices[0].Text)
	log.Debug().Int("count", len(tags)).Msg("remote keywords parsed")
	return tags
}

// ParseKeywords splits a comma-separated model reply into trimmed, non-empty pieces.
func ParseKeywords(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (e *Extractor) client(credential string, timeout time.Duration) llm.Client {
	if e.NewClient != nil {
		return e.NewClient(credential)
	}
	return llm.NewOpenAIClient(e.BaseURL, credential, &http.Client{Timeout: timeout})
}

// ModelName returns the model requests are sent to.
func (e *Extractor) ModelName() string {
	if strings.TrimSpace(e.Model) != "" {
		return e.Model
	}
	return DefaultModel
}

func (e *Extractor) maxTokens() int {
	if e.MaxTokens > 0 {
		return e.MaxTokens
	}
	return DefaultMaxTokens
}

func (e *Extractor) temperature() float32 {
	if e.Temperature > 0 {
		return e.Temperature
	}
	return DefaultTemperature
}

func (e *Extractor) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}
