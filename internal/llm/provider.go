package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is the OpenAI API root used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client is the minimal interface needed to call a text-completion model.
// It mirrors go-openai's CreateCompletion so that any OpenAI-compatible
// backend, or a test double, can be plugged in.
type Client interface {
	CreateCompletion(ctx context.Context, request openai.CompletionRequest) (openai.CompletionResponse, error)
}

// ModelLister is an optional capability that allows listing available models.
// Callers should use a type assertion to detect availability.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateCompletion(ctx context.Context, request openai.CompletionRequest) (openai.CompletionResponse, error) {
	return p.Inner.CreateCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
	return p.Inner.ListModels(ctx)
}

// NewOpenAIClient builds a provider for an OpenAI-compatible server. The
// credential is sent as a bearer token. An empty baseURL selects
// DefaultBaseURL; a nil httpClient selects http.DefaultClient.
func NewOpenAIClient(baseURL, credential string, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(credential)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}
