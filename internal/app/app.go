package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goautotags/internal/llm"
	"github.com/hyperifyio/goautotags/internal/remote"
	"github.com/hyperifyio/goautotags/internal/tagger"
)

// PostTypePost is the only document type the save hook tags.
const PostTypePost = "post"

var (
	// ErrEmptyContent is returned when there is no text to extract from.
	ErrEmptyContent = errors.New("post content is empty")
	// ErrNoTags is returned when extraction produced no candidates.
	ErrNoTags = errors.New("no suggested tags found")
	// ErrNoCredential is returned by CheckRemote when no API key is configured.
	ErrNoCredential = errors.New("remote method selected but no API key configured")
	// ErrModelNotListed is returned by CheckRemote when the service does not offer the model.
	ErrModelNotListed = errors.New("model not listed by completion service")
)

// checkTimeout bounds the model listing done by CheckRemote.
const checkTimeout = 10 * time.Second

// Post is the part of a document the save hook needs.
type Post struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
	// SelectedTags is set when the editor submitted an explicit choice from
	// the suggestion box. Nil means no choice was submitted.
	SelectedTags []string `json:"selected_tags,omitempty"`
}

// App wires configuration, the dispatcher and metrics for the CLI and server.
type App struct {
	cfg        Config
	extraction tagger.Config
	remote     *remote.Extractor
	dispatcher *tagger.Dispatcher
	metrics    *Metrics
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	adapter := cfg.RemoteExtractor()
	httpClient := newLLMHTTPClient(cfg.LLMTimeout)
	adapter.NewClient = func(credential string) llm.Client {
		return llm.NewOpenAIClient(adapter.BaseURL, credential, httpClient)
	}

	a := &App{
		cfg:        cfg,
		extraction: cfg.ExtractionConfig(),
		remote:     adapter,
		dispatcher: tagger.New(adapter),
		metrics:    NewMetrics(),
	}
	log.Debug().Stringer("extraction", a.extraction).Msg("app configured")
	return a, nil
}

// Suggest returns tag candidates for content. Empty content and an empty
// result are reported with ErrEmptyContent and ErrNoTags; neither is a failure
// of the extraction itself.
func (a *App) Suggest(ctx context.Context, content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	tags := a.extract(ctx, content)
	if len(tags) == 0 {
		return tags, ErrNoTags
	}
	return tags, nil
}

// TagsOnSave returns the tags to append to p when it is saved. An explicit
// selection from the editor wins; otherwise tags are extracted only when
// auto-apply is enabled.
func (a *App) TagsOnSave(ctx context.Context, p Post) []string {
	if p.Type != PostTypePost {
		return []string{}
	}
	if p.SelectedTags != nil {
		out := make([]string, 0, len(p.SelectedTags))
		for _, t := range p.SelectedTags {
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if !a.extraction.AutoApply() {
		return []string{}
	}
	return a.extract(ctx, p.Content)
}

// CheckRemote confirms that the completion service accepts the configured
// credential and lists the configured model. It is a no-op for methods other
// than remote.
func (a *App) CheckRemote(ctx context.Context) error {
	if a.extraction.Method() != tagger.MethodRemote {
		return nil
	}
	if !a.extraction.HasCredential() {
		return ErrNoCredential
	}
	lister, ok := a.remote.NewClient(a.extraction.APIKey()).(llm.ModelLister)
	if !ok {
		return errors.New("completion client cannot list models")
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	models, err := lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	want := a.remote.ModelName()
	for _, m := range models.Models {
		if m.ID == want {
			log.Debug().Str("model", want).Int("available", len(models.Models)).Msg("completion model available")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModelNotListed, want)
}

func (a *App) extract(ctx context.Context, content string) []string {
	start := time.Now()
	tags := a.dispatcher.Extract(ctx, content, a.extraction)
	elapsed := time.Since(start)
	a.metrics.observe(a.extraction.Method(), len(tags), elapsed)
	log.Debug().Str("method", string(a.extraction.Method())).Int("tags", len(tags)).Dur("elapsed", elapsed).Msg("extracted tags")
	return tags
}

// Run reads one document from the configured input (stdin for "" or "-")
// and writes its suggested tags to out, one per line or as a JSON array.
func (a *App) Run(ctx context.Context, stdin io.Reader, out io.Writer) error {
	content, err := a.readInput(stdin)
	if err != nil {
		return err
	}
	tags, err := a.Suggest(ctx, content)
	switch {
	case errors.Is(err, ErrEmptyContent):
		return err
	case errors.Is(err, ErrNoTags):
		log.Info().Msg("No suggested tags found.")
	}
	if a.cfg.JSONOutput {
		if tags == nil {
			tags = []string{}
		}
		return json.NewEncoder(out).Encode(tags)
	}
	for _, t := range tags {
		if _, err := fmt.Fprintln(out, t); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func (a *App) readInput(stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if p := strings.TrimSpace(a.cfg.InputPath); p == "" || p == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(p)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
