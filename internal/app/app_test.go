package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
)

// completionStub serves /v1/completions with a fixed reply and counts calls.
func completionStub(t *testing.T, text string) (string, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{{"text": text}}})
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", &calls
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{LLMMaxTokens: -5}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSuggest_Builtin(t *testing.T) {
	a := newTestApp(t, Config{Method: "builtin"})
	tags, err := a.Suggest(context.Background(), "<p>testing testing testing coding coding sample</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"testing", "coding", "sample"}) {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestSuggest_EmptyAndNoTags(t *testing.T) {
	a := newTestApp(t, Config{})
	if _, err := a.Suggest(context.Background(), "  \n"); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	tags, err := a.Suggest(context.Background(), "the it is a to")
	if !errors.Is(err, ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestSuggest_RemoteUsesCompletionService(t *testing.T) {
	base, calls := completionStub(t, "golang, concurrency")
	a := newTestApp(t, Config{Method: "remote", APIKey: "sk-test", LLMBaseURL: base})
	tags, err := a.Suggest(context.Background(), "Go makes concurrency easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"golang", "concurrency"}) {
		t.Fatalf("unexpected tags %v", tags)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected one remote call, got %d", *calls)
	}
}

func TestSuggest_RemoteWithoutKeyMakesNoCall(t *testing.T) {
	base, calls := completionStub(t, "golang")
	a := newTestApp(t, Config{Method: "remote", LLMBaseURL: base})
	if _, err := a.Suggest(context.Background(), "testing testing coding"); !errors.Is(err, ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
	if atomic.LoadInt32(calls) != 0 {
		t.Fatalf("expected no remote call")
	}
}

func TestTagsOnSave(t *testing.T) {
	ctx := context.Background()
	content := "zebra zebra yoga yoga"

	off := newTestApp(t, Config{})
	if got := off.TagsOnSave(ctx, Post{Type: "post", Content: content}); len(got) != 0 {
		t.Fatalf("auto apply disabled should add nothing, got %v", got)
	}

	on := newTestApp(t, Config{AutoApply: true})
	if got := on.TagsOnSave(ctx, Post{Type: "post", Content: content}); !reflect.DeepEqual(got, []string{"zebra", "yoga"}) {
		t.Fatalf("unexpected auto tags %v", got)
	}
	if got := on.TagsOnSave(ctx, Post{Type: "page", Content: content}); len(got) != 0 {
		t.Fatalf("non-post types must be ignored, got %v", got)
	}
	selected := Post{Type: "post", Content: content, SelectedTags: []string{" picked ", "", "other"}}
	if got := off.TagsOnSave(ctx, selected); !reflect.DeepEqual(got, []string{"picked", "other"}) {
		t.Fatalf("selected tags should be applied verbatim, got %v", got)
	}
	if got := on.TagsOnSave(ctx, Post{Type: "post", Content: content, SelectedTags: []string{}}); len(got) != 0 {
		t.Fatalf("an empty explicit selection adds nothing, got %v", got)
	}
}

func TestRun_PrintsTagsFromFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "post.html")
	if err := os.WriteFile(in, []byte("<h1>Caching</h1><p>caching layers and caching keys</p>"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	a := newTestApp(t, Config{InputPath: in})
	var out bytes.Buffer
	if err := a.Run(context.Background(), strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "caching\nlayers\nkeys\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_JSONFromStdin(t *testing.T) {
	a := newTestApp(t, Config{InputPath: "-", JSONOutput: true})
	var out bytes.Buffer
	if err := a.Run(context.Background(), strings.NewReader("the it is a to"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out.String())
	}
}

func TestRun_EmptyInputIsError(t *testing.T) {
	a := newTestApp(t, Config{})
	if err := a.Run(context.Background(), strings.NewReader(""), &bytes.Buffer{}); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

// modelListStub serves /v1/models with the given model ids.
func modelListStub(t *testing.T, ids ...string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		data := make([]map[string]string, 0, len(ids))
		for _, id := range ids {
			data = append(data, map[string]string{"id": id, "object": "model"})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func TestCheckRemote(t *testing.T) {
	ctx := context.Background()
	base := modelListStub(t, "other", "stub-model")

	if err := newTestApp(t, Config{}).CheckRemote(ctx); err != nil {
		t.Fatalf("builtin method needs no check, got %v", err)
	}
	if err := newTestApp(t, Config{Method: "remote", LLMBaseURL: base}).CheckRemote(ctx); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	ok := newTestApp(t, Config{Method: "remote", APIKey: "sk", LLMBaseURL: base, LLMModel: "stub-model"})
	if err := ok.CheckRemote(ctx); err != nil {
		t.Fatalf("expected model to be found, got %v", err)
	}
	missing := newTestApp(t, Config{Method: "remote", APIKey: "sk", LLMBaseURL: base})
	if err := missing.CheckRemote(ctx); !errors.Is(err, ErrModelNotListed) {
		t.Fatalf("default model is not listed; expected ErrModelNotListed, got %v", err)
	}
}
