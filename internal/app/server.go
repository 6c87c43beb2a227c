package app

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"
)

// User-facing messages for the suggestion endpoint.
const (
	msgEmptyContent = "Post content is empty."
	msgNoTags       = "No suggested tags found."
	msgBadRequest   = "Malformed request."
)

// maxBodyBytes bounds request bodies on the HTTP surface.
const maxBodyBytes = 4 << 20

// envelope is the {success, data} shape the editor script expects.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type suggestRequest struct {
	PostContent string `json:"post_content"`
}

type saveResponse struct {
	PostID int64    `json:"post_id"`
	Tags   []string `json:"tags"`
	Append bool     `json:"append"`
}

// Handler returns the HTTP surface: background tag suggestions, the save
// hook, liveness, readiness and metrics.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/suggest", a.handleSuggest)
	mux.HandleFunc("POST /api/posts/save", a.handleSave)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /readyz", a.handleReady)
	mux.Handle("GET /metrics", a.metrics.Handler())
	return mux
}

// handleSuggest accepts either a JSON body or form field post_content.
// Empty content and "no tags" are HTTP 200 with success=false carrying a
// readable message, matching how the editor renders it. Only an unreadable
// body is a 400.
func (a *App) handleSuggest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	content, err := suggestContent(r)
	if err != nil {
		log.Debug().Err(err).Msg("bad suggest request")
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Data: msgBadRequest})
		return
	}
	tags, err := a.Suggest(r.Context(), content)
	switch {
	case errors.Is(err, ErrEmptyContent):
		writeJSON(w, http.StatusOK, envelope{Success: false, Data: msgEmptyContent})
	case errors.Is(err, ErrNoTags):
		writeJSON(w, http.StatusOK, envelope{Success: false, Data: msgNoTags})
	default:
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: tags})
	}
}

func suggestContent(r *http.Request) (string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		var req suggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return req.PostContent, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("post_content"), nil
}

// handleReady reports 503 while the remote service cannot serve the
// configured model.
func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := a.CheckRemote(r.Context()); err != nil {
		log.Warn().Err(err).Msg("readiness check failed")
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Data: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: "ready"})
}

func (a *App) handleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var p Post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Data: msgBadRequest})
		return
	}
	tags := a.TagsOnSave(r.Context(), p)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: saveResponse{PostID: p.ID, Tags: tags, Append: true}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

// Serve runs the HTTP surface on the configured address until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	addr := a.cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	srv := newServer(addr, a.Handler(), a.cfg.LLMTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.WriteTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
