package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"eniki/internal/api"
	"eniki/internal/genimage"
	"eniki/internal/mediastore"
	"eniki/internal/store"
)

func newTestServerWithGenerator(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	media, err := mediastore.NewLocalDir(filepath.Join(dir, "avatars"))
	if err != nil {
		t.Fatalf("new media store: %v", err)
	}

	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("127.0.0.1:0", st, media, genimage.NewClient(ts.URL), "test", logger)
}

func TestCreateEntryGeneratedUsesUpstream(t *testing.T) {
	srv := newTestServerWithGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		if req["text"] == "" {
			t.Error("expected text to be forwarded")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"imageUrl": "https://cdn.example/generated/7.png"})
	})

	w := postJSON(t, srv, "/v1/entries", api.EntryCreateRequest{
		Text:        "今日は最高だった",
		ImageSource: api.ImageSourceGenerated,
		ImageBase64: "ZnJhbWU=",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created api.EntryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ImageURL != "https://cdn.example/generated/7.png" {
		t.Fatalf("unexpected image url: %q", created.ImageURL)
	}
	// Emotion labeling still runs on the text regardless of the source.
	if created.Emotion != "joy" {
		t.Fatalf("unexpected emotion: %q", created.Emotion)
	}
}

func TestCreateEntryGeneratedUpstreamFailure(t *testing.T) {
	srv := newTestServerWithGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "generation failed",
			"details": "safety filter",
		})
	})

	w := postJSON(t, srv, "/v1/entries", api.EntryCreateRequest{
		Text:        "生成して",
		ImageSource: api.ImageSourceGenerated,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d (%s)", w.Code, w.Body.String())
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != "upstream_failed" {
		t.Fatalf("unexpected code: %q", errResp.Code)
	}
	// Upstream diagnostics stay visible to the caller.
	if !strings.Contains(errResp.Error, "safety filter") {
		t.Fatalf("expected upstream details in message, got %q", errResp.Error)
	}

	// The failed create must not leave a partial entry behind.
	listW := httptest.NewRecorder()
	srv.routes().ServeHTTP(listW, httptest.NewRequest(http.MethodGet, "/v1/entries", nil))
	var entries []api.EntryResponse
	if err := json.Unmarshal(listW.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after failed generation, got %d", len(entries))
	}
}

func TestRegenerateImageGenerated(t *testing.T) {
	srv := newTestServerWithGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"imageUrl": "https://cdn.example/generated/regen.png"})
	})

	created := createEntry(t, srv, "普通の日")
	if created.ImageURL != "/img/neutral.png" {
		t.Fatalf("unexpected initial image: %q", created.ImageURL)
	}

	w := postJSON(t, srv, "/v1/entries/"+created.ID+"/image", api.EntryRegenImageRequest{
		ImageSource: api.ImageSourceGenerated,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var regen api.EntryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &regen); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if regen.ImageURL != "https://cdn.example/generated/regen.png" {
		t.Fatalf("unexpected image url: %q", regen.ImageURL)
	}
	if !regen.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, regen.CreatedAt)
	}
}
