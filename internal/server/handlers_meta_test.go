package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eniki/internal/api"
	"eniki/internal/store"
)

// nilDiaryStore returns the degraded no-persistence store: reads come
// back empty, writes report storage unavailable.
func nilDiaryStore() store.DiaryStore {
	var st *store.Store
	return st
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected status: %q", resp["status"])
	}
}

func TestHandleInfo(t *testing.T) {
	srv := newTestServer(t)
	createEntry(t, srv, "一件目")

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/info", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var info api.InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.Version != "test" {
		t.Fatalf("unexpected version: %q", info.Version)
	}
	if info.SchemaVersion < 2 {
		t.Fatalf("expected schema version >= 2, got %d", info.SchemaVersion)
	}
	if info.EntryCount != 1 {
		t.Fatalf("expected 1 entry, got %d", info.EntryCount)
	}
	if info.HasAvatar {
		t.Fatal("expected no avatar")
	}
	if info.Generator {
		t.Fatal("expected generator unconfigured")
	}
}

func TestInfoWithoutStore(t *testing.T) {
	srv := newTestServer(t)
	srv.store = nilDiaryStore()
	srv.diaryService.store = srv.store

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/info", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected info to tolerate missing storage, got %d (%s)", w.Code, w.Body.String())
	}

	var info api.InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.SchemaVersion != 0 || info.EntryCount != 0 || info.HasAvatar {
		t.Fatalf("unexpected info for unavailable storage: %+v", info)
	}
}

func TestWritesWithoutStoreReturn503(t *testing.T) {
	srv := newTestServer(t)
	srv.store = nilDiaryStore()
	srv.diaryService.store = srv.store

	w := postJSON(t, srv, "/v1/entries", api.EntryCreateRequest{Text: "保存できない"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d (%s)", w.Code, w.Body.String())
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != "storage_unavailable" {
		t.Fatalf("unexpected code: %q", errResp.Code)
	}
	if errResp.ErrorCode != ErrCodeStorageUnavailable {
		t.Fatalf("expected error_code %d, got %d", ErrCodeStorageUnavailable, errResp.ErrorCode)
	}

	// Reads degrade to empty rather than failing.
	listW := httptest.NewRecorder()
	srv.routes().ServeHTTP(listW, httptest.NewRequest(http.MethodGet, "/v1/entries", nil))
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 from list without storage, got %d", listW.Code)
	}
}
