package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientCreateEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/entries" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req EntryCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "今日は楽しかった" {
			t.Errorf("unexpected text: %q", req.Text)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "e1",
			"text":      req.Text,
			"image_url": "/img/joy.png",
			"emotion":   "joy",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	resp, err := client.CreateEntry(context.Background(), EntryCreateRequest{Text: "今日は楽しかった"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.ID != "e1" || resp.Emotion != "joy" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:     "entry not found: x",
			Code:      "not_found",
			ErrorCode: 2001,
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.GetEntry(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "not_found" || apiErr.ErrorCode != 2001 {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Fatal("IsNotFound should report true")
	}
}

func TestClientUploadAvatarMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("name"); got != "ねこ" {
			t.Errorf("unexpected name field: %q", got)
		}
		if got := r.FormValue("fileType"); got != "gif" {
			t.Errorf("unexpected fileType field: %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file field: %v", err)
		}
		_ = json.NewEncoder(w).Encode(AvatarUploadResponse{
			Success:  true,
			FileURL:  "/uploads/avatars/1_neko.gif",
			FileName: "1_neko.gif",
			FileType: "gif",
			Name:     "ねこ",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	resp, err := client.UploadAvatar(context.Background(), strings.NewReader("GIF89a"), "ねこ", "gif")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !resp.Success || resp.FileName != "1_neko.gif" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientPlainErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	err := client.Ping(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Fatal("expected fallback message")
	}
}
