package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"eniki/internal/api"
)

func uploadAvatar(t *testing.T, srv *Server, name, fileType, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := form.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if name != "" {
		if err := form.WriteField("name", name); err != nil {
			t.Fatalf("write name field: %v", err)
		}
	}
	if fileType != "" {
		if err := form.WriteField("fileType", fileType); err != nil {
			t.Fatalf("write fileType field: %v", err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/avatar", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func TestUploadAvatarGIF(t *testing.T) {
	srv := newTestServer(t)

	w := uploadAvatar(t, srv, "うさぎ", "gif", "image/gif", []byte("GIF89a fake"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp api.AvatarUploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if !strings.HasPrefix(resp.FileURL, "/uploads/avatars/") {
		t.Fatalf("unexpected file url: %q", resp.FileURL)
	}
	if !strings.HasSuffix(resp.FileName, ".gif") {
		t.Fatalf("expected .gif file name, got %q", resp.FileName)
	}
	if resp.FileType != "gif" {
		t.Fatalf("unexpected fileType: %q", resp.FileType)
	}
	if resp.Name != "うさぎ" {
		t.Fatalf("unexpected name: %q", resp.Name)
	}
}

func TestUploadAvatarThenGet(t *testing.T) {
	srv := newTestServer(t)

	w := uploadAvatar(t, srv, "avatar", "mp4", "video/mp4", []byte("mp4 payload"))
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	getW := httptest.NewRecorder()
	srv.routes().ServeHTTP(getW, httptest.NewRequest(http.MethodGet, "/v1/avatar", nil))
	if getW.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d (%s)", getW.Code, getW.Body.String())
	}

	var avatar api.AvatarResponse
	if err := json.Unmarshal(getW.Body.Bytes(), &avatar); err != nil {
		t.Fatalf("decode avatar: %v", err)
	}
	if avatar.ID != "current_avatar" {
		t.Fatalf("expected sentinel id, got %q", avatar.ID)
	}
	if avatar.MediaKind != "mp4" {
		t.Fatalf("unexpected media kind: %q", avatar.MediaKind)
	}
}

func TestUploadAvatarReplacesPreviousMedia(t *testing.T) {
	srv := newTestServer(t)

	first := uploadAvatar(t, srv, "first", "gif", "image/gif", []byte("one"))
	if first.Code != http.StatusOK {
		t.Fatalf("first upload: %d (%s)", first.Code, first.Body.String())
	}
	var firstResp api.AvatarUploadResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("decode first: %v", err)
	}

	second := uploadAvatar(t, srv, "second", "gif", "image/gif", []byte("two"))
	if second.Code != http.StatusOK {
		t.Fatalf("second upload: %d (%s)", second.Code, second.Body.String())
	}
	var secondResp api.AvatarUploadResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("decode second: %v", err)
	}

	// The first stored file is gone; the second serves.
	oldW := httptest.NewRecorder()
	srv.routes().ServeHTTP(oldW, httptest.NewRequest(http.MethodGet, "/uploads/avatars/"+firstResp.FileName, nil))
	if oldW.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for replaced media, got %d", oldW.Code)
	}

	newW := httptest.NewRecorder()
	srv.routes().ServeHTTP(newW, httptest.NewRequest(http.MethodGet, "/uploads/avatars/"+secondResp.FileName, nil))
	if newW.Code != http.StatusOK {
		t.Fatalf("expected 200 for current media, got %d", newW.Code)
	}
	if ct := newW.Header().Get("Content-Type"); ct != "image/gif" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if newW.Body.String() != "two" {
		t.Fatalf("unexpected media body: %q", newW.Body.String())
	}
}

func TestUploadAvatarValidation(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		fileType    string
		contentType string
		wantCode    int
	}{
		{name: "missing name", displayName: "", fileType: "gif", contentType: "image/gif", wantCode: ErrCodeMissingRequired},
		{name: "unsupported kind", displayName: "a", fileType: "webm", contentType: "", wantCode: ErrCodeInvalidMediaKind},
		{name: "missing kind", displayName: "a", fileType: "", contentType: "image/gif", wantCode: ErrCodeInvalidMediaKind},
		{name: "kind mismatch", displayName: "a", fileType: "gif", contentType: "video/mp4", wantCode: ErrCodeInvalidMediaKind},
		{name: "unsupported content type", displayName: "a", fileType: "gif", contentType: "image/png", wantCode: ErrCodeInvalidMediaKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			w := uploadAvatar(t, srv, tt.displayName, tt.fileType, tt.contentType, []byte("x"))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
			}
			var errResp api.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if errResp.ErrorCode != tt.wantCode {
				t.Fatalf("expected error_code %d, got %d", tt.wantCode, errResp.ErrorCode)
			}
		})
	}
}

func TestGetAvatarAbsentReturns404(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/avatar", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.ErrorCode != ErrCodeAvatarNotFound {
		t.Fatalf("expected error_code %d, got %d", ErrCodeAvatarNotFound, errResp.ErrorCode)
	}
}

func TestDeleteAvatarRequiresFileName(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/avatar", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteAvatarClearsDescriptor(t *testing.T) {
	srv := newTestServer(t)

	up := uploadAvatar(t, srv, "gone", "gif", "image/gif", []byte("x"))
	if up.Code != http.StatusOK {
		t.Fatalf("upload: %d (%s)", up.Code, up.Body.String())
	}
	var upResp api.AvatarUploadResponse
	if err := json.Unmarshal(up.Body.Bytes(), &upResp); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	delW := httptest.NewRecorder()
	srv.routes().ServeHTTP(delW, httptest.NewRequest(http.MethodDelete, "/v1/avatar?fileName="+upResp.FileName, nil))
	if delW.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", delW.Code, delW.Body.String())
	}
	var delResp api.AvatarDeleteResponse
	if err := json.Unmarshal(delW.Body.Bytes(), &delResp); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if !delResp.Success {
		t.Fatal("expected success")
	}

	getW := httptest.NewRecorder()
	srv.routes().ServeHTTP(getW, httptest.NewRequest(http.MethodGet, "/v1/avatar", nil))
	if getW.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getW.Code)
	}
}

func TestDeleteAvatarUnrelatedFileKeepsDescriptor(t *testing.T) {
	srv := newTestServer(t)

	up := uploadAvatar(t, srv, "keep", "gif", "image/gif", []byte("x"))
	if up.Code != http.StatusOK {
		t.Fatalf("upload: %d (%s)", up.Code, up.Body.String())
	}

	delW := httptest.NewRecorder()
	srv.routes().ServeHTTP(delW, httptest.NewRequest(http.MethodDelete, "/v1/avatar?fileName=0_other.gif", nil))
	if delW.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", delW.Code, delW.Body.String())
	}

	getW := httptest.NewRecorder()
	srv.routes().ServeHTTP(getW, httptest.NewRequest(http.MethodGet, "/v1/avatar", nil))
	if getW.Code != http.StatusOK {
		t.Fatalf("expected descriptor to survive unrelated delete, got %d", getW.Code)
	}
}

func TestServeAvatarMediaUnknownName(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/avatars/0_missing.gif", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
}
