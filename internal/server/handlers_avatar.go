package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"eniki/internal/mediastore"
	"eniki/internal/models"
)

// Multipart uploads carry at most one ~10 MiB media payload plus small
// text fields.
const (
	avatarUploadMaxBody   = mediastore.MaxUploadBytes + (1 << 20)
	avatarMultipartMemory = 8 << 20
)

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, avatarUploadMaxBody)
	if err := r.ParseMultipartForm(avatarMultipartMemory); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("file is required"), ErrCodeMissingRequired))
		return
	}
	defer file.Close()

	resp, err := s.avatarService.Upload(r.Context(), UploadInput{
		Media:       file,
		DisplayName: strings.TrimSpace(r.FormValue("name")),
		FileType:    strings.TrimSpace(r.FormValue("fileType")),
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAvatar(w http.ResponseWriter, r *http.Request) {
	resp, err := s.avatarService.Get(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAvatar(w http.ResponseWriter, r *http.Request) {
	fileName := strings.TrimSpace(r.URL.Query().Get("fileName"))

	resp, err := s.avatarService.Delete(r.Context(), fileName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleServeAvatarMedia(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("file name is required"), ErrCodeMissingRequired))
		return
	}

	reader, err := s.avatarService.OpenMedia(r.Context(), name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("media not found"), ErrCodeAvatarNotFound))
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", mediaContentType(name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		s.log().Error("stream avatar media", "file_name", name, "error", err)
	}
}

func mediaContentType(fileName string) string {
	switch {
	case strings.HasSuffix(fileName, ".gif"):
		return models.MediaKindGIF.ContentType()
	case strings.HasSuffix(fileName, ".mp4"):
		return models.MediaKindMP4.ContentType()
	default:
		return "application/octet-stream"
	}
}

func classifyMultipartError(err error) error {
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequestCode(fmt.Errorf("upload too large"), ErrCodeRequestTooLarge)
	}
	return badRequestCode(fmt.Errorf("invalid multipart form: %w", err), ErrCodeInvalidArgument)
}
