package server

import (
	"net/http"

	"eniki/internal/api"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req api.EntryCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.ImageSource == api.ImageSourceGenerated {
		if !s.acquireLimiter(s.genLimiter, w, r, "image generation") {
			return
		}
		defer s.releaseLimiter(s.genLimiter)
	}

	resp, err := s.diaryService.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.diaryService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []api.EntryResponse{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.diaryService.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegenerateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.EntryRegenImageRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	if req.ImageSource == api.ImageSourceGenerated {
		if !s.acquireLimiter(s.genLimiter, w, r, "image generation") {
			return
		}
		defer s.releaseLimiter(s.genLimiter)
	}

	resp, err := s.diaryService.RegenerateImage(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.diaryService.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	if err := s.diaryService.Clear(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}
