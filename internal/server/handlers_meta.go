package server

import (
	"errors"
	"net/http"

	"eniki/internal/api"
	"eniki/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemaVersion, err := s.store.SchemaVersion(ctx)
	if err != nil && !errors.Is(err, store.ErrStorageUnavailable) {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	count, err := s.store.CountDiaries(ctx)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	avatar, err := s.store.GetAvatar(ctx)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		Version:       s.version,
		SchemaVersion: schemaVersion,
		EntryCount:    count,
		HasAvatar:     avatar != nil,
		Generator:     s.generator.Configured(),
	})
}
