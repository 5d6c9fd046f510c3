package server

import (
	"encoding/json"
	"net/http"

	"eniki/internal/api"
)

// handleExport streams every entry as NDJSON. Export reads through the
// service so records carry the derived emotion label.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.diaryService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)

	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			s.log().Error("export encode", "method", r.Method, "path", r.URL.Path, "entry_id", entry.ID, "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !s.acquireLimiter(s.importLimiter, w, r, "import") {
		return
	}
	defer s.releaseLimiter(s.importLimiter)

	var req api.ImportRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	resp, err := s.diaryService.Import(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}
