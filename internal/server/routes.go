package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Diary entries.
	mux.HandleFunc("POST /v1/entries", s.handleCreateEntry)
	mux.HandleFunc("GET /v1/entries", s.handleListEntries)
	mux.HandleFunc("DELETE /v1/entries", s.handleClearEntries)
	mux.HandleFunc("GET /v1/entries/{id}", s.handleGetEntry)
	mux.HandleFunc("DELETE /v1/entries/{id}", s.handleDeleteEntry)
	mux.HandleFunc("POST /v1/entries/{id}/image", s.handleRegenerateImage)

	// Avatar.
	mux.HandleFunc("POST /v1/avatar", s.handleUploadAvatar)
	mux.HandleFunc("GET /v1/avatar", s.handleGetAvatar)
	mux.HandleFunc("DELETE /v1/avatar", s.handleDeleteAvatar)

	// Stored avatar media.
	mux.HandleFunc("GET /uploads/avatars/{name}", s.handleServeAvatarMedia)

	// Import/Export.
	mux.HandleFunc("GET /v1/export", s.handleExport)
	mux.HandleFunc("POST /v1/import", s.handleImport)

	return mux
}
