// Package handlers is the HTTP adapter over the scan workflow and the
// library manager.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bynzo/biblio/internal/ingest"
	"github.com/bynzo/biblio/internal/library"
)

type Handler struct {
	ingestService  *ingest.Service
	libraryManager *library.Manager
}

func New(ingestService *ingest.Service, libraryManager *library.Manager) *Handler {
	return &Handler{
		ingestService:  ingestService,
		libraryManager: libraryManager,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
