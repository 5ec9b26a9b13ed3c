package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/queuepulse/backend/internal/storage"
	"github.com/rs/zerolog"
)

// AdminHandler handles maintenance operations on the outcome archive.
type AdminHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store storage.Store, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store:  store,
		logger: logger.With().Str("component", "admin_handler").Logger(),
	}
}

// WipeArchive truncates the outcome archive.
// POST /api/admin/wipe-archive
func (h *AdminHandler) WipeArchive(w http.ResponseWriter, r *http.Request) {
	if err := h.store.TruncateAll(); err != nil {
		h.logger.Error().Err(err).Msg("failed to truncate outcome archive")
		http.Error(w, fmt.Sprintf(`{"error":"failed to truncate: %s"}`, err), http.StatusInternalServerError)
		return
	}

	h.logger.Info().Msg("outcome archive truncated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "outcome archive truncated",
	})
}
