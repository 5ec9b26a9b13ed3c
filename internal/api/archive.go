package api

import (
	"encoding/json"
	"net/http"

	"github.com/queuepulse/backend/internal/storage"
	"github.com/queuepulse/backend/internal/types"
	"github.com/rs/zerolog"
)

// ArchiveHandler provides REST access to persisted outcome records.
type ArchiveHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(store storage.Store, logger zerolog.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		store:  store,
		logger: logger.With().Str("component", "archive_handler").Logger(),
	}
}

// GetCalls returns archived outcome records for a given date.
// GET /api/calls?date=YYYY-MM-DD
func (h *ArchiveHandler) GetCalls(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date query parameter is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	records, err := h.store.GetOutcomes(date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("failed to get archived calls")
		http.Error(w, "failed to retrieve calls", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []types.OutcomeRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
