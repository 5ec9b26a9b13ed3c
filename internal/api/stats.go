package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/queuepulse/backend/internal/alerts"
	"github.com/queuepulse/backend/internal/stats"
	"github.com/rs/zerolog"
)

// StatsHandler serves aggregated queue statistics.
type StatsHandler struct {
	agg    *stats.Aggregator
	logger zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(agg *stats.Aggregator, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		agg:    agg,
		logger: logger.With().Str("component", "stats_handler").Logger(),
	}
}

// HandleStats returns the full snapshot: today's cumulative counters, every
// configured trailing window, and the active-caller roster.
// GET /stats
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	snap := h.agg.Snapshot(now)
	alerts.CheckQueueAlerts(&snap, h.agg.ShortestWindow().Label, now)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode snapshot")
	}
}

// HandleHistory returns the per-day/per-hour rollup.
// GET /stats/history
func (h *StatsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.agg.History()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(history); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode history")
	}
}
