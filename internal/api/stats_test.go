package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/queuepulse/backend/internal/stats"
	"github.com/queuepulse/backend/internal/types"
	"github.com/rs/zerolog"
)

func TestHandleStats(t *testing.T) {
	agg := stats.NewAggregator(stats.Options{}, zerolog.Nop())
	now := time.Now()
	agg.RecordJoin("Q1", "555", "Alice", now.Add(-time.Minute))
	agg.RecordAnswered("Q1", "555", now.Add(-50*time.Second))

	h := NewStatsHandler(agg, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var snap types.StatsSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Type != "snapshot" {
		t.Errorf("expected type snapshot, got %s", snap.Type)
	}
	if snap.Daily.Queues["Q1"].Answered != 1 {
		t.Errorf("expected 1 answered for Q1, got %+v", snap.Daily.Queues["Q1"])
	}
	for _, label := range []string{"1h", "2h", "4h"} {
		if _, ok := snap.Windows[label]; !ok {
			t.Errorf("missing window %s", label)
		}
	}
}

func TestHandleHistory(t *testing.T) {
	agg := stats.NewAggregator(stats.Options{}, zerolog.Nop())
	now := time.Now()
	agg.RecordJoin("Q1", "555", "", now.Add(-time.Minute))
	agg.RecordAnswered("Q1", "555", now.Add(-50*time.Second))

	h := NewStatsHandler(agg, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/stats/history", nil)
	w := httptest.NewRecorder()
	h.HandleHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var history []types.DayRollup
	if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 rollup day, got %d", len(history))
	}
	if history[0].Answered != 1 {
		t.Errorf("expected 1 answered in rollup, got %d", history[0].Answered)
	}
}
