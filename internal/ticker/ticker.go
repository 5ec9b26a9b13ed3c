package ticker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/queuepulse/backend/internal/alerts"
	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/stats"
	"github.com/queuepulse/backend/internal/websocket"
	"github.com/rs/zerolog"
)

// Ticker periodically pushes a stats snapshot to connected dashboard clients
// so they don't have to poll /stats.
type Ticker struct {
	hub      *websocket.Hub
	agg      *stats.Aggregator
	interval time.Duration
	logger   zerolog.Logger
}

// NewTicker creates a new Ticker
func NewTicker(hub *websocket.Hub, agg *stats.Aggregator, interval time.Duration, logger zerolog.Logger) *Ticker {
	return &Ticker{
		hub:      hub,
		agg:      agg,
		interval: interval,
		logger:   logger.With().Str("component", "ticker").Logger(),
	}
}

// Start begins broadcasting snapshots until the context is cancelled.
func (t *Ticker) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	m := metrics.Get()
	shortest := t.agg.ShortestWindow().Label
	t.logger.Info().Dur("interval", t.interval).Msg("snapshot ticker started")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("snapshot ticker stopped")
			return

		case now := <-ticker.C:
			if t.hub.ClientCount() == 0 {
				continue
			}

			cycleStart := time.Now()
			snap := t.agg.Snapshot(now)
			alerts.CheckQueueAlerts(&snap, shortest, now)

			data, err := json.Marshal(snap)
			if err != nil {
				t.logger.Error().Err(err).Msg("failed to marshal snapshot")
				m.RecordBroadcastError()
				continue
			}

			t.hub.Broadcast(data)
			m.RecordBroadcastCycle(time.Since(cycleStart))

			t.logger.Debug().
				Int("clients", t.hub.ClientCount()).
				Int("queues", len(snap.Daily.Queues)).
				Int("alerts", len(snap.Alerts)).
				Msg("snapshot broadcasted")
		}
	}
}
