package ticker

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/queuepulse/backend/internal/config"
	"github.com/queuepulse/backend/internal/stats"
	"github.com/queuepulse/backend/internal/types"
	"github.com/queuepulse/backend/internal/websocket"
	"github.com/rs/zerolog"
)

func testConfig() *config.Config {
	return &config.Config{
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 512,
	}
}

func TestTickerStopsOnCancel(t *testing.T) {
	hub := websocket.NewHub(zerolog.Nop())
	go hub.Run()
	agg := stats.NewAggregator(stats.Options{}, zerolog.Nop())

	tk := NewTicker(hub, agg, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tk.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop on context cancel")
	}
}

func TestTickerBroadcastsSnapshots(t *testing.T) {
	hub := websocket.NewHub(zerolog.Nop())
	go hub.Run()

	agg := stats.NewAggregator(stats.Options{}, zerolog.Nop())
	now := time.Now()
	agg.RecordJoin("Q1", "555", "Alice", now.Add(-time.Minute))
	agg.RecordAnswered("Q1", "555", now.Add(-50*time.Second))

	srv := httptest.NewServer(websocket.NewHandler(hub, testConfig(), zerolog.Nop()))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tk := NewTicker(hub, agg, 10*time.Millisecond, zerolog.Nop())
	go tk.Start(ctx)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	var snap types.StatsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	if snap.Type != "snapshot" {
		t.Errorf("expected type snapshot, got %s", snap.Type)
	}
	if snap.Daily.Queues["Q1"].Answered != 1 {
		t.Errorf("expected 1 answered for Q1, got %+v", snap.Daily.Queues["Q1"])
	}
}
