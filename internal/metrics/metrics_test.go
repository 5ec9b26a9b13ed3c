package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCountersIncrement(t *testing.T) {
	m := Get()

	before := m.EventsReceivedTotal
	m.RecordEventReceived()
	if m.EventsReceivedTotal != before+1 {
		t.Errorf("expected events received %d, got %d", before+1, m.EventsReceivedTotal)
	}

	active := m.GetActiveConnections()
	m.RecordWebSocketConnect()
	if m.GetActiveConnections() != active+1 {
		t.Error("expected active connections to increase on connect")
	}
	m.RecordWebSocketDisconnect()
	if m.GetActiveConnections() != active {
		t.Error("expected active connections to return to baseline on disconnect")
	}
}

func TestHandlerOutput(t *testing.T) {
	m := Get()
	m.RecordEventProcessed()
	m.RecordBroadcastCycle(5 * time.Millisecond)
	m.RecordHTTPRequest("/stats", 200)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler()(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{
		"queuepulse_uptime_seconds",
		"queuepulse_events_received_total",
		"queuepulse_events_processed_total",
		"queuepulse_events_discarded_total",
		"queuepulse_feed_connects_total",
		"queuepulse_websocket_active_connections",
		"queuepulse_broadcast_cycles_total",
		`queuepulse_http_requests_total{endpoint="/stats",status="200"}`,
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
