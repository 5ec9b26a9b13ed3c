package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics.
type Metrics struct {
	mu sync.RWMutex

	// Event metrics
	EventsReceivedTotal  int64
	EventsProcessedTotal int64
	EventsDiscardedTotal int64
	DayRolloversTotal    int64

	// Feed metrics
	FeedConnectsTotal    int64
	FeedDisconnectsTotal int64
	FeedErrorsTotal      int64

	// Dashboard WebSocket metrics
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	activeConnections            int64

	// Broadcast metrics
	BroadcastCyclesTotal  int64
	BroadcastErrorsTotal  int64
	lastBroadcastDuration time.Duration

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal: make(map[string]map[int]int64),
			startTime:         time.Now(),
		}
	})
	return instance
}

// RecordEventReceived increments the events received counter.
func (m *Metrics) RecordEventReceived() {
	m.mu.Lock()
	m.EventsReceivedTotal++
	m.mu.Unlock()
}

// RecordEventProcessed increments the events processed counter.
func (m *Metrics) RecordEventProcessed() {
	m.mu.Lock()
	m.EventsProcessedTotal++
	m.mu.Unlock()
}

// RecordEventDiscarded counts a malformed or unattributable event. Discards
// are expected and harmless; the counter exists so they stay observable.
func (m *Metrics) RecordEventDiscarded() {
	m.mu.Lock()
	m.EventsDiscardedTotal++
	m.mu.Unlock()
}

// RecordDayRollover counts a daily stats reset.
func (m *Metrics) RecordDayRollover() {
	m.mu.Lock()
	m.DayRolloversTotal++
	m.mu.Unlock()
}

// RecordFeedConnect increments the feed connect counter.
func (m *Metrics) RecordFeedConnect() {
	m.mu.Lock()
	m.FeedConnectsTotal++
	m.mu.Unlock()
}

// RecordFeedDisconnect increments the feed disconnect counter.
func (m *Metrics) RecordFeedDisconnect() {
	m.mu.Lock()
	m.FeedDisconnectsTotal++
	m.mu.Unlock()
}

// RecordFeedError increments the feed error counter.
func (m *Metrics) RecordFeedError() {
	m.mu.Lock()
	m.FeedErrorsTotal++
	m.mu.Unlock()
}

// RecordWebSocketConnect increments dashboard connection counters.
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments the disconnection counter.
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// RecordBroadcastCycle records one snapshot broadcast.
func (m *Metrics) RecordBroadcastCycle(duration time.Duration) {
	m.mu.Lock()
	m.BroadcastCyclesTotal++
	m.lastBroadcastDuration = duration
	m.mu.Unlock()
}

// RecordBroadcastError increments the broadcast error counter.
func (m *Metrics) RecordBroadcastError() {
	m.mu.Lock()
	m.BroadcastErrorsTotal++
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++
}

// GetActiveConnections returns current dashboard WebSocket connections.
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		write := func(name string, value interface{}, labels ...string) {
			labelStr := ""
			if len(labels) > 0 {
				labelStr = "{"
				for i := 0; i < len(labels); i += 2 {
					if i > 0 {
						labelStr += ","
					}
					labelStr += labels[i] + "=\"" + labels[i+1] + "\""
				}
				labelStr += "}"
			}

			switch v := value.(type) {
			case int:
				w.Write([]byte(name + labelStr + " " + strconv.Itoa(v) + "\n"))
			case int64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatInt(v, 10) + "\n"))
			case float64:
				w.Write([]byte(name + labelStr + " " + strconv.FormatFloat(v, 'f', 6, 64) + "\n"))
			}
		}

		// System metrics
		write("queuepulse_uptime_seconds", time.Since(m.startTime).Seconds())

		// Event metrics
		write("queuepulse_events_received_total", m.EventsReceivedTotal)
		write("queuepulse_events_processed_total", m.EventsProcessedTotal)
		write("queuepulse_events_discarded_total", m.EventsDiscardedTotal)
		write("queuepulse_day_rollovers_total", m.DayRolloversTotal)

		uptimeSeconds := time.Since(m.startTime).Seconds()
		if uptimeSeconds > 0 {
			write("queuepulse_events_per_second", float64(m.EventsReceivedTotal)/uptimeSeconds)
		}

		// Feed metrics
		write("queuepulse_feed_connects_total", m.FeedConnectsTotal)
		write("queuepulse_feed_disconnects_total", m.FeedDisconnectsTotal)
		write("queuepulse_feed_errors_total", m.FeedErrorsTotal)

		// Dashboard WebSocket metrics
		write("queuepulse_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("queuepulse_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("queuepulse_websocket_active_connections", m.activeConnections)

		// Broadcast metrics
		write("queuepulse_broadcast_cycles_total", m.BroadcastCyclesTotal)
		write("queuepulse_broadcast_errors_total", m.BroadcastErrorsTotal)
		write("queuepulse_broadcast_duration_seconds", m.lastBroadcastDuration.Seconds())

		// HTTP metrics
		for endpoint, statusCodes := range m.httpRequestsTotal {
			for status, count := range statusCodes {
				write("queuepulse_http_requests_total", count, "endpoint", endpoint, "status", strconv.Itoa(status))
			}
		}
	}
}
