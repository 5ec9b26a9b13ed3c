package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/queuepulse/backend/internal/ingestion"
	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/types"
	"github.com/rs/zerolog"
)

const (
	initialReconnectDelay = 1 * time.Second
	maxReconnectDelay     = 30 * time.Second
	writeTimeout          = 10 * time.Second
)

// Client maintains the connection to the upstream telephony notification
// feed and forwards decoded queue events to the processor. It reconnects
// forever with exponential backoff; the engine simply receives no events
// during an outage and is never informed of transport faults.
type Client struct {
	url          string
	pingInterval time.Duration
	processor    ingestion.EventProcessor
	logger       zerolog.Logger
}

// NewClient creates a feed client.
func NewClient(url string, pingInterval time.Duration, processor ingestion.EventProcessor, logger zerolog.Logger) *Client {
	return &Client{
		url:          url,
		pingInterval: pingInterval,
		processor:    processor,
		logger:       logger.With().Str("component", "feed").Logger(),
	}
}

// Run connects and processes messages until the context is cancelled.
func (c *Client) Run(ctx context.Context) {
	m := metrics.Get()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialReconnectDelay
	policy.MaxInterval = maxReconnectDelay
	policy.MaxElapsedTime = 0 // retry forever

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("feed client stopped")
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			wait := policy.NextBackOff()
			m.RecordFeedError()
			c.logger.Warn().Err(err).Dur("retry_in", wait).Msg("feed connection failed, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		policy.Reset()
		m.RecordFeedConnect()
		c.logger.Info().Str("url", c.url).Msg("feed connected")

		c.readLoop(ctx, conn)
		conn.Close()
		m.RecordFeedDisconnect()
	}
}

// readLoop reads frames until the connection drops or the context ends. A
// single reader keeps event processing strictly sequential; pings run in
// their own goroutine because they are the only other writer.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(ctx, conn, done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("feed read error")
			}
			return
		}
		c.handleFrame(message, time.Now())
	}
}

// pingLoop sends the Engine.IO ping frame on a fixed interval to keep the
// upstream from dropping the connection.
func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(framePing)); err != nil {
				c.logger.Debug().Err(err).Msg("feed ping failed")
				return
			}
		}
	}
}

// handleFrame decodes one frame and dispatches queue events. Malformed
// payloads are discarded and counted, never propagated.
func (c *Client) handleFrame(frame []byte, now time.Time) {
	m := metrics.Get()

	name, payload, ok := DecodeEvent(frame)
	if !ok {
		return // keep-alive or handshake traffic
	}

	m.RecordEventReceived()

	var p types.QueueEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		m.RecordEventDiscarded()
		c.logger.Debug().Err(err).Str("event", name).Msg("discarding malformed payload")
		return
	}

	switch name {
	case types.EventQueueCallerJoin:
		c.processor.ProcessJoin(p, now)
	case types.EventQueueCallerLeave:
		c.processor.ProcessLeave(p, now)
	case types.EventQueueCallerAbandon:
		c.processor.ProcessAbandon(p, now)
	default:
		// Other upstream event types are not ours to count.
	}
}
