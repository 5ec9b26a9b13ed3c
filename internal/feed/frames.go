package feed

import (
	"bytes"
	"encoding/json"
)

// The upstream feed speaks Engine.IO v3 over a raw WebSocket
// (?EIO=3&transport=websocket). Frames are text messages with a numeric
// prefix: "0" open, "2" ping, "3" pong, "40" namespace connect, and "42"
// followed by a JSON array [eventName, payload] for events. Only the "42"
// frames carry queue events; everything else is keep-alive traffic.
const (
	framePing   = "2"
	eventPrefix = "42"
)

// DecodeEvent extracts the event name and raw payload from a socket.io event
// frame. ok is false for any frame that does not carry an event, including
// handshake and ping/pong frames.
func DecodeEvent(frame []byte) (name string, payload json.RawMessage, ok bool) {
	if !bytes.HasPrefix(frame, []byte(eventPrefix)) {
		return "", nil, false
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(frame[len(eventPrefix):], &parts); err != nil || len(parts) < 2 {
		return "", nil, false
	}
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, false
	}
	return name, parts[1], true
}
