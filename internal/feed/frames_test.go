package feed

import (
	"encoding/json"
	"testing"

	"github.com/queuepulse/backend/internal/types"
)

func TestDecodeEventValidFrame(t *testing.T) {
	frame := []byte(`42["queue_caller_join",{"queue":"Q700","calleridnum":"555"}]`)

	name, payload, ok := DecodeEvent(frame)
	if !ok {
		t.Fatal("expected frame to decode")
	}
	if name != types.EventQueueCallerJoin {
		t.Errorf("expected queue_caller_join, got %s", name)
	}

	var p types.QueueEventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if p.Queue != "Q700" {
		t.Errorf("expected queue Q700, got %s", p.Queue)
	}
	if p.Number() != "555" {
		t.Errorf("expected number 555, got %s", p.Number())
	}
}

func TestDecodeEventIgnoresKeepAlive(t *testing.T) {
	frames := [][]byte{
		[]byte("2"),              // ping
		[]byte("3"),              // pong
		[]byte("40"),             // namespace connect
		[]byte(`0{"sid":"abc"}`), // open handshake
	}

	for _, frame := range frames {
		if _, _, ok := DecodeEvent(frame); ok {
			t.Errorf("expected frame %q to be ignored", frame)
		}
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	frames := [][]byte{
		[]byte("42"),                     // no body
		[]byte("42not json"),             // unparseable
		[]byte(`42["only_name"]`),        // missing payload element
		[]byte(`42[123,{"queue":"Q1"}]`), // event name not a string
	}

	for _, frame := range frames {
		if _, _, ok := DecodeEvent(frame); ok {
			t.Errorf("expected frame %q to be rejected", frame)
		}
	}
}

func TestPayloadNumberPriority(t *testing.T) {
	p := types.QueueEventPayload{
		ConnectedLineNum: "111",
		CallerIDNum:      "222",
		CallerNumber:     "333",
	}
	if p.Number() != "111" {
		t.Errorf("expected connectedlinenum to win, got %s", p.Number())
	}

	p.ConnectedLineNum = ""
	if p.Number() != "222" {
		t.Errorf("expected calleridnum next, got %s", p.Number())
	}

	p.CallerIDNum = ""
	if p.Number() != "333" {
		t.Errorf("expected caller_number last, got %s", p.Number())
	}

	p.CallerNumber = ""
	if p.Number() != "" {
		t.Errorf("expected empty number, got %s", p.Number())
	}
}
