package types

import "time"

// QueueID identifies a telephony queue (e.g. "Q700"). Queue ids are never
// validated against a fixed set; unknown ids are created on first sight.
type QueueID string

// OutcomeKind is the terminal disposition of a queued call.
type OutcomeKind string

const (
	OutcomeAnswered  OutcomeKind = "answered"
	OutcomeAbandoned OutcomeKind = "abandoned"
)

// OutcomeEvent records a call leaving a queue. Immutable once appended to the
// event log; append order is arrival order, not necessarily chronological.
type OutcomeEvent struct {
	Timestamp       time.Time   `json:"timestamp"`
	Queue           QueueID     `json:"queue"`
	Kind            OutcomeKind `json:"kind"`
	ServiceLevelHit bool        `json:"serviceLevelHit"` // meaningful only when answered
	WaitSeconds     float64     `json:"waitSeconds"`
	WaitKnown       bool        `json:"waitKnown"` // false when the join was never observed
}

// QueueCounters accumulates today's totals for one queue (or globally).
// Reset at day rollover.
type QueueCounters struct {
	Answered         int `json:"answered"`
	Abandoned        int `json:"abandoned"`
	ServiceLevelHits int `json:"serviceLevelHits"`
}

// ActiveCaller is one caller currently waiting in a queue.
type ActiveCaller struct {
	Number   string    `json:"number"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}
