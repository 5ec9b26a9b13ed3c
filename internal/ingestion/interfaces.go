package ingestion

import (
	"time"

	"github.com/queuepulse/backend/internal/types"
)

// EventProcessor consumes queue events from any feed transport. now is the
// arrival time; the upstream payload carries no usable timestamp.
type EventProcessor interface {
	ProcessJoin(p types.QueueEventPayload, now time.Time)
	ProcessLeave(p types.QueueEventPayload, now time.Time)
	ProcessAbandon(p types.QueueEventPayload, now time.Time)
}

// OutcomeArchive persists resolved outcome events. Optional; writes happen
// off the ingest path and failures are logged, never retried.
type OutcomeArchive interface {
	SaveOutcome(record types.OutcomeRecord) error
}
