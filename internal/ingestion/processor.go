package ingestion

import (
	"time"

	"github.com/google/uuid"
	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/stats"
	"github.com/queuepulse/backend/internal/types"
	"github.com/rs/zerolog"
)

// DefaultProcessor applies the payload fallback rules and drives the stats
// engine. An event without a queue id is discarded entirely, since no
// counters can be attributed to it; an event without a caller number still
// counts, it just cannot be correlated.
type DefaultProcessor struct {
	agg     *stats.Aggregator
	archive OutcomeArchive
	logger  zerolog.Logger
}

// NewDefaultProcessor creates a new DefaultProcessor.
func NewDefaultProcessor(agg *stats.Aggregator, logger zerolog.Logger) *DefaultProcessor {
	return &DefaultProcessor{
		agg:    agg,
		logger: logger.With().Str("component", "ingestion").Logger(),
	}
}

// SetArchive sets the optional outcome archive.
func (p *DefaultProcessor) SetArchive(archive OutcomeArchive) {
	p.archive = archive
}

func (p *DefaultProcessor) ProcessJoin(payload types.QueueEventPayload, now time.Time) {
	m := metrics.Get()
	if payload.Queue == "" {
		m.RecordEventDiscarded()
		p.logger.Debug().Msg("discarding join without queue id")
		return
	}

	p.agg.RecordJoin(types.QueueID(payload.Queue), payload.Number(), payload.Name(), now)
	m.RecordEventProcessed()
}

func (p *DefaultProcessor) ProcessLeave(payload types.QueueEventPayload, now time.Time) {
	m := metrics.Get()
	if payload.Queue == "" {
		m.RecordEventDiscarded()
		p.logger.Debug().Msg("discarding leave without queue id")
		return
	}

	number := payload.Number()
	ev := p.agg.RecordAnswered(types.QueueID(payload.Queue), number, now)
	m.RecordEventProcessed()

	p.logger.Debug().
		Str("queue", payload.Queue).
		Float64("wait_seconds", ev.WaitSeconds).
		Bool("sl_hit", ev.ServiceLevelHit).
		Msg("caller answered")

	p.archiveOutcome(ev, number)
}

func (p *DefaultProcessor) ProcessAbandon(payload types.QueueEventPayload, now time.Time) {
	m := metrics.Get()
	if payload.Queue == "" {
		m.RecordEventDiscarded()
		p.logger.Debug().Msg("discarding abandon without queue id")
		return
	}

	number := payload.Number()
	ev := p.agg.RecordAbandoned(types.QueueID(payload.Queue), number, now)
	m.RecordEventProcessed()

	p.logger.Debug().
		Str("queue", payload.Queue).
		Msg("caller abandoned")

	p.archiveOutcome(ev, number)
}

// archiveOutcome persists the outcome asynchronously so slow storage never
// stalls the ingest path.
func (p *DefaultProcessor) archiveOutcome(ev types.OutcomeEvent, number string) {
	if p.archive == nil {
		return
	}

	record := types.OutcomeRecord{
		DateKey:         ev.Timestamp.UTC().Format("2006-01-02"),
		EventID:         uuid.New().String(),
		Queue:           string(ev.Queue),
		Kind:            string(ev.Kind),
		Timestamp:       ev.Timestamp.UTC().Format(time.RFC3339),
		CallerNumber:    number,
		WaitSeconds:     ev.WaitSeconds,
		WaitKnown:       ev.WaitKnown,
		ServiceLevelHit: ev.ServiceLevelHit,
	}

	go func() {
		if err := p.archive.SaveOutcome(record); err != nil {
			p.logger.Error().Err(err).Str("queue", record.Queue).Msg("failed to archive outcome")
		}
	}()
}
