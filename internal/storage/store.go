package storage

import "github.com/queuepulse/backend/internal/types"

// Store defines the outcome archive interface. The aggregation engine never
// reads from the archive: all live statistics are computed from memory, and
// state is lost on restart by design.
type Store interface {
	SaveOutcome(record types.OutcomeRecord) error
	GetOutcomes(dateKey string) ([]types.OutcomeRecord, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveOutcome(_ types.OutcomeRecord) error               { return nil }
func (s *NoopStore) GetOutcomes(_ string) ([]types.OutcomeRecord, error)   { return nil, nil }
func (s *NoopStore) TruncateAll() error                                    { return nil }
