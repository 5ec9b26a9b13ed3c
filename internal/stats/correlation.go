package stats

import "time"

// CorrelationTable maps an in-flight caller number to the time it joined a
// queue, so the wait duration can be computed when the outcome event arrives.
// At most one pending entry exists per number: a repeated join overwrites the
// previous one, so a caller who rejoins before leaving loses the earlier wait
// time. That under-counts wait on rejoin and is accepted.
type CorrelationTable struct {
	pending map[string]time.Time
}

// NewCorrelationTable creates an empty correlation table.
func NewCorrelationTable() *CorrelationTable {
	return &CorrelationTable{pending: make(map[string]time.Time)}
}

// RecordJoin stores (or overwrites) the join time for the caller number.
func (t *CorrelationTable) RecordJoin(number string, now time.Time) {
	t.pending[number] = now
}

// Resolve returns the wait in seconds for the caller number and removes the
// entry. ok is false when no join was observed; the outcome is still valid,
// it just carries no wait duration. Each pending entry resolves at most once.
func (t *CorrelationTable) Resolve(number string, now time.Time) (waitSeconds float64, ok bool) {
	joined, ok := t.pending[number]
	if !ok {
		return 0, false
	}
	delete(t.pending, number)
	return now.Sub(joined).Seconds(), true
}

// Len returns the number of pending entries.
func (t *CorrelationTable) Len() int {
	return len(t.pending)
}

// Reset drops all pending entries. Called at day rollover; calls spanning
// midnight lose their join timestamp, a documented limitation.
func (t *CorrelationTable) Reset() {
	t.pending = make(map[string]time.Time)
}
