package stats

import (
	"math"
	"time"

	"github.com/queuepulse/backend/internal/types"
)

// EventLog is an append-only, time-bounded sequence of outcome events used to
// answer trailing-window queries without scanning unbounded history. Entries
// older than the retention horizon are pruned opportunistically: only when
// the log grows past pruneThreshold, keeping Append O(1) amortized instead of
// filtering on every insert.
type EventLog struct {
	events         []types.OutcomeEvent
	retention      time.Duration
	pruneThreshold int
}

// NewEventLog creates an event log with the given retention horizon and
// prune trigger length.
func NewEventLog(retention time.Duration, pruneThreshold int) *EventLog {
	return &EventLog{
		events:         make([]types.OutcomeEvent, 0, 256),
		retention:      retention,
		pruneThreshold: pruneThreshold,
	}
}

// Append adds an event in arrival order and prunes expired entries once the
// log exceeds the threshold.
func (l *EventLog) Append(ev types.OutcomeEvent) {
	l.events = append(l.events, ev)
	if len(l.events) > l.pruneThreshold {
		l.prune(ev.Timestamp)
	}
}

// prune drops leading entries older than the retention horizon. The log is
// in arrival order, which tracks chronological order closely enough that
// dropping from the head until the first retained entry bounds memory.
func (l *EventLog) prune(now time.Time) {
	cutoff := now.Add(-l.retention)
	i := 0
	for i < len(l.events) && l.events[i].Timestamp.Before(cutoff) {
		i++
	}
	if i == 0 {
		return
	}
	remaining := make([]types.OutcomeEvent, len(l.events)-i, cap(l.events))
	copy(remaining, l.events[i:])
	l.events = remaining
}

// Len returns the number of retained events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Reset drops all events. Called at day rollover.
func (l *EventLog) Reset() {
	l.events = l.events[:0]
}

type windowAccum struct {
	answered  int
	abandoned int
	hits      int
	wait      float64
}

// ScanWindows evaluates every requested window in a single linear pass over
// the log and returns one breakdown per window, index-aligned with windows.
// A zero window matches nothing. Events outside the retention horizon may
// still be counted if they have not been pruned yet; callers should keep
// windows at or below the horizon.
func (l *EventLog) ScanWindows(now time.Time, windows []time.Duration) []types.WindowBreakdown {
	global := make([]windowAccum, len(windows))
	perQueue := make([]map[types.QueueID]*windowAccum, len(windows))
	for i := range perQueue {
		perQueue[i] = make(map[types.QueueID]*windowAccum)
	}

	for _, ev := range l.events {
		age := now.Sub(ev.Timestamp)
		for i, w := range windows {
			if w <= 0 || age > w {
				continue
			}
			q := perQueue[i][ev.Queue]
			if q == nil {
				q = &windowAccum{}
				perQueue[i][ev.Queue] = q
			}
			accumulate(&global[i], ev)
			accumulate(q, ev)
		}
	}

	out := make([]types.WindowBreakdown, len(windows))
	for i := range windows {
		queues := make(map[types.QueueID]types.WindowStats, len(perQueue[i]))
		for qid, acc := range perQueue[i] {
			queues[qid] = acc.stats()
		}
		out[i] = types.WindowBreakdown{
			Global: global[i].stats(),
			Queues: queues,
		}
	}
	return out
}

func accumulate(acc *windowAccum, ev types.OutcomeEvent) {
	switch ev.Kind {
	case types.OutcomeAnswered:
		acc.answered++
		if ev.ServiceLevelHit {
			acc.hits++
		}
		acc.wait += ev.WaitSeconds
	case types.OutcomeAbandoned:
		acc.abandoned++
	}
}

func (acc *windowAccum) stats() types.WindowStats {
	return types.WindowStats{
		Answered:            acc.answered,
		Abandoned:           acc.abandoned,
		ServiceLevelPercent: serviceLevelPercent(acc.hits, acc.answered),
		TotalWaitSeconds:    acc.wait,
	}
}

// serviceLevelPercent is defined over answered calls only, never denominated
// by abandoned calls. Zero answered calls yields 0.
func serviceLevelPercent(hits, answered int) int {
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(answered) * 100))
}
