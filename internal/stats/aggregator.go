package stats

import (
	"sync"
	"time"

	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/types"
	"github.com/rs/zerolog"
)

// Window is one configured trailing window, e.g. {"1h", time.Hour}.
type Window struct {
	Label    string
	Duration time.Duration
}

// Options configures the aggregation engine.
type Options struct {
	// SLThreshold is the inclusive answer-time threshold for a service-level
	// hit. Default 30s.
	SLThreshold time.Duration

	// Retention is the event log retention horizon. Default 6h.
	Retention time.Duration

	// PruneThreshold is the log length above which expired entries are
	// pruned. Default 4096.
	PruneThreshold int

	// Windows are the trailing windows evaluated at query time.
	// Default 1h/2h/4h.
	Windows []Window

	// Location fixes the calendar-day boundary for rollover. Default UTC.
	// Deliberately never the host locale, so rollover is reproducible.
	Location *time.Location
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.SLThreshold <= 0 {
		out.SLThreshold = 30 * time.Second
	}
	if out.Retention <= 0 {
		out.Retention = 6 * time.Hour
	}
	if out.PruneThreshold <= 0 {
		out.PruneThreshold = 4096
	}
	if len(out.Windows) == 0 {
		out.Windows = []Window{
			{Label: "1h", Duration: time.Hour},
			{Label: "2h", Duration: 2 * time.Hour},
			{Label: "4h", Duration: 4 * time.Hour},
		}
	}
	if out.Location == nil {
		out.Location = time.UTC
	}
	return out
}

// Aggregator owns all mutable aggregation state: the correlation table, the
// active roster, the event log and the cumulative counters. One RWMutex
// guards the four structures as a group because they are only mutually
// consistent as a group: an event log append and its counter increment must
// never be observed out of step, and the day-rollover swap must be atomic.
// The feed goroutine writes, HTTP and broadcast goroutines read.
type Aggregator struct {
	mu   sync.RWMutex
	opts Options

	day         string // current calendar date in opts.Location
	correlation *CorrelationTable
	roster      *ActiveRoster
	log         *EventLog
	counters    *DailyCounters
	rollup      *Rollup

	logger zerolog.Logger
}

// NewAggregator creates an aggregator with the current day initialized from
// the wall clock.
func NewAggregator(opts Options, logger zerolog.Logger) *Aggregator {
	o := opts.withDefaults()
	return &Aggregator{
		opts:        o,
		day:         time.Now().In(o.Location).Format("2006-01-02"),
		correlation: NewCorrelationTable(),
		roster:      NewActiveRoster(),
		log:         NewEventLog(o.Retention, o.PruneThreshold),
		counters:    NewDailyCounters(),
		rollup:      NewRollup(),
		logger:      logger.With().Str("component", "stats").Logger(),
	}
}

// Windows returns the configured trailing windows.
func (a *Aggregator) Windows() []Window {
	return a.opts.Windows
}

// ShortestWindow returns the configured window with the smallest duration.
func (a *Aggregator) ShortestWindow() Window {
	shortest := a.opts.Windows[0]
	for _, w := range a.opts.Windows[1:] {
		if w.Duration < shortest.Duration {
			shortest = w
		}
	}
	return shortest
}

// RecordJoin handles a caller entering a queue. Callers without a number are
// tracked only in aggregate and produce no roster or correlation entry.
func (a *Aggregator) RecordJoin(queue types.QueueID, number, name string, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.checkRollover(now)
	if number == "" {
		return
	}
	a.correlation.RecordJoin(number, now)
	a.roster.Add(queue, number, name, now)
}

// RecordAnswered handles a caller leaving a queue to an agent. When the event
// carries no number the oldest roster entry for the queue is evicted, the same
// fallback as for abandons. Returns the outcome event appended to the log.
func (a *Aggregator) RecordAnswered(queue types.QueueID, number string, now time.Time) types.OutcomeEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.checkRollover(now)
	if number != "" {
		a.roster.Remove(queue, number)
	} else {
		a.roster.RemoveOldest(queue)
	}

	ev := types.OutcomeEvent{
		Timestamp: now,
		Queue:     queue,
		Kind:      types.OutcomeAnswered,
	}
	if number != "" {
		if wait, ok := a.correlation.Resolve(number, now); ok {
			ev.WaitSeconds = wait
			ev.WaitKnown = true
			ev.ServiceLevelHit = wait <= a.opts.SLThreshold.Seconds()
		}
	}

	a.counters.OnAnswered(queue, ev.ServiceLevelHit)
	local := now.In(a.opts.Location)
	a.rollup.RecordAnswered(a.day, local.Hour(), ev.WaitSeconds)
	a.log.Append(ev)
	return ev
}

// RecordAbandoned handles a caller hanging up while waiting. When the event
// carries no number the oldest roster entry for the queue is evicted as a
// best-effort correlation.
func (a *Aggregator) RecordAbandoned(queue types.QueueID, number string, now time.Time) types.OutcomeEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.checkRollover(now)
	if number != "" {
		a.roster.Remove(queue, number)
		a.correlation.Resolve(number, now)
	} else {
		a.roster.RemoveOldest(queue)
	}

	ev := types.OutcomeEvent{
		Timestamp: now,
		Queue:     queue,
		Kind:      types.OutcomeAbandoned,
	}
	a.counters.OnAbandoned(queue)
	a.log.Append(ev)
	return ev
}

// checkRollover resets the counters, event log and correlation table when the
// calendar date changed since the last event. The roster and historical
// rollup survive: callers can wait across midnight and history never resets.
// Caller must hold the write lock, so the swap is observed fully-before or
// fully-after any event or query, never partially.
func (a *Aggregator) checkRollover(now time.Time) {
	day := now.In(a.opts.Location).Format("2006-01-02")
	if day == a.day {
		return
	}

	a.logger.Info().
		Str("previous_day", a.day).
		Str("day", day).
		Int("dropped_events", a.log.Len()).
		Int("dropped_pending", a.correlation.Len()).
		Msg("day rollover, daily stats reset")

	a.day = day
	a.counters = NewDailyCounters()
	a.log.Reset()
	a.correlation.Reset()
	metrics.Get().RecordDayRollover()
}

// Snapshot produces a consistent point-in-time view of the daily counters,
// every configured trailing window and the active roster, under a single
// read-lock acquisition.
func (a *Aggregator) Snapshot(now time.Time) types.StatsSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	durations := make([]time.Duration, len(a.opts.Windows))
	for i, w := range a.opts.Windows {
		durations[i] = w.Duration
	}
	breakdowns := a.log.ScanWindows(now, durations)

	windows := make(map[string]types.WindowBreakdown, len(a.opts.Windows))
	for i, w := range a.opts.Windows {
		windows[w.Label] = breakdowns[i]
	}

	return types.StatsSnapshot{
		Type:          "snapshot",
		Timestamp:     now,
		Daily:         a.counters.Snapshot(a.day),
		Windows:       windows,
		ActiveCallers: a.roster.Snapshot(),
	}
}

// History returns the per-day/per-hour rollup, sorted by date.
func (a *Aggregator) History() []types.DayRollup {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rollup.Snapshot()
}

// PendingCalls returns the number of unresolved join entries. Exposed for
// observability.
func (a *Aggregator) PendingCalls() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.correlation.Len()
}
