package stats

import (
	"sort"

	"github.com/queuepulse/backend/internal/types"
)

// DailyCounters holds today's cumulative per-queue and global counters.
// Wholly replaced at day rollover.
type DailyCounters struct {
	global types.QueueCounters
	queues map[types.QueueID]*types.QueueCounters
}

// NewDailyCounters creates empty counters.
func NewDailyCounters() *DailyCounters {
	return &DailyCounters{queues: make(map[types.QueueID]*types.QueueCounters)}
}

func (c *DailyCounters) queue(q types.QueueID) *types.QueueCounters {
	qc, ok := c.queues[q]
	if !ok {
		qc = &types.QueueCounters{}
		c.queues[q] = qc
	}
	return qc
}

// OnAnswered increments answered (and conditionally the service-level hit
// count) for both the queue and the global counters.
func (c *DailyCounters) OnAnswered(q types.QueueID, serviceLevelHit bool) {
	qc := c.queue(q)
	qc.Answered++
	c.global.Answered++
	if serviceLevelHit {
		qc.ServiceLevelHits++
		c.global.ServiceLevelHits++
	}
}

// OnAbandoned increments abandoned for the queue and global counters. Never
// touches service-level or wait accumulators.
func (c *DailyCounters) OnAbandoned(q types.QueueID) {
	c.queue(q).Abandoned++
	c.global.Abandoned++
}

// Snapshot copies the counters into a DailyStats value for the given date.
func (c *DailyCounters) Snapshot(date string) types.DailyStats {
	queues := make(map[types.QueueID]types.QueueCounters, len(c.queues))
	for q, qc := range c.queues {
		queues[q] = *qc
	}
	return types.DailyStats{
		Date:   date,
		Global: c.global,
		Queues: queues,
	}
}

// Rollup keeps the per-day, per-hour historical totals. It is never reset and
// is bounded by the number of days the process runs.
type Rollup struct {
	days map[string]*types.DayRollup
}

// NewRollup creates an empty rollup.
func NewRollup() *Rollup {
	return &Rollup{days: make(map[string]*types.DayRollup)}
}

// RecordAnswered adds an answered call to the date's running total and its
// hour-of-day bucket. Calls with an unknown wait contribute zero wait.
func (r *Rollup) RecordAnswered(date string, hour int, waitSeconds float64) {
	day, ok := r.days[date]
	if !ok {
		day = &types.DayRollup{Date: date}
		r.days[date] = day
	}
	day.Answered++
	day.TotalWaitSeconds += waitSeconds
	day.Hours[hour].Answered++
	day.Hours[hour].TotalWaitSeconds += waitSeconds
}

// Snapshot returns a copy of all day rollups sorted by date ascending.
func (r *Rollup) Snapshot() []types.DayRollup {
	out := make([]types.DayRollup, 0, len(r.days))
	for _, day := range r.days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
