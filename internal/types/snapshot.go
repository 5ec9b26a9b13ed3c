package types

import "time"

// WindowStats holds aggregates recomputed from the event log for one trailing
// window. ServiceLevelPercent is defined over answered calls only.
type WindowStats struct {
	Answered            int     `json:"answered"`
	Abandoned           int     `json:"abandoned"`
	ServiceLevelPercent int     `json:"serviceLevelPercent"`
	TotalWaitSeconds    float64 `json:"totalWaitSeconds"`
}

// WindowBreakdown groups global and per-queue stats for one trailing window.
type WindowBreakdown struct {
	Global WindowStats             `json:"global"`
	Queues map[QueueID]WindowStats `json:"queues"`
}

// DailyStats holds today's cumulative counters.
type DailyStats struct {
	Date   string                    `json:"date"`
	Global QueueCounters             `json:"global"`
	Queues map[QueueID]QueueCounters `json:"queues"`
}

// AlertSeverity classifies a queue alert.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// QueueAlert flags a queue whose live stats crossed an alert rule.
type QueueAlert struct {
	Queue    QueueID       `json:"queue"`
	Rule     string        `json:"rule"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// StatsSnapshot is the single payload served on /stats and pushed to
// dashboard clients every broadcast tick.
type StatsSnapshot struct {
	Type          string                     `json:"type"` // always "snapshot"
	Timestamp     time.Time                  `json:"timestamp"`
	Daily         DailyStats                 `json:"daily"`
	Windows       map[string]WindowBreakdown `json:"windows"` // keyed by window label, e.g. "1h"
	ActiveCallers map[QueueID][]ActiveCaller `json:"activeCallers"`
	Alerts        []QueueAlert               `json:"alerts,omitempty"`
}

// HourRollup is one hour-of-day bucket of the historical rollup.
type HourRollup struct {
	Answered         int     `json:"answered"`
	TotalWaitSeconds float64 `json:"totalWaitSeconds"`
}

// DayRollup is the per-day historical rollup. Never reset; survives day
// rollover and grows for the process lifetime.
type DayRollup struct {
	Date             string         `json:"date"`
	Answered         int            `json:"answered"`
	TotalWaitSeconds float64        `json:"totalWaitSeconds"`
	Hours            [24]HourRollup `json:"hours"`
}
