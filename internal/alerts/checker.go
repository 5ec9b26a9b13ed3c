package alerts

import (
	"fmt"
	"time"

	"github.com/queuepulse/backend/internal/types"
)

const (
	// Minimum answered calls in the window before the SL rule fires, so a
	// single slow answer does not page anyone.
	slMinAnswered = 5

	slWarningPercent  = 70
	slCriticalPercent = 50

	longWaitLimit = 10 * time.Minute
)

// CheckQueueAlerts evaluates alert rules against a snapshot, mutating its
// Alerts field in place. The service-level rules read the shortest configured
// window; the wait rule reads the live roster.
func CheckQueueAlerts(snap *types.StatsSnapshot, shortestWindow string, now time.Time) {
	snap.Alerts = nil

	if wb, ok := snap.Windows[shortestWindow]; ok {
		for queue, ws := range wb.Queues {
			if ws.Answered < slMinAnswered {
				continue
			}
			switch {
			case ws.ServiceLevelPercent < slCriticalPercent:
				snap.Alerts = append(snap.Alerts, types.QueueAlert{
					Queue:    queue,
					Rule:     "sl_low",
					Severity: types.SeverityCritical,
					Message:  fmt.Sprintf("SL %d%% over last %s", ws.ServiceLevelPercent, shortestWindow),
				})
			case ws.ServiceLevelPercent < slWarningPercent:
				snap.Alerts = append(snap.Alerts, types.QueueAlert{
					Queue:    queue,
					Rule:     "sl_low",
					Severity: types.SeverityWarning,
					Message:  fmt.Sprintf("SL %d%% over last %s", ws.ServiceLevelPercent, shortestWindow),
				})
			}
		}
	}

	for queue, callers := range snap.ActiveCallers {
		if len(callers) == 0 {
			continue
		}
		// Entries are in join order; the head has waited longest.
		dur := now.Sub(callers[0].JoinedAt)
		if dur > longWaitLimit {
			snap.Alerts = append(snap.Alerts, types.QueueAlert{
				Queue:    queue,
				Rule:     "wait_long",
				Severity: types.SeverityCritical,
				Message:  fmt.Sprintf("caller waiting for %s", formatDuration(dur)),
			})
		}
	}
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if mins >= 60 {
		hours := mins / 60
		mins = mins % 60
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	return fmt.Sprintf("%dm%ds", mins, secs)
}
