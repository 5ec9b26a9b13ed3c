package alerts

import (
	"testing"
	"time"

	"github.com/queuepulse/backend/internal/types"
)

func snapWithWindow(stats map[types.QueueID]types.WindowStats) *types.StatsSnapshot {
	return &types.StatsSnapshot{
		Windows: map[string]types.WindowBreakdown{
			"1h": {Queues: stats},
		},
	}
}

func TestServiceLevelCritical(t *testing.T) {
	snap := snapWithWindow(map[types.QueueID]types.WindowStats{
		"Q1": {Answered: 10, ServiceLevelPercent: 40},
	})
	CheckQueueAlerts(snap, "1h", time.Now())

	if len(snap.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(snap.Alerts))
	}
	a := snap.Alerts[0]
	if a.Rule != "sl_low" || a.Severity != types.SeverityCritical || a.Queue != "Q1" {
		t.Errorf("unexpected alert: %+v", a)
	}
}

func TestServiceLevelWarning(t *testing.T) {
	snap := snapWithWindow(map[types.QueueID]types.WindowStats{
		"Q1": {Answered: 10, ServiceLevelPercent: 60},
	})
	CheckQueueAlerts(snap, "1h", time.Now())

	if len(snap.Alerts) != 1 || snap.Alerts[0].Severity != types.SeverityWarning {
		t.Errorf("expected warning, got %+v", snap.Alerts)
	}
}

func TestServiceLevelNeedsMinimumVolume(t *testing.T) {
	snap := snapWithWindow(map[types.QueueID]types.WindowStats{
		"Q1": {Answered: 4, ServiceLevelPercent: 0},
	})
	CheckQueueAlerts(snap, "1h", time.Now())

	if len(snap.Alerts) != 0 {
		t.Errorf("expected no alert below minimum volume, got %+v", snap.Alerts)
	}
}

func TestLongWaitAlert(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snap := &types.StatsSnapshot{
		Windows: map[string]types.WindowBreakdown{"1h": {}},
		ActiveCallers: map[types.QueueID][]types.ActiveCaller{
			"Q1": {
				{Number: "555", JoinedAt: now.Add(-15 * time.Minute)},
				{Number: "556", JoinedAt: now.Add(-time.Minute)},
			},
			"Q2": {
				{Number: "777", JoinedAt: now.Add(-2 * time.Minute)},
			},
		},
	}
	CheckQueueAlerts(snap, "1h", now)

	if len(snap.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(snap.Alerts))
	}
	a := snap.Alerts[0]
	if a.Rule != "wait_long" || a.Queue != "Q1" || a.Severity != types.SeverityCritical {
		t.Errorf("unexpected alert: %+v", a)
	}
	if a.Message != "caller waiting for 15m0s" {
		t.Errorf("unexpected message: %s", a.Message)
	}
}

func TestAlertsClearedOnRecheck(t *testing.T) {
	snap := snapWithWindow(map[types.QueueID]types.WindowStats{
		"Q1": {Answered: 10, ServiceLevelPercent: 40},
	})
	CheckQueueAlerts(snap, "1h", time.Now())
	if len(snap.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(snap.Alerts))
	}

	snap.Windows["1h"] = types.WindowBreakdown{
		Queues: map[types.QueueID]types.WindowStats{
			"Q1": {Answered: 10, ServiceLevelPercent: 95},
		},
	}
	CheckQueueAlerts(snap, "1h", time.Now())
	if len(snap.Alerts) != 0 {
		t.Errorf("expected alerts cleared after recovery, got %+v", snap.Alerts)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Second, "1m30s"},
		{11 * time.Minute, "11m0s"},
		{95 * time.Minute, "1h35m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}
