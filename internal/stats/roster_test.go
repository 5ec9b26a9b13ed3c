package stats

import (
	"testing"
	"time"
)

func TestRosterAddDeduplicates(t *testing.T) {
	r := NewActiveRoster()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r.Add("Q1", "555", "Alice", base)
	r.Add("Q1", "555", "Alice", base.Add(time.Minute))

	if r.Waiting("Q1") != 1 {
		t.Fatalf("expected 1 entry after rejoin, got %d", r.Waiting("Q1"))
	}
	snap := r.Snapshot()
	if got := snap["Q1"][0].JoinedAt; !got.Equal(base.Add(time.Minute)) {
		t.Errorf("expected rejoin to refresh JoinedAt, got %v", got)
	}
}

func TestRosterRejoinMovesToTail(t *testing.T) {
	r := NewActiveRoster()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r.Add("Q1", "111", "", base)
	r.Add("Q1", "222", "", base.Add(time.Second))
	r.Add("Q1", "111", "", base.Add(2*time.Second))

	snap := r.Snapshot()["Q1"]
	if snap[0].Number != "222" || snap[1].Number != "111" {
		t.Errorf("expected rejoin at tail, got order %s, %s", snap[0].Number, snap[1].Number)
	}
}

func TestRosterRemoveAbsentIsNoop(t *testing.T) {
	r := NewActiveRoster()
	r.Remove("Q1", "nobody")
	if r.Waiting("Q1") != 0 {
		t.Error("expected empty roster")
	}
}

func TestRosterRemoveOldest(t *testing.T) {
	r := NewActiveRoster()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r.Add("Q1", "111", "", base)
	r.Add("Q1", "222", "", base.Add(time.Second))
	r.RemoveOldest("Q1")

	snap := r.Snapshot()["Q1"]
	if len(snap) != 1 || snap[0].Number != "222" {
		t.Errorf("expected head evicted, got %+v", snap)
	}

	// Empty queue: no-op
	r.RemoveOldest("Q2")
}

func TestRosterSnapshotIsDeepCopy(t *testing.T) {
	r := NewActiveRoster()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r.Add("Q1", "555", "Alice", base)
	snap := r.Snapshot()
	r.Remove("Q1", "555")

	if len(snap["Q1"]) != 1 {
		t.Error("snapshot affected by later removal")
	}
}

func TestRosterSnapshotOmitsEmptyQueues(t *testing.T) {
	r := NewActiveRoster()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r.Add("Q1", "555", "", base)
	r.Remove("Q1", "555")

	if _, ok := r.Snapshot()["Q1"]; ok {
		t.Error("expected drained queue omitted from snapshot")
	}
}

func TestCorrelationResolveOnce(t *testing.T) {
	ct := NewCorrelationTable()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	ct.RecordJoin("555", base)

	wait, ok := ct.Resolve("555", base.Add(12*time.Second))
	if !ok || wait != 12 {
		t.Errorf("expected 12s wait, got %.1f ok=%v", wait, ok)
	}

	if _, ok := ct.Resolve("555", base.Add(time.Minute)); ok {
		t.Error("expected second resolve to miss")
	}
	if ct.Len() != 0 {
		t.Errorf("expected empty table, got %d", ct.Len())
	}
}
