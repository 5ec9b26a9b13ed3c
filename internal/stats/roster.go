package stats

import (
	"time"

	"github.com/queuepulse/backend/internal/types"
)

// ActiveRoster tracks the callers currently waiting in each queue, in join
// order. The roster survives day rollover: a call may span midnight.
type ActiveRoster struct {
	queues map[types.QueueID][]types.ActiveCaller
}

// NewActiveRoster creates an empty roster.
func NewActiveRoster() *ActiveRoster {
	return &ActiveRoster{queues: make(map[types.QueueID][]types.ActiveCaller)}
}

// Add appends a caller to the queue's roster. Any existing entry with the
// same number is removed first, so repeated join signals never produce
// duplicate entries.
func (r *ActiveRoster) Add(queue types.QueueID, number, name string, now time.Time) {
	r.Remove(queue, number)
	r.queues[queue] = append(r.queues[queue], types.ActiveCaller{
		Number:   number,
		Name:     name,
		JoinedAt: now,
	})
}

// Remove deletes the entry with the given number. No-op when absent.
func (r *ActiveRoster) Remove(queue types.QueueID, number string) {
	entries := r.queues[queue]
	for i, e := range entries {
		if e.Number == number {
			r.queues[queue] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// RemoveOldest drops the earliest-joined entry for the queue. Used when an
// outcome event carries no caller number: queues are served roughly in
// arrival order, so evicting the head is the best-effort correlation. This is
// a heuristic and can evict the wrong caller under concurrent abandons.
func (r *ActiveRoster) RemoveOldest(queue types.QueueID) {
	entries := r.queues[queue]
	if len(entries) > 0 {
		r.queues[queue] = entries[1:]
	}
}

// Waiting returns the number of callers currently waiting in the queue.
func (r *ActiveRoster) Waiting(queue types.QueueID) int {
	return len(r.queues[queue])
}

// Snapshot returns a deep copy of the roster keyed by queue, omitting queues
// with no waiting callers.
func (r *ActiveRoster) Snapshot() map[types.QueueID][]types.ActiveCaller {
	out := make(map[types.QueueID][]types.ActiveCaller, len(r.queues))
	for q, entries := range r.queues {
		if len(entries) == 0 {
			continue
		}
		cp := make([]types.ActiveCaller, len(entries))
		copy(cp, entries)
		out[q] = cp
	}
	return out
}
