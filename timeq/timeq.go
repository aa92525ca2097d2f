// File: timeq/timeq.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dedup min-queue of pending virtual wake deadlines.

package timeq

import (
	"container/heap"
	"time"

	"github.com/momentics/timeloop/api"
)

// Queue holds the set of virtual deadlines the loop still has to wake at. It
// keeps at most one entry per distinct deadline value: scheduling the same
// deadline twice is a no-op, the wake is already pending.
type Queue struct {
	pending map[time.Duration]struct{}
	heap    deadlineHeap
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		pending: make(map[time.Duration]struct{}),
	}
}

// Add records deadline as a pending wake. Idempotent for an already-pending
// deadline.
func (q *Queue) Add(deadline time.Duration) {
	if _, ok := q.pending[deadline]; ok {
		return
	}
	q.pending[deadline] = struct{}{}
	heap.Push(&q.heap, deadline)
}

// IsEmpty reports whether no wake is pending.
func (q *Queue) IsEmpty() bool {
	return len(q.pending) == 0
}

// Len returns the number of distinct pending deadlines.
func (q *Queue) Len() int {
	return len(q.pending)
}

// PopClosest removes and returns the smallest pending deadline. It fails with
// ErrEmptyTimerQueue when nothing is pending, which indicates a scheduling bug
// in the caller.
func (q *Queue) PopClosest() (time.Duration, error) {
	if q.IsEmpty() {
		return 0, api.NewError(api.ErrCodeEmptyTimerQueue, "pop on empty timer queue")
	}
	deadline := heap.Pop(&q.heap).(time.Duration)
	delete(q.pending, deadline)
	return deadline, nil
}

// deadlineHeap implements heap.Interface over virtual deadlines.
type deadlineHeap []time.Duration

func (h deadlineHeap) Len() int           { return len(h) }
func (h deadlineHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h deadlineHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *deadlineHeap) Push(x any)        { *h = append(*h, x.(time.Duration)) }
func (h *deadlineHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
