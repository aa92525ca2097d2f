// File: loop/schedule.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer and callback scheduling.

package loop

import (
	"container/heap"
	"time"

	"github.com/momentics/timeloop/api"
)

// CallSoon enqueues fn to run on the next loop iteration, after anything
// already queued. The returned handle can be cancelled up until dispatch.
func (l *Loop) CallSoon(fn func()) (*api.Handle, error) {
	if l.closed {
		return nil, api.NewError(api.ErrCodeLoopClosed, "call_soon on closed loop")
	}
	h := api.NewHandle(fn)
	l.ready.Add(h)
	return h, nil
}

// CallAt schedules fn for the virtual deadline when. The deadline is recorded
// as a pending wake (one wake per distinct deadline value) and the handle goes
// on the scheduled heap. Two CallAt calls with an identical deadline share one
// wake but keep independent handles; both callbacks run when the clock reaches
// the deadline.
func (l *Loop) CallAt(when time.Duration, fn func()) (*api.TimerHandle, error) {
	if l.closed {
		return nil, api.NewError(api.ErrCodeLoopClosed, "call_at on closed loop")
	}
	l.timers.Add(when)
	th := api.NewTimerHandle(when, fn)
	heap.Push(&l.scheduled, th)
	return th, nil
}

// CallLater schedules fn for delay past the current virtual clock value.
func (l *Loop) CallLater(delay time.Duration, fn func()) (*api.TimerHandle, error) {
	return l.CallAt(l.now+delay, fn)
}

// timerHeap orders scheduled handles by deadline. Handles sharing a deadline
// keep no secondary order among themselves; the wake queue dedups the deadline
// and all of them fire within the same iteration.
type timerHeap []*api.TimerHandle

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].When() < h[j].When() }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)        { *h = append(*h, x.(*api.TimerHandle)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
