// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

// Queue holds pending events in insertion order.
type Queue struct {
	Events []Event `desc:"pending events, in the order they were pushed"`
}

// Push appends an event to the end of the queue
func (q *Queue) Push(ev Event) {
	q.Events = append(q.Events, ev)
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	return len(q.Events)
}

// Reset discards all pending events
func (q *Queue) Reset() {
	q.Events = q.Events[:0]
}

// MaxDelay returns the largest remaining delay in the queue, 0 if empty
func (q *Queue) MaxDelay() float32 {
	mx := float32(0)
	for i := range q.Events {
		if q.Events[i].Delay > mx {
			mx = q.Events[i].Delay
		}
	}
	return mx
}

// Drain subtracts dt from the delay of every pending event, in queue order.
// Events whose delay is then <= 0 are passed to apply and removed; the rest
// stay queued in their original relative order. Events pushed by apply are
// not visited until the next Drain. Returns the number of events applied.
func (q *Queue) Drain(dt float32, apply func(ev *Event)) int {
	n := len(q.Events)
	keep := 0
	fired := 0
	for i := 0; i < n; i++ {
		ev := q.Events[i]
		ev.Delay -= dt
		if ev.Due() {
			apply(&ev)
			fired++
			continue
		}
		q.Events[keep] = ev
		keep++
	}
	// anything pushed during apply goes after the survivors
	if len(q.Events) > n {
		keep += copy(q.Events[keep:], q.Events[n:])
	}
	q.Events = q.Events[:keep]
	return fired
}
