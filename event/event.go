// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package event provides the discrete messages that carry activity between
components, and the per-component queue that holds them while their
conduction delay counts down.

There is no global scheduler: each component owns a Queue, and every
Drain call subtracts the step size from each pending delay, applying the
events whose delay has run out in the order they were pushed.
*/
package event

// EnvOrigin is the From value used for events that originate in the
// external environment rather than in another component.
const EnvOrigin = -1

// Event is a single message in flight to a component.
// Value and From are fixed at construction; only Delay counts down.
type Event struct {
	Value float32 `desc:"payload carried by the event -- interpretation depends on the receiving component"`
	From  int     `desc:"id of the component that emitted the event, or EnvOrigin"`
	Delay float32 `desc:"remaining conduction delay -- event fires when this is <= 0"`
	Time  float32 `desc:"simulated time at the start of the step in which the event was emitted"`
}

// New returns an event with given payload, origin, delay and emission time
func New(val float32, from int, delay, tm float32) Event {
	return Event{Value: val, From: from, Delay: delay, Time: tm}
}

// Due returns true if the event has finished its delay
func (ev *Event) Due() bool {
	return ev.Delay <= 0
}
