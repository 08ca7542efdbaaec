// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

// cortex.Time contains the timing state and parameters for running a model
// with Network.Run
type Time struct {
	Time       float32 `desc:"accumulated amount of simulated time since the last reset"`
	Cycle      int     `desc:"cycle counter: number of steps within the current trial"`
	CycleTot   int     `desc:"total cycle count since the last reset"`
	Trial      int     `desc:"trial counter, incremented by TrialInc"`
	TimePerCyc float32 `def:"0.1" min:"0" desc:"amount of time to step per cycle (dt)"`
	CycPerTrl  int     `def:"100" min:"1" desc:"number of cycles per trial, used by RunTrial"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerCyc = 0.1
	tm.CycPerTrl = 100
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	tm.CycleTot = 0
	tm.Trial = 0
	if tm.TimePerCyc == 0 {
		tm.Defaults()
	}
}

// TrialStart starts a new trial
func (tm *Time) TrialStart() {
	tm.Cycle = 0
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.TimePerCyc
}

// TrialInc increments at the trial level
func (tm *Time) TrialInc() {
	tm.Trial++
}
