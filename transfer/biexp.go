// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

// BiExp state variable indexes
const (
	// BiExpAct is the population activity (the output)
	BiExpAct = iota

	// BiExpSyn is the synaptic drive
	BiExpSyn

	BiExpN
)

// BiExp is a two-variable biexponential model: the input drives a synaptic
// term that decays with SynTau, and that term drives the activity, which
// relaxes back to Base with Tau.
//
//	dS/dt = -S / SynTau + Gain * input
//	dA/dt = (Base - A) / Tau + S
type BiExp struct {
	InputHolder
	Tau    float32 `def:"10" min:"0" desc:"time constant of activity relaxation toward Base"`
	SynTau float32 `def:"5" min:"0" desc:"time constant of decay of the synaptic drive"`
	Gain   float32 `def:"1" desc:"multiplier on the input driving the synaptic term"`
	Base   float32 `def:"0" desc:"baseline activity that the population relaxes to without input"`

	dt    float32
	synDt float32
}

func (bx *BiExp) Name() string { return "BiExp" }
func (bx *BiExp) NState() int  { return BiExpN }

func (bx *BiExp) Defaults() {
	bx.Tau = 10
	bx.SynTau = 5
	bx.Gain = 1
	bx.Base = 0
	bx.Update()
}

func (bx *BiExp) Update() {
	bx.dt = 1 / bx.Tau
	bx.synDt = 1 / bx.SynTau
}

func (bx *BiExp) InitState(st []float32) {
	st[BiExpAct] = bx.Base
	st[BiExpSyn] = 0
}

func (bx *BiExp) Rate(st, rate []float32) {
	rate[BiExpSyn] = -st[BiExpSyn]*bx.synDt + bx.Gain*bx.In
	rate[BiExpAct] = (bx.Base-st[BiExpAct])*bx.dt + st[BiExpSyn]
}

func (bx *BiExp) Output(st []float32) float32 {
	return st[BiExpAct]
}

// SteadyState returns the fixed point of activity for a constant input
func (bx *BiExp) SteadyState(in float32) float32 {
	return bx.Base + bx.Tau*bx.SynTau*bx.Gain*in
}
