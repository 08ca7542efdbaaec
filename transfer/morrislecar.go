// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/chewxy/math32"
	"github.com/emer/cortex/chans"
)

// MorrisLecar state variable indexes
const (
	// MLV is the mean excitatory membrane potential
	MLV = iota

	// MLW is the fraction of open potassium channels (slow recovery)
	MLW

	// MLZ is the mean inhibitory membrane potential
	MLZ

	MLN
)

// GateParams is a sigmoidal gating function 0.5 * (1 + tanh((v - T) / D))
type GateParams struct {
	T float32 `desc:"threshold (half-activation) potential"`
	D float32 `min:"0" desc:"width of the threshold distribution"`
}

// Open returns the open fraction at potential v
func (gp *GateParams) Open(v float32) float32 {
	return 0.5 * (1 + math32.Tanh((v-gp.T)/gp.D))
}

// MorrisLecar is a three-variable conductance-based population model in the
// Larter-Breakspear formulation: excitatory cells with Ca, K, Na and leak
// channels coupled to an inhibitory population, with a slow K recovery
// variable. Output is the excitatory mean firing rate QV.
type MorrisLecar struct {
	InputHolder
	Gbar   chans.Chans `view:"inline" desc:"maximal conductances [Defaults: Ca 1.1, K 2, L 0.5, Na 6.7]"`
	Erev   chans.Chans `view:"inline" desc:"reversal potentials [Defaults: Ca 1, K -0.7, L -0.5, Na 0.53]"`
	Ca     GateParams  `view:"inline" desc:"calcium channel gating"`
	K      GateParams  `view:"inline" desc:"potassium channel gating"`
	Na     GateParams  `view:"inline" desc:"sodium channel gating"`
	VRate  GateParams  `view:"inline" desc:"excitatory firing rate as a function of V"`
	ZRate  GateParams  `view:"inline" desc:"inhibitory firing rate as a function of Z"`
	QVMax  float32     `def:"1" desc:"maximal excitatory firing rate"`
	QZMax  float32     `def:"1" desc:"maximal inhibitory firing rate"`
	Aee    float32     `def:"0.4" desc:"excitatory-to-excitatory synaptic strength"`
	Aei    float32     `def:"2" desc:"excitatory-to-inhibitory synaptic strength"`
	Aie    float32     `def:"2" desc:"inhibitory-to-excitatory synaptic strength"`
	Ane    float32     `def:"1" desc:"strength of external input onto excitatory cells"`
	Ani    float32     `def:"0.4" desc:"strength of external input onto inhibitory cells"`
	RNMDA  float32     `def:"0.25" desc:"ratio of NMDA to AMPA receptors"`
	B      float32     `def:"0.1" desc:"time scale factor of the inhibitory population"`
	Phi    float32     `def:"0.7" desc:"temperature scaling factor of the K recovery"`
	TauK   float32     `def:"1" min:"0" desc:"time constant of the K recovery"`
	TScale float32     `def:"1" min:"0" desc:"overall rate multiplier -- converts model time units to simulation time"`
}

func (ml *MorrisLecar) Name() string { return "MorrisLecar" }
func (ml *MorrisLecar) NState() int  { return MLN }

func (ml *MorrisLecar) Defaults() {
	ml.Gbar.SetAll(1.1, 2.0, 0.5, 6.7)
	ml.Erev.SetAll(1.0, -0.7, -0.5, 0.53)
	ml.Ca = GateParams{T: -0.01, D: 0.15}
	ml.K = GateParams{T: 0, D: 0.3}
	ml.Na = GateParams{T: 0.3, D: 0.15}
	ml.VRate = GateParams{T: 0, D: 0.65}
	ml.ZRate = GateParams{T: 0, D: 0.65}
	ml.QVMax = 1
	ml.QZMax = 1
	ml.Aee = 0.4
	ml.Aei = 2
	ml.Aie = 2
	ml.Ane = 1
	ml.Ani = 0.4
	ml.RNMDA = 0.25
	ml.B = 0.1
	ml.Phi = 0.7
	ml.TauK = 1
	ml.TScale = 1
	ml.Update()
}

func (ml *MorrisLecar) Update() {
}

func (ml *MorrisLecar) InitState(st []float32) {
	st[MLV] = ml.Erev.L
	st[MLW] = ml.K.Open(ml.Erev.L)
	st[MLZ] = 0
}

// QV returns the excitatory firing rate at potential v
func (ml *MorrisLecar) QV(v float32) float32 {
	return ml.QVMax * ml.VRate.Open(v)
}

// QZ returns the inhibitory firing rate at potential z
func (ml *MorrisLecar) QZ(z float32) float32 {
	return ml.QZMax * ml.ZRate.Open(z)
}

// Conductances returns the effective channel conductances at potential v
// with K recovery w: Ca and Na are voltage gated and boosted by excitatory
// feedback, K is gated by w, and L is constant.
func (ml *MorrisLecar) Conductances(v, w float32) chans.Chans {
	qv := ml.QV(v)
	return chans.Chans{
		Ca: (ml.Gbar.Ca + ml.RNMDA*ml.Aee*qv) * ml.Ca.Open(v),
		K:  ml.Gbar.K * w,
		L:  ml.Gbar.L,
		Na: ml.Gbar.Na*ml.Na.Open(v) + ml.Aee*qv,
	}
}

func (ml *MorrisLecar) Rate(st, rate []float32) {
	v, w, z := st[MLV], st[MLW], st[MLZ]
	g := ml.Conductances(v, w)
	cur := g.Current(&ml.Erev, v)
	dv := -(cur.Ca + cur.K + cur.L + cur.Na) -
		ml.Aie*z*ml.QZ(z) +
		ml.Ane*ml.In

	rate[MLV] = ml.TScale * dv
	rate[MLW] = ml.TScale * ml.Phi * (ml.K.Open(v) - w) / ml.TauK
	rate[MLZ] = ml.TScale * ml.B * (ml.Ani*ml.In + ml.Aei*v*ml.QV(v))
}

func (ml *MorrisLecar) Output(st []float32) float32 {
	return ml.QV(st[MLV])
}
