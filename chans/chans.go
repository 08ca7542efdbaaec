// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the ion channel sets used by conductance-based
population models: one value per channel type, used both for maximal
conductances and for reversal potentials.
*/
package chans

// Chans holds one value for each ion channel used by the population models
type Chans struct {
	Ca float32 `desc:"voltage-gated calcium channels -- primary depolarizing current in the Morris-Lecar formulation"`
	K  float32 `desc:"delayed-rectifier potassium channels -- gated by the slow recovery variable"`
	L  float32 `desc:"constant leak channels -- determine the resting potential"`
	Na float32 `desc:"voltage-gated sodium channels"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(ca, k, l, na float32) {
	ch.Ca, ch.K, ch.L, ch.Na = ca, k, l, na
}

// Current returns the ohmic current g * (v - erev) for each channel, given
// conductances in ch, reversal potentials in erev and potential v.
func (ch *Chans) Current(erev *Chans, v float32) Chans {
	return Chans{
		Ca: ch.Ca * (v - erev.Ca),
		K:  ch.K * (v - erev.K),
		L:  ch.L * (v - erev.L),
		Na: ch.Na * (v - erev.Na),
	}
}
