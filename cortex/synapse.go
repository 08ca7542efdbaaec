// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "github.com/emer/cortex/event"

// SynParams are the parameters for a Synapse
type SynParams struct {
	Wt   float32 `def:"1" desc:"synaptic weight multiplying the axon output"`
	Rest float32 `def:"0" desc:"resting potential, restored after every forward"`
}

func (sp *SynParams) Defaults() {
	sp.Wt = 1
	sp.Rest = 0
}

func (sp *SynParams) Update() {
}

// Synapse accumulates axon output times its weight, and sends the result to
// its Dendrite on every advance. It is driven by exactly one Axon and
// belongs to exactly one Dendrite.
type Synapse struct {
	UnitBase
	Syn       SynParams `view:"inline" desc:"synapse parameters"`
	Potential float32   `inactive:"+" desc:"accumulated weighted input since the last forward"`
	Axon      int       `inactive:"+" desc:"id of the driving Axon, -1 if none"`
	Dend      int       `inactive:"+" desc:"id of the owning Dendrite, -1 if none"`
}

// NewSynapse returns a new detached Synapse with given weight
func NewSynapse(name string, wt float32) *Synapse {
	sy := &Synapse{Axon: -1, Dend: -1}
	sy.InitBase(sy, name)
	sy.Defaults()
	sy.Syn.Wt = wt
	return sy
}

func (sy *Synapse) Kind() Kinds      { return SynapseKind }
func (sy *Synapse) TypeName() string { return "Synapse" }

func (sy *Synapse) Defaults() {
	sy.Syn.Defaults()
	sy.InitState()
}

func (sy *Synapse) UpdateParams() {
	sy.Syn.Update()
}

func (sy *Synapse) InitState() {
	sy.Potential = sy.Syn.Rest
}

func (sy *Synapse) ApplyEvent(ev *event.Event) {
	sy.Potential += ev.Value * sy.Syn.Wt
}

// Advance sends Potential to the Dendrite and resets it to Rest
func (sy *Synapse) Advance(ctx *Context) bool {
	sy.Emit(ctx, sy.Potential)
	sy.Potential = sy.Syn.Rest
	return true
}

func (sy *Synapse) OutputValue() float32 {
	return sy.Potential
}
