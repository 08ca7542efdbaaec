// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "github.com/emer/cortex/event"

// DendParams are the parameters for a Dendrite
type DendParams struct {
	Rest float32 `def:"0" desc:"resting value of the accumulator, restored after every forward"`
}

func (dp *DendParams) Defaults() {
	dp.Rest = 0
}

func (dp *DendParams) Update() {
}

// Dendrite sums all incoming synapse and dendrite input and forwards the sum
// to its single next target (another Dendrite or the Soma) on every step,
// whether or not new input arrived.
type Dendrite struct {
	UnitBase
	Dend     DendParams `view:"inline" desc:"dendrite parameters"`
	Accum    float32    `inactive:"+" desc:"accumulated input since the last forward"`
	Next     int        `inactive:"+" desc:"id of the next Dendrite or Soma, -1 if none"`
	Synapses []int      `inactive:"+" desc:"ids of synapses belonging to this dendrite"`
}

// NewDendrite returns a new detached Dendrite with default params
func NewDendrite(name string) *Dendrite {
	dd := &Dendrite{Next: -1}
	dd.InitBase(dd, name)
	dd.Defaults()
	return dd
}

func (dd *Dendrite) Kind() Kinds      { return DendriteKind }
func (dd *Dendrite) TypeName() string { return "Dendrite" }

func (dd *Dendrite) Defaults() {
	dd.Dend.Defaults()
	dd.InitState()
}

func (dd *Dendrite) UpdateParams() {
	dd.Dend.Update()
}

func (dd *Dendrite) InitState() {
	dd.Accum = dd.Dend.Rest
}

func (dd *Dendrite) ApplyEvent(ev *event.Event) {
	dd.Accum += ev.Value
}

// Advance forwards Accum to Next and resets it to Rest
func (dd *Dendrite) Advance(ctx *Context) bool {
	dd.Emit(ctx, dd.Accum)
	dd.Accum = dd.Dend.Rest
	return true
}

func (dd *Dendrite) OutputValue() float32 {
	return dd.Accum
}

func (dd *Dendrite) removeSynapse(id int) {
	for i, sy := range dd.Synapses {
		if sy == id {
			dd.Synapses = append(dd.Synapses[:i], dd.Synapses[i+1:]...)
			return
		}
	}
}
