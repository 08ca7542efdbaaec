// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "github.com/emer/cortex/event"

///////////////////////////////////////////////////////////////////////
//  SpikeParams

// SpikeParams are the integrate-and-fire parameters for a Soma
type SpikeParams struct {
	Thr  float32 `def:"1" desc:"threshold that Potential must strictly exceed to fire an action potential"`
	Rest float32 `def:"0" desc:"resting potential, to which Potential is reset after firing"`
	AP   float32 `def:"1" min:"0" desc:"magnitude of the action potential sent on every outgoing connection when firing"`
}

func (sp *SpikeParams) Defaults() {
	sp.Thr = 1
	sp.Rest = 0
	sp.AP = 1
	sp.Update()
}

func (sp *SpikeParams) Update() {
}

// Fires returns true if potential v is over threshold
func (sp *SpikeParams) Fires(v float32) bool {
	return v > sp.Thr
}

///////////////////////////////////////////////////////////////////////
//  Soma

// Soma integrates incoming potential and fires an action potential
// when it strictly exceeds threshold, resetting to rest.
// There is no decay of potential between spikes.
type Soma struct {
	UnitBase
	Spike     SpikeParams `view:"inline" desc:"integrate-and-fire parameters"`
	Potential float32     `inactive:"+" desc:"integrated membrane potential"`
	NSpikes   int         `inactive:"+" desc:"number of spikes fired since the last reset"`
}

// NewSoma returns a new detached Soma with default params
func NewSoma(name string) *Soma {
	sm := &Soma{}
	sm.InitBase(sm, name)
	sm.Defaults()
	return sm
}

func (sm *Soma) Kind() Kinds      { return SomaKind }
func (sm *Soma) TypeName() string { return "Soma" }

func (sm *Soma) Defaults() {
	sm.Spike.Defaults()
	sm.InitState()
}

func (sm *Soma) UpdateParams() {
	sm.Spike.Update()
}

func (sm *Soma) InitState() {
	sm.Potential = sm.Spike.Rest
	sm.NSpikes = 0
}

func (sm *Soma) ApplyEvent(ev *event.Event) {
	sm.Potential += ev.Value
}

// Advance fires if Potential > Thr, sending AP on every outgoing
// connection (normally the Axon) and resetting to Rest
func (sm *Soma) Advance(ctx *Context) bool {
	fired := sm.Spike.Fires(sm.Potential)
	sm.SetFlag(fired, Fired)
	if !fired {
		return false
	}
	sm.Emit(ctx, sm.Spike.AP)
	sm.Potential = sm.Spike.Rest
	sm.NSpikes++
	return true
}

func (sm *Soma) OutputValue() float32 {
	return sm.Potential
}
