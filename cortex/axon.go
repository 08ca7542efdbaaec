// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "github.com/emer/cortex/event"

// Axon records the action potential received from its Soma and relays it to
// every connected Synapse on the next advance, after which its Output
// returns to 0.
type Axon struct {
	UnitBase
	Output float32 `inactive:"+" desc:"magnitude of the last action potential received, not yet relayed"`
	Last   float32 `inactive:"+" desc:"value relayed on the last advance"`
}

// NewAxon returns a new detached Axon
func NewAxon(name string) *Axon {
	ax := &Axon{}
	ax.InitBase(ax, name)
	ax.Defaults()
	return ax
}

func (ax *Axon) Kind() Kinds      { return AxonKind }
func (ax *Axon) TypeName() string { return "Axon" }
func (ax *Axon) Defaults()        { ax.InitState() }
func (ax *Axon) UpdateParams()    {}

func (ax *Axon) InitState() {
	ax.Output = 0
	ax.Last = 0
}

func (ax *Axon) ApplyEvent(ev *event.Event) {
	ax.Output = ev.Value
}

// Advance relays Output to every connected Synapse. Returns true if
// a nonzero value was relayed.
func (ax *Axon) Advance(ctx *Context) bool {
	ax.Emit(ctx, ax.Output)
	ax.Last = ax.Output
	ax.Output = 0
	return ax.Last != 0
}

func (ax *Axon) OutputValue() float32 {
	return ax.Last
}
