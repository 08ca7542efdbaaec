// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"
	"strings"

	"github.com/emer/cortex/event"
	"github.com/emer/cortex/integ"
)

// Component is anything that holds an id in a Network:
// units, neurons, connections, inputs and outputs.
type Component interface {
	// ID returns the network-assigned id, -1 if not yet registered
	ID() int

	// Name returns the name, which may be empty
	Name() string

	// Kind returns the kind of component
	Kind() Kinds
}

// Label returns the name of a component, or kind + id if unnamed
func Label(cp Component) string {
	if nm := cp.Name(); nm != "" {
		return nm
	}
	return fmt.Sprintf("%v%d", cp.Kind(), cp.ID())
}

// Unit is a simulable component: it is advanced and drained every step.
// All of the unit kinds embed UnitBase, which provides most of the methods.
type Unit interface {
	Component

	// AsBase returns the embedded UnitBase
	AsBase() *UnitBase

	// TypeName is the type selector used for params styling (e.g. "Soma")
	TypeName() string

	// Class returns the space-separated classes used for params styling
	Class() string

	// Defaults sets default parameter values
	Defaults()

	// UpdateParams recomputes derived parameters after any change
	UpdateParams()

	// InitState returns kind-specific state to its resting values
	InitState()

	// Advance runs the discrete update for one step (after the clock and any
	// integrator have advanced), emitting events through ctx.
	// Returns true if the discrete state changed.
	Advance(ctx *Context) bool

	// ApplyEvent applies the effect of a due event to the unit's state
	ApplyEvent(ev *event.Event)

	// OutputValue returns the current output value reported to the
	// environment and the graph view
	OutputValue() float32
}

// UnitBase holds the state common to all units: identity, clock, outgoing
// connections, pending events and the optional integrator binding.
type UnitBase struct {
	Self    Unit           `copy:"-" json:"-" xml:"-" view:"-" desc:"pointer to ourselves as a Unit, so base methods can call kind-specific ones"`
	Net     *Network       `copy:"-" json:"-" xml:"-" view:"-" desc:"network this unit is registered in, nil if detached"`
	Idx     int            `inactive:"+" desc:"unique id assigned by the network, -1 while detached"`
	Nm      string         `desc:"name of the unit -- unique within the network when non-empty"`
	Cls     string         `desc:"class for applying parameter styles, can be space separated multple tags"`
	Owner   int            `inactive:"+" desc:"id of the neuron composite this unit belongs to, -1 if none"`
	Flags   UnitFlags      `inactive:"+" desc:"bit flags for binary unit state"`
	Clock   float32        `inactive:"+" desc:"local simulated time"`
	Sends   []*Connection  `view:"-" desc:"outgoing connections, in the order they were made"`
	Queue   event.Queue    `view:"-" desc:"pending incoming events"`
	Integ   *integ.Binding `view:"-" desc:"integrator binding for continuous state, nil if none"`
	Inputs  []*Input       `desc:"environment inputs sampled into this unit during drain"`
	Outputs []*Output      `desc:"environment outputs reporting this unit's output value"`
}

// InitBase must be called by every unit constructor with the unit itself
func (ub *UnitBase) InitBase(self Unit, name string) {
	ub.Self = self
	ub.Nm = name
	ub.Idx = -1
	ub.Owner = -1
}

func (ub *UnitBase) AsBase() *UnitBase        { return ub }
func (ub *UnitBase) ID() int                  { return ub.Idx }
func (ub *UnitBase) Name() string             { return ub.Nm }
func (ub *UnitBase) Label() string            { return Label(ub.Self) }
func (ub *UnitBase) Class() string            { return ub.Cls }
func (ub *UnitBase) SetClass(cls string)      { ub.Cls = cls }
func (ub *UnitBase) IsOff() bool              { return ub.HasFlag(Off) }
func (ub *UnitBase) SetOff(off bool)          { ub.SetFlag(off, Off) }
func (ub *UnitBase) Registered() bool         { return ub.Net != nil && ub.Idx >= 0 }
func (ub *UnitBase) NSends() int              { return len(ub.Sends) }
func (ub *UnitBase) Send(idx int) *Connection { return ub.Sends[idx] }

// AdvanceClock advances the local clock by dt
func (ub *UnitBase) AdvanceClock(dt float32) {
	ub.Clock += dt
}

// ResetClock sets the local clock back to zero
func (ub *UnitBase) ResetClock() {
	ub.Clock = 0
}

// Reset clears pending events, resets the integrator to its initial
// condition and returns the unit's state to rest. The clock is not changed.
func (ub *UnitBase) Reset() {
	ub.Queue.Reset()
	if ub.Integ != nil {
		ub.Integ.Reset()
	}
	ub.SetFlag(false, Fired, Diverged)
	ub.Self.InitState()
}

// Emit sends val on every outgoing connection, scaled by each connection's weight
func (ub *UnitBase) Emit(ctx *Context, val float32) {
	for _, cn := range ub.Sends {
		ctx.Emit(cn, val)
	}
}

// DrainEvents samples the environment inputs, then applies every queued
// event whose delay has expired after subtracting dt. Returns the number
// of events applied.
func (ub *UnitBase) DrainEvents(ctx *Context) int {
	for _, in := range ub.Inputs {
		ev := event.New(in.Sample(ctx), event.EnvOrigin, 0, ctx.Time)
		ub.Self.ApplyEvent(&ev)
	}
	return ub.Queue.Drain(ctx.Dt, ub.Self.ApplyEvent)
}

// SendTo returns the outgoing connection to given unit id, nil if none
func (ub *UnitBase) SendTo(recv int) *Connection {
	for _, cn := range ub.Sends {
		if cn.Recv == recv {
			return cn
		}
	}
	return nil
}

// addSend appends an outgoing connection
func (ub *UnitBase) addSend(cn *Connection) {
	ub.Sends = append(ub.Sends, cn)
}

// removeSends removes all outgoing connections to given unit id,
// returning the removed connections
func (ub *UnitBase) removeSends(recv int) []*Connection {
	var rm []*Connection
	keep := ub.Sends[:0]
	for _, cn := range ub.Sends {
		if cn.Recv == recv {
			rm = append(rm, cn)
			continue
		}
		keep = append(keep, cn)
	}
	ub.Sends = keep
	return rm
}

// components appends this unit's nested components (connections, inputs, outputs)
func (ub *UnitBase) components(cps []Component) []Component {
	for _, cn := range ub.Sends {
		cps = append(cps, cn)
	}
	for _, in := range ub.Inputs {
		cps = append(cps, in)
	}
	for _, out := range ub.Outputs {
		cps = append(cps, out)
	}
	return cps
}

// AddClass adds given class(es) to the unit's class list, if not already present
func (ub *UnitBase) AddClass(cls ...string) {
	have := strings.Fields(ub.Cls)
	for _, c := range cls {
		found := false
		for _, h := range have {
			if h == c {
				found = true
				break
			}
		}
		if !found {
			have = append(have, c)
		}
	}
	ub.Cls = strings.Join(have, " ")
}
