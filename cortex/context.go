// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"github.com/chewxy/math32"
	"github.com/emer/cortex/event"
)

// Context is passed to every unit during one network step. All
// cross-unit effects go through it as events.
type Context struct {
	Net   *Network `desc:"network being stepped"`
	Dt    float32  `desc:"step size"`
	Time  float32  `desc:"network time at the start of the step"`
	Cycle int      `desc:"network cycle count at the start of the step"`
}

// Emit pushes an event carrying val * cn.Wt onto the receiver's queue,
// with the connection's delay
func (ctx *Context) Emit(cn *Connection, val float32) {
	ru, ok := ctx.Net.Units.ValByKey(cn.Recv)
	if !ok {
		return
	}
	ru.AsBase().Queue.Push(event.New(val*cn.Wt, cn.Send, cn.Delay, ctx.Time))
}

// CheckDiverge reports one NumericDivergence for the unit if its output
// val or any of its state variables st is NaN or Inf, and sets or clears
// the unit's Diverged flag accordingly. Returns true if anything diverged.
func (ctx *Context) CheckDiverge(u Unit, val float32, st []float32) bool {
	ub := u.AsBase()
	vi := -1
	for i, v := range st {
		if !finite(v) {
			vi = i
			break
		}
	}
	if vi < 0 && finite(val) {
		ub.SetFlag(false, Diverged)
		return false
	}
	ub.SetFlag(true, Diverged)
	nd := &NumericDivergence{Unit: ub.Idx, Name: Label(u), Time: ctx.Time, Cycle: ctx.Cycle, Var: vi, Value: val}
	if vi >= 0 {
		nd.Value = st[vi]
	}
	ctx.Net.Diverge(nd)
	return true
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
