// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"

	"github.com/emer/cortex/event"
	"github.com/emer/cortex/integ"
	"github.com/emer/cortex/transfer"
)

// Region is a cortical population unit: a transfer function whose state is
// stepped by an integrator binding. Input accumulated from events during
// the drain phase drives the next advance, and the output (firing rate) is
// sent on every outgoing connection, weighted, and reported to the
// region's Output sink.
type Region struct {
	UnitBase
	Model  transfer.Models      `inactive:"+" desc:"which transfer function drives this region"`
	Method string               `inactive:"+" desc:"name of the integration method -- change with SetMethod"`
	BiExp  transfer.BiExp       `view:"inline" desc:"biexponential model parameters, used when Model = BiExpModel"`
	ML     transfer.MorrisLecar `view:"inline" desc:"Morris-Lecar population model parameters, used when Model = MorrisLecarModel"`
	Cable  transfer.Cable       `view:"inline" desc:"compartmental cable parameters, used when Model = CableModel"`
	Custom transfer.Func        `view:"-" json:"-" desc:"user-supplied transfer function, used when Model = CustomModel"`
	Input  float32              `inactive:"+" desc:"input accumulated since the last advance"`
	Out    float32              `inactive:"+" desc:"output computed on the last advance"`
}

// NewRegion returns a new detached region using given built-in model and
// integration method (empty = default RK4), with one Output sink.
// Returns ErrSolverNotFound for an unknown method.
func NewRegion(name string, model transfer.Models, method string) (*Region, error) {
	if model == transfer.CustomModel || model < 0 || model >= transfer.ModelsN {
		return nil, fmt.Errorf("cortex.NewRegion: %v: model %v is not a built-in model, use NewCustomRegion", name, model)
	}
	rg := &Region{Model: model}
	return rg, rg.init(name, method)
}

// NewCustomRegion returns a new detached region driven by given transfer
// function. Returns ErrSolverNotFound for an unknown method.
func NewCustomRegion(name string, fn transfer.Func, method string) (*Region, error) {
	rg := &Region{Model: transfer.CustomModel, Custom: fn}
	return rg, rg.init(name, method)
}

func (rg *Region) init(name, method string) error {
	rg.InitBase(rg, name)
	rg.BiExp.Defaults()
	rg.ML.Defaults()
	rg.Cable.Defaults()
	if err := rg.SetMethod(method); err != nil {
		return err
	}
	rg.Outputs = append(rg.Outputs, &Output{Idx: -1, EnvIdx: AutoIdx, Cur: -1})
	return nil
}

func (rg *Region) Kind() Kinds      { return RegionKind }
func (rg *Region) TypeName() string { return "Region" }

// Func returns the transfer function selected by Model
func (rg *Region) Func() transfer.Func {
	switch rg.Model {
	case transfer.BiExpModel:
		return &rg.BiExp
	case transfer.MorrisLecarModel:
		return &rg.ML
	case transfer.CableModel:
		return &rg.Cable
	}
	return rg.Custom
}

// SetFunc switches the region to a custom transfer function,
// resetting its state to the new initial condition
func (rg *Region) SetFunc(fn transfer.Func) {
	rg.Custom = fn
	rg.Model = transfer.CustomModel
	rg.rebind()
}

// SetModel switches the region to a built-in model,
// resetting its state to the new initial condition
func (rg *Region) SetModel(model transfer.Models) {
	rg.Model = model
	rg.rebind()
}

// SetMethod binds the integrator by method name. On error the existing
// binding is left unchanged.
func (rg *Region) SetMethod(method string) error {
	bd, err := integ.Bind(method, rg.initState())
	if err != nil {
		return fmt.Errorf("region %v: %w", rg.Label(), err)
	}
	rg.Integ = bd
	rg.Method = bd.Method
	rg.InitState()
	return nil
}

// initState returns the transfer function's initial condition
func (rg *Region) initState() []float32 {
	fn := rg.Func()
	if fn == nil {
		return nil
	}
	st := make([]float32, fn.NState())
	fn.InitState(st)
	return st
}

// rebind resets the binding to the current initial condition
func (rg *Region) rebind() {
	if rg.Integ == nil {
		return
	}
	rg.Integ.SetInit(rg.initState())
	rg.InitState()
}

func (rg *Region) Defaults() {
	rg.BiExp.Defaults()
	rg.ML.Defaults()
	rg.Cable.Defaults()
	rg.rebind()
}

// UpdateParams updates all the transfer function params, and resets the
// integrator only if the initial condition of the active one changed
func (rg *Region) UpdateParams() {
	rg.BiExp.Update()
	rg.ML.Update()
	rg.Cable.Update()
	if rg.Custom != nil {
		rg.Custom.Update()
	}
	if rg.Integ == nil || rg.Func() == nil {
		return
	}
	if !sameVals(rg.initState(), rg.Integ.Init) {
		rg.rebind()
	}
}

func (rg *Region) InitState() {
	rg.Input = 0
	rg.Out = 0
	if fn := rg.Func(); fn != nil && rg.Integ != nil {
		fn.SetInput(0)
		rg.Out = fn.Output(rg.Integ.State)
	}
}

func (rg *Region) ApplyEvent(ev *event.Event) {
	rg.Input += ev.Value
}

// Advance feeds Input to the transfer function, steps the integrator by dt,
// reads the output and sends it on every outgoing connection. A NaN or Inf
// output or state variable is reported to the network, and the output is
// then not sent on.
func (rg *Region) Advance(ctx *Context) bool {
	fn := rg.Func()
	if fn == nil || rg.Integ == nil {
		return false
	}
	fn.SetInput(rg.Input)
	rg.Integ.Step(ctx.Dt, fn.Rate)
	rg.Out = fn.Output(rg.Integ.State)
	if !ctx.CheckDiverge(rg, rg.Out, rg.Integ.State) {
		rg.Emit(ctx, rg.Out)
	}
	rg.Input = 0
	return true
}

func (rg *Region) OutputValue() float32 {
	return rg.Out
}

// State returns the current integrator state vector
func (rg *Region) State() []float32 {
	if rg.Integ == nil {
		return nil
	}
	return rg.Integ.State
}

func sameVals(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
