// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integ

// Binding pairs a state vector with the method used to step it
type Binding struct {
	Method string    `inactive:"+" desc:"name of the integration method this binding was made with"`
	State  []float32 `desc:"current state vector"`
	Init   []float32 `desc:"initial condition that Reset restores"`

	stepper Stepper
	work    Work
}

// Bind returns a binding of given method name over a copy of init.
// Returns ErrSolverNotFound if the name is not a known method.
func Bind(name string, init []float32) (*Binding, error) {
	st, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = Default.String()
	}
	bd := &Binding{Method: name, stepper: st}
	bd.SetInit(init)
	return bd, nil
}

// SetInit sets the initial condition and resets the state to it
func (bd *Binding) SetInit(init []float32) {
	bd.Init = append(bd.Init[:0], init...)
	bd.State = make([]float32, len(init))
	bd.work.Config(bd.stepper.NWork(), len(init))
	bd.Reset()
}

// Reset restores the state to the initial condition
func (bd *Binding) Reset() {
	copy(bd.State, bd.Init)
}

// Len returns the number of state variables
func (bd *Binding) Len() int {
	return len(bd.State)
}

// Step advances the state by a single step of dt using rate function f
func (bd *Binding) Step(dt float32, f RateFunc) {
	if len(bd.State) == 0 || dt == 0 {
		return
	}
	bd.stepper.Step(bd.State, dt, f, &bd.work)
}
