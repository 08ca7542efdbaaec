// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package integ provides fixed-step numerical integration of a component-owned
state vector, given a rate function that computes the time derivative of
each state variable.

A Binding pairs a state vector with a stepping method, which is resolved by
name when the binding is made -- an unknown name is reported then, never
during stepping. The standard methods are Euler, Midpoint, Heun and RK4
(the default); others can be added with Register.

All scratch storage is owned by the Binding, so stepping the same state with
the same dt and method always produces the same result.
*/
package integ

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goki/ki/kit"
)

// ErrSolverNotFound is returned when binding to an unknown method name
var ErrSolverNotFound = errors.New("integration method not found")

// RateFunc computes the rate of change of each state variable into rate.
// rate has the same length as state.
type RateFunc func(state, rate []float32)

// Stepper advances a state vector by one step of size dt.
type Stepper interface {
	// Step advances state in place by dt using rate function f,
	// using only the given work buffers as scratch space.
	Step(state []float32, dt float32, f RateFunc, wk *Work)

	// NWork returns the number of scratch vectors needed
	NWork() int
}

// Work holds scratch vectors for a Stepper, sized to the state
type Work struct {
	Vecs [][]float32
}

// Config ensures there are n vectors of given length
func (wk *Work) Config(n, ln int) {
	if len(wk.Vecs) != n {
		wk.Vecs = make([][]float32, n)
	}
	for i := range wk.Vecs {
		if len(wk.Vecs[i]) != ln {
			wk.Vecs[i] = make([]float32, ln)
		}
	}
}

// Methods are the standard integration methods
type Methods int

//go:generate stringer -type=Methods

var KiT_Methods = kit.Enums.AddEnum(MethodsN, false, nil)

func (ev Methods) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Methods) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Euler is the first-order forward Euler method
	Euler Methods = iota

	// Midpoint is the second-order explicit midpoint method
	Midpoint

	// Heun is the second-order trapezoidal predictor-corrector method
	Heun

	// RK4 is the classical fourth-order Runge-Kutta method
	RK4

	MethodsN
)

// Default is the method used when none is specified
const Default = RK4

// Stepper returns the Stepper implementing this method
func (ev Methods) Stepper() Stepper {
	switch ev {
	case Euler:
		return &EulerStep{}
	case Midpoint:
		return &MidpointStep{}
	case Heun:
		return &HeunStep{}
	default:
		return &RK4Step{}
	}
}

// custom holds methods added with Register, keyed by name
var custom = map[string]func() Stepper{}

// Register adds a custom method under the given name, with a constructor
// returning a fresh Stepper for each binding. Standard method names
// cannot be replaced.
func Register(name string, fun func() Stepper) error {
	var m Methods
	if err := m.FromString(name); err == nil && m < MethodsN {
		return fmt.Errorf("integ.Register: %v is a standard method", name)
	}
	custom[name] = fun
	return nil
}

// Lookup returns a new Stepper for given method name.
// Empty name selects the Default method.
func Lookup(name string) (Stepper, error) {
	if name == "" {
		return Default.Stepper(), nil
	}
	var m Methods
	if err := m.FromString(name); err == nil && m < MethodsN {
		return m.Stepper(), nil
	}
	if fun, ok := custom[name]; ok {
		return fun(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSolverNotFound, name)
}

// Names returns all method names that can be bound, standard ones first
func Names() []string {
	nms := make([]string, 0, int(MethodsN)+len(custom))
	for m := Euler; m < MethodsN; m++ {
		nms = append(nms, m.String())
	}
	cnms := make([]string, 0, len(custom))
	for nm := range custom {
		cnms = append(cnms, nm)
	}
	sort.Strings(cnms)
	return append(nms, cnms...)
}
