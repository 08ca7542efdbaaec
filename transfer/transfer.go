// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package transfer provides the continuous population models that drive a
cortical region: each one maps a small state vector plus a scalar input to
the rate of change of that state, and reads a scalar output (firing rate)
from the state.

Three models are provided, all behind the same Func interface:

* BiExp: two-variable biexponential relaxation of activity toward baseline,
driven by a synaptic term with its own decay.

* MorrisLecar: three-variable conductance-based population model with
excitatory and inhibitory mean potentials and a slow potassium recovery
variable (Larter-Breakspear formulation).

* Cable: passive compartmental cable, with input current injected at the
distal end and the rate read out at the somatic end through the noisy
X/(X+1) function.
*/
package transfer

import (
	"github.com/goki/ki/kit"
)

// Func is a transfer function: the rate equation and output read-out for
// the state vector owned by an integrator binding.
type Func interface {
	// Name returns the model name
	Name() string

	// NState returns the number of state variables
	NState() int

	// InitState writes the initial condition into st (len NState)
	InitState(st []float32)

	// SetInput sets the external scalar input used by Rate
	SetInput(in float32)

	// Input returns the current scalar input
	Input() float32

	// Rate computes d(st)/dt into rate, given the current input
	Rate(st, rate []float32)

	// Output returns the scalar output (firing rate) for state st
	Output(st []float32) float32

	// Defaults sets default parameter values
	Defaults()

	// Update recomputes derived parameter values
	Update()
}

// Models are the built-in transfer function models
type Models int

//go:generate stringer -type=Models

var KiT_Models = kit.Enums.AddEnum(ModelsN, false, nil)

func (ev Models) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Models) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// BiExpModel is the two-variable biexponential model
	BiExpModel Models = iota

	// MorrisLecarModel is the three-variable conductance-based population model
	MorrisLecarModel

	// CableModel is the passive compartmental cable
	CableModel

	// CustomModel is any other Func supplied by the user
	CustomModel

	ModelsN
)

// InputHolder can be embedded to implement SetInput / Input
type InputHolder struct {
	In float32 `inactive:"+" desc:"current external input"`
}

func (ih *InputHolder) SetInput(in float32) { ih.In = in }
func (ih *InputHolder) Input() float32      { return ih.In }
