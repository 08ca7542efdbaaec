// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

// Cable is a passive compartmental cable: a chain of NComp compartments,
// each leaking toward Erest and coupled to its neighbors through the axial
// conductance Gc. Input current enters compartment 0 (distal) and the
// output rate is read from the last (somatic) compartment through the
// noisy X/(X+1) function.
//
//	Cm dV_i/dt = -Gl (V_i - Erest) + Gc (V_i-1 - 2 V_i + V_i+1) + I_i
type Cable struct {
	InputHolder
	NComp int     `def:"3" min:"1" desc:"number of compartments"`
	Cm    float32 `def:"1" min:"0" desc:"membrane capacitance of each compartment"`
	Gl    float32 `def:"0.1" min:"0" desc:"leak conductance of each compartment"`
	Gc    float32 `def:"0.5" min:"0" desc:"axial conductance between neighboring compartments"`
	Erest float32 `def:"0.3" desc:"resting (leak reversal) potential"`
	Gain  float32 `def:"1" desc:"multiplier converting the input into injected current"`
	Act   XX1     `view:"inline" desc:"rate function applied to the somatic potential"`

	cmDt float32
}

func (cb *Cable) Name() string { return "Cable" }
func (cb *Cable) NState() int  { return cb.NComp }

func (cb *Cable) Defaults() {
	cb.NComp = 3
	cb.Cm = 1
	cb.Gl = 0.1
	cb.Gc = 0.5
	cb.Erest = 0.3
	cb.Gain = 1
	cb.Act.Defaults()
	cb.Act.Gain = 40
	cb.Update()
}

func (cb *Cable) Update() {
	if cb.NComp < 1 {
		cb.NComp = 1
	}
	cb.cmDt = 1 / cb.Cm
	cb.Act.Update()
}

func (cb *Cable) InitState(st []float32) {
	for i := range st {
		st[i] = cb.Erest
	}
}

func (cb *Cable) Rate(st, rate []float32) {
	n := len(st)
	for i := 0; i < n; i++ {
		v := st[i]
		cur := -cb.Gl * (v - cb.Erest)
		if i > 0 {
			cur += cb.Gc * (st[i-1] - v)
		}
		if i < n-1 {
			cur += cb.Gc * (st[i+1] - v)
		}
		if i == 0 {
			cur += cb.Gain * cb.In
		}
		rate[i] = cur * cb.cmDt
	}
}

// SteadySoma returns the steady-state somatic potential for a constant input,
// solving the tridiagonal system directly.
func (cb *Cable) SteadySoma(in float32) float32 {
	n := cb.NComp
	// Thomas algorithm on (Gl + Gc_left + Gc_right) V_i - Gc V_i-1 - Gc V_i+1 = Gl Erest + I_i
	cp := make([]float32, n)
	dp := make([]float32, n)
	for i := 0; i < n; i++ {
		diag := cb.Gl
		if i > 0 {
			diag += cb.Gc
		}
		if i < n-1 {
			diag += cb.Gc
		}
		rhs := cb.Gl * cb.Erest
		if i == 0 {
			rhs += cb.Gain * in
		}
		if i > 0 {
			diag -= -cb.Gc * cp[i-1]
			rhs -= -cb.Gc * dp[i-1]
		}
		cp[i] = -cb.Gc / diag
		dp[i] = rhs / diag
	}
	return dp[n-1]
}

// Soma returns the potential of the somatic compartment
func (cb *Cable) Soma(st []float32) float32 {
	return st[len(st)-1]
}

func (cb *Cable) Output(st []float32) float32 {
	return cb.Act.Rate(cb.Soma(st))
}
