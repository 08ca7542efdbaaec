// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/cortex/integ"
)

// run integrates fn with constant input for n steps of dt and returns the binding
func run(t *testing.T, fn Func, in, dt float32, n int) *integ.Binding {
	init := make([]float32, fn.NState())
	fn.InitState(init)
	bd, err := integ.Bind("RK4", init)
	if err != nil {
		t.Fatal(err)
	}
	fn.SetInput(in)
	for i := 0; i < n; i++ {
		bd.Step(dt, fn.Rate)
	}
	return bd
}

func TestBiExpSteadyState(t *testing.T) {
	bx := &BiExp{}
	bx.Defaults()
	var _ Func = bx

	bd := run(t, bx, 0.02, 0.5, 400)
	out := bx.Output(bd.State)
	cor := bx.SteadyState(0.02)
	if math32.Abs(out-cor) > 1e-3 {
		t.Errorf("BiExp steady state: %v, cor: %v\n", out, cor)
	}
	if math32.Abs(bd.State[BiExpSyn]-bx.SynTau*bx.Gain*0.02) > 1e-4 {
		t.Errorf("BiExp syn steady state: %v\n", bd.State[BiExpSyn])
	}

	// without input, activity relaxes back to baseline
	bx.SetInput(0)
	for i := 0; i < 800; i++ {
		bd.Step(0.5, bx.Rate)
	}
	if math32.Abs(bx.Output(bd.State)-bx.Base) > 1e-3 {
		t.Errorf("BiExp did not relax to base: %v\n", bx.Output(bd.State))
	}
}

func TestBiExpRate(t *testing.T) {
	bx := &BiExp{}
	bx.Defaults()
	bx.SetInput(2)
	st := []float32{0.5, 1}
	rt := make([]float32, 2)
	bx.Rate(st, rt)
	// dS = -1/5 + 2, dA = -0.5/10 + 1
	if math32.Abs(rt[BiExpSyn]-1.8) > difTol || math32.Abs(rt[BiExpAct]-0.95) > difTol {
		t.Errorf("BiExp rate: %v\n", rt)
	}
}

func TestMorrisLecarBounded(t *testing.T) {
	ml := &MorrisLecar{}
	ml.Defaults()
	var _ Func = ml
	for _, in := range []float32{0, 0.3, 1} {
		bd := run(t, ml, in, 0.1, 2000)
		for i, v := range bd.State {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				t.Fatalf("input %v: state %v diverged: %v\n", in, i, bd.State)
			}
		}
		out := ml.Output(bd.State)
		if out < 0 || out > ml.QVMax {
			t.Errorf("input %v: output out of range: %v\n", in, out)
		}
		if bd.State[MLW] < -0.01 || bd.State[MLW] > 1.01 {
			t.Errorf("input %v: W not a fraction: %v\n", in, bd.State[MLW])
		}
	}
}

func TestMorrisLecarInputDrive(t *testing.T) {
	ml := &MorrisLecar{}
	ml.Defaults()
	st := make([]float32, MLN)
	ml.InitState(st)
	r0 := make([]float32, MLN)
	r1 := make([]float32, MLN)
	ml.SetInput(0)
	ml.Rate(st, r0)
	ml.SetInput(1)
	ml.Rate(st, r1)
	if math32.Abs((r1[MLV]-r0[MLV])-ml.Ane) > difTol {
		t.Errorf("input should add Ane to dV: %v vs %v\n", r1[MLV], r0[MLV])
	}
	if math32.Abs((r1[MLZ]-r0[MLZ])-ml.B*ml.Ani) > difTol {
		t.Errorf("input should add B*Ani to dZ: %v vs %v\n", r1[MLZ], r0[MLZ])
	}
	if r1[MLW] != r0[MLW] {
		t.Errorf("input should not affect dW\n")
	}
}

func TestMorrisLecarCurrents(t *testing.T) {
	ml := &MorrisLecar{}
	ml.Defaults()
	ml.SetInput(0)
	ml.Aie = 0
	vs := []float32{-0.5, -0.1, 0, 0.2, 0.6}
	for _, v := range vs {
		w := float32(0.3)
		g := ml.Conductances(v, w)
		if g.K != ml.Gbar.K*w || g.L != ml.Gbar.L {
			t.Errorf("v: %v: K / L conductance: %v", v, g)
		}
		if ml.Conductances(v+0.1, w).Na <= g.Na {
			t.Errorf("v: %v: Na conductance should open with depolarization: %v", v, g.Na)
		}
		cor := -(g.Ca*(v-ml.Erev.Ca) + g.K*(v-ml.Erev.K) + g.L*(v-ml.Erev.L) + g.Na*(v-ml.Erev.Na))
		rate := make([]float32, MLN)
		ml.Rate([]float32{v, w, 0}, rate)
		if math32.Abs(rate[MLV]-cor) > difTol {
			t.Errorf("v: %v: dV: %v, cor: %v\n", v, rate[MLV], cor)
		}
	}
}

func TestCableSteadyState(t *testing.T) {
	cb := &Cable{}
	cb.Defaults()
	var _ Func = cb
	bd := run(t, cb, 0.2, 0.1, 3000)
	vs := cb.Soma(bd.State)
	cor := cb.SteadySoma(0.2)
	if math32.Abs(vs-cor) > 1e-3 {
		t.Errorf("Cable soma: %v, cor: %v\n", vs, cor)
	}
	// potential decreases from the injection site toward the soma
	for i := 1; i < len(bd.State); i++ {
		if bd.State[i] > bd.State[i-1] {
			t.Errorf("Cable not attenuating: %v\n", bd.State)
		}
	}
	if cb.Output(bd.State) != cb.Act.Rate(vs) {
		t.Errorf("Cable output should be rate of soma potential\n")
	}
	rest := run(t, cb, 0, 0.1, 10)
	for _, v := range rest.State {
		if math32.Abs(v-cb.Erest) > difTol {
			t.Errorf("Cable should stay at rest without input: %v\n", rest.State)
		}
	}
}

func TestNaNInput(t *testing.T) {
	fns := []Func{&BiExp{}, &MorrisLecar{}, &Cable{}}
	for _, fn := range fns {
		fn.Defaults()
		bd := run(t, fn, math32.NaN(), 0.1, 1)
		if !math32.IsNaN(fn.Output(bd.State)) {
			t.Errorf("%v: NaN input should give NaN output\n", fn.Name())
		}
	}
}
