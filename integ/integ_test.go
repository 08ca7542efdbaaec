// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integ

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func decay(st, rt []float32) {
	for i := range st {
		rt[i] = -st[i]
	}
}

func TestDecayAccuracy(t *testing.T) {
	// error tolerance after integrating dx/dt = -x from 1 to t = 1 with dt = .1
	tols := map[string]float32{"Euler": 0.025, "Midpoint": 1e-3, "Heun": 1e-3, "RK4": 1e-5}
	cor := math32.Exp(-1)
	for nm, tol := range tols {
		bd, err := Bind(nm, []float32{1})
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			bd.Step(0.1, decay)
		}
		dif := math32.Abs(bd.State[0] - cor)
		if dif > tol {
			t.Errorf("%v: x: %v, cor: %v, dif: %v > tol: %v\n", nm, bd.State[0], cor, dif, tol)
		}
	}
}

func TestRK4Oscillator(t *testing.T) {
	// x'' = -x: after one period the state returns to the start
	bd, err := Bind("RK4", []float32{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	osc := func(st, rt []float32) {
		rt[0] = st[1]
		rt[1] = -st[0]
	}
	n := 1000
	dt := 2 * math32.Pi / float32(n)
	for i := 0; i < n; i++ {
		bd.Step(dt, osc)
	}
	if math32.Abs(bd.State[0]-1) > 1e-3 || math32.Abs(bd.State[1]) > 1e-3 {
		t.Errorf("oscillator did not return: %v\n", bd.State)
	}
}

func TestDeterminism(t *testing.T) {
	for m := Euler; m < MethodsN; m++ {
		a, _ := Bind(m.String(), []float32{0.3, -1.2, 2})
		b, _ := Bind(m.String(), []float32{0.3, -1.2, 2})
		f := func(st, rt []float32) {
			rt[0] = st[1] * st[2]
			rt[1] = -st[0] + 0.5*st[2]
			rt[2] = math32.Sin(st[0])
		}
		for i := 0; i < 50; i++ {
			a.Step(0.05, f)
		}
		for i := 0; i < 50; i++ {
			b.Step(0.05, f)
		}
		for i := range a.State {
			if a.State[i] != b.State[i] {
				t.Errorf("%v not deterministic: %v != %v\n", m, a.State, b.State)
			}
		}
		a.Reset()
		if a.State[0] != 0.3 || a.State[1] != -1.2 || a.State[2] != 2 {
			t.Errorf("%v reset failed: %v\n", m, a.State)
		}
	}
}

func TestSolverNotFound(t *testing.T) {
	_, err := Bind("Verlet", []float32{1})
	if !errors.Is(err, ErrSolverNotFound) {
		t.Errorf("expected ErrSolverNotFound, got: %v\n", err)
	}
	_, err = Bind("MethodsN", []float32{1})
	if !errors.Is(err, ErrSolverNotFound) {
		t.Errorf("MethodsN must not bind, got: %v\n", err)
	}
	bd, err := Bind("", []float32{1})
	if err != nil || bd.Method != "RK4" {
		t.Errorf("empty name should bind default: %v %v\n", bd, err)
	}
}

func TestRegister(t *testing.T) {
	if err := Register("RK4", func() Stepper { return &EulerStep{} }); err == nil {
		t.Errorf("should not be able to replace RK4\n")
	}
	if err := Register("EulerAlias", func() Stepper { return &EulerStep{} }); err != nil {
		t.Fatal(err)
	}
	a, err := Bind("EulerAlias", []float32{1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Bind("Euler", []float32{1})
	a.Step(0.1, decay)
	b.Step(0.1, decay)
	if a.State[0] != b.State[0] {
		t.Errorf("custom method mismatch: %v != %v\n", a.State[0], b.State[0])
	}
	found := false
	for _, nm := range Names() {
		if nm == "EulerAlias" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names missing custom method: %v\n", Names())
	}
}
