// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integ

// EulerStep is forward Euler: x += dt * f(x)
type EulerStep struct{}

func (st *EulerStep) NWork() int { return 1 }

func (st *EulerStep) Step(x []float32, dt float32, f RateFunc, wk *Work) {
	k := wk.Vecs[0]
	f(x, k)
	for i := range x {
		x[i] += dt * k[i]
	}
}

// MidpointStep evaluates the rate at the half-step point
type MidpointStep struct{}

func (st *MidpointStep) NWork() int { return 2 }

func (st *MidpointStep) Step(x []float32, dt float32, f RateFunc, wk *Work) {
	k, tmp := wk.Vecs[0], wk.Vecs[1]
	f(x, k)
	for i := range x {
		tmp[i] = x[i] + 0.5*dt*k[i]
	}
	f(tmp, k)
	for i := range x {
		x[i] += dt * k[i]
	}
}

// HeunStep averages the rate at the start and at the Euler-predicted end
type HeunStep struct{}

func (st *HeunStep) NWork() int { return 3 }

func (st *HeunStep) Step(x []float32, dt float32, f RateFunc, wk *Work) {
	k1, k2, tmp := wk.Vecs[0], wk.Vecs[1], wk.Vecs[2]
	f(x, k1)
	for i := range x {
		tmp[i] = x[i] + dt*k1[i]
	}
	f(tmp, k2)
	for i := range x {
		x[i] += 0.5 * dt * (k1[i] + k2[i])
	}
}

// RK4Step is the classical fourth-order Runge-Kutta method
type RK4Step struct{}

func (st *RK4Step) NWork() int { return 5 }

func (st *RK4Step) Step(x []float32, dt float32, f RateFunc, wk *Work) {
	k1, k2, k3, k4, tmp := wk.Vecs[0], wk.Vecs[1], wk.Vecs[2], wk.Vecs[3], wk.Vecs[4]
	hdt := 0.5 * dt
	f(x, k1)
	for i := range x {
		tmp[i] = x[i] + hdt*k1[i]
	}
	f(tmp, k2)
	for i := range x {
		tmp[i] = x[i] + hdt*k2[i]
	}
	f(tmp, k3)
	for i := range x {
		tmp[i] = x[i] + dt*k3[i]
	}
	f(tmp, k4)
	for i := range x {
		x[i] += (dt / 6) * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
}
