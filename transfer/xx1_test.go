// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestNoisyXX1(t *testing.T) {
	xp := XX1{}
	xp.Defaults()

	tstx := []float32{-0.05, -0.04, -0.03, -0.02, -0.01, 0, .01, .02, .03, .04, .05, .1, .2, .3, .4, .5}
	cory := []float32{1.7735989e-14, 7.155215e-12, 2.8866178e-09, 1.1645374e-06, 0.00046864923, 0.094767615, 0.47916666, 0.65277773, 0.742268, 0.7967479, 0.8333333, 0.90909094, 0.95238096, 0.96774197, 0.9756098, 0.98039216}
	for i := range tstx {
		y := xp.Noisy(tstx[i])
		dif := math32.Abs(y - cory[i])
		if dif > difTol {
			t.Errorf("XX1 err: idx: %v, x: %v, y: %v, cor y: %v, dif: %v\n", i, tstx[i], y, cory[i], dif)
		}
	}
	if xp.Rate(xp.Thr+0.5) != xp.Noisy(0.5) {
		t.Errorf("Rate should be relative to Thr\n")
	}
}
