// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import "github.com/chewxy/math32"

// XX1 is the noisy X/(X+1) rate function: a saturating, sigmoid-like
// response with an initial near-linear regime, smoothed below threshold as
// if convolved with gaussian noise. Uses a piecewise approximation of the
// convolution instead of a lookup table.
type XX1 struct {
	Thr          float32 `def:"0.5" desc:"threshold on the driving value at which the rate starts to rise"`
	Gain         float32 `def:"100" min:"0" desc:"gain of the rate function -- lower values give a more graded response"`
	NVar         float32 `def:"0.005,0.01" min:"0" desc:"variance of the gaussian smoothing kernel -- sets the curvature near threshold"`
	SigMult      float32 `def:"0.33" view:"-" desc:"multiplier on the sigmoid used below threshold"`
	SigMultPow   float32 `def:"0.8" view:"-" desc:"power applied to gain * nvar when computing the effective sigmoid multiplier"`
	SigGain      float32 `def:"3" view:"-" desc:"gain on the driving value for the sigmoid below threshold"`
	InterpRange  float32 `def:"0.01" view:"-" desc:"range just above threshold over which values are linearly interpolated"`
	GainCorRange float32 `def:"10" view:"-" desc:"range in units of nvar over which the gain is corrected for the convolution"`
	GainCor      float32 `def:"0.1" view:"-" desc:"how much the gain is reduced within GainCorRange"`

	sigGainNVar float32
	sigMultEff  float32
	sigValAt0   float32
	interpVal   float32
}

func (xp *XX1) Defaults() {
	xp.Thr = 0.5
	xp.Gain = 100
	xp.NVar = 0.005
	xp.SigMult = 0.33
	xp.SigMultPow = 0.8
	xp.SigGain = 3
	xp.InterpRange = 0.01
	xp.GainCorRange = 10
	xp.GainCor = 0.1
	xp.Update()
}

func (xp *XX1) Update() {
	xp.sigGainNVar = xp.SigGain / xp.NVar
	xp.sigMultEff = xp.SigMult * math32.Pow(xp.Gain*xp.NVar, xp.SigMultPow)
	xp.sigValAt0 = 0.5 * xp.sigMultEff
	xp.interpVal = xp.gainCorXX1(xp.InterpRange) - xp.sigValAt0
}

// gainCorXX1 is x/(x+1) with gain reduced near zero to compensate for the convolution
func (xp *XX1) gainCorXX1(x float32) float32 {
	fact := (xp.GainCorRange - (x / xp.NVar)) / xp.GainCorRange
	g := xp.Gain
	if fact >= 0 {
		g *= 1 - xp.GainCor*fact
	}
	gx := g * x
	return gx / (gx + 1)
}

// Noisy returns the noisy x/(x+1) value for x already expressed relative to threshold
func (xp *XX1) Noisy(x float32) float32 {
	switch {
	case x < 0:
		return xp.sigMultEff / (1 + math32.Exp(-(x * xp.sigGainNVar)))
	case x < xp.InterpRange:
		interp := 1 - ((xp.InterpRange - x) / xp.InterpRange)
		return xp.sigValAt0 + interp*xp.interpVal
	default:
		return xp.gainCorXX1(x)
	}
}

// Rate returns the firing rate for driving value v, relative to Thr
func (xp *XX1) Rate(v float32) float32 {
	return xp.Noisy(v - xp.Thr)
}
