// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

// AutoIdx for an Input or Output environment index means the index is
// the owning unit's position in the network registry
const AutoIdx = -1

// Input samples one environment value into its unit on every drain,
// as an undelayed event from the environment
type Input struct {
	Idx    int     `inactive:"+" desc:"unique id assigned by the network"`
	Nm     string  `desc:"optional name"`
	Unit   int     `inactive:"+" desc:"id of the unit receiving the samples"`
	EnvIdx int     `desc:"environment input index to sample -- AutoIdx (-1) uses the unit's registry position"`
	Gain   float32 `def:"1" desc:"multiplier on the sampled value"`
	Cur    int     `inactive:"+" desc:"resolved environment index, -1 if no environment is bound"`
}

func (in *Input) ID() int      { return in.Idx }
func (in *Input) Name() string { return in.Nm }
func (in *Input) Kind() Kinds  { return InputKind }

// Sample returns the current gain-scaled environment value, 0 if no
// environment is bound
func (in *Input) Sample(ctx *Context) float32 {
	if ctx.Net == nil || ctx.Net.Env == nil || in.Cur < 0 {
		return 0
	}
	return in.Gain * in.EnvSample(ctx.Net.Env)
}

// EnvSample returns the raw environment value at the resolved index
func (in *Input) EnvSample(env Environment) float32 {
	if in.Cur >= env.Size() {
		return 0
	}
	return env.InputState(in.Cur)
}

// Output reports its unit's output value to the environment at the end of
// the unit's advance, every step
type Output struct {
	Idx    int     `inactive:"+" desc:"unique id assigned by the network"`
	Nm     string  `desc:"optional name"`
	Unit   int     `inactive:"+" desc:"id of the unit being reported"`
	EnvIdx int     `desc:"environment observable index -- AutoIdx (-1) uses the unit's registry position"`
	Cur    int     `inactive:"+" desc:"resolved environment index, -1 if no environment is bound"`
	Last   float32 `inactive:"+" desc:"last value reported"`
}

func (out *Output) ID() int      { return out.Idx }
func (out *Output) Name() string { return out.Nm }
func (out *Output) Kind() Kinds  { return OutputKind }

// Report sends val to the environment, if bound
func (out *Output) Report(env Environment, val float32) {
	out.Last = val
	if env == nil || out.Cur < 0 || out.Cur >= env.Size() {
		return
	}
	env.HandleOutput(out.Cur, val)
}

// resolveIdx returns the environment index for given registry position
func resolveIdx(envIdx, pos int) int {
	if envIdx == AutoIdx {
		return pos
	}
	return envIdx
}
