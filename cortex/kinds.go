// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"github.com/goki/ki/bitflag"
	"github.com/goki/ki/kit"
)

// Kinds are the kinds of components in a Network
type Kinds int

//go:generate stringer -type=Kinds

var KiT_Kinds = kit.Enums.AddEnum(KindsN, false, nil)

func (ev Kinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// SomaKind integrates potential and fires action potentials over threshold
	SomaKind Kinds = iota

	// DendriteKind sums synaptic input and forwards it toward the soma every step
	DendriteKind

	// AxonKind relays action potentials from the soma to its synapses
	AxonKind

	// SynapseKind weights axon output onto its dendrite
	SynapseKind

	// RegionKind is a population unit driven by a transfer function
	RegionKind

	// NeuronKind is the composite grouping soma, axon and dendrite tree
	NeuronKind

	// ConnectionKind is a directed, weighted link between two units
	ConnectionKind

	// InputKind samples an environment value into its unit
	InputKind

	// OutputKind reports its unit's output value to the environment
	OutputKind

	KindsN
)

// UnitFlags are bit flags for binary unit state
type UnitFlags int32

//go:generate stringer -type=UnitFlags

var KiT_UnitFlags = kit.Enums.AddEnum(UnitFlagsN, true, nil)

func (ev UnitFlags) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *UnitFlags) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The unit flags are bit positions
const (
	// Off means the unit is skipped in both phases of a step
	Off UnitFlags = iota

	// Fired means the unit's discrete update changed its state on the last Advance
	Fired

	// Diverged means the unit's state was NaN or Inf after the last Advance
	Diverged

	UnitFlagsN
)

// HasFlag returns true if given flag is set
func (ub *UnitBase) HasFlag(flag UnitFlags) bool {
	return bitflag.Has32(int32(ub.Flags), int(flag))
}

// SetFlag sets given flag(s) on or off
func (ub *UnitBase) SetFlag(on bool, flag ...UnitFlags) {
	for _, f := range flag {
		if on {
			bitflag.Set32((*int32)(&ub.Flags), int(f))
		} else {
			bitflag.Clear32((*int32)(&ub.Flags), int(f))
		}
	}
}
