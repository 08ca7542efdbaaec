// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "fmt"

// Neuron is the composite grouping at most one Soma, at most one Axon and a
// dendrite tree. It holds ids only: the parts are units in the network
// registry, and the composite itself is registered with its own id.
type Neuron struct {
	Idx       int    `inactive:"+" desc:"unique id assigned by the network"`
	Nm        string `desc:"name of the neuron, also the prefix of its parts' names"`
	Soma      int    `inactive:"+" desc:"id of the soma, -1 if none"`
	Axon      int    `inactive:"+" desc:"id of the axon, -1 if none"`
	Dendrites []int  `inactive:"+" desc:"ids of the dendrites in the tree, root first"`
}

func (nr *Neuron) ID() int      { return nr.Idx }
func (nr *Neuron) Name() string { return nr.Nm }
func (nr *Neuron) Kind() Kinds  { return NeuronKind }

// Root returns the id of the root dendrite, -1 if none
func (nr *Neuron) Root() int {
	if len(nr.Dendrites) == 0 {
		return -1
	}
	return nr.Dendrites[0]
}

// Parts returns the ids of all the neuron's units: soma, axon, dendrites
// and the synapses belonging to the dendrites
func (nr *Neuron) Parts(nt *Network) []int {
	var ids []int
	if nr.Soma >= 0 {
		ids = append(ids, nr.Soma)
	}
	if nr.Axon >= 0 {
		ids = append(ids, nr.Axon)
	}
	for _, did := range nr.Dendrites {
		ids = append(ids, did)
		if u, has := nt.Units.ValByKey(did); has {
			ids = append(ids, u.(*Dendrite).Synapses...)
		}
	}
	return ids
}

// unlink clears any slot holding given unit id
func (nr *Neuron) unlink(id int) {
	if nr.Soma == id {
		nr.Soma = -1
	}
	if nr.Axon == id {
		nr.Axon = -1
	}
	for i, did := range nr.Dendrites {
		if did == id {
			nr.Dendrites = append(nr.Dendrites[:i], nr.Dendrites[i+1:]...)
			break
		}
	}
}

func (nr *Neuron) hasDendrite(id int) bool {
	for _, did := range nr.Dendrites {
		if did == id {
			return true
		}
	}
	return false
}

//////////////////////////////////////////////////////////////////////////////////////
//  Network neuron assembly

// AddNeuron creates and registers a neuron composite with a Soma, an Axon
// and a root Dendrite, named name.Soma, name.Axon and name.Dend0, wired as
// Dend0 -> Soma -> Axon
func (nt *Network) AddNeuron(name string) (*Neuron, error) {
	snm, anm, dnm := name+".Soma", name+".Axon", name+".Dend0"
	for _, nm := range []string{name, snm, anm, dnm} {
		if err := nt.checkName(nm); err != nil {
			return nil, err
		}
	}
	nr := &Neuron{Nm: name, Idx: nt.newID()}
	nt.Neurons.Add(nr.Idx, nr)
	if name != "" {
		nt.NameMap[name] = nr.Idx
	}
	sm := NewSoma(snm)
	ax := NewAxon(anm)
	dd := NewDendrite(dnm)
	for _, u := range []Unit{sm, ax, dd} {
		nt.register(u)
		u.AsBase().Owner = nr.Idx
	}
	nr.Soma = sm.Idx
	nr.Axon = ax.Idx
	nr.Dendrites = []int{dd.Idx}
	if _, err := nt.connect(sm, ax, 1, 0); err != nil {
		nt.Remove(nr.Idx)
		return nil, err
	}
	if _, err := nt.connect(dd, sm, 1, 0); err != nil {
		nt.Remove(nr.Idx)
		return nil, err
	}
	nt.syncEnv()
	return nr, nil
}

// AddDendrite adds a new dendrite to the neuron's tree, connected to given
// parent, which must be one of the neuron's dendrites or its soma
func (nt *Network) AddDendrite(nr *Neuron, parent int) (*Dendrite, error) {
	pu, err := nt.UnitByID(parent)
	if err != nil {
		return nil, err
	}
	if parent != nr.Soma && !nr.hasDendrite(parent) {
		return nil, fmt.Errorf("%w: unit %v is not part of neuron %v", ErrInvalidConnection, Label(pu), nr.Nm)
	}
	nm := fmt.Sprintf("%s.Dend%d", nr.Nm, len(nr.Dendrites))
	if nt.UnitByName(nm) != nil {
		nm = ""
	}
	dd := NewDendrite(nm)
	if err := nt.ValidateKinds(dd, pu); err != nil {
		return nil, err
	}
	nt.register(dd)
	dd.Owner = nr.Idx
	nr.Dendrites = append(nr.Dendrites, dd.Idx)
	if _, err := nt.connect(dd, pu, 1, 0); err != nil {
		nt.removeUnit(dd.Idx)
		return nil, err
	}
	nt.syncEnv()
	return dd, nil
}

// ValidateKinds checks only the kinds of a prospective connection,
// for units that are not yet registered
func (nt *Network) ValidateKinds(su, ru Unit) error {
	sk, rk := su.Kind(), ru.Kind()
	ok := false
	switch sk {
	case SomaKind:
		ok = rk == AxonKind
	case AxonKind:
		ok = rk == SynapseKind
	case SynapseKind:
		ok = rk == DendriteKind
	case DendriteKind:
		ok = rk == DendriteKind || rk == SomaKind
	case RegionKind:
		ok = rk == RegionKind
	}
	if !ok {
		return invalidConn(su, ru, "kinds cannot connect")
	}
	return nil
}

// AddSynapse creates and registers a synapse with given weight, belonging
// to the dendrite with given id
func (nt *Network) AddSynapse(dend int, wt float32) (*Synapse, error) {
	du, err := nt.UnitByID(dend)
	if err != nil {
		return nil, err
	}
	sy := NewSynapse("", wt)
	if err := nt.ValidateKinds(sy, du); err != nil {
		return nil, err
	}
	nt.register(sy)
	sy.Owner = du.AsBase().Owner
	if _, err := nt.connect(sy, du, 1, 0); err != nil {
		nt.removeUnit(sy.Idx)
		return nil, err
	}
	nt.syncEnv()
	return sy, nil
}

// ConnectSynapse connects the axon with given id to drive the synapse with
// given id, with given conduction delay
func (nt *Network) ConnectSynapse(axon, syn int, delay float32) (*Connection, error) {
	return nt.ConnectIDs(axon, syn, 1, delay)
}

// SetParent re-links the dendrite with given id to a new next target
// (a dendrite or soma), first disconnecting its current next. On error,
// including a cycle, nothing is changed.
func (nt *Network) SetParent(dend, next int) error {
	du, err := nt.UnitByID(dend)
	if err != nil {
		return err
	}
	nu, err := nt.UnitByID(next)
	if err != nil {
		return err
	}
	dd, ok := du.(*Dendrite)
	if !ok {
		return invalidConn(du, nu, "only a dendrite can be re-parented")
	}
	if err := nt.ValidateKinds(du, nu); err != nil {
		return err
	}
	if dend == next {
		return invalidConn(du, nu, "a dendrite cannot connect to itself")
	}
	if nt.dendReaches(next, dend) {
		return invalidConn(du, nu, "would create a cycle in the dendrite tree")
	}
	if dd.Next == next {
		return nil
	}
	if dd.Next >= 0 {
		if cn := dd.SendTo(dd.Next); cn != nil {
			nt.removeConn(cn)
		}
		dd.Next = -1
	}
	_, err = nt.connect(dd, nu, 1, 0)
	return err
}
