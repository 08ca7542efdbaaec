// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func TestSomaThreshold(t *testing.T) {
	net := NewNetwork("SomaNet")
	sm := NewSoma("Soma")
	if err := net.Register(sm); err != nil {
		t.Fatal(err)
	}
	ctx := &Context{Net: net, Dt: 1}
	thrs := []float32{0, 0.5, 1, 2.25}
	for _, thr := range thrs {
		sm.Spike.Thr = thr
		sm.Potential = thr
		if sm.Advance(ctx) {
			t.Errorf("thr: %v: fired at potential == thr", thr)
		}
		if sm.Potential != thr || sm.HasFlag(Fired) {
			t.Errorf("thr: %v: potential changed to %v without firing", thr, sm.Potential)
		}
		sm.Potential = thr + 1.0e-4
		if !sm.Advance(ctx) {
			t.Errorf("thr: %v: did not fire at potential %v", thr, thr+1.0e-4)
		}
		if sm.Potential != sm.Spike.Rest || !sm.HasFlag(Fired) {
			t.Errorf("thr: %v: potential after firing: %v, rest: %v", thr, sm.Potential, sm.Spike.Rest)
		}
	}
}

// TestSomaNoLeak checks the integrate-and-fire contract: a sub-threshold
// potential does not decay between spikes, and further input integrates on
// top of it. Adding a leak would change this.
func TestSomaNoLeak(t *testing.T) {
	net := NewNetwork("NoLeakNet")
	sm := NewSoma("Soma")
	if err := net.Register(sm); err != nil {
		t.Fatal(err)
	}
	sm.Potential = 0.7
	for i := 0; i < 200; i++ {
		net.Advance(0.1)
		if sm.Potential != 0.7 {
			t.Fatalf("step: %d: potential decayed to %v", i, sm.Potential)
		}
	}
	if sm.NSpikes != 0 {
		t.Errorf("fired below threshold: %d spikes", sm.NSpikes)
	}
	net.Inject(sm.Idx, 0.2, 0)
	net.Advance(0.1)
	if math32.Abs(sm.Potential-0.9) > difTol {
		t.Errorf("potential after input: %v != 0.9", sm.Potential)
	}
	net.Inject(sm.Idx, 0.2, 0)
	net.Advance(0.1)
	net.Advance(0.1)
	if sm.NSpikes != 1 || sm.Potential != sm.Spike.Rest {
		t.Errorf("expected one spike after crossing threshold: spikes: %d potential: %v", sm.NSpikes, sm.Potential)
	}
}

func TestRestConservation(t *testing.T) {
	net := NewNetwork("RestNet")
	sm := NewSoma("Soma")
	sm.Spike.Rest = -0.2
	sm.InitState()
	sy := NewSynapse("Syn", 1)
	sy.Syn.Rest = 0.5
	sy.Potential = 5
	dd := NewDendrite("Dend")
	dd.Dend.Rest = 0.25
	dd.Accum = 3
	for _, u := range []Unit{sm, sy, dd} {
		if err := net.Register(u); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 20; i++ {
		net.Advance(0.1)
		if sm.Potential != -0.2 {
			t.Errorf("step: %d: soma potential: %v != rest", i, sm.Potential)
		}
		if sy.Potential != 0.5 {
			t.Errorf("step: %d: synapse potential: %v != rest", i, sy.Potential)
		}
		if dd.Accum != 0.25 {
			t.Errorf("step: %d: dendrite accum: %v != rest", i, dd.Accum)
		}
	}
}

func axonSynNet(t *testing.T, wt, delay float32) (*Network, *Axon, *Synapse) {
	net := NewNetwork("AxonSynNet")
	ax := NewAxon("Axon")
	sy := NewSynapse("Syn", wt)
	if err := net.Register(ax); err != nil {
		t.Fatal(err)
	}
	if err := net.Register(sy); err != nil {
		t.Fatal(err)
	}
	if _, err := net.ConnectSynapse(ax.Idx, sy.Idx, delay); err != nil {
		t.Fatal(err)
	}
	return net, ax, sy
}

func TestWeightLinearity(t *testing.T) {
	wts := []float32{0, 0.5, 1, -2, 3.3}
	mags := []float32{1, 0.2, 7}
	dts := []float32{0.001, 0.1, 1, 5}
	for _, w := range wts {
		for _, m := range mags {
			for _, dt := range dts {
				_, ax, sy := axonSynNet(t, w, 0)
				ax.Output = m
				sy.Net.Advance(dt)
				dif := math32.Abs(sy.Potential - m*w)
				if dif > difTol {
					t.Errorf("wt: %v mag: %v dt: %v: potential: %v != %v", w, m, dt, sy.Potential, m*w)
				}
			}
		}
	}
}

func TestSynapseWeightOnce(t *testing.T) {
	net := NewNetwork("WtNet")
	ax := NewAxon("Ax")
	sy := NewSynapse("Sy", 3)
	net.Register(ax)
	net.Register(sy)
	nc := net.Conns.Len()
	for _, wt := range []float32{2, 0, -1} {
		if _, err := net.Connect("Ax", "Sy", wt); !errors.Is(err, ErrInvalidConnection) {
			t.Errorf("wt: %v: expected ErrInvalidConnection, got: %v", wt, err)
		}
	}
	if net.Conns.Len() != nc || ax.NSends() != 0 || sy.Axon != -1 {
		t.Errorf("rejected connection changed the network")
	}
	if _, err := net.Connect("Ax", "Sy", 1); err != nil {
		t.Fatal(err)
	}
	ax.Output = 1
	net.Advance(0.1)
	if sy.Potential != 3 {
		t.Errorf("synapse potential: %v != 3", sy.Potential)
	}
	eds := net.EdgesWithWeight()
	if len(eds) != 1 || eds[0].Wt != 3 {
		t.Errorf("axon -> synapse edge should show the synapse weight: %+v", eds)
	}
}

func TestDelayFidelity(t *testing.T) {
	dts := []float32{0.1, 0.25, 1}
	delays := []float32{0, 0.1, 0.25, 0.3, 0.5, 1, 2.7}
	for _, dt := range dts {
		for _, d := range delays {
			net, ax, sy := axonSynNet(t, 1, d)
			ax.Output = 1
			tm := net.Time
			applied := float32(-1)
			for i := 0; i < 100; i++ {
				net.Advance(dt)
				if sy.Potential != 0 {
					applied = net.Time
					break
				}
			}
			if applied < 0 {
				t.Errorf("dt: %v delay: %v: event never applied", dt, d)
				continue
			}
			if applied < tm+d-difTol || applied > tm+d+dt+difTol {
				t.Errorf("dt: %v delay: %v: applied at %v, outside [%v, %v]", dt, d, applied, tm+d, tm+d+dt)
			}
		}
	}
}

func TestInjectDelay(t *testing.T) {
	net := NewNetwork("InjectNet")
	sm := NewSoma("Soma")
	sm.Spike.Thr = 100
	net.Register(sm)
	if err := net.Inject(sm.Idx, 2, 1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		net.Advance(0.25)
		if sm.Potential != 0 {
			t.Errorf("step: %d: injected event applied early: %v", i, sm.Potential)
		}
	}
	net.Advance(0.25)
	if sm.Potential != 2 {
		t.Errorf("injected event not applied at delay: %v", sm.Potential)
	}
	if err := net.Inject(999, 1, 0); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("inject to unknown id: %v", err)
	}
}

func TestNeuronChain(t *testing.T) {
	net := NewNetwork("ChainNet")
	n1, err := net.AddNeuron("N1")
	if err != nil {
		t.Fatal(err)
	}
	n2, err := net.AddNeuron("N2")
	if err != nil {
		t.Fatal(err)
	}
	sy, err := net.AddSynapse(n2.Root(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := net.ConnectSynapse(n1.Axon, sy.Idx, 0); err != nil {
		t.Fatal(err)
	}
	s1 := net.UnitByName("N1.Soma").(*Soma)
	s2 := net.UnitByName("N2.Soma").(*Soma)
	s1.Potential = 1.5

	// soma -> axon -> synapse -> dendrite -> soma, one step each
	for i := 0; i < 4; i++ {
		net.Advance(1)
	}
	if s1.NSpikes != 1 {
		t.Errorf("N1 spikes: %d != 1", s1.NSpikes)
	}
	if math32.Abs(s2.Potential-2) > difTol {
		t.Errorf("N2 potential: %v != 2", s2.Potential)
	}
	net.Advance(1)
	if s2.NSpikes != 1 {
		t.Errorf("N2 spikes: %d != 1", s2.NSpikes)
	}
	if s2.Potential != 0 {
		t.Errorf("N2 potential after spike: %v != 0", s2.Potential)
	}
}

// connState is a snapshot of the structural state touched by connect
type connState struct {
	nconns int
	sends  map[int]int
	next   map[int]int
	axon   map[int]int
	dend   map[int]int
	nsyns  map[int]int
}

func snapConns(net *Network) connState {
	cs := connState{nconns: net.Conns.Len(), sends: map[int]int{}, next: map[int]int{}, axon: map[int]int{}, dend: map[int]int{}, nsyns: map[int]int{}}
	for _, kv := range net.Units.Order {
		ub := kv.Val.AsBase()
		cs.sends[ub.Idx] = len(ub.Sends)
		switch u := kv.Val.(type) {
		case *Dendrite:
			cs.next[u.Idx] = u.Next
			cs.nsyns[u.Idx] = len(u.Synapses)
		case *Synapse:
			cs.axon[u.Idx] = u.Axon
			cs.dend[u.Idx] = u.Dend
		}
	}
	return cs
}

func sameConnState(a, b connState) bool {
	if a.nconns != b.nconns {
		return false
	}
	for _, m := range [][2]map[int]int{{a.sends, b.sends}, {a.next, b.next}, {a.axon, b.axon}, {a.dend, b.dend}, {a.nsyns, b.nsyns}} {
		if len(m[0]) != len(m[1]) {
			return false
		}
		for k, v := range m[0] {
			if m[1][k] != v {
				return false
			}
		}
	}
	return true
}

func TestInvalidConnection(t *testing.T) {
	net := NewNetwork("InvalidNet")
	n1, _ := net.AddNeuron("N1")
	n2, _ := net.AddNeuron("N2")
	d1, err := net.AddDendrite(n1, n1.Root())
	if err != nil {
		t.Fatal(err)
	}
	sy, _ := net.AddSynapse(n1.Root(), 1)
	net.ConnectSynapse(n2.Axon, sy.Idx, 0)
	rg, _ := net.AddRegion("R", 0, "")

	tests := []struct {
		name       string
		send, recv int
	}{
		{"soma to dendrite", n1.Soma, n1.Root()},
		{"axon to soma", n1.Axon, n2.Soma},
		{"synapse second axon", n1.Axon, sy.Idx},
		{"synapse second dendrite", sy.Idx, d1.Idx},
		{"dendrite already linked", d1.Idx, n1.Soma},
		{"dendrite to itself", d1.Idx, d1.Idx},
		{"region to soma", rg.Idx, n1.Soma},
		{"soma to region", n1.Soma, rg.Idx},
		{"duplicate", n1.Soma, n1.Axon},
	}
	for _, tt := range tests {
		before := snapConns(net)
		_, err := net.ConnectIDs(tt.send, tt.recv, 1, 0)
		if !errors.Is(err, ErrInvalidConnection) {
			t.Errorf("%s: expected ErrInvalidConnection, got: %v", tt.name, err)
		}
		if !sameConnState(before, snapConns(net)) {
			t.Errorf("%s: structure changed by failed connect", tt.name)
		}
	}

	// d1 -> root -> soma: re-linking root to d1 would be a cycle
	before := snapConns(net)
	if err := net.SetParent(n1.Root(), d1.Idx); !errors.Is(err, ErrInvalidConnection) {
		t.Errorf("cycle: expected ErrInvalidConnection, got: %v", err)
	}
	if !sameConnState(before, snapConns(net)) {
		t.Errorf("cycle: structure changed by failed SetParent")
	}

	if _, err := net.Connect("N1.Soma", "Nope", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got: %v", err)
	}
}

func TestSetParent(t *testing.T) {
	net := NewNetwork("ParentNet")
	nr, _ := net.AddNeuron("N")
	d1, _ := net.AddDendrite(nr, nr.Root())
	d2, _ := net.AddDendrite(nr, d1.Idx)
	if d2.Next != d1.Idx {
		t.Errorf("d2 next: %d != %d", d2.Next, d1.Idx)
	}
	if err := net.SetParent(d2.Idx, nr.Soma); err != nil {
		t.Fatal(err)
	}
	if d2.Next != nr.Soma || len(d2.Sends) != 1 || d2.Sends[0].Recv != nr.Soma {
		t.Errorf("d2 not re-linked to soma: next: %d sends: %v", d2.Next, d2.Sends)
	}
	if d1.SendTo(nr.Root()) == nil {
		t.Errorf("d1 lost its link to root")
	}
	// d2 now sends directly to the soma
	d2.Accum = 0.5
	sm := net.UnitByName("N.Soma").(*Soma)
	net.Advance(1)
	if sm.Potential != 0.5 {
		t.Errorf("soma potential: %v != 0.5", sm.Potential)
	}
}

// a part that fails to link is unregistered again
func TestAddPartRollback(t *testing.T) {
	net := NewNetwork("RollbackNet")
	nr, _ := net.AddNeuron("N")
	d1, _ := net.AddDendrite(nr, nr.Root())
	other := NewNetwork("Other")
	d1.Net = other

	nu := net.Units.Len()
	before := snapConns(net)
	if _, err := net.AddSynapse(d1.Idx, 1); !errors.Is(err, ErrInvalidConnection) {
		t.Errorf("synapse: expected ErrInvalidConnection, got: %v", err)
	}
	if _, err := net.AddDendrite(nr, d1.Idx); !errors.Is(err, ErrInvalidConnection) {
		t.Errorf("dendrite: expected ErrInvalidConnection, got: %v", err)
	}
	if net.Units.Len() != nu {
		t.Errorf("units left registered: %d != %d", net.Units.Len(), nu)
	}
	if !sameConnState(before, snapConns(net)) {
		t.Errorf("structure changed by failed add")
	}
	if len(nr.Dendrites) != 2 || len(d1.Synapses) != 0 {
		t.Errorf("neuron parts changed: dendrites: %v synapses: %v", nr.Dendrites, d1.Synapses)
	}
	if net.UnitByName("N.Dend2") != nil {
		t.Errorf("failed dendrite still registered by name")
	}

	d1.Net = net
	sy, err := net.AddSynapse(d1.Idx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if sy.Dend != d1.Idx || len(d1.Synapses) != 1 {
		t.Errorf("synapse not linked after restore: %d %v", sy.Dend, d1.Synapses)
	}
}

func TestRemove(t *testing.T) {
	net := NewNetwork("RemoveNet")
	n1, _ := net.AddNeuron("N1")
	n2, _ := net.AddNeuron("N2")
	sy, _ := net.AddSynapse(n2.Root(), 1)
	net.ConnectSynapse(n1.Axon, sy.Idx, 0)

	ax := net.UnitByName("N1.Axon").(*Axon)
	if err := net.Remove(sy.Idx); err != nil {
		t.Fatal(err)
	}
	if len(ax.Sends) != 0 {
		t.Errorf("axon still sends to removed synapse")
	}
	root := net.UnitByName("N2.Dend0").(*Dendrite)
	if len(root.Synapses) != 0 {
		t.Errorf("dendrite still lists removed synapse")
	}
	if sy.Net != nil || sy.Idx != -1 {
		t.Errorf("removed synapse still registered")
	}

	nconn := net.Conns.Len()
	if err := net.Remove(n1.Soma); err != nil {
		t.Fatal(err)
	}
	if n1.Soma != -1 {
		t.Errorf("neuron soma slot not cleared")
	}
	if net.Conns.Len() != nconn-2 {
		t.Errorf("soma connections not severed: %d conns, had %d", net.Conns.Len(), nconn)
	}
	d1 := net.UnitByName("N1.Dend0").(*Dendrite)
	if d1.Next != -1 {
		t.Errorf("dendrite still points to removed soma")
	}

	if err := net.RemoveByName("N2"); err != nil {
		t.Fatal(err)
	}
	if net.UnitByName("N2.Soma") != nil || net.UnitByName("N2.Dend0") != nil {
		t.Errorf("neuron parts not removed")
	}
	if err := net.Remove(12345); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got: %v", err)
	}
}
