// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"

	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
)

// Connect connects the units with given names, with given weight and no
// delay. Returns ErrUnknownUnit if either lookup fails, and
// ErrInvalidConnection if the kinds of the units do not allow it:
//
//	Soma -> Axon
//	Axon -> Synapse      (a synapse is driven by exactly one axon)
//	Synapse -> Dendrite  (a synapse belongs to exactly one dendrite)
//	Dendrite -> Dendrite or Soma  (exactly one next, not itself, no cycles)
//	Region -> Region
//
// Only Region -> Region connections may have a weight other than 1:
// within a neuron the weight is the Synapse's Syn.Wt, applied once.
// On error nothing is modified.
func (nt *Network) Connect(send, recv string, wt float32) (*Connection, error) {
	return nt.ConnectDelay(send, recv, wt, 0)
}

// ConnectDelay is Connect with given conduction delay
func (nt *Network) ConnectDelay(send, recv string, wt, delay float32) (*Connection, error) {
	su, err := nt.UnitByNameTry(send)
	if err != nil {
		return nil, err
	}
	ru, err := nt.UnitByNameTry(recv)
	if err != nil {
		return nil, err
	}
	return nt.connect(su, ru, wt, delay)
}

// ConnectIDs connects the units with given ids, with given weight and delay
func (nt *Network) ConnectIDs(send, recv int, wt, delay float32) (*Connection, error) {
	su, err := nt.UnitByID(send)
	if err != nil {
		return nil, err
	}
	ru, err := nt.UnitByID(recv)
	if err != nil {
		return nil, err
	}
	return nt.connect(su, ru, wt, delay)
}

func (nt *Network) connect(su, ru Unit, wt, delay float32) (*Connection, error) {
	if err := nt.ValidateConnection(su, ru); err != nil {
		return nil, err
	}
	if wt != 1 && su.Kind() != RegionKind {
		return nil, invalidConn(su, ru, fmt.Sprintf("weight %g: connections between neuron parts have unit weight -- set Syn.Wt on the Synapse instead", wt))
	}
	if delay < 0 {
		delay = 0
	}
	cn := &Connection{Idx: nt.newID(), Send: su.ID(), Recv: ru.ID(), Wt: wt, Delay: delay}
	nt.Conns.Add(cn.Idx, cn)
	su.AsBase().addSend(cn)
	switch s := su.(type) {
	case *Axon:
		ru.(*Synapse).Axon = s.Idx
	case *Synapse:
		s.Dend = ru.ID()
		dd := ru.(*Dendrite)
		dd.Synapses = append(dd.Synapses, s.Idx)
	case *Dendrite:
		s.Next = ru.ID()
	}
	return cn, nil
}

// ValidateConnection returns ErrInvalidConnection if su may not connect to
// ru, given their kinds and current connections
func (nt *Network) ValidateConnection(su, ru Unit) error {
	if su.AsBase().Net != nt || ru.AsBase().Net != nt {
		return invalidConn(su, ru, "both units must be registered in network "+nt.Nm)
	}
	if su.AsBase().SendTo(ru.ID()) != nil {
		return invalidConn(su, ru, "already connected")
	}
	sk, rk := su.Kind(), ru.Kind()
	switch sk {
	case SomaKind:
		if rk != AxonKind {
			return invalidConn(su, ru, "a soma can only connect to an axon")
		}
	case AxonKind:
		if rk != SynapseKind {
			return invalidConn(su, ru, "an axon can only connect to a synapse")
		}
		if sy := ru.(*Synapse); sy.Axon >= 0 {
			return invalidConn(su, ru, fmt.Sprintf("synapse is already driven by axon %d", sy.Axon))
		}
	case SynapseKind:
		if rk != DendriteKind {
			return invalidConn(su, ru, "a synapse can only connect to a dendrite")
		}
		if sy := su.(*Synapse); sy.Dend >= 0 {
			return invalidConn(su, ru, fmt.Sprintf("synapse already belongs to dendrite %d", sy.Dend))
		}
	case DendriteKind:
		if rk != DendriteKind && rk != SomaKind {
			return invalidConn(su, ru, "a dendrite can only connect to a dendrite or a soma")
		}
		dd := su.(*Dendrite)
		if dd.Next >= 0 {
			return invalidConn(su, ru, fmt.Sprintf("dendrite already connects to %d -- disconnect it first", dd.Next))
		}
		if su.ID() == ru.ID() {
			return invalidConn(su, ru, "a dendrite cannot connect to itself")
		}
		if nt.dendReaches(ru.ID(), su.ID()) {
			return invalidConn(su, ru, "would create a cycle in the dendrite tree")
		}
	case RegionKind:
		if rk != RegionKind {
			return invalidConn(su, ru, "a region can only connect to a region")
		}
	default:
		return invalidConn(su, ru, "not a connectable kind")
	}
	return nil
}

// dendReaches returns true if following Next links from unit from
// arrives at unit to
func (nt *Network) dendReaches(from, to int) bool {
	for n := 0; n <= nt.Units.Len(); n++ {
		if from == to {
			return true
		}
		u, has := nt.Units.ValByKey(from)
		if !has {
			return false
		}
		dd, ok := u.(*Dendrite)
		if !ok || dd.Next < 0 {
			return false
		}
		from = dd.Next
	}
	return true
}

// Disconnect removes the connection between the named units, clearing the
// back-references it set. Events already queued on the receiver are kept.
func (nt *Network) Disconnect(send, recv string) error {
	su, err := nt.UnitByNameTry(send)
	if err != nil {
		return err
	}
	ru, err := nt.UnitByNameTry(recv)
	if err != nil {
		return err
	}
	return nt.disconnect(su, ru)
}

// DisconnectIDs is Disconnect by unit ids
func (nt *Network) DisconnectIDs(send, recv int) error {
	su, err := nt.UnitByID(send)
	if err != nil {
		return err
	}
	ru, err := nt.UnitByID(recv)
	if err != nil {
		return err
	}
	return nt.disconnect(su, ru)
}

func (nt *Network) disconnect(su, ru Unit) error {
	cn := su.AsBase().SendTo(ru.ID())
	if cn == nil {
		return invalidConn(su, ru, "not connected")
	}
	nt.removeConn(cn)
	return nil
}

// removeConn removes a registered connection from its sender and the
// registry, clearing the role back-references it set
func (nt *Network) removeConn(cn *Connection) {
	nt.Conns.DeleteKey(cn.Idx)
	su, has := nt.Units.ValByKey(cn.Send)
	if has {
		su.AsBase().removeSends(cn.Recv)
	}
	ru, rhas := nt.Units.ValByKey(cn.Recv)
	switch s := su.(type) {
	case *Axon:
		if sy, ok := ru.(*Synapse); rhas && ok && sy.Axon == s.Idx {
			sy.Axon = -1
		}
	case *Synapse:
		s.Dend = -1
		if dd, ok := ru.(*Dendrite); rhas && ok {
			dd.removeSynapse(s.Idx)
		}
	case *Dendrite:
		s.Next = -1
	}
}

// ConnectGroups connects each sending unit to each receiving unit selected
// by the projection pattern (e.g., prjn.NewFull(), prjn.NewOneToOne()),
// treating each list of names as a 1D group. Returns the new connections.
// If any connection fails, those already made are removed and the error
// is returned.
func (nt *Network) ConnectGroups(send, recv []string, pat prjn.Pattern, wt float32) ([]*Connection, error) {
	sus := make([]Unit, len(send))
	for i, nm := range send {
		u, err := nt.UnitByNameTry(nm)
		if err != nil {
			return nil, err
		}
		sus[i] = u
	}
	rus := make([]Unit, len(recv))
	for i, nm := range recv {
		u, err := nt.UnitByNameTry(nm)
		if err != nil {
			return nil, err
		}
		rus[i] = u
	}
	if len(sus) == 0 || len(rus) == 0 {
		return nil, nil
	}
	sshp := etensor.NewShape([]int{len(sus)}, nil, []string{"Send"})
	rshp := etensor.NewShape([]int{len(rus)}, nil, []string{"Recv"})
	_, _, cons := pat.Connect(sshp, rshp, sameNames(send, recv))

	var cns []*Connection
	ns := len(sus)
	for ri, ru := range rus {
		for si, su := range sus {
			if !cons.Value1D(ri*ns + si) {
				continue
			}
			cn, err := nt.connect(su, ru, wt, 0)
			if err != nil {
				for _, c := range cns {
					nt.removeConn(c)
				}
				return nil, err
			}
			cns = append(cns, cn)
		}
	}
	return cns, nil
}
