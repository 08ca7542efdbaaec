// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package topo reads a network topology from YAML and builds a cortex.Network
from it: regions, neurons with their dendrite trees and synapses, weighted
connections with delays, group connections by projection pattern,
environment inputs and outputs, and parameter settings.

	name: Loop
	regions:
	  - {name: V1, model: BiExp}
	  - {name: V2, model: MorrisLecar, method: Heun, class: Slow}
	connections:
	  - {from: V1, to: V2, wt: 0.5, delay: 0.2}
	inputs:
	  - {unit: V1}
	params:
	  - sel: .Slow
	    params: {Region.ML.TScale: "0.5"}
*/
package topo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emer/cortex/cortex"
	"github.com/emer/cortex/transfer"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/prjn"
	"gopkg.in/yaml.v3"
)

// Topology is the configuration of a whole network
type Topology struct {
	Name        string      `yaml:"name"`
	Regions     []Region    `yaml:"regions,omitempty"`
	Neurons     []Neuron    `yaml:"neurons,omitempty"`
	Connections []Conn      `yaml:"connections,omitempty"`
	Groups      []Group     `yaml:"groups,omitempty"`
	Inputs      []Port      `yaml:"inputs,omitempty"`
	Outputs     []Port      `yaml:"outputs,omitempty"`
	Params      []ParamSel  `yaml:"params,omitempty"`
	Set         []UnitParam `yaml:"set,omitempty"`
}

// Region is a cortical region
type Region struct {
	Name   string `yaml:"name"`
	Model  string `yaml:"model"`            // BiExp, MorrisLecar or Cable
	Method string `yaml:"method,omitempty"` // integration method, default RK4
	Class  string `yaml:"class,omitempty"`
}

// Neuron is a neuron composite. Its parts are named Name.Soma, Name.Axon
// and Name.Dend0 (root), with added dendrites named Name.Dend1, Name.Dend2...
// in order.
type Neuron struct {
	Name      string    `yaml:"name"`
	Class     string    `yaml:"class,omitempty"`
	Dendrites []Dend    `yaml:"dendrites,omitempty"`
	Synapses  []Synapse `yaml:"synapses,omitempty"`
}

// Dend is an added dendrite
type Dend struct {
	Parent string `yaml:"parent,omitempty"` // unit name of the parent dendrite or soma, default root
}

// Synapse is a synapse on one of the neuron's dendrites
type Synapse struct {
	Dend  string  `yaml:"dend,omitempty"` // dendrite unit name, default root
	From  string  `yaml:"from,omitempty"` // neuron whose axon drives it
	Wt    float32 `yaml:"wt"`
	Delay float32 `yaml:"delay,omitempty"`
}

// Conn is a connection between two named units
type Conn struct {
	From  string   `yaml:"from"`
	To    string   `yaml:"to"`
	Wt    *float32 `yaml:"wt,omitempty"` // default 1
	Delay float32  `yaml:"delay,omitempty"`
}

// Group connects two lists of units by a projection pattern
type Group struct {
	From    []string `yaml:"from"`
	To      []string `yaml:"to"`
	Pattern string   `yaml:"pattern"`        // Full, OneToOne or UnifRnd
	PCon    float32  `yaml:"pcon,omitempty"` // UnifRnd probability
	Wt      *float32 `yaml:"wt,omitempty"`   // default 1
}

// Port is an environment input or output on a unit
type Port struct {
	Unit  string   `yaml:"unit"`
	Index *int     `yaml:"index,omitempty"` // environment index, default the unit's position
	Gain  *float32 `yaml:"gain,omitempty"`  // input gain, default 1
}

// ParamSel is one params.Sel
type ParamSel struct {
	Sel    string            `yaml:"sel"`
	Desc   string            `yaml:"desc,omitempty"`
	Params map[string]string `yaml:"params"`
}

// UnitParam sets one parameter on one named unit
type UnitParam struct {
	Unit  string `yaml:"unit"`
	Path  string `yaml:"path"`
	Value string `yaml:"value"`
}

// Parse parses a topology from YAML
func Parse(data []byte) (*Topology, error) {
	tp := &Topology{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(tp); err != nil && err != io.EOF {
		return nil, fmt.Errorf("topo: %w", err)
	}
	return tp, nil
}

// Read reads and parses a topology
func Read(r io.Reader) (*Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Open reads and parses a topology file
func Open(filename string) (*Topology, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	tp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	if tp.Name == "" {
		tp.Name = strings.TrimSuffix(strings.TrimSuffix(filename, ".yaml"), ".yml")
	}
	return tp, nil
}

// Write writes the topology as YAML
func (tp *Topology) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tp); err != nil {
		return err
	}
	return enc.Close()
}

// Sheet returns the params as a params.Sheet
func (tp *Topology) Sheet() *params.Sheet {
	sh := make(params.Sheet, 0, len(tp.Params))
	for _, ps := range tp.Params {
		sh = append(sh, &params.Sel{Sel: ps.Sel, Desc: ps.Desc, Params: params.Params(ps.Params)})
	}
	return &sh
}

// ParseModel returns the transfer model for a name, with or without
// the Model suffix
func ParseModel(name string) (transfer.Models, error) {
	var md transfer.Models
	if !strings.HasSuffix(name, "Model") {
		name += "Model"
	}
	if err := md.FromString(name); err != nil || md == transfer.CustomModel || md >= transfer.ModelsN {
		return md, fmt.Errorf("topo: unknown model %q", strings.TrimSuffix(name, "Model"))
	}
	return md, nil
}

// ParsePattern returns the projection pattern for a group
func (gp *Group) ParsePattern() (prjn.Pattern, error) {
	switch gp.Pattern {
	case "", "Full":
		return prjn.NewFull(), nil
	case "OneToOne":
		return prjn.NewOneToOne(), nil
	case "UnifRnd":
		pt := prjn.NewUnifRnd()
		if gp.PCon > 0 {
			pt.PCon = gp.PCon
		}
		return pt, nil
	}
	return nil, fmt.Errorf("topo: unknown pattern %q", gp.Pattern)
}

func wtOr1(wt *float32) float32 {
	if wt == nil {
		return 1
	}
	return *wt
}

// NewNetwork builds a new network from the topology. On any error the
// partially built network is discarded and nil is returned.
func (tp *Topology) NewNetwork() (*cortex.Network, error) {
	net := cortex.NewNetwork(tp.Name)
	if err := tp.Build(net); err != nil {
		return nil, err
	}
	return net, nil
}

// Build adds everything in the topology to net, in order: regions,
// neurons, synapses, connections, groups, inputs, outputs, params, and
// unit settings. Stops at the first error, which leaves net partially built.
func (tp *Topology) Build(net *cortex.Network) error {
	for _, rs := range tp.Regions {
		md, err := ParseModel(rs.Model)
		if err != nil {
			return fmt.Errorf("region %v: %w", rs.Name, err)
		}
		rg, err := net.AddRegion(rs.Name, md, rs.Method)
		if err != nil {
			return err
		}
		if rs.Class != "" {
			rg.AddClass(strings.Fields(rs.Class)...)
		}
	}
	nrns := make([]*cortex.Neuron, len(tp.Neurons))
	for i, ns := range tp.Neurons {
		nr, err := net.AddNeuron(ns.Name)
		if err != nil {
			return err
		}
		nrns[i] = nr
		if ns.Class != "" {
			for _, id := range nr.Parts(net) {
				u, _ := net.UnitByID(id)
				u.AsBase().AddClass(strings.Fields(ns.Class)...)
			}
		}
		for _, ds := range ns.Dendrites {
			par := nr.Root()
			if ds.Parent != "" {
				pu, err := net.UnitByNameTry(ds.Parent)
				if err != nil {
					return fmt.Errorf("neuron %v: %w", ns.Name, err)
				}
				par = pu.ID()
			}
			if _, err := net.AddDendrite(nr, par); err != nil {
				return fmt.Errorf("neuron %v: %w", ns.Name, err)
			}
		}
	}
	for i, ns := range tp.Neurons {
		nr := nrns[i]
		for _, ss := range ns.Synapses {
			dend := nr.Root()
			if ss.Dend != "" {
				du, err := net.UnitByNameTry(ss.Dend)
				if err != nil {
					return fmt.Errorf("neuron %v: %w", ns.Name, err)
				}
				dend = du.ID()
			}
			sy, err := net.AddSynapse(dend, ss.Wt)
			if err != nil {
				return fmt.Errorf("neuron %v: %w", ns.Name, err)
			}
			if ss.From == "" {
				continue
			}
			src, err := net.NeuronByName(ss.From)
			if err != nil {
				return fmt.Errorf("neuron %v synapse: %w", ns.Name, err)
			}
			if _, err := net.ConnectSynapse(src.Axon, sy.Idx, ss.Delay); err != nil {
				return fmt.Errorf("neuron %v synapse: %w", ns.Name, err)
			}
		}
	}
	for _, cs := range tp.Connections {
		if _, err := net.ConnectDelay(cs.From, cs.To, wtOr1(cs.Wt), cs.Delay); err != nil {
			return err
		}
	}
	for _, gs := range tp.Groups {
		pat, err := gs.ParsePattern()
		if err != nil {
			return err
		}
		if _, err := net.ConnectGroups(gs.From, gs.To, pat, wtOr1(gs.Wt)); err != nil {
			return err
		}
	}
	for _, ps := range tp.Inputs {
		u, err := net.UnitByNameTry(ps.Unit)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		idx := cortex.AutoIdx
		if ps.Index != nil {
			idx = *ps.Index
		}
		if _, err := net.AddInput(u.ID(), idx, wtOr1(ps.Gain)); err != nil {
			return err
		}
	}
	for _, ps := range tp.Outputs {
		u, err := net.UnitByNameTry(ps.Unit)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		idx := cortex.AutoIdx
		if ps.Index != nil {
			idx = *ps.Index
		}
		if _, err := net.AddOutput(u.ID(), idx); err != nil {
			return err
		}
	}
	if len(tp.Params) > 0 {
		if _, err := net.ApplyParams(tp.Sheet(), false); err != nil {
			return fmt.Errorf("params: %w", err)
		}
	}
	for _, us := range tp.Set {
		if err := net.SetUnitParam(us.Unit, us.Path, us.Value); err != nil {
			return err
		}
	}
	return nil
}
