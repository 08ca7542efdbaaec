// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"github.com/emer/emergent/relpos"
	"github.com/goki/mat32"
)

// GraphNode is one unit in the graph view of a network
type GraphNode struct {
	ID    int        `desc:"unit id"`
	Name  string     `desc:"unit label"`
	Kind  Kinds      `desc:"unit kind"`
	Value float32    `desc:"current output value"`
	Pos   mat32.Vec3 `desc:"display position, from Layout"`
}

// GraphEdge is one connection in the graph view of a network
type GraphEdge struct {
	ID    int     `desc:"connection id"`
	From  int     `desc:"sending unit id"`
	To    int     `desc:"receiving unit id"`
	Wt    float32 `desc:"connection weight"`
	Delay float32 `desc:"conduction delay"`
}

// Graph is a snapshot of the network topology and current values
type Graph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

// NodeSize is the display size of every graph node
var NodeSize = mat32.Vec2{X: 1, Y: 1}

// Graph returns a snapshot of the nodes and weighted edges.
// It does not modify the network.
func (nt *Network) Graph() *Graph {
	return &Graph{Nodes: nt.Nodes(), Edges: nt.EdgesWithWeight()}
}

// Nodes returns a node per unit, in registry order, positioned by Layout
func (nt *Network) Nodes() []GraphNode {
	pos := nt.Layout()
	nds := make([]GraphNode, 0, nt.Units.Len())
	for _, kv := range nt.Units.Order {
		u := kv.Val
		nds = append(nds, GraphNode{ID: u.ID(), Name: Label(u), Kind: u.Kind(), Value: u.OutputValue(), Pos: pos[u.ID()]})
	}
	return nds
}

// EdgesWithWeight returns an edge per connection, in creation order.
// The weight of an edge driving a Synapse includes the synapse weight.
func (nt *Network) EdgesWithWeight() []GraphEdge {
	eds := make([]GraphEdge, 0, nt.Conns.Len())
	for _, kv := range nt.Conns.Order {
		cn := kv.Val
		wt := cn.Wt
		if ru, has := nt.Units.ValByKey(cn.Recv); has {
			if sy, ok := ru.(*Synapse); ok {
				wt *= sy.Syn.Wt
			}
		}
		eds = append(eds, GraphEdge{ID: cn.Idx, From: cn.Send, To: cn.Recv, Wt: wt, Delay: cn.Delay})
	}
	return eds
}

// Layout computes display positions for all units, keyed by id: regions in
// the bottom row, each neuron's parts in a row above that, and any units not
// in a neuron in a top row. Within a row units are laid out RightOf each
// other in registry order. Updates MinPos / MaxPos.
func (nt *Network) Layout() map[int]mat32.Vec3 {
	var rows [][]int
	var regs, free []int
	nrows := make(map[int]int)
	for _, kv := range nt.Units.Order {
		u := kv.Val
		ub := u.AsBase()
		switch {
		case u.Kind() == RegionKind:
			regs = append(regs, ub.Idx)
		case ub.Owner >= 0:
			ri, has := nrows[ub.Owner]
			if !has {
				ri = len(rows)
				nrows[ub.Owner] = ri
				rows = append(rows, nil)
			}
			rows[ri] = append(rows[ri], ub.Idx)
		default:
			free = append(free, ub.Idx)
		}
	}
	rows = append([][]int{regs}, rows...)
	rows = append(rows, free)

	pos := make(map[int]mat32.Vec3, nt.Units.Len())
	right := relpos.Rel{Rel: relpos.RightOf, YAlign: relpos.Front, Space: 1}
	above := relpos.Rel{Rel: relpos.Above, XAlign: relpos.Left, YAlign: relpos.Front}
	var rowStart mat32.Vec3
	first := true
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if !first {
			rowStart = above.Pos(rowStart, NodeSize, NodeSize)
		}
		first = false
		ps := rowStart
		for i, id := range row {
			if i > 0 {
				ps = right.Pos(ps, NodeSize, NodeSize)
			}
			pos[id] = ps
		}
	}
	nt.boundsUpdt(pos)
	return pos
}

// boundsUpdt updates the Min / Max display bounds from given positions
func (nt *Network) boundsUpdt(pos map[int]mat32.Vec3) {
	if len(pos) == 0 {
		nt.MinPos = mat32.Vec3Zero
		nt.MaxPos = mat32.Vec3Zero
		return
	}
	mn := mat32.NewVec3Scalar(mat32.Infinity)
	mx := mat32.NewVec3Scalar(-mat32.Infinity)
	for _, ps := range pos {
		ru := ps
		ru.X += NodeSize.X
		ru.Y += NodeSize.Y
		mn.SetMin(ps)
		mx.SetMax(ru)
	}
	nt.MinPos = mn
	nt.MaxPos = mx
}

// Bounds returns the display bounds from the last Layout
func (nt *Network) Bounds() (min, max mat32.Vec3) {
	return nt.MinPos, nt.MaxPos
}
