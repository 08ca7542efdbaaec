// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import "fmt"

// Connection is a directed, weighted link from a sending unit to a receiving
// unit. Every event sent across it carries the sender's value times Wt, with
// the connection's Delay as its countdown. Connections are registered in the
// Network and get their own id.
type Connection struct {
	Idx   int     `inactive:"+" desc:"unique id assigned by the network"`
	Nm    string  `desc:"optional name"`
	Cls   string  `desc:"class for applying parameter styles"`
	Send  int     `inactive:"+" desc:"id of the sending unit"`
	Recv  int     `inactive:"+" desc:"id of the receiving unit"`
	Wt    float32 `desc:"weight multiplying every value sent across this connection"`
	Delay float32 `min:"0" desc:"conduction delay, in simulated time -- 0 means the receiver applies the event in the drain phase of the same step"`
}

func (cn *Connection) ID() int          { return cn.Idx }
func (cn *Connection) Kind() Kinds      { return ConnectionKind }
func (cn *Connection) TypeName() string { return "Connection" }
func (cn *Connection) Class() string    { return cn.Cls }

// Name returns the connection name, or Send->Recv ids if unnamed
func (cn *Connection) Name() string {
	if cn.Nm != "" {
		return cn.Nm
	}
	return fmt.Sprintf("%d->%d", cn.Send, cn.Recv)
}

// Defaults sets the connection to unit weight, zero delay
func (cn *Connection) Defaults() {
	cn.Wt = 1
	cn.Delay = 0
}

// Update clamps the delay to be non-negative
func (cn *Connection) Update() {
	if cn.Delay < 0 {
		cn.Delay = 0
	}
}

func (cn *Connection) String() string {
	return fmt.Sprintf("Connection %d: %d -> %d  Wt: %g  Delay: %g", cn.Idx, cn.Send, cn.Recv, cn.Wt, cn.Delay)
}
