// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/cortex/event"
	"github.com/goki/ki/indent"
	"github.com/goki/ki/ints"
)

// unitMem returns the approximate memory used by a unit, including its
// queue and integrator state
func unitMem(u Unit) int {
	var sz uintptr
	switch u.(type) {
	case *Soma:
		sz = unsafe.Sizeof(Soma{})
	case *Dendrite:
		sz = unsafe.Sizeof(Dendrite{})
	case *Axon:
		sz = unsafe.Sizeof(Axon{})
	case *Synapse:
		sz = unsafe.Sizeof(Synapse{})
	case *Region:
		sz = unsafe.Sizeof(Region{})
	}
	ub := u.AsBase()
	mem := int(sz) + cap(ub.Queue.Events)*int(unsafe.Sizeof(event.Event{}))
	if ub.Integ != nil {
		mem += 4 * (len(ub.Integ.State) + len(ub.Integ.Init))
	}
	if dd, ok := u.(*Dendrite); ok {
		mem += 8 * cap(dd.Synapses)
	}
	return mem
}

// SizeReport returns a string reporting the number and memory footprint of
// each kind of unit in the network, and of the connections.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nk := make([]int, KindsN)
	mem := make([]int, KindsN)
	for _, kv := range nt.Units.Order {
		k := kv.Val.Kind()
		nk[k]++
		mem[k] += unitMem(kv.Val)
	}
	nk[ConnectionKind] = nt.Conns.Len()
	mem[ConnectionKind] = nt.Conns.Len() * int(unsafe.Sizeof(Connection{}))
	nk[NeuronKind] = nt.Neurons.Len()
	for _, kv := range nt.Neurons.Order {
		mem[NeuronKind] += int(unsafe.Sizeof(Neuron{})) + 8*cap(kv.Val.Dendrites)
	}
	tot := 0
	for k := Kinds(0); k < KindsN; k++ {
		if nk[k] == 0 {
			continue
		}
		tot += mem[k]
		fmt.Fprintf(&b, "%14s:\t N: %d\t Mem: %v\n", k, nk[k], (datasize.ByteSize)(mem[k]).HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t Units: %d\t Conns: %d\t Mem: %v\n", nt.Nm, nt.Units.Len(), nt.Conns.Len(), (datasize.ByteSize)(tot).HumanReadable())
	return b.String()
}

// StructDepth is the full depth of WriteStructure
const StructDepth = 3

// WriteStructure writes an indented listing of the units, each with its
// outgoing connections, down to given depth (0 = StructDepth):
// depth 1 lists neurons and free units, 2 adds neuron parts and
// connections, 3 adds inputs and outputs.
func (nt *Network) WriteStructure(w io.Writer, depth int) {
	if depth <= 0 {
		depth = StructDepth
	}
	depth = ints.MinInt(depth, StructDepth)
	fmt.Fprintf(w, "Network: %v  Time: %g  Cycle: %d\n", nt.Nm, nt.Time, nt.Cycle)
	for _, kv := range nt.Neurons.Order {
		nr := kv.Val
		fmt.Fprintf(w, "%sNeuron %v (%d)\n", indent.TabBytes(1), nr.Nm, nr.Idx)
		if depth < 2 {
			continue
		}
		for _, id := range nr.Parts(nt) {
			if u, has := nt.Units.ValByKey(id); has {
				nt.writeUnit(w, u, 2, depth)
			}
		}
	}
	for _, kv := range nt.Units.Order {
		if kv.Val.AsBase().Owner >= 0 {
			continue
		}
		nt.writeUnit(w, kv.Val, 1, depth)
	}
}

func (nt *Network) writeUnit(w io.Writer, u Unit, lev, depth int) {
	ub := u.AsBase()
	fmt.Fprintf(w, "%s%v %v (%d)  Out: %g  Queue: %d\n", indent.TabBytes(lev), u.TypeName(), Label(u), ub.Idx, u.OutputValue(), ub.Queue.Len())
	if lev+1 > depth {
		return
	}
	for _, cn := range ub.Sends {
		rnm := fmt.Sprintf("%d", cn.Recv)
		if ru, has := nt.Units.ValByKey(cn.Recv); has {
			rnm = Label(ru)
		}
		fmt.Fprintf(w, "%s-> %v  Wt: %g  Delay: %g\n", indent.TabBytes(lev+1), rnm, cn.Wt, cn.Delay)
	}
	if lev+2 > depth {
		return
	}
	for _, in := range ub.Inputs {
		fmt.Fprintf(w, "%sInput (%d)  Env: %d  Gain: %g\n", indent.TabBytes(lev+1), in.Idx, in.Cur, in.Gain)
	}
	for _, out := range ub.Outputs {
		fmt.Fprintf(w, "%sOutput (%d)  Env: %d\n", indent.TabBytes(lev+1), out.Idx, out.Cur)
	}
}

// TimerReport writes the amount of time spent in each phase, when Timing is on
func (nt *Network) TimerReport(w io.Writer) {
	fmt.Fprintf(w, "TimerReport: %v\n", nt.Nm)
	fmt.Fprintf(w, "\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	secs := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		secs[i] = nt.FunTimes[fn].TotalSecs()
		tot += secs[i]
	}
	for i, fn := range fnms {
		pct := 0.0
		if tot > 0 {
			pct = 100 * (secs[i] / tot)
		}
		fmt.Fprintf(w, "\t%13s \t%7.3f\t%7.1f\n", fn, secs[i], pct)
	}
	fmt.Fprintf(w, "\t%13s \t%7.3f\n", "Total", tot)
}

// ResetTimers resets all the phase timers
func (nt *Network) ResetTimers() {
	for _, ft := range nt.FunTimes {
		ft.Reset()
	}
}
