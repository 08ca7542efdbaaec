// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cortex is the simulation kernel: networks of spiking neuron parts
(soma, dendrite tree, axon, synapses) and population-level cortical regions,
advanced together through simulated time.

Every simulable unit is held in the Network's registry under an integer id,
and all references between units are ids, including connections. A unit
never modifies another unit's state: it emits events onto the queues of the
units it connects to, and each unit applies its own queued events once their
conduction delay has run out.

Each Network step runs in two phases over the registry, in id order:

* Advance: each unit advances its clock, steps its integrator if it has one,
and runs its discrete update, which may emit events.

* Drain: each unit samples its environment inputs and applies any queued
events whose delay has expired.

An event emitted in the Advance phase of a step is thus seen by its target
no earlier than the Drain phase of that same step, regardless of the order
in which units are visited.

Regions wrap a transfer.Func and an integ.Binding, and report their output
to the bound Environment each step. Numerical divergence (NaN / Inf) in a
region is reported as a *NumericDivergence through Network.OnDiverge and
stepping continues.
*/
package cortex
