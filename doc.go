// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cortex is the overall repository for the cortex neural simulation
kernel, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* cortex: the network of units (regions, somas, dendrites, axons, synapses and
neuron composites), connections, the two-phase stepping loop, environment
binding, parameter application and reports.

* event: delayed events and the per-unit event queue.

* integ: the numerical integration methods (Euler, Midpoint, Heun, RK4) and
the registry that binds them to continuous state by name.

* transfer: the region transfer functions (bi-exponential, Morris-Lecar,
compartmental cable) and the XX1 rate function.

* chans: conductance-based channel parameters used by the transfer functions.

* topo: reading a network topology from YAML and building it.

* examples: these actually compile into runnable programs. examples/regions
builds a small network of regions and neurons and logs its outputs.
*/
package cortex
