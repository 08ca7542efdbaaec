// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"
	"log"

	"github.com/emer/cortex/event"
	"github.com/emer/cortex/transfer"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/minmax"
	"github.com/goki/kigen/ordmap"
	"github.com/goki/mat32"
)

// cortex.Network owns all the units, neuron composites and connections of a
// model, keyed by integer id in ordered registries. Ids come from a single
// allocator that is strictly increasing and never reuses an id.
// Each call to Advance runs one step in two phases: Advance on every unit
// in registry order, then DrainEvents on every unit in the same order.
type Network struct {
	Nm        string                        `desc:"overall name of network"`
	Units     *ordmap.Map[int, Unit]        `view:"-" desc:"simulable units, in registration order"`
	Neurons   *ordmap.Map[int, *Neuron]     `view:"-" desc:"neuron composites, in registration order"`
	Conns     *ordmap.Map[int, *Connection] `view:"-" desc:"connections, in creation order"`
	NameMap   map[string]int                `view:"-" desc:"map of names of units and neurons to ids"`
	NextID    int                           `inactive:"+" desc:"next id to assign"`
	Env       Environment                   `view:"-" desc:"bound environment, nil if none"`
	Time      float32                       `inactive:"+" desc:"simulated time, advanced by dt every step"`
	Cycle     int                           `inactive:"+" desc:"number of steps since the last reset"`
	OnDiverge func(nd *NumericDivergence)   `view:"-" json:"-" desc:"receives every NumericDivergence -- if nil they are logged"`
	NDiverge  int                           `inactive:"+" desc:"number of NumericDivergence reports since the last reset"`
	RateStats minmax.AvgMax32               `inactive:"+" desc:"average and max of region outputs on the last step"`
	FunTimes  map[string]*timer.Time        `view:"-" desc:"timers for each major function (step of processing)"`
	Timing    bool                          `desc:"record per-phase timing in FunTimes"`
	MinPos    mat32.Vec3                    `view:"-" desc:"minimum display position in network, from Layout"`
	MaxPos    mat32.Vec3                    `view:"-" desc:"maximum display position in network, from Layout"`
}

// NewNetwork returns a new, empty Network
func NewNetwork(name string) *Network {
	nt := &Network{}
	nt.InitName(name)
	return nt
}

// InitName initializes the registries and sets the name
func (nt *Network) InitName(name string) {
	nt.Nm = name
	nt.Units = ordmap.New[int, Unit]()
	nt.Neurons = ordmap.New[int, *Neuron]()
	nt.Conns = ordmap.New[int, *Connection]()
	nt.NameMap = make(map[string]int)
	nt.FunTimes = make(map[string]*timer.Time)
}

func (nt *Network) Name() string  { return nt.Nm }
func (nt *Network) Label() string { return nt.Nm }
func (nt *Network) NUnits() int   { return nt.Units.Len() }

// Unit returns the unit at given registry position
func (nt *Network) Unit(idx int) Unit { return nt.Units.ValByIdx(idx) }

func (nt *Network) newID() int {
	id := nt.NextID
	nt.NextID++
	return id
}

//////////////////////////////////////////////////////////////////////////////////////
//  Registry

// Register adds a detached unit to the network, assigning ids to it and to
// its Inputs and Outputs, and wiring those to the bound Environment.
// Returns ErrDuplicateRegistration if the unit is already registered or its
// name is in use.
func (nt *Network) Register(u Unit) error {
	ub := u.AsBase()
	if ub.Net != nil {
		return fmt.Errorf("%w: %v %v is already registered in network %v", ErrDuplicateRegistration, u.Kind(), Label(u), ub.Net.Nm)
	}
	if err := nt.checkName(ub.Nm); err != nil {
		return err
	}
	nt.register(u)
	nt.syncEnv()
	return nil
}

func (nt *Network) checkName(name string) error {
	if name == "" {
		return nil
	}
	if id, has := nt.NameMap[name]; has {
		return fmt.Errorf("%w: name %q already used by id %d in network %v", ErrDuplicateRegistration, name, id, nt.Nm)
	}
	return nil
}

// register does Register without the checks or the env sync
func (nt *Network) register(u Unit) {
	ub := u.AsBase()
	ub.Net = nt
	ub.Idx = nt.newID()
	nt.Units.Add(ub.Idx, u)
	if ub.Nm != "" {
		nt.NameMap[ub.Nm] = ub.Idx
	}
	for _, in := range ub.Inputs {
		in.Idx = nt.newID()
		in.Unit = ub.Idx
	}
	for _, out := range ub.Outputs {
		out.Idx = nt.newID()
		out.Unit = ub.Idx
	}
}

// AddRegion creates and registers a region with given built-in model and
// integration method (empty = RK4)
func (nt *Network) AddRegion(name string, model transfer.Models, method string) (*Region, error) {
	if err := nt.checkName(name); err != nil {
		return nil, err
	}
	rg, err := NewRegion(name, model, method)
	if err != nil {
		return nil, err
	}
	return rg, nt.Register(rg)
}

// AddCustomRegion creates and registers a region driven by given transfer function
func (nt *Network) AddCustomRegion(name string, fn transfer.Func, method string) (*Region, error) {
	if err := nt.checkName(name); err != nil {
		return nil, err
	}
	rg, err := NewCustomRegion(name, fn, method)
	if err != nil {
		return nil, err
	}
	return rg, nt.Register(rg)
}

// AddInput adds an environment Input to the unit with given id.
// envIdx may be AutoIdx to sample at the unit's registry position.
func (nt *Network) AddInput(unit, envIdx int, gain float32) (*Input, error) {
	u, err := nt.UnitByID(unit)
	if err != nil {
		return nil, err
	}
	ub := u.AsBase()
	in := &Input{Idx: nt.newID(), Unit: unit, EnvIdx: envIdx, Gain: gain, Cur: -1}
	ub.Inputs = append(ub.Inputs, in)
	nt.syncEnv()
	return in, nil
}

// AddOutput adds an environment Output sink to the unit with given id.
// envIdx may be AutoIdx to report at the unit's registry position.
func (nt *Network) AddOutput(unit, envIdx int) (*Output, error) {
	u, err := nt.UnitByID(unit)
	if err != nil {
		return nil, err
	}
	ub := u.AsBase()
	out := &Output{Idx: nt.newID(), Unit: unit, EnvIdx: envIdx, Cur: -1}
	ub.Outputs = append(ub.Outputs, out)
	nt.syncEnv()
	return out, nil
}

// Remove removes the unit, neuron composite or connection with given id.
// Removing a unit severs every connection to or from it and clears any
// references held by other units and its neuron. Removing a neuron removes
// all of its parts, including the synapses on its dendrites.
// Ids are never reused.
func (nt *Network) Remove(id int) error {
	if cn, has := nt.Conns.ValByKey(id); has {
		nt.removeConn(cn)
		return nil
	}
	if nr, has := nt.Neurons.ValByKey(id); has {
		for _, uid := range nr.Parts(nt) {
			nt.removeUnit(uid)
		}
		nt.Neurons.DeleteKey(id)
		if nr.Nm != "" {
			delete(nt.NameMap, nr.Nm)
		}
		nr.Idx = -1
		nt.syncEnv()
		return nil
	}
	if _, has := nt.Units.ValByKey(id); !has {
		return fmt.Errorf("%w: id %d in network %v", ErrUnknownUnit, id, nt.Nm)
	}
	nt.removeUnit(id)
	nt.syncEnv()
	return nil
}

// RemoveByName removes the unit or neuron with given name
func (nt *Network) RemoveByName(name string) error {
	id, has := nt.NameMap[name]
	if !has {
		return fmt.Errorf("%w: %q in network %v", ErrUnknownUnit, name, nt.Nm)
	}
	return nt.Remove(id)
}

func (nt *Network) removeUnit(id int) {
	u, has := nt.Units.ValByKey(id)
	if !has {
		return
	}
	ub := u.AsBase()
	for _, cn := range append([]*Connection(nil), ub.Sends...) {
		nt.removeConn(cn)
	}
	for _, cn := range nt.recvConns(id) {
		nt.removeConn(cn)
	}
	if nr, has := nt.Neurons.ValByKey(ub.Owner); has {
		nr.unlink(id)
	}
	nt.Units.DeleteKey(id)
	if ub.Nm != "" {
		delete(nt.NameMap, ub.Nm)
	}
	ub.Net = nil
	ub.Idx = -1
	ub.Owner = -1
}

// recvConns returns all connections received by given unit id
func (nt *Network) recvConns(id int) []*Connection {
	var cns []*Connection
	for _, kv := range nt.Conns.Order {
		if kv.Val.Recv == id {
			cns = append(cns, kv.Val)
		}
	}
	return cns
}

//////////////////////////////////////////////////////////////////////////////////////
//  Lookup

// UnitByName returns a unit by name, nil if not found
func (nt *Network) UnitByName(name string) Unit {
	id, has := nt.NameMap[name]
	if !has {
		return nil
	}
	u, _ := nt.Units.ValByKey(id)
	return u
}

// UnitByNameTry returns a unit by name -- emits a log error message
// and returns ErrUnknownUnit if not found
func (nt *Network) UnitByNameTry(name string) (Unit, error) {
	u := nt.UnitByName(name)
	if u == nil {
		err := fmt.Errorf("%w: unit named %q not found in network %v", ErrUnknownUnit, name, nt.Nm)
		log.Println(err)
		return nil, err
	}
	return u, nil
}

// UnitByID returns a unit by id, or ErrUnknownUnit
func (nt *Network) UnitByID(id int) (Unit, error) {
	u, has := nt.Units.ValByKey(id)
	if !has {
		return nil, fmt.Errorf("%w: id %d not found in network %v", ErrUnknownUnit, id, nt.Nm)
	}
	return u, nil
}

// NeuronByName returns a neuron composite by name, or ErrUnknownUnit
func (nt *Network) NeuronByName(name string) (*Neuron, error) {
	id, has := nt.NameMap[name]
	if has {
		if nr, ok := nt.Neurons.ValByKey(id); ok {
			return nr, nil
		}
	}
	return nil, fmt.Errorf("%w: neuron named %q not found in network %v", ErrUnknownUnit, name, nt.Nm)
}

// ConnByID returns a connection by id, nil if not found
func (nt *Network) ConnByID(id int) *Connection {
	cn, _ := nt.Conns.ValByKey(id)
	return cn
}

// Regions returns all the regions, in registry order
func (nt *Network) Regions() []*Region {
	var rgs []*Region
	for _, kv := range nt.Units.Order {
		if rg, ok := kv.Val.(*Region); ok {
			rgs = append(rgs, rg)
		}
	}
	return rgs
}

// Components returns every component in the network: each unit followed by
// its outgoing connections, inputs and outputs, then the neuron composites.
// The returned slice is new, but the components are live and must not be
// modified through it.
func (nt *Network) Components() []Component {
	cps := make([]Component, 0, nt.Units.Len()+nt.Conns.Len()+nt.Neurons.Len())
	for _, kv := range nt.Units.Order {
		cps = append(cps, kv.Val)
		cps = kv.Val.AsBase().components(cps)
	}
	for _, kv := range nt.Neurons.Order {
		cps = append(cps, kv.Val)
	}
	return cps
}

//////////////////////////////////////////////////////////////////////////////////////
//  Environment

// BindEnvironment binds env as the sensor / effector boundary. The
// observables are resized to the number of units and named after them, and
// every registered Input and Output is wired to it. A nil env unbinds.
func (nt *Network) BindEnvironment(env Environment) {
	nt.Env = env
	nt.syncEnv()
}

// syncEnv resolves all Input / Output env indexes against registry
// positions, and sizes and names the environment observables
func (nt *Network) syncEnv() {
	n := nt.Units.Len()
	sz := n
	for i, kv := range nt.Units.Order {
		ub := kv.Val.AsBase()
		for _, in := range ub.Inputs {
			in.Cur = -1
			if nt.Env != nil {
				in.Cur = resolveIdx(in.EnvIdx, i)
				if in.Cur >= sz {
					sz = in.Cur + 1
				}
			}
		}
		for _, out := range ub.Outputs {
			out.Cur = -1
			if nt.Env != nil {
				out.Cur = resolveIdx(out.EnvIdx, i)
				if out.Cur >= sz {
					sz = out.Cur + 1
				}
			}
		}
	}
	if nt.Env == nil {
		return
	}
	nt.Env.SetSize(sz)
	for i, kv := range nt.Units.Order {
		nt.Env.SetObservableName(i, Label(kv.Val))
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Stepping

// Advance runs one step of size dt: every unit advances (clock, integrator,
// discrete update, sends), reporting to its Outputs, and then every unit
// drains its events. Units with the Off flag are skipped.
// A negative or NaN dt is logged and nothing is stepped.
func (nt *Network) Advance(dt float32) {
	if !(dt >= 0) {
		log.Printf("cortex.Network: %v Advance: invalid step size dt = %v, must be >= 0\n", nt.Nm, dt)
		return
	}
	ctx := &Context{Net: nt, Dt: dt, Time: nt.Time, Cycle: nt.Cycle}
	nt.RateStats.Init()

	nt.FunTimerStart("Advance")
	for i, kv := range nt.Units.Order {
		u := kv.Val
		ub := u.AsBase()
		if ub.IsOff() {
			continue
		}
		ub.AdvanceClock(dt)
		u.Advance(ctx)
		val := u.OutputValue()
		for _, out := range ub.Outputs {
			out.Report(nt.Env, val)
		}
		if u.Kind() == RegionKind && !ub.HasFlag(Diverged) {
			nt.RateStats.UpdateVal(val, int32(i))
		}
	}
	nt.FunTimerStop("Advance")

	nt.FunTimerStart("DrainEvents")
	for _, kv := range nt.Units.Order {
		ub := kv.Val.AsBase()
		if ub.IsOff() {
			continue
		}
		ub.DrainEvents(ctx)
	}
	nt.FunTimerStop("DrainEvents")

	nt.RateStats.CalcAvg()
	nt.Time += dt
	nt.Cycle++
	if rec, ok := nt.Env.(StepRecorder); ok {
		rec.StepDone(nt.Time)
	}
}

// Run runs ncyc steps of ltime.TimePerCyc, incrementing the ltime counters
func (nt *Network) Run(ltime *Time, ncyc int) {
	for i := 0; i < ncyc; i++ {
		nt.Advance(ltime.TimePerCyc)
		ltime.CycleInc()
	}
}

// RunTrial starts a new trial and runs ltime.CycPerTrl steps
func (nt *Network) RunTrial(ltime *Time) {
	ltime.TrialStart()
	nt.Run(ltime, ltime.CycPerTrl)
	ltime.TrialInc()
}

// Inject queues an external event of given value and delay on the unit with
// given id, as if sent from the environment
func (nt *Network) Inject(id int, val, delay float32) error {
	u, err := nt.UnitByID(id)
	if err != nil {
		return err
	}
	u.AsBase().Queue.Push(event.New(val, event.EnvOrigin, delay, nt.Time))
	return nil
}

// InitState resets every unit (queue, integrator, state), all unit clocks,
// the network time and the divergence count
func (nt *Network) InitState() {
	for _, kv := range nt.Units.Order {
		ub := kv.Val.AsBase()
		ub.Reset()
		ub.ResetClock()
	}
	nt.Time = 0
	nt.Cycle = 0
	nt.NDiverge = 0
	nt.RateStats.Init()
}

// Diverge delivers a NumericDivergence to OnDiverge, or logs it
func (nt *Network) Diverge(nd *NumericDivergence) {
	nt.NDiverge++
	if nt.OnDiverge != nil {
		nt.OnDiverge(nd)
		return
	}
	log.Println(nd)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Params

// ApplyParams applies given parameter style Sheet to all units and
// connections, calling UpdateParams on every unit. Selectors match
// TypeName (Soma, Region, Connection...), .Class and #Name.
// Returns true if any params were set, and the last error encountered.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, kv := range nt.Units.Order {
		u := kv.Val
		app, err := pars.Apply(u, setMsg)
		if app {
			applied = true
			u.UpdateParams()
		}
		if err != nil {
			rerr = err
		}
	}
	for _, kv := range nt.Conns.Order {
		app, err := pars.Apply(kv.Val, setMsg)
		if app {
			applied = true
			kv.Val.Update()
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// SetUnitParam sets the parameter at given path (e.g. "Spike.Thr") on the
// named unit to given value, then calls UpdateParams
func (nt *Network) SetUnitParam(name, path, val string) error {
	u, err := nt.UnitByNameTry(name)
	if err != nil {
		return err
	}
	if err := params.SetParam(u, path, val); err != nil {
		return fmt.Errorf("unit %v: %w", name, err)
	}
	u.UpdateParams()
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Timing reports

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	if !nt.Timing {
		return
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	if !nt.Timing {
		return
	}
	ft := nt.FunTimes[fun]
	ft.Stop()
}
