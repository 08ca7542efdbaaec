// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"io"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
)

// Environment is the sensor / effector boundary of a Network.
// Inputs sample InputState every step, and Outputs report to HandleOutput
// every step. The network sizes and names the observables whenever units
// are registered or removed.
type Environment interface {
	// InputState returns the current input value at given index
	InputState(idx int) float32

	// HandleOutput receives the output value of the unit observed at given index
	HandleOutput(idx int, val float32)

	// SetObservableName names the observable at given index
	SetObservableName(idx int, name string)

	// SetSize sets the number of observables
	SetSize(n int)

	// Size returns the number of observables
	Size() int
}

// StepRecorder is an optional Environment interface called at the end of
// every network step, with the network time after the step
type StepRecorder interface {
	StepDone(tm float32)
}

// TableEnv is an Environment holding inputs and outputs in tensors, with a
// log of all outputs per step in an etable.Table
type TableEnv struct {
	Nm      string           `desc:"name of this environment"`
	Names   []string         `desc:"names of the observables"`
	Inputs  *etensor.Float32 `desc:"input values, one per observable"`
	Outputs *etensor.Float32 `desc:"latest output values, one per observable"`
	InRange minmax.F32       `desc:"if Max > Min, inputs are clipped to this range"`
	LogOn   bool             `def:"true" desc:"record a row of outputs on every step"`
	LogPrec int              `def:"4" desc:"precision for writing log values"`
	Log     *etable.Table    `view:"no-inline" desc:"step log: Time plus one column per observable"`

	logNames []string
}

// NewTableEnv returns a new, empty TableEnv with logging on
func NewTableEnv(name string) *TableEnv {
	ev := &TableEnv{Nm: name}
	ev.Defaults()
	return ev
}

func (ev *TableEnv) Defaults() {
	ev.LogOn = true
	ev.LogPrec = 4
	ev.Inputs = etensor.NewFloat32([]int{0}, nil, []string{"Obs"})
	ev.Outputs = etensor.NewFloat32([]int{0}, nil, []string{"Obs"})
	ev.Log = &etable.Table{}
}

func (ev *TableEnv) Name() string { return ev.Nm }
func (ev *TableEnv) Size() int    { return len(ev.Names) }

// SetSize resizes the observables, keeping existing values
func (ev *TableEnv) SetSize(n int) {
	if n == len(ev.Names) {
		return
	}
	nms := make([]string, n)
	copy(nms, ev.Names)
	ev.Names = nms
	ev.Inputs = resizeTsr(ev.Inputs, n)
	ev.Outputs = resizeTsr(ev.Outputs, n)
}

func resizeTsr(tsr *etensor.Float32, n int) *etensor.Float32 {
	nt := etensor.NewFloat32([]int{n}, nil, []string{"Obs"})
	if tsr != nil {
		copy(nt.Values, tsr.Values)
	}
	return nt
}

func (ev *TableEnv) SetObservableName(idx int, name string) {
	if idx < 0 || idx >= len(ev.Names) {
		return
	}
	ev.Names[idx] = name
}

// ObsName returns the name of the observable at given index, or Obs<idx>
// for an unnamed one
func (ev *TableEnv) ObsName(idx int) string {
	if nm := ev.Names[idx]; nm != "" {
		return nm
	}
	return "Obs" + strconv.Itoa(idx)
}

// ObservableIdx returns the index of the observable with given name, -1 if none
func (ev *TableEnv) ObservableIdx(name string) int {
	for i, nm := range ev.Names {
		if nm == name {
			return i
		}
	}
	return -1
}

func (ev *TableEnv) InputState(idx int) float32 {
	if idx < 0 || idx >= len(ev.Inputs.Values) {
		return 0
	}
	v := ev.Inputs.Values[idx]
	if ev.InRange.Max > ev.InRange.Min {
		v = ev.InRange.ClipVal(v)
	}
	return v
}

// SetInput sets the input value at given index
func (ev *TableEnv) SetInput(idx int, val float32) {
	if idx < 0 || idx >= len(ev.Inputs.Values) {
		return
	}
	ev.Inputs.Values[idx] = val
}

// SetInputByName sets the input value of the named observable.
// Returns false if there is no such observable.
func (ev *TableEnv) SetInputByName(name string, val float32) bool {
	idx := ev.ObservableIdx(name)
	if idx < 0 {
		return false
	}
	ev.SetInput(idx, val)
	return true
}

func (ev *TableEnv) HandleOutput(idx int, val float32) {
	if idx < 0 || idx >= len(ev.Outputs.Values) {
		return
	}
	ev.Outputs.Values[idx] = val
}

// Output returns the latest output value at given index
func (ev *TableEnv) Output(idx int) float32 {
	if idx < 0 || idx >= len(ev.Outputs.Values) {
		return 0
	}
	return ev.Outputs.Values[idx]
}

// OutputByName returns the latest output value of the named observable
func (ev *TableEnv) OutputByName(name string) (float32, bool) {
	idx := ev.ObservableIdx(name)
	if idx < 0 {
		return 0, false
	}
	return ev.Outputs.Values[idx], true
}

// StepDone adds a row to the log with the current outputs.
// The log is reconfigured, and its rows cleared, if the observables changed.
func (ev *TableEnv) StepDone(tm float32) {
	if !ev.LogOn {
		return
	}
	if !sameNames(ev.logNames, ev.Names) {
		ev.ConfigLog()
	}
	dt := ev.Log
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellFloatIdx(0, row, float64(tm))
	for i := range ev.Names {
		dt.SetCellFloatIdx(i+1, row, float64(ev.Outputs.Values[i]))
	}
}

// ConfigLog configures the log table columns from the current observable names
func (ev *TableEnv) ConfigLog() {
	dt := ev.Log
	if dt == nil {
		dt = &etable.Table{}
		ev.Log = dt
	}
	dt.SetMetaData("name", ev.Nm+"Log")
	dt.SetMetaData("desc", "Record of observable outputs per step")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(ev.LogPrec))

	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
	}
	for i := range ev.Names {
		sch = append(sch, etable.Column{ev.ObsName(i), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
	ev.logNames = append(ev.logNames[:0], ev.Names...)
}

// WriteCSV writes the step log as tab-separated values with headers
func (ev *TableEnv) WriteCSV(w io.Writer) error {
	if ev.Log == nil || ev.Log.NumCols() == 0 {
		ev.ConfigLog()
	}
	return ev.Log.WriteCSV(w, etable.Tab, true)
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
