// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"errors"
	"fmt"

	"github.com/emer/cortex/integ"
)

var (
	// ErrInvalidConnection is returned when the kinds of two units do not
	// allow the requested connection. Neither unit is modified.
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrUnknownUnit is returned when a unit lookup by name or id fails
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrDuplicateRegistration is returned when registering a unit whose
	// name is already in use, or a unit that is already registered
	ErrDuplicateRegistration = errors.New("duplicate registration")

	// ErrNumericDivergence matches any *NumericDivergence with errors.Is
	ErrNumericDivergence = errors.New("numeric divergence")

	// ErrSolverNotFound is returned when binding an unknown integration method
	ErrSolverNotFound = integ.ErrSolverNotFound
)

// NumericDivergence reports a NaN or Inf value produced while advancing a unit.
// It is delivered to Network.OnDiverge rather than returned.
type NumericDivergence struct {
	Unit  int     `desc:"id of the unit that diverged"`
	Name  string  `desc:"name of the unit that diverged"`
	Time  float32 `desc:"network time at the start of the offending step"`
	Cycle int     `desc:"network cycle count of the offending step"`
	Var   int     `desc:"index of the first non-finite state variable, -1 if only the output diverged"`
	Value float32 `desc:"the divergent value: the state variable at Var, or the output"`
}

func (nd *NumericDivergence) Error() string {
	if nd.Var >= 0 {
		return fmt.Sprintf("numeric divergence in unit %v (%d) at time %v, cycle %d: state[%d] = %v", nd.Name, nd.Unit, nd.Time, nd.Cycle, nd.Var, nd.Value)
	}
	return fmt.Sprintf("numeric divergence in unit %v (%d) at time %v, cycle %d: output = %v", nd.Name, nd.Unit, nd.Time, nd.Cycle, nd.Value)
}

func (nd *NumericDivergence) Is(target error) bool {
	return target == ErrNumericDivergence
}

func invalidConn(send, recv Component, why string) error {
	return fmt.Errorf("%w: %v %v -> %v %v: %s", ErrInvalidConnection, send.Kind(), Label(send), recv.Kind(), Label(recv), why)
}
