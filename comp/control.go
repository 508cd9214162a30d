// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/simerr"
)

// Control supplies a single input value to whichever component references
// it (a combustor's fuel flow, say), unifying two modes in one type: an
// open-loop sweep, where the value is computed directly from the OD point
// index, and a closed-loop set-point, where the value is itself a solver
// state iterated until a named downstream output quantity matches a demanded
// schedule. Mirrors GSPy's TControl.
type Control struct {
	CompName string

	DPInputValue float64

	// ODStart/ODEnd/ODStep define the sweep in open-loop mode, or the demand
	// schedule on ODControlledParName in closed-loop mode.
	ODStart, ODEnd, ODStep float64

	// ODControlledParName, if non-empty, is the name of another component's
	// output value (as reported via AddOutput) that this control iterates
	// InputValue to match to the ODStart/ODEnd/ODStep schedule.
	ODControlledParName string

	InputValue      float64
	ControlParDemand float64
	dpControlParValue float64

	istateControl, ierrorControl int
}

// NewControl constructs a Control, validating the sweep direction/step the
// way GSPy's constructor does.
func NewControl(name string, dpInputValue, odStart, odEnd, odStep float64, odControlledParName string) (*Control, error) {
	if odStep == 0 || (odEnd-odStart)*odStep < 0 {
		return nil, simerr.New(simerr.KindConfig, name, "NewControl", "invalid control variable begin, end and step values")
	}
	return &Control{
		CompName: name, DPInputValue: dpInputValue,
		ODStart: odStart, ODEnd: odEnd, ODStep: odStep,
		ODControlledParName: odControlledParName,
		istateControl:       -1, ierrorControl: -1,
	}, nil
}

// PointCount returns the number of OD points this control's sweep spans.
func (c *Control) PointCount() int {
	n := (c.ODEnd-c.ODStart)/c.ODStep + 1
	if n < 0 {
		n = -n
	}
	return int(n + 0.5)
}

func (c *Control) odValueAt(point int) float64 {
	return c.ODStart + float64(point)*c.ODStep
}

// Name returns the control's configured name.
func (c *Control) Name() string { return c.CompName }

// Run resolves InputValue for the current mode/point.
func (c *Control) Run(s *sim.Simulation) error {
	if s.Mode == sim.DP {
		c.InputValue = c.DPInputValue
	} else if c.ODControlledParName == "" {
		c.InputValue = c.odValueAt(s.Point)
	} else {
		c.InputValue = c.DPInputValue * s.States[c.istateControl]
	}
	return nil
}

// PostRun evaluates the closed-loop residual against the current scratch
// output row, or registers the extra state/error pair at DP.
func (c *Control) PostRun(s *sim.Simulation) error {
	c.ControlParDemand = 0
	if c.ODControlledParName == "" {
		return nil
	}
	if s.Mode == sim.DP {
		c.istateControl = s.NewStateVar(1)
		c.ierrorControl = s.NewErrorVar()
		v, ok := s.Scratch.Get(c.ODControlledParName)
		if !ok {
			return simerr.New(simerr.KindConfig, c.CompName, "PostRun", "controlled parameter %q not found in output", c.ODControlledParName)
		}
		c.dpControlParValue = v
	} else {
		c.ControlParDemand = c.odValueAt(s.Point)
		v, ok := s.Scratch.Get(c.ODControlledParName)
		if !ok {
			return simerr.New(simerr.KindConfig, c.CompName, "PostRun", "controlled parameter %q not found in output", c.ODControlledParName)
		}
		norm := c.dpControlParValue
		if norm == 0 {
			norm = 1
		}
		s.Errors[c.ierrorControl] = (c.ControlParDemand - v) / norm
	}
	return nil
}

// AddOutput reports the control's demanded and resolved input values.
func (c *Control) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	row.Set("Control_input_"+c.CompName, c.ControlParDemand)
	row.Set("Control_output_"+c.CompName, c.InputValue)
}
