// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"github.com/wvisser1958/GSPy/sim"
)

// Component is the subset of comp.Component's behavior the engine drives,
// declared here rather than imported to avoid a solve<->comp import cycle
// (comp already imports solve for its 1-D root finds). Any concrete
// component type in package comp satisfies this interface with no adapter,
// Go interface satisfaction being purely structural.
type Component interface {
	Name() string
	Run(s *sim.Simulation) error
	PostRun(s *sim.Simulation) error
	AddOutput(s *sim.Simulation, row *sim.OutputRow)
}

// Engine walks an ordered component graph against a Simulation, mirroring
// GSPy's system.py Run_DP_simulation/Run_OD_simulation: the design point is
// one direct pass (every component solves its own local unknowns), while
// each off-design point is driven to convergence by the matrix-free
// Newton-Krylov solver.
type Engine struct {
	Sim        *sim.Simulation
	Components []Component
	NK         *NewtonKrylov
}

// NewEngine returns an Engine over the given component graph, in the order
// they should run each pass (source to sink along the gas path).
func NewEngine(s *sim.Simulation, components []Component) *Engine {
	return &Engine{Sim: s, Components: components, NK: NewNewtonKrylov()}
}

// runOnce evaluates every component's Run in order, refreshing Scratch as it
// goes so a downstream Control/AdaptiveModel can read an upstream
// component's just-computed output within the same pass.
func (e *Engine) runOnce() error {
	s := e.Sim
	s.ResetShaftPower()
	s.Scratch = sim.NewOutputRow()
	for _, c := range e.Components {
		if err := c.Run(s); err != nil {
			return err
		}
		c.AddOutput(s, s.Scratch)
	}
	return nil
}

// postRunOnce evaluates every component's PostRun in order: at DP this
// registers each control loop's extra state/error slots; at OD this fills in
// their residuals against the just-completed Run pass.
func (e *Engine) postRunOnce() error {
	for _, c := range e.Components {
		if err := c.PostRun(e.Sim); err != nil {
			return err
		}
	}
	return nil
}

// residual is the off-design iteration body Newton-Krylov drives to zero:
// install the trial state vector, run the whole graph, evaluate every
// control-loop residual, and return the resulting error vector. Mirrors one
// call to GSPy's Run_OD_iteration.
func (e *Engine) residual(states []float64) ([]float64, error) {
	copy(e.Sim.States, states)
	if err := e.runOnce(); err != nil {
		return nil, err
	}
	if err := e.postRunOnce(); err != nil {
		return nil, err
	}
	return append([]float64(nil), e.Sim.Errors...), nil
}

// RunDP evaluates the design point once and appends its row to the output
// collector. No outer iteration is needed: every component resolves its own
// design unknowns directly (root-finds internal to Combustor/ExhaustNozzle/
// Turbine), and PostRun then registers the state/error slots every
// off-design control loop will iterate.
func (e *Engine) RunDP() (*sim.OutputRow, error) {
	s := e.Sim
	s.Mode = sim.DP
	s.Point = 0

	if err := e.runOnce(); err != nil {
		return nil, err
	}
	if err := e.postRunOnce(); err != nil {
		return nil, err
	}

	row := s.Output.NewRow("DP", 0)
	for _, c := range e.Components {
		c.AddOutput(s, row)
	}
	return row, nil
}

// RunOD solves one off-design point, warm-starting the state vector from
// wherever it last converged (the DP registration defaults for the first
// point, the previous point's converged states thereafter), and appends the
// converged row to the output collector.
func (e *Engine) RunOD(point int) (*sim.OutputRow, error) {
	s := e.Sim
	s.Mode = sim.OD
	s.Point = point

	x0 := append([]float64(nil), s.States...)
	xConverged, err := e.NK.Solve(x0, e.residual)
	if err != nil {
		return nil, err
	}
	copy(s.States, xConverged)
	if err := e.runOnce(); err != nil {
		return nil, err
	}
	if err := e.postRunOnce(); err != nil {
		return nil, err
	}

	row := s.Output.NewRow("OD", point)
	for _, c := range e.Components {
		c.AddOutput(s, row)
	}
	return row, nil
}
