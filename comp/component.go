// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comp implements the gas-path component library: one file per
// component kind, each satisfying the shared Component interface. Grounded
// on gofem's ele/ package (Element interface, one file per element kind) and
// on GSPy's per-component modules under original_source/src/gspy/core.
package comp

import (
	"github.com/wvisser1958/GSPy/sim"
)

// Component is the shared contract every gas-path component implements: Run
// evaluates the component for the simulation's current state vector (filling
// in its outlet station and, for turbomachinery, its shaft's power
// accumulator); PostRun evaluates any control-loop residuals that depend on
// values only known after the whole graph has run once; AddOutput appends
// the component's named results to the current output row. Mirrors gofem's
// ele.Element interface (Run ~ element calc, PostRun ~ a second pass, output
// ~ element output collection) generalized from a FE residual assembly to a
// gas-path component graph.
type Component interface {
	Name() string
	Run(s *sim.Simulation) error
	PostRun(s *sim.Simulation) error
	AddOutput(s *sim.Simulation, row *sim.OutputRow)
}

// GasPath is the common state every flow-carrying component shares: its name,
// a handle to the controlling Control (nil if uncontrolled), and the input
// and output station numbers it reads/writes. Every concrete component
// embeds it, the way every gofem solid element embeds common cell/node
// bookkeeping. Mirrors GSPy's TGaspath.
type GasPath struct {
	CompName   string
	Control    *Control
	StationIn  sim.StationID
	StationOut sim.StationID
	W          float64 // last evaluated mass flow, kg/s
}

// Name returns the component's configured name.
func (g *GasPath) Name() string { return g.CompName }

// SetControl wires the Control this gas-path component reads its OD input
// from, used by scenario assembly once every Control has been constructed
// regardless of declaration order.
func (g *GasPath) SetControl(c *Control) { g.Control = c }

// PostRun is a no-op: no gas-path component has a post-run step of its own
// (Control and AdaptiveModel, which do not embed GasPath, define their own).
func (g *GasPath) PostRun(*sim.Simulation) error { return nil }

// AddOutput writes the mass flow (column W_<name>), common to every
// gas-path component's output row.
func (g *GasPath) AddOutput(_ *sim.Simulation, row *sim.OutputRow) {
	row.Set("W_"+g.CompName, g.W)
}
