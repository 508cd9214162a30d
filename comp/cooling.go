// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// CoolingFlow bleeds a fraction of flow from a compressor station and
// reinjects it into a turbine's gas path. Beyond mass and enthalpy
// bookkeeping, it carries two power effects the host turbine folds into its
// own shaft power balance: the cooling flow is tangentially "pumped" up to
// the turbine rotor's speed before it enters (absorbing shaft power and
// raising the flow's own pressure/enthalpy), and it then re-expands through
// a fraction of the turbine's remaining pressure head before mixing in
// (delivering shaft power). Mirrors GSPy's coolingflow.py plus
// turbine.py's CalcCoolingFlowEffects.
type CoolingFlow struct {
	GasPath
	StationBleed sim.StationID

	WFraction       float64 // fraction of bleed station's mass flow diverted
	WTurEffFraction float64 // fraction of cooling mass flow counted as doing turbine work

	// Rexit is the radius, meters, at which this flow re-enters the turbine
	// disk; <= 0 disables the tangential-pumping effect entirely (the flow
	// is then injected at the bleed station's own state, unchanged).
	Rexit float64
	// DPfraction is the fraction of the turbine's remaining pressure head
	// (GasOut.P up to this flow's own, post-pumping pressure) the flow
	// re-expands through before mixing in.
	DPfraction float64

	GasInjected *thermo.State // bled state before pumping/re-expansion
	PWPump      float64       // shaft power absorbed pumping this flow up to rotor speed
	PWExp       float64       // shaft power delivered by this flow's own partial re-expansion
}

// NewCoolingFlow constructs a CoolingFlow bleeding wFraction of StationBleed's
// flow, of which wTurEffFraction behaves as working fluid in its host
// turbine's expansion. rexit <= 0 disables the pumping/re-expansion power
// effects, leaving only mass/enthalpy mixing.
func NewCoolingFlow(name string, stationBleed sim.StationID, wFraction, wTurEffFraction, rexit, dPfraction float64) *CoolingFlow {
	c := &CoolingFlow{
		StationBleed: stationBleed, WFraction: wFraction, WTurEffFraction: wTurEffFraction,
		Rexit: rexit, DPfraction: dPfraction,
	}
	c.CompName = name
	return c
}

// Run computes the injected cooling-flow gas state before any pumping or
// re-expansion: the bleed station's temperature and composition, at the bled
// mass flow. The host turbine's injectCoolingFlows applies the rotor-speed
// dependent power effects on top of this.
func (c *CoolingFlow) Run(s *sim.Simulation) error {
	gBleed := s.Stations.Get(c.StationBleed)
	g := gBleed.Clone()
	g.MassFlow = gBleed.MassFlow * c.WFraction
	c.GasInjected = g
	c.W = g.MassFlow
	return nil
}

// AddOutput reports the cooling flow's bled mass flow and its two power
// effects on the host turbine's shaft balance.
func (c *CoolingFlow) AddOutput(_ *sim.Simulation, row *sim.OutputRow) {
	row.Set("W_"+c.CompName, c.W)
	row.Set("PWpump_"+c.CompName, c.PWPump)
	row.Set("PWexp_"+c.CompName, c.PWExp)
}
