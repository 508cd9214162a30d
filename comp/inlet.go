// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// Inlet carries the design mass flow into the engine from the Ambient
// station, applies a constant DP pressure recovery PRdes, and computes ram
// drag from the ambient flight velocity. Mirrors GSPy's TInlet; the OD
// corrected-flow state is solved by the shared mass-flow continuity
// equations the downstream component supplies (the solver drives the
// inlet's own istateWc toward the value consistent with the rest of the
// gas path, the same "more stable at altitude" trick the source comments on).
type Inlet struct {
	GasPath
	Wdes, PRdes float64

	wcdes, wc, PR float64
	istateWc      int
	RD            float64
}

// NewInlet constructs an Inlet between two stations with the given design
// mass flow and pressure recovery.
func NewInlet(name string, stationIn, stationOut sim.StationID, wdes, prdes float64) *Inlet {
	in := &Inlet{Wdes: wdes, PRdes: prdes, istateWc: -1}
	in.CompName = name
	in.StationIn, in.StationOut = stationIn, stationOut
	return in
}

// Run pulls the ambient/upstream station, sizes the flow at DP or reads it
// from the solver state at OD, and writes the recovered-pressure outlet.
func (in *Inlet) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(in.StationIn)

	if s.Mode == sim.DP {
		gIn.MassFlow = in.Wdes
		in.wcdes = gIn.MassFlow * thermo.FlowCorrectionFactor(gIn)
		in.wc = in.wcdes
		in.PR = in.PRdes
		in.istateWc = s.NewStateVar(1)
	} else {
		in.wc = s.States[in.istateWc] * in.wcdes
		gIn.MassFlow = in.wc / thermo.FlowCorrectionFactor(gIn)
		in.PR = in.PRdes
	}

	gOut := gIn.Clone()
	gOut.P = gIn.P * in.PR
	gOut.MassFlow = gIn.MassFlow
	s.Stations.Set(in.StationOut, gOut)
	in.W = gOut.MassFlow

	in.RD = gIn.MassFlow * s.AmbientV
	s.Totals.RD += in.RD
	return nil
}

// AddOutput reports corrected flow, recovery and ram drag.
func (in *Inlet) AddOutput(_ *sim.Simulation, row *sim.OutputRow) {
	row.Set("Wc_"+in.CompName, in.wc)
	row.Set("PR_"+in.CompName, in.PR)
	row.Set("RD_"+in.CompName, in.RD)
	row.Set("W_"+in.CompName, in.W)
}
