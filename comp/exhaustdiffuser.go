// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// ExhaustDiffuser is a divergent diffusing exhaust duct discharging to
// ambient static pressure, with a flow-squared pressure loss the same shape
// as Duct's. Since its exit pressure is pinned externally to ambient static
// pressure rather than derived from the loss model, it leaves a pressure
// residual for the solver instead of assigning pressure directly. Mirrors
// GSPy's TExhaustDiffuser.
type ExhaustDiffuser struct {
	GasPath
	StationThroat sim.StationID
	PRdes         float64

	wcdes, Wc, PR float64
	ierrorP       int
}

// NewExhaustDiffuser constructs an ExhaustDiffuser with the given design
// pressure-loss factor.
func NewExhaustDiffuser(name string, stationIn, stationThroat, stationOut sim.StationID, prdes float64) *ExhaustDiffuser {
	d := &ExhaustDiffuser{StationThroat: stationThroat, PRdes: prdes, ierrorP: -1}
	d.CompName = name
	d.StationIn, d.StationOut = stationIn, stationOut
	return d
}

// Run applies the flow-squared loss and leaves a residual tying the realized
// exit static pressure to ambient.
func (d *ExhaustDiffuser) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(d.StationIn)
	Pout := s.AmbientPsa
	d.Wc = gIn.MassFlow * thermo.FlowCorrectionFactor(gIn)

	if s.Mode == sim.DP {
		d.wcdes = d.Wc
	}
	ratio := d.Wc / d.wcdes
	dprel := (1 - d.PRdes) * ratio * ratio
	d.PR = 1 - dprel

	gThroat := thermo.NewState(gIn.MassFlow, gIn.T, Pout, gIn.Y)
	gOut := thermo.NewState(gIn.MassFlow, gThroat.T, Pout, gIn.Y)

	if s.Mode == sim.DP {
		d.ierrorP = s.NewErrorVar()
	} else {
		s.Errors[d.ierrorP] = (gIn.P*d.PR - Pout) / Pout
	}

	s.Stations.Set(d.StationThroat, gThroat)
	s.Stations.Set(d.StationOut, gOut)
	d.W = gOut.MassFlow
	return nil
}

// AddOutput reports corrected flow and realized pressure ratio.
func (d *ExhaustDiffuser) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	d.GasPath.AddOutput(s, row)
	row.Set("Wc_"+d.CompName, d.Wc)
	row.Set("PR_"+d.CompName, d.PR)
}
