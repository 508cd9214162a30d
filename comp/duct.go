// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// Duct applies a pressure loss that scales with the square of corrected flow
// relative to its design value (a flow-squared friction-loss model), leaving
// temperature and composition unchanged. Mirrors GSPy's TDuct.
type Duct struct {
	GasPath
	PRdes float64

	wcdes, Wc, PR float64
}

// NewDuct constructs a Duct with the given design pressure ratio.
func NewDuct(name string, stationIn, stationOut sim.StationID, prdes float64) *Duct {
	d := &Duct{PRdes: prdes}
	d.CompName = name
	d.StationIn, d.StationOut = stationIn, stationOut
	return d
}

// Run applies the flow-squared pressure loss.
func (d *Duct) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(d.StationIn)
	d.Wc = gIn.MassFlow * thermo.FlowCorrectionFactor(gIn)
	if s.Mode == sim.DP {
		d.wcdes = d.Wc
	}
	ratio := d.Wc / d.wcdes
	dprel := (1 - d.PRdes) * ratio * ratio
	d.PR = 1 - dprel

	gOut := gIn.Clone()
	gOut.P = gIn.P * d.PR
	s.Stations.Set(d.StationOut, gOut)
	d.W = gOut.MassFlow
	return nil
}

// AddOutput reports the duct's corrected flow and realized pressure ratio.
func (d *Duct) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	d.GasPath.AddOutput(s, row)
	row.Set("Wc_"+d.CompName, d.Wc)
	row.Set("PR_"+d.CompName, d.PR)
}
