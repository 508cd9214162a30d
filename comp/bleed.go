// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// BleedFlow extracts a fixed fraction of a station's mass flow, isentropically
// re-compresses it by a small fractional pressure rise (representing the
// radial pumping the bled air undergoes travelling out to a rotor disk
// before reinjection by a CoolingFlow), and charges the corresponding power
// to a shaft, leaving the reduced flow to continue downstream.
type BleedFlow struct {
	GasPath
	ShaftNr          int
	BleedFractionDes float64
	BleedFraction    float64
	DPfactor         float64 // fractional pressure rise applied to the bled stream

	BledOut *thermo.State
	PW      float64
}

// NewBleedFlow constructs a BleedFlow extracting bleedFractionDes of
// StationIn's flow on shaft shaftNr.
func NewBleedFlow(name string, stationIn, stationOut sim.StationID, shaftNr int, bleedFractionDes, dPfactor float64) *BleedFlow {
	b := &BleedFlow{ShaftNr: shaftNr, BleedFractionDes: bleedFractionDes, BleedFraction: bleedFractionDes, DPfactor: dPfactor}
	b.CompName = name
	b.StationIn, b.StationOut = stationIn, stationOut
	return b
}

// Run extracts and re-pressurizes the bled fraction, and passes the rest on.
func (b *BleedFlow) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(b.StationIn)

	bledMass := gIn.MassFlow * b.BleedFraction
	bledIn := gIn.Clone()
	bledIn.MassFlow = bledMass
	bledOut := bledIn.Clone()
	PW, err := thermo.Compress(bledIn, bledOut, 1+b.DPfactor, 1.0, false)
	if err != nil {
		return err
	}
	b.BledOut, b.PW = bledOut, PW

	if shaft := s.ShaftByNr(b.ShaftNr); shaft != nil {
		shaft.AddPower(-PW)
	}

	gOut := gIn.Clone()
	gOut.MassFlow = gIn.MassFlow - bledMass

	s.Stations.Set(b.StationOut, gOut)
	b.W = gOut.MassFlow
	return nil
}

// AddOutput reports bled mass flow and its re-pressurization power.
func (b *BleedFlow) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	b.GasPath.AddOutput(s, row)
	row.Set("Wbleed_"+b.CompName, b.BledOut.MassFlow)
	row.Set("PW_"+b.CompName, b.PW)
}
