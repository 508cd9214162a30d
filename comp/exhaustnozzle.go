// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/solve"
	"github.com/wvisser1958/GSPy/thermo"
)

// ExhaustNozzle is a convergent propelling nozzle: at DP it sizes a fixed
// throat area from the isentropic (CVdes-derated) exit velocity, clamping to
// Mach 1 if the full expansion to ambient static pressure would choke; at OD
// it holds that area fixed and solves for the throat static pressure that
// passes the inlet mass flow, again clamped at the choked limit. Mirrors
// GSPy's TExhaustNozzle.
type ExhaustNozzle struct {
	GasPath
	StationThroat sim.StationID
	CXdes, CVdes, CDdes float64

	PR, PRdes                 float64
	Athroat, AthroatDes       float64
	AthroatGeom               float64
	Pthroat, Tthroat, Vthroat float64
	Mthroat                   float64
	FG                        float64

	ierrorW int
}

// NewExhaustNozzle constructs an ExhaustNozzle discharging to ambient
// pressure, publishing a throat station for diagnostics.
func NewExhaustNozzle(name string, stationIn, stationThroat, stationOut sim.StationID, cxdes, cvdes, cddes float64) *ExhaustNozzle {
	n := &ExhaustNozzle{StationThroat: stationThroat, CXdes: cxdes, CVdes: cvdes, CDdes: cddes, ierrorW: -1}
	n.CompName = name
	n.StationIn, n.StationOut = stationIn, stationOut
	return n
}

// throatStateAt expands gIn isentropically to the given static pressure and
// returns exit velocity and static temperature for a velocity coefficient of
// 1; Run applies CVdes to the velocity afterwards.
func throatStateAt(gIn *thermo.State, Pthroat float64) (V, T float64, err error) {
	PR := gIn.P / Pthroat
	V, T, err = thermo.ExitVelocity(gIn, PR, 1.0)
	return
}

// Run evaluates the nozzle at the current gas path / ambient condition.
func (n *ExhaustNozzle) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(n.StationIn)
	Pout := s.AmbientPsa
	n.PR = gIn.P / Pout

	Vis, Tis, err := throatStateAt(gIn, Pout)
	if err != nil {
		return err
	}
	gThroatIdeal := thermo.NewState(gIn.MassFlow, Tis, Pout, gIn.Y)
	aSoundIdeal := gThroatIdeal.A()
	choked := aSoundIdeal > 0 && Vis > aSoundIdeal

	if s.Mode == sim.DP {
		n.PRdes = n.PR
		if choked {
			PRchoke := thermo.ChokedPressureRatio(gIn)
			n.Pthroat = gIn.P / PRchoke
			V, T, err := throatStateAt(gIn, n.Pthroat)
			if err != nil {
				return err
			}
			n.Vthroat, n.Tthroat, n.Mthroat = V, T, 1
		} else {
			n.Pthroat = Pout
			n.Vthroat, n.Tthroat = Vis, Tis
			n.Mthroat = Vis / aSoundIdeal
		}
		if n.Vthroat <= 0 {
			n.Vthroat = 0.001
		}
		gThroat := thermo.NewState(gIn.MassFlow, n.Tthroat, n.Pthroat, gIn.Y)
		n.AthroatDes = gIn.MassFlow / gThroat.Rho() / n.Vthroat
		n.Athroat = n.AthroatDes
		n.Vthroat *= n.CVdes
		n.ierrorW = s.NewErrorVar()
	} else {
		n.Athroat = n.AthroatDes
		if choked {
			PRchoke := thermo.ChokedPressureRatio(gIn)
			n.Pthroat = gIn.P / PRchoke
		} else {
			f := func(Pthroat float64) float64 {
				V, T, err := throatStateAt(gIn, Pthroat)
				if err != nil {
					return 0
				}
				g := thermo.NewState(gIn.MassFlow, T, Pthroat, gIn.Y)
				massflow := g.Rho() * V * n.Athroat
				return gIn.MassFlow - massflow
			}
			Pthroat, err := solve.Scalar1D(f, n.Pthroat, Pout*0.5, gIn.P, 1e-3)
			if err != nil {
				return err
			}
			n.Pthroat = Pthroat
		}
		V, T, err := throatStateAt(gIn, n.Pthroat)
		if err != nil {
			return err
		}
		g := thermo.NewState(gIn.MassFlow, T, n.Pthroat, gIn.Y)
		massflow := g.Rho() * V * n.Athroat
		n.Tthroat = T
		n.Mthroat = V / g.A()
		n.Vthroat = V * n.CVdes
		s.Errors[n.ierrorW] = (gIn.MassFlow - massflow) / gIn.MassFlow
	}

	gOut := thermo.NewState(gIn.MassFlow, n.Tthroat, Pout, gIn.Y)
	n.FG = n.CXdes * (gOut.MassFlow*n.Vthroat + n.Athroat*(n.Pthroat-Pout))
	s.Totals.FG += n.FG
	n.AthroatGeom = n.Athroat / n.CDdes

	gThroat := thermo.NewState(gIn.MassFlow, n.Tthroat, n.Pthroat, gIn.Y)
	s.Stations.Set(n.StationThroat, gThroat)
	s.Stations.Set(n.StationOut, gOut)
	n.W = gOut.MassFlow
	return nil
}

// AddOutput reports throat and exit conditions plus gross thrust.
func (n *ExhaustNozzle) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	n.GasPath.AddOutput(s, row)
	row.Set("Tthroat_"+n.CompName, n.Tthroat)
	row.Set("Pthroat_"+n.CompName, n.Pthroat)
	row.Set("Vthroat_"+n.CompName, n.Vthroat)
	row.Set("Mthroat_"+n.CompName, n.Mthroat)
	row.Set("Athroat_"+n.CompName, n.Athroat)
	row.Set("Athroat_geom_"+n.CompName, n.AthroatGeom)
	row.Set("FG_"+n.CompName, n.FG)
}
