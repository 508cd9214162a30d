// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
	"github.com/wvisser1958/GSPy/turbomap"
)

// Compressor is a single-map turbomachinery component: at DP it sizes the
// map's scaling factors to the host's design point and compresses by PRdes;
// at OD it reads corrected speed and map Beta from the solver state, looks up
// Wc/PR/Eta on the scaled map, and leaves a mass-flow-continuity residual for
// the solver to close. Mirrors GSPy's TCompressor/TTurboComponent pair.
type Compressor struct {
	GasPath
	MapFile                  string
	Ncmapdes, Betamapdes     float64
	ShaftNr                  int
	Ndes, Etades, PRdes      float64
	Polytropic                bool

	Map *turbomap.Map

	N, Nc, Ncdes, Eta, PR, Wc, Wdes, Wcdes, PW float64

	istateN, istateBeta, ierrorWc int
}

// NewCompressor constructs a Compressor reading its map from mapFile.
func NewCompressor(name, mapFile string, stationIn, stationOut sim.StationID, shaftNr int,
	ncmapdes, betamapdes, ndes, etades, prdes float64) *Compressor {
	c := &Compressor{
		MapFile: mapFile, Ncmapdes: ncmapdes, Betamapdes: betamapdes,
		ShaftNr: shaftNr, Ndes: ndes, Etades: etades, PRdes: prdes,
		istateN: -1, istateBeta: -1, ierrorWc: -1,
	}
	c.CompName = name
	c.StationIn, c.StationOut = stationIn, stationOut
	return c
}

// Run evaluates the compressor at the current solver state.
func (c *Compressor) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(c.StationIn)
	shaft := s.GetOrCreateShaft(c.ShaftNr, sim.ShaftGG, c.Ndes)
	gOut := gIn.Clone()

	if s.Mode == sim.DP {
		c.Ncdes = c.Ndes / thermo.RotorspeedCorrectionFactor(gIn)
		c.Nc = c.Ncdes
		c.N = c.Ndes
		c.Eta = c.Etades
		c.Wdes = gIn.MassFlow
		c.Wcdes = c.Wdes * thermo.FlowCorrectionFactor(gIn)

		m, err := turbomap.LoadLegacyMap(c.MapFile, turbomap.Compressor)
		if err != nil {
			return err
		}
		c.Map = m
		if err := c.Map.SetScaling(c.Ncmapdes, c.Betamapdes, c.Ncdes, c.Wcdes, c.PRdes, c.Etades); err != nil {
			return err
		}

		PW, err := thermo.Compress(gIn, gOut, c.PRdes, c.Etades, c.Polytropic)
		if err != nil {
			return err
		}
		c.PW, c.PR, c.Wc = PW, c.PRdes, c.Wcdes
		shaft.AddPower(-PW)

		c.istateN = s.NewStateVar(1)
		shaft.IState = c.istateN
		c.istateBeta = s.NewStateVar(1)
		c.ierrorWc = s.NewErrorVar()
	} else {
		c.N = s.States[c.istateN] * c.Ndes
		c.Nc = c.N / thermo.RotorspeedCorrectionFactor(gIn)
		betaState := s.States[c.istateBeta]

		Wc, PR, Eta, err := c.Map.GetScaledMapPerformance(c.Nc, betaState)
		if err != nil {
			return err
		}
		c.Wc, c.PR, c.Eta = Wc, PR, Eta
		W := Wc / thermo.FlowCorrectionFactor(gIn)

		PW, err := thermo.Compress(gIn, gOut, PR, Eta, c.Polytropic)
		if err != nil {
			return err
		}
		c.PW = PW
		shaft.AddPower(-PW)

		s.Errors[c.ierrorWc] = (W - gIn.MassFlow) / c.Wdes
		gOut.MassFlow = W
	}

	s.Stations.Set(c.StationOut, gOut)
	c.W = gOut.MassFlow
	return nil
}

// AddOutput reports speed, map operating point, efficiency and power.
func (c *Compressor) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	c.GasPath.AddOutput(s, row)
	row.Set("N_"+c.CompName, c.N)
	row.Set("Nc_"+c.CompName, c.Nc)
	row.Set("PR_"+c.CompName, c.PR)
	row.Set("Wc_"+c.CompName, c.Wc)
	row.Set("Eta_is_"+c.CompName, c.Eta)
	row.Set("PW_"+c.CompName, c.PW)
}
