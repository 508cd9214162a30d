// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
	"github.com/wvisser1958/GSPy/turbomap"
)

// VGCompressor is a Compressor whose map is a family indexed by a
// variable-geometry angle (inlet guide vane or stator stagger, bleed valve
// position) instead of a single fixed map. The angle itself comes from a
// Control, the same way a Combustor's fuel flow does; at DP it holds the
// angle at its design value, at OD it reads the angle from the Control and
// interpolates between the two maps bracketing it. Mirrors GSPy's
// TTurboComponent's maps_by_angle / GetTurboMapPerformance pair as
// specialized by TCompressor.
type VGCompressor struct {
	GasPath
	MapFiles             map[float64]string
	DesignAngle          float64
	Ncmapdes, Betamapdes float64
	ShaftNr              int
	Ndes, Etades, PRdes  float64
	Polytropic           bool

	Maps *turbomap.VGMapSet

	N, Nc, Ncdes, Eta, PR, Wc, Wdes, Wcdes, PW, VGAngle float64

	istateN, istateBeta, ierrorWc int
}

// NewVGCompressor constructs a VGCompressor from a set of map files keyed by
// their variable-geometry angle. designAngle must match one of the keys.
func NewVGCompressor(name string, mapFiles map[float64]string, designAngle float64, stationIn, stationOut sim.StationID, shaftNr int,
	ncmapdes, betamapdes, ndes, etades, prdes float64) *VGCompressor {
	c := &VGCompressor{
		MapFiles: mapFiles, DesignAngle: designAngle, Ncmapdes: ncmapdes, Betamapdes: betamapdes,
		ShaftNr: shaftNr, Ndes: ndes, Etades: etades, PRdes: prdes,
		istateN: -1, istateBeta: -1, ierrorWc: -1,
	}
	c.CompName = name
	c.StationIn, c.StationOut = stationIn, stationOut
	return c
}

// Run evaluates the VG compressor at the current solver state.
func (c *VGCompressor) Run(s *sim.Simulation) error {
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
		c.VGAngle = c.DesignAngle

		maps, err := turbomap.NewVGMapSet(c.MapFiles, turbomap.Compressor, c.DesignAngle)
		if err != nil {
			return err
		}
		c.Maps = maps
		if err := c.Maps.SetScaling(c.Ncmapdes, c.Betamapdes, c.Ncdes, c.Wcdes, c.PRdes, c.Etades); err != nil {
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
		if c.Control != nil {
			c.VGAngle = c.Control.InputValue
		}

		Wc, PR, Eta, err := c.Maps.GetScaledMapPerformance(c.VGAngle, c.Nc, betaState)
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

// AddOutput reports speed, map operating point, efficiency, power and the
// variable-geometry angle driving the map interpolation.
func (c *VGCompressor) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	c.GasPath.AddOutput(s, row)
	row.Set("N_"+c.CompName, c.N)
	row.Set("Nc_"+c.CompName, c.Nc)
	row.Set("PR_"+c.CompName, c.PR)
	row.Set("Wc_"+c.CompName, c.Wc)
	row.Set("Eta_is_"+c.CompName, c.Eta)
	row.Set("PW_"+c.CompName, c.PW)
	row.Set("vg_angle_"+c.CompName, c.VGAngle)
}
