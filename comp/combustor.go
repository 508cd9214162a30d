// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/solve"
	"github.com/wvisser1958/GSPy/thermo"
)

// FuelSpecMode selects how a Combustor's fuel is characterized.
type FuelSpecMode int

const (
	// FuelByLHV synthesizes combustion products directly from a lower
	// heating value and a virtual CHyOz fuel molecule's H/C and O/C ratios,
	// the way GSPy's LHV/HCratio/OCratio branch does.
	FuelByLHV FuelSpecMode = iota
	// FuelByComposition mixes a fuel-species gas stream (Species Fuel, the
	// NASA-poly NC12H26 surrogate) into the inlet flow, the Go-native
	// analogue of GSPy's Cantera ct.Quantity fuel-stream mixing.
	FuelByComposition
)

// cAtomWeight, hAtomWeight and oAtomWeight are the atomic weights used to build a virtual CHyOz
// fuel molecule from H/C and O/C mole ratios, grounded on GSPy's f_global
// atom weight constants.
const (
	cAtomWeight = 12.011
	hAtomWeight = 1.008
	oAtomWeight = 15.999
)

// Combustor burns fuel into the gas path, either raising the flow to a
// design exit temperature (DP, Wf solved via a 1-D root find) or burning a
// controller-specified fuel flow (OD). Mirrors GSPy's TCombustor.
type Combustor struct {
	GasPath
	PRdes, Etades float64

	Mode FuelSpecMode

	// LHV-mode design inputs.
	LHVdes, HCratiodes, OCratiodes float64

	// Composition-mode design input: fuel stream temperature; if zero, the
	// fuel is assumed to enter at the inlet air temperature.
	Tfuel float64

	Wfdes, Wf float64
	Texitdes  float64 // if > 0, DP solves Wf for this exit temperature instead of using Wfdes directly
	Texit     float64
	PR        float64
}

// NewCombustorLHV constructs a Combustor that synthesizes combustion
// products from a virtual CHyOz fuel's heating value and atom ratios.
func NewCombustorLHV(name string, stationIn, stationOut sim.StationID, prdes, etades, wfdes, texitdes, lhvdes, hcratiodes, ocratiodes float64) *Combustor {
	c := &Combustor{
		PRdes: prdes, Etades: etades, Mode: FuelByLHV,
		LHVdes: lhvdes, HCratiodes: hcratiodes, OCratiodes: ocratiodes,
		Wfdes: wfdes, Wf: wfdes, Texitdes: texitdes,
	}
	c.CompName = name
	c.StationIn, c.StationOut = stationIn, stationOut
	return c
}

// NewCombustorComposition constructs a Combustor that mixes in a fuel-species
// stream rather than synthesizing products from an LHV.
func NewCombustorComposition(name string, stationIn, stationOut sim.StationID, prdes, etades, wfdes, texitdes, tfuel float64) *Combustor {
	c := &Combustor{
		PRdes: prdes, Etades: etades, Mode: FuelByComposition,
		Tfuel: tfuel, Wfdes: wfdes, Wf: wfdes, Texitdes: texitdes,
	}
	c.CompName = name
	c.StationIn, c.StationOut = stationIn, stationOut
	return c
}

// lhvProducts computes the product mass-fraction composition for complete
// combustion of the virtual CHyOz fuel of the given mass flow against the
// given air mass flow, plus the fuel's molar mass.
func (c *Combustor) lhvProducts(gIn *thermo.State, wf float64) ([thermo.NumSpecies]float64, float64) {
	fuelMolarMass := cAtomWeight + hAtomWeight*c.HCratiodes + oAtomWeight*c.OCratiodes
	moles := wf / fuelMolarMass

	var y [thermo.NumSpecies]float64
	for sp := range y {
		y[sp] = gIn.Y[sp] * gIn.MassFlow
	}
	y[thermo.CO2] += moles * thermo.MolarMass(thermo.CO2)
	y[thermo.H2O] += moles * thermo.MolarMass(thermo.H2O) * c.HCratiodes / 2
	o2Consumed := moles * (1 - c.OCratiodes/2 + c.HCratiodes/4) * thermo.MolarMass(thermo.O2)
	y[thermo.O2] -= o2Consumed

	total := gIn.MassFlow + wf
	for sp := range y {
		y[sp] /= total
	}
	return y, fuelMolarMass
}

// burn performs one evaluation of the end conditions for a trial Wf and
// returns the resulting exit gas state, mirroring GSPy's nested
// CalcEndConditions closure.
func (c *Combustor) burn(gIn *thermo.State, pOut, wf float64) (*thermo.State, error) {
	var gOut *thermo.State
	switch c.Mode {
	case FuelByLHV:
		y, _ := c.lhvProducts(gIn, wf)
		gOut = thermo.NewState(gIn.MassFlow+wf, thermo.TrefK, pOut, y)
		hProdRef := gOut.H()

		hAirInitial := gIn.H()
		hAirRef := thermo.NewState(gIn.MassFlow, thermo.TrefK, gIn.P, gIn.Y).H()
		hProdFinal := (wf*c.LHVdes*1000*c.Etades+gIn.MassFlow*(hAirInitial-hAirRef))/(gIn.MassFlow+wf) + hProdRef
		if err := gOut.SetHP(hProdFinal, pOut); err != nil {
			return nil, err
		}
	case FuelByComposition:
		// n-dodecane surrogate: H/C = 26/12, O/C = 0.
		const hcDodecane, ocDodecane = 26.0 / 12.0, 0.0
		tFuel := c.Tfuel
		if tFuel <= 0 {
			tFuel = gIn.T
		}
		var yFuel [thermo.NumSpecies]float64
		yFuel[thermo.Fuel] = 1
		fuel := thermo.NewState(wf, tFuel, pOut, yFuel)
		hReactants := (gIn.MassFlow*gIn.H() + wf*fuel.H()) / (gIn.MassFlow + wf)

		yProducts, _ := (&Combustor{HCratiodes: hcDodecane, OCratiodes: ocDodecane}).lhvProducts(gIn, wf)
		gOut = thermo.NewState(gIn.MassFlow+wf, gIn.T, pOut, yProducts)
		hReactionAtMixT := gOut.H() - hReactants
		hTarget := hReactants + (1-c.Etades)*hReactionAtMixT
		if err := gOut.SetHP(hTarget, pOut); err != nil {
			return nil, err
		}
	}
	return gOut, nil
}

// Run burns fuel and advances the gas path.
func (c *Combustor) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(c.StationIn)
	pOut := gIn.P * c.PRdes
	c.PR = c.PRdes

	if s.Mode == sim.DP {
		if c.Texitdes > 0 {
			f := func(wf float64) float64 {
				gOut, err := c.burn(gIn, pOut, wf)
				if err != nil {
					return 1e9
				}
				return gOut.T - c.Texitdes
			}
			wf, err := solve.Scalar1D(f, c.Wfdes, c.Wfdes*0.2, c.Wfdes*5, 1e-6)
			if err != nil {
				return err
			}
			c.Wf = wf
			c.Wfdes = wf
		} else {
			c.Wf = c.Wfdes
		}
	} else if c.Control != nil {
		c.Wf = c.Control.InputValue
		if c.Wf < 0 {
			c.Wf = 0
		}
	}

	gOut, err := c.burn(gIn, pOut, c.Wf)
	if err != nil {
		return err
	}
	c.Texit = gOut.T
	s.Totals.WF += c.Wf

	s.Stations.Set(c.StationOut, gOut)
	c.W = gOut.MassFlow
	return nil
}

// AddOutput reports fuel flow and exit temperature.
func (c *Combustor) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	c.GasPath.AddOutput(s, row)
	row.Set("Wf_"+c.CompName, c.Wf)
	row.Set("Texit_"+c.CompName, c.Texit)
}
