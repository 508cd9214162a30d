// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_air01(tst *testing.T) {

	chk.PrintTitle("air01: dry air state properties")

	air := NewState(1.0, 288.15, 101325, DryAirY)
	chk.Float64(tst, "R", 1e-1, air.R(), 287.0)
	chk.Float64(tst, "gamma", 1e-2, air.Gamma(), 1.4)
	if air.Rho() <= 0 {
		tst.Errorf("density should be positive, got %g", air.Rho())
	}
}

func Test_hp01(tst *testing.T) {

	chk.PrintTitle("hp01: SetHP round-trips the enthalpy it was given")

	air := NewState(1.0, 288.15, 101325, DryAirY)
	Href := air.H()
	air.T = 600 // perturb away from the solution
	if err := air.SetHP(Href, 101325); err != nil {
		tst.Fatalf("SetHP failed: %v", err)
	}
	chk.Float64(tst, "T", 1e-2, air.T, 288.15)
}

func Test_compress01(tst *testing.T) {

	chk.PrintTitle("compress01: isentropic compression raises T and conserves mass/Y")

	gIn := NewState(10.0, 288.15, 101325, DryAirY)
	gOut := NewState(10.0, 288.15, 101325, DryAirY)
	PW, err := Compress(gIn, gOut, 4.0, 0.85, false)
	if err != nil {
		tst.Fatalf("Compress failed: %v", err)
	}
	if PW <= 0 {
		tst.Errorf("compression should absorb positive power, got %g", PW)
	}
	if gOut.T <= gIn.T {
		tst.Errorf("outlet T should exceed inlet T, got Tin=%g Tout=%g", gIn.T, gOut.T)
	}
	chk.Float64(tst, "mass flow conserved", 1e-9, gOut.MassFlow, gIn.MassFlow)
}

func Test_expand01(tst *testing.T) {

	chk.PrintTitle("expand01: isentropic expansion lowers T and delivers positive power")

	gIn := NewState(10.0, 1400, 400000, DryAirY)
	gOut := NewState(10.0, 1400, 400000, DryAirY)
	PW, err := Expand(gIn, gOut, 3.0, 0.88, false)
	if err != nil {
		tst.Fatalf("Expand failed: %v", err)
	}
	if PW <= 0 {
		tst.Errorf("expansion should deliver positive power, got %g", PW)
	}
	if gOut.T >= gIn.T {
		tst.Errorf("outlet T should be below inlet T, got Tin=%g Tout=%g", gIn.T, gOut.T)
	}
}

func Test_mix01(tst *testing.T) {

	chk.PrintTitle("mix01: Mix conserves total mass flow")

	a := NewState(5.0, 600, 300000, DryAirY)
	b := NewState(0.1, 900, 300000, [NumSpecies]float64{CO2: 0.2, H2O: 0.1, N2: 0.7})
	m, err := Mix(a, b, 300000)
	if err != nil {
		tst.Fatalf("Mix failed: %v", err)
	}
	chk.Float64(tst, "mass flow", 1e-9, m.MassFlow, a.MassFlow+b.MassFlow)
	if math.Abs(m.T-750) > 300 {
		tst.Errorf("mixed T out of plausible range: %g", m.T)
	}
}

func Test_chokedpr01(tst *testing.T) {

	chk.PrintTitle("chokedpr01: choked PR for 900 K air (gamma about 1.34) is within 0.05 of the classical gamma=1.4 value 1.893")

	g := NewState(1.0, 900, 300000, DryAirY)
	pr := ChokedPressureRatio(g)
	chk.Float64(tst, "PRcrit", 5e-2, pr, 1.893)
}
