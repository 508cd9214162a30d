// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/wvisser1958/GSPy/simerr"
)

// Compress drives gOut to the state reached by compressing gIn through
// pressure ratio PR at isentropic (or, when polytropic is true, polytropic)
// efficiency eta, and returns the shaft power absorbed, Watts (positive =
// power taken from the shaft). gOut keeps gIn's mass flow and composition;
// only T and P change. Mirrors GSPy's fu.Compression helper shared by every
// compressor/fan map evaluation.
func Compress(gIn, gOut *State, PR, eta float64, polytropic bool) (float64, error) {
	if PR <= 0 || eta <= 0 {
		return 0, simerr.New(simerr.KindEosConvergence, "", "Compress", "invalid PR=%g eta=%g", PR, eta)
	}
	Pout := gIn.P * PR
	gOut.MassFlow, gOut.Y = gIn.MassFlow, gIn.Y

	var Tactual float64
	if polytropic {
		gamma := gIn.Gamma()
		n := (gamma - 1) / (gamma * eta)
		Tactual = gIn.T * math.Pow(PR, n)
		gOut.SetTPY(Tactual, Pout, gIn.Y)
	} else {
		ideal := gIn.Clone()
		Sin := gIn.S()
		if err := ideal.SetSP(Sin, Pout); err != nil {
			return 0, err
		}
		hIn, hIdeal := gIn.H(), ideal.H()
		hActual := hIn + (hIdeal-hIn)/eta
		gOut.T, gOut.P = gIn.T, Pout
		if err := gOut.SetHP(hActual, Pout); err != nil {
			return 0, err
		}
	}
	PW := gIn.MassFlow * (gOut.H() - gIn.H())
	return PW, nil
}

// Expand drives gOut to the state reached by expanding gIn through pressure
// ratio PR (>1, inlet/outlet) at isentropic (or polytropic) efficiency eta,
// and returns the shaft power delivered, Watts (positive = power delivered to
// the shaft). Mirrors GSPy's fu.Expansion helper used by every turbine map
// evaluation.
func Expand(gIn, gOut *State, PR, eta float64, polytropic bool) (float64, error) {
	if PR <= 0 || eta <= 0 {
		return 0, simerr.New(simerr.KindEosConvergence, "", "Expand", "invalid PR=%g eta=%g", PR, eta)
	}
	Pout := gIn.P / PR
	gOut.MassFlow, gOut.Y = gIn.MassFlow, gIn.Y

	var Tactual float64
	if polytropic {
		gamma := gIn.Gamma()
		n := eta * (gamma - 1) / gamma
		Tactual = gIn.T * math.Pow(1/PR, n)
		gOut.SetTPY(Tactual, Pout, gIn.Y)
	} else {
		ideal := gIn.Clone()
		Sin := gIn.S()
		if err := ideal.SetSP(Sin, Pout); err != nil {
			return 0, err
		}
		hIn, hIdeal := gIn.H(), ideal.H()
		hActual := hIn - eta*(hIn-hIdeal)
		gOut.T, gOut.P = gIn.T, Pout
		if err := gOut.SetHP(hActual, Pout); err != nil {
			return 0, err
		}
	}
	PW := gIn.MassFlow * (gIn.H() - gOut.H())
	return PW, nil
}

// ExitVelocity computes the nozzle exit velocity, m/s, and static exit
// temperature, K, for gas g expanding isentropically (then losses folded into
// eta) from its current total state through pressure ratio PR (Pin/Pexit),
// mirroring GSPy's fu.calculate_exit_velocity.
func ExitVelocity(g *State, PR, eta float64) (V, Texit float64, err error) {
	if PR <= 0 {
		return 0, 0, simerr.New(simerr.KindEosConvergence, "", "ExitVelocity", "invalid PR=%g", PR)
	}
	Pexit := g.P / PR
	ideal := g.Clone()
	if err := ideal.SetSP(g.S(), Pexit); err != nil {
		return 0, 0, err
	}
	dhIdeal := g.H() - ideal.H()
	dhActual := eta * dhIdeal
	if dhActual < 0 {
		dhActual = 0
	}
	V = math.Sqrt(2 * dhActual)
	Texit = g.T - dhActual/g.Cp()
	return V, Texit, nil
}

// ChokedPressureRatio returns the pressure ratio (Pin/Pexit) at which the
// nozzle throat reaches Mach 1 for the current gamma, the classical
// gamma-only choking criterion GSPy's calculate_expansion_to_A relies on
// before searching for a sub-critical throat solution.
func ChokedPressureRatio(g *State) float64 {
	gamma := g.Gamma()
	if gamma <= 1 {
		return 1
	}
	return math.Pow((gamma+1)/2, gamma/(gamma-1))
}
