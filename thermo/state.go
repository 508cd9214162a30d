// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wvisser1958/GSPy/simerr"
)

// TrefK is the reference temperature, in Kelvin, the NASA-7 enthalpy and
// entropy polynomials are anchored to.
const TrefK = 298.15

// Pref is the reference pressure, in Pa, entropy is tabulated against.
const Pref = 101325.0

// State carries a mass flow together with a thermodynamic point: pressure,
// temperature and species mass fractions. It is the unit of exchange between
// every gas-path component (GasIn/GasOut in GSPy's terms).
type State struct {
	MassFlow float64         // kg/s
	P        float64         // Pa
	T        float64         // K
	Y        [NumSpecies]float64
}

// NewState builds a State from mass flow, temperature, pressure and
// composition, normalizing Y to sum to one.
func NewState(massFlow, T, P float64, Y [NumSpecies]float64) *State {
	s := &State{MassFlow: massFlow, T: T, P: P, Y: Y}
	s.normalize()
	return s
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := *s
	return &c
}

func (s *State) normalize() {
	sum := 0.0
	for _, y := range s.Y {
		sum += y
	}
	if sum <= 0 {
		return
	}
	for i := range s.Y {
		s.Y[i] /= sum
	}
}

// MeanMolarMass returns the mixture's mean molar mass in kg/kmol.
func (s *State) MeanMolarMass() float64 {
	invM := 0.0
	for sp := Species(0); sp < NumSpecies; sp++ {
		if s.Y[sp] == 0 {
			continue
		}
		invM += s.Y[sp] / molarMass[sp]
	}
	if invM == 0 {
		return 0
	}
	return 1 / invM
}

// R returns the mixture's specific gas constant, J/(kg.K).
func (s *State) R() float64 {
	m := s.MeanMolarMass()
	if m == 0 {
		return 0
	}
	return RUniversal / m
}

// Cp returns the mixture's specific heat at constant pressure, J/(kg.K).
func (s *State) Cp() float64 {
	return s.cpAt(s.T)
}

func (s *State) cpAt(T float64) float64 {
	cp := 0.0
	for sp := Species(0); sp < NumSpecies; sp++ {
		if s.Y[sp] == 0 {
			continue
		}
		cp += s.Y[sp] * cpMolar(sp, T) / molarMass[sp]
	}
	return cp
}

// Cv returns the mixture's specific heat at constant volume, J/(kg.K).
func (s *State) Cv() float64 { return s.Cp() - s.R() }

// Gamma returns the mixture's ratio of specific heats at the current state.
func (s *State) Gamma() float64 {
	cp := s.Cp()
	cv := s.Cv()
	if cv == 0 {
		return 0
	}
	return cp / cv
}

// H returns the mixture's specific enthalpy, J/kg, at the current T.
func (s *State) H() float64 { return s.hAt(s.T) }

func (s *State) hAt(T float64) float64 {
	h := 0.0
	for sp := Species(0); sp < NumSpecies; sp++ {
		if s.Y[sp] == 0 {
			continue
		}
		h += s.Y[sp] * hMolar(sp, T) / molarMass[sp]
	}
	return h
}

// S returns the mixture's specific entropy, J/(kg.K), at the current T and P,
// including the ideal-mixing and pressure correction terms.
func (s *State) S() float64 { return s.sAt(s.T, s.P) }

func (s *State) sAt(T, P float64) float64 {
	acc := 0.0
	for sp := Species(0); sp < NumSpecies; sp++ {
		if s.Y[sp] == 0 {
			continue
		}
		Rsp := RUniversal / molarMass[sp]
		ssp := sMolar(sp, T)/molarMass[sp] - Rsp*math.Log(P/Pref)
		if s.Y[sp] > 0 {
			// ideal mixing entropy of this species' partial pressure
			ssp -= Rsp * math.Log(s.Y[sp])
		}
		acc += s.Y[sp] * ssp
	}
	return acc
}

// Rho returns mixture density, kg/m^3, from the ideal-gas law.
func (s *State) Rho() float64 {
	r := s.R()
	if r == 0 || s.T == 0 {
		return 0
	}
	return s.P / (r * s.T)
}

// A returns the local speed of sound, m/s.
func (s *State) A() float64 {
	g := s.Gamma()
	r := s.R()
	if g <= 0 || r <= 0 || s.T <= 0 {
		return 0
	}
	return math.Sqrt(g * r * s.T)
}

// SetTPY sets temperature, pressure and composition directly.
func (s *State) SetTPY(T, P float64, Y [NumSpecies]float64) {
	s.T, s.P, s.Y = T, P, Y
	s.normalize()
}

// SetHP solves for the temperature consistent with the given specific
// enthalpy at constant pressure and current composition, mirroring Cantera's
// `phase.HP = H, P` assignment used throughout the reference implementation.
func (s *State) SetHP(H, P float64) error {
	f := func(T float64) float64 { return s.hAt(T) - H }
	T, err := bracketAndSolve(f, math.Max(s.T, 250), 1e-6)
	if err != nil {
		return err
	}
	s.T, s.P = T, P
	return nil
}

// SetSP solves for the temperature consistent with the given specific
// entropy at constant pressure and current composition, mirroring Cantera's
// `phase.SP = S, P` assignment (used by isentropic compression/expansion).
func (s *State) SetSP(Sval, P float64) error {
	f := func(T float64) float64 { return s.sAt(T, P) - Sval }
	T, err := bracketAndSolve(f, math.Max(s.T, 250), 1e-6)
	if err != nil {
		return err
	}
	s.T, s.P = T, P
	return nil
}

// EquilMode selects which pair of properties Equilibrate holds fixed.
type EquilMode int

const (
	EquilHP EquilMode = iota
	EquilTP
)

// Equilibrate re-closes the thermodynamic state after a composition change
// (e.g. the combustor synthesizing products). The reference implementation
// calls Cantera's Gibbs-minimization equilibrate() here; this library tracks
// a fixed post-combustion product composition (no dissociation), so
// Equilibrate reduces to re-solving T from the already-conserved property at
// the now-fixed Y, which is exactly the closure GSPy's LHV-based combustion
// path relies on in practice (products are synthesized complete, not
// dissociated).
func (s *State) Equilibrate(mode EquilMode, H, Sv float64) error {
	switch mode {
	case EquilHP:
		return s.SetHP(H, s.P)
	case EquilTP:
		return s.SetSP(Sv, s.P)
	default:
		return simerr.New(simerr.KindConfig, "", "Equilibrate", "unknown mode %d", mode)
	}
}

// Mix combines s and other at the given outlet pressure, conserving mass,
// species mass and total enthalpy (an adiabatic mixer), and solves for the
// resulting temperature. This is the building block for the combustor's
// fuel/air mix, bleed reinjection and cooling-flow injection.
func Mix(a, b *State, outP float64) (*State, error) {
	wa, wb := a.MassFlow, b.MassFlow
	wtot := wa + wb
	if wtot <= 0 {
		return nil, simerr.New(simerr.KindEosConvergence, "", "Mix", "zero total mass flow")
	}
	var Y [NumSpecies]float64
	for sp := Species(0); sp < NumSpecies; sp++ {
		Y[sp] = (wa*a.Y[sp] + wb*b.Y[sp]) / wtot
	}
	Htot := (wa*a.H() + wb*b.H()) / wtot
	out := NewState(wtot, a.T, outP, Y)
	if err := out.SetHP(Htot, outP); err != nil {
		return nil, err
	}
	return out, nil
}

// MassFractionsEqualWithin reports whether two composition vectors agree
// within tol.
func MassFractionsEqualWithin(a, b [NumSpecies]float64, tol float64) bool {
	return floats.EqualApprox(a[:], b[:], tol)
}
