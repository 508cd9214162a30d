// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"math"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/solve"
	"github.com/wvisser1958/GSPy/thermo"
	"github.com/wvisser1958/GSPy/turbomap"
)

// TurbineType selects whether a turbine absorbs exactly the power its shaft
// needs (GG, gas-generator/fan-drive turbine, solved for PR at DP) or expands
// through an externally fixed pressure ratio down to ambient, delivering
// whatever power results to its shaft (PT, free/power turbine).
type TurbineType int

const (
	TurbineGG TurbineType = iota
	TurbinePT
)

// Turbine is a single-map turbomachinery component that expands flow and
// delivers power to its shaft, optionally receiving CoolingFlows that are
// injected into the gas path downstream of the expansion. Each cooling flow
// contributes two power terms to this turbine's own shaft balance: the power
// absorbed pumping it up to rotor speed before it enters, and the power
// delivered by its own partial re-expansion through the turbine's remaining
// pressure head. Mirrors GSPy's TTurbine / CalcCoolingFlowEffects.
type Turbine struct {
	GasPath
	MapFile               string
	Ncmapdes, Betamapdes  float64
	ShaftNr               int
	Ndes, Etades          float64
	Etamechdes            float64
	Type                  TurbineType
	Polytropic            bool
	CoolingFlows          []*CoolingFlow

	// PRdesInput is the turbine's design pressure ratio for PT-type turbines,
	// normally derived upstream from the total pressure ratio to ambient
	// (GSPy's GetTotalPRdesUntilAmbient); unused for GG turbines, whose design
	// PR is solved for from the shaft power balance instead.
	PRdesInput float64

	Map *turbomap.Map

	N, Nc, Ncdes, Eta, PR, PRdes, Wc, Wdes, PW, PWdes float64
	WClEff                                            float64

	istateBeta, ierrorWc, ierrorShaftPW int
}

// NewTurbine constructs a Turbine reading its map from mapFile.
func NewTurbine(name, mapFile string, stationIn, stationOut sim.StationID, shaftNr int,
	ndes, etades, ncmapdes, betamapdes, etamechdes, prdesInput float64, typ TurbineType, coolingFlows []*CoolingFlow) *Turbine {
	t := &Turbine{
		MapFile: mapFile, Ncmapdes: ncmapdes, Betamapdes: betamapdes,
		ShaftNr: shaftNr, Ndes: ndes, Etades: etades, Etamechdes: etamechdes,
		Type: typ, CoolingFlows: coolingFlows, PRdesInput: prdesInput,
		istateBeta: -1, ierrorWc: -1, ierrorShaftPW: -1,
	}
	t.CompName = name
	t.StationIn, t.StationOut = stationIn, stationOut
	return t
}

// injectCoolingFlows runs every cooling flow feeding this turbine, applies
// its tangential-pumping and partial-re-expansion power terms, and mixes the
// resulting gas into gOut at gOut's current pressure. It returns the net
// shaft power delivered by the cooling flows (re-expansion power minus
// pumping power, mirrors CalcCoolingFlowEffects's PW_cl_exp - PW_cl_pump)
// and the combined extra mass flow that should count toward the
// inlet-continuity residual.
func (t *Turbine) injectCoolingFlows(s *sim.Simulation, gOut *thermo.State) (pwNet, wEff float64, err error) {
	ekinAtR1 := math.Pow(math.Pi*t.N/60, 2)
	for _, cf := range t.CoolingFlows {
		if err := cf.Run(s); err != nil {
			return 0, 0, err
		}
		injected := cf.GasInjected
		cf.PWPump, cf.PWExp = 0, 0

		if cf.Rexit > 0 {
			dHradialpump := ekinAtR1 * cf.Rexit * cf.Rexit
			cf.PWPump = dHradialpump * injected.MassFlow

			// isentropic compression from the 'radial pump' action: in the
			// rotating frame only half of dHradialpump shows up as a
			// pressure rise, the rest as kinetic energy carried into the
			// turbine's frame.
			dHforP := dHradialpump / 2
			cp, gamma := injected.Cp(), injected.Gamma()
			TRpump := (injected.T + dHforP/cp) / injected.T
			PRpump := math.Pow(TRpump, gamma/(gamma-1))

			pumped := injected.Clone()
			pumped.P = injected.P * PRpump
			if err := pumped.SetHP(injected.H()+dHradialpump, pumped.P); err != nil {
				return 0, 0, err
			}
			injected = pumped
		}

		dPexp := (injected.P - gOut.P) * cf.DPfraction
		if cf.Rexit > 0 && dPexp > 0 {
			PRexp := (gOut.P + dPexp) / gOut.P
			expanded := injected.Clone()
			pw, err := thermo.Expand(injected, expanded, PRexp, t.Eta, t.Polytropic)
			if err != nil {
				return 0, 0, err
			}
			cf.PWExp = pw
			injected = expanded
		}
		cf.GasInjected = injected

		mixed, err := thermo.Mix(gOut, injected, gOut.P)
		if err != nil {
			return 0, 0, err
		}
		*gOut = *mixed

		pwNet += cf.PWExp - cf.PWPump
		wEff += cf.WTurEffFraction * injected.MassFlow
	}
	return pwNet, wEff, nil
}

// Run evaluates the turbine at the current solver state.
func (t *Turbine) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(t.StationIn)
	shaftMode := sim.ShaftGG
	if t.Type == TurbinePT {
		shaftMode = sim.ShaftPT
	}
	shaft := s.GetOrCreateShaft(t.ShaftNr, shaftMode, t.Ndes)
	gOut := gIn.Clone()

	if s.Mode == sim.DP {
		// the turbine's own rotor speed and efficiency are needed by
		// injectCoolingFlows (tangential pumping, re-expansion) before the
		// rest of the DP bookkeeping below derives them redundantly.
		t.N = t.Ndes
		t.Eta = t.Etades

		switch t.Type {
		case TurbineGG:
			t.PW = -shaft.PWSum / t.Etamechdes
			f := func(PR float64) float64 {
				gOutTry := gIn.Clone()
				pw, err := thermo.Expand(gIn, gOutTry, PR, t.Etades, t.Polytropic)
				if err != nil {
					return 1e9
				}
				pwCl := 0.0
				if len(t.CoolingFlows) > 0 {
					net, _, err := t.injectCoolingFlows(s, gOutTry)
					if err != nil {
						return 1e9
					}
					pwCl = net
				}
				return (pw + pwCl - t.PW) / t.PW
			}
			PR, err := solve.Scalar1D(f, 1.9, 1.1, 20, 1e-8)
			if err != nil {
				return err
			}
			t.PRdes, t.PR = PR, PR
			if _, err := thermo.Expand(gIn, gOut, PR, t.Etades, t.Polytropic); err != nil {
				return err
			}
			shaft.PWSum = 0
		case TurbinePT:
			t.PRdes = t.PRdesInput
			pw, err := thermo.Expand(gIn, gOut, t.PRdes, t.Etades, t.Polytropic)
			if err != nil {
				return err
			}
			t.PW = pw
		}

		wClEff := 0.0
		if len(t.CoolingFlows) > 0 {
			net, eff, err := t.injectCoolingFlows(s, gOut)
			if err != nil {
				return err
			}
			if t.Type == TurbinePT {
				t.PW += net
			}
			wClEff = eff
		}
		if t.Type == TurbinePT {
			shaft.AddPower(t.PW * t.Etamechdes)
		}
		t.WClEff = wClEff
		t.PWdes = t.PW
		t.Wdes = gIn.MassFlow
		t.Ncdes = t.Ndes / thermo.RotorspeedCorrectionFactor(gIn)
		t.Nc = t.Ncdes
		t.Wc = (t.Wdes + wClEff) * thermo.FlowCorrectionFactor(gIn)

		m, err := turbomap.LoadLegacyMap(t.MapFile, turbomap.Turbine)
		if err != nil {
			return err
		}
		t.Map = m
		if err := t.Map.SetScaling(t.Ncmapdes, t.Betamapdes, t.Ncdes, t.Wc, t.PRdes, t.Etades); err != nil {
			return err
		}

		t.istateBeta = s.NewStateVar(1)
		t.ierrorWc = s.NewErrorVar()
		if t.Type == TurbineGG {
			t.ierrorShaftPW = s.NewErrorVar()
		}
	} else {
		if t.Type == TurbineGG {
			t.N = s.States[shaft.IState] * t.Ndes
		}
		t.Nc = t.N / thermo.RotorspeedCorrectionFactor(gIn)

		Wc, PR, Eta, err := t.Map.GetScaledMapPerformance(t.Nc, s.States[t.istateBeta])
		if err != nil {
			return err
		}
		t.Wc, t.PR, t.Eta = Wc, PR, Eta
		W := Wc / thermo.FlowCorrectionFactor(gIn)

		pw, err := thermo.Expand(gIn, gOut, PR, Eta, t.Polytropic)
		if err != nil {
			return err
		}
		t.PW = pw

		wClEff := 0.0
		if len(t.CoolingFlows) > 0 {
			net, eff, err := t.injectCoolingFlows(s, gOut)
			if err != nil {
				return err
			}
			t.PW += net
			wClEff = eff
		}
		t.WClEff = wClEff

		s.Errors[t.ierrorWc] = (W - gIn.MassFlow - wClEff) / t.Wdes
		shaft.AddPower(t.PW * t.Etamechdes)
		if t.Type == TurbineGG {
			s.Errors[t.ierrorShaftPW] = shaft.PWSum / t.PWdes
		}
	}

	s.Stations.Set(t.StationOut, gOut)
	t.W = gOut.MassFlow
	return nil
}

// AddOutput reports speed, map operating point, efficiency and power.
func (t *Turbine) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	t.GasPath.AddOutput(s, row)
	row.Set("N_"+t.CompName, t.N)
	row.Set("Nc_"+t.CompName, t.Nc)
	row.Set("PR_"+t.CompName, t.PR)
	row.Set("Wc_"+t.CompName, t.Wc)
	row.Set("Eta_is_"+t.CompName, t.Eta)
	row.Set("PW_"+t.CompName, t.PW)
}
