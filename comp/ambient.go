// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// isaAltitudes, isaTemps and isaPress form a coarse 1976 US Standard Atmosphere table (altitude m, temperature
// K, pressure Pa) up to 20 km, interpolated with gonum/interp the way the
// reference implementation's aerocalc dependency looks up std_atm values.
var isaAltitudes = []float64{0, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000, 11000, 12000, 14000, 16000, 18000, 20000}
var isaTemps = []float64{288.15, 281.65, 275.15, 268.66, 262.17, 255.68, 249.19, 242.70, 236.22, 229.73, 223.25, 216.77, 216.65, 216.65, 216.65, 216.65, 216.65}
var isaPress = []float64{101325, 89876, 79501, 70121, 61660, 54048, 47217, 41105, 35651, 30800, 26500, 22700, 19399, 14170, 10353, 7565, 5529}

func isaTemperature(alt float64) float64 {
	var pc interp.PiecewiseLinear
	_ = pc.Fit(isaAltitudes, isaTemps)
	return pc.Predict(clampAlt(alt))
}

func isaPressure(alt float64) float64 {
	var pc interp.PiecewiseLinear
	_ = pc.Fit(isaAltitudes, isaPress)
	return pc.Predict(clampAlt(alt))
}

func clampAlt(alt float64) float64 {
	if alt < isaAltitudes[0] {
		return isaAltitudes[0]
	}
	if alt > isaAltitudes[len(isaAltitudes)-1] {
		return isaAltitudes[len(isaAltitudes)-1]
	}
	return alt
}

// Ambient synthesizes station conditions from an altitude/Mach flight
// condition (or from explicit static temperature/pressure overrides),
// applying ram recovery to total conditions. Mirrors GSPy's TAmbient.
type Ambient struct {
	GasPath
	StationNr sim.StationID

	Altitude float64 // m
	Mach     float64
	DTs      float64 // deviation from ISA, K; ignored when Tsa is set (matches the source's interaction, not "fixed")
	Psa      *float64
	Tsa      *float64

	Tsa_, Psa_, Tta, Pta, V float64
}

// NewAmbient builds an Ambient component for the given flight condition.
func NewAmbient(name string, stationNr sim.StationID, altitude, mach, dTs float64, psa, tsa *float64) *Ambient {
	a := &Ambient{StationNr: stationNr, Altitude: altitude, Mach: mach, DTs: dTs, Psa: psa, Tsa: tsa}
	a.CompName = name
	return a
}

// Run resolves static/total conditions and writes the ambient ThermoState to
// its station.
func (a *Ambient) Run(s *sim.Simulation) error {
	if a.Tsa != nil {
		a.Tsa_ = *a.Tsa
	} else {
		a.Tsa_ = isaTemperature(a.Altitude) + a.DTs
	}
	if a.Psa != nil {
		a.Psa_ = *a.Psa
	} else {
		a.Psa_ = isaPressure(a.Altitude)
	}
	a.Tta = a.Tsa_ * (1 + 0.2*a.Mach*a.Mach)
	a.Pta = a.Psa_ * math.Pow(a.Tta/a.Tsa_, 3.5)
	aSound := math.Sqrt(1.4 * 287.05 * a.Tsa_)
	a.V = a.Mach * aSound

	g := thermo.NewState(1.0, a.Tta, a.Pta, thermo.DryAirY)
	s.Stations.Set(a.StationNr, g)
	s.AmbientV = a.V
	s.AmbientPsa = a.Psa_
	return nil
}

// AddOutput reports the flight condition and resolved total/static state.
func (a *Ambient) AddOutput(_ *sim.Simulation, row *sim.OutputRow) {
	row.Set("Alt", a.Altitude)
	row.Set("Macha", a.Mach)
	row.Set("Tsa", a.Tsa_)
	row.Set("Psa", a.Psa_)
	row.Set("Tta", a.Tta)
	row.Set("Pta", a.Pta)
	row.Set("V", a.V)
}
