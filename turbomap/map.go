// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbomap

import (
	"os"

	"gonum.org/v1/gonum/interp"

	"github.com/wvisser1958/GSPy/simerr"
)

// Kind distinguishes the turbine map's PR-reconstruction-from-limits grammar
// (and the compressor map's surge line) from the shared Nc/Beta/Wc/Eta core.
type Kind int

const (
	Compressor Kind = iota
	Turbine
)

// Map is a legacy Nc/Beta turbomachinery performance map: a grid of corrected
// mass flow, isentropic efficiency and pressure ratio indexed by corrected
// speed Nc and the auxiliary map coordinate Beta, bicubic-interpolated and
// scaled to the host component's design point. Mirrors GSPy's TTurboMap /
// TCompressorMap / TTurbineMap family.
type Map struct {
	Kind Kind

	NcValues   []float64
	BetaValues []float64
	Wc         [][]float64 // [nc][beta]
	Eta        [][]float64
	PR         [][]float64

	// Turbine-only: PR is reconstructed from per-Nc PRmin/PRmax and Beta.
	PRmin, PRmax []float64

	// Compressor-only surge line, kept unscaled alongside the map.
	SurgeWc []float64
	SurgePR []float64

	// Design-point scaling factors, set by SetScaling.
	Ncmapdes, Betamapdes               float64
	SFNc, SFWc, SFPR, SFEta            float64
	Wcmapdes, PRmapAtDP, EtaMapAtDP    float64

	// Deterioration multipliers (1 = no deterioration), tunable by the
	// adaptive-model control loop.
	SFWcDeter, SFEtaDeter, SFPRDeter float64

	// Last scaled evaluation, kept for output/plotting, mirroring
	// self.Ncmap/self.Betamap/self.Wcmap/self.Etamap/self.PRmap.
	Ncmap, Betamap, Wcmap, Etamap, PRmap float64
}

// LoadLegacyMap parses a legacy map file of the given kind. Compressor maps
// carry MASS FLOW / EFFICIENCY / PRESSURE RATIO / SURGE LINE sections;
// turbine maps carry MASS FLOW / EFFICIENCY / MIN PRESSURE RATIO / MAX
// PRESSURE RATIO, and PR is reconstructed as PRmin + Beta*(PRmax-PRmin).
func LoadLegacyMap(path string, kind Kind) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, simerr.Wrap(simerr.KindMapLoad, "", "LoadLegacyMap", err)
	}
	defer f.Close()

	lr := newLineReader(f)
	if _, err := lr.seekKeyword("99"); err != nil {
		return nil, err
	}

	m := &Map{Kind: kind, SFNc: 1, SFWc: 1, SFPR: 1, SFEta: 1, SFWcDeter: 1, SFEtaDeter: 1, SFPRDeter: 1}

	if kind == Turbine {
		_, ncForPR, prminRows, err := lr.readNcBetaCrossTable("MIN PRESSURE RATIO")
		if err != nil {
			return nil, err
		}
		_, _, prmaxRows, err := lr.readNcBetaCrossTable("MAX PRESSURE RATIO")
		if err != nil {
			return nil, err
		}
		m.PRmin = prminRows[0]
		m.PRmax = prmaxRows[0]
		m.NcValues = ncForPR
	}

	nc, beta, wc, err := lr.readNcBetaCrossTable("MASS FLOW")
	if err != nil {
		return nil, err
	}
	m.NcValues, m.BetaValues, m.Wc = nc, beta, wc

	_, _, eta, err := lr.readNcBetaCrossTable("EFFICIENCY")
	if err != nil {
		return nil, err
	}
	m.Eta = eta

	switch kind {
	case Turbine:
		m.PR = make([][]float64, len(m.NcValues))
		for i := range m.NcValues {
			m.PR[i] = make([]float64, len(m.BetaValues))
			for j, b := range m.BetaValues {
				m.PR[i][j] = m.PRmin[i] + b*(m.PRmax[i]-m.PRmin[i])
			}
		}
	case Compressor:
		_, _, pr, err := lr.readNcBetaCrossTable("PRESSURE RATIO")
		if err != nil {
			return nil, err
		}
		m.PR = pr
		if dummy, slWc, slPr, err := lr.readNcBetaCrossTable("SURGE LINE"); err == nil {
			_ = dummy
			m.SurgeWc = slWc
			if len(slPr) > 0 {
				m.SurgePR = slPr[0]
			}
		}
	}
	return m, nil
}

// bicubicEval interpolates table at (nc, beta) by fitting a cubic spline
// along Beta for each of the table's Nc rows, then a second cubic spline
// across those per-row evaluations along Nc. This separable construction is
// the Go-native analogue of scipy's RegularGridInterpolator(method='cubic')
// on a rectangular Nc/Beta grid.
func bicubicEval(ncValues, betaValues []float64, table [][]float64, nc, beta float64) (float64, error) {
	rowVals := make([]float64, len(ncValues))
	var rowInterp interp.PiecewiseCubic
	for i := range ncValues {
		if err := rowInterp.Fit(betaValues, table[i]); err != nil {
			return 0, simerr.Wrap(simerr.KindMapLoad, "", "bicubicEval", err)
		}
		rowVals[i] = rowInterp.Predict(clamp(beta, betaValues))
	}
	var colInterp interp.PiecewiseCubic
	if err := colInterp.Fit(ncValues, rowVals); err != nil {
		return 0, simerr.Wrap(simerr.KindMapLoad, "", "bicubicEval", err)
	}
	return colInterp.Predict(clamp(nc, ncValues)), nil
}

// clamp extrapolates by holding x to the grid's span widened by a quarter of
// its width on each side, matching the reference
// implementation's fill_value=None (extrapolate) RegularGridInterpolator
// behavior closely enough for the engine's operating range, while avoiding
// the numerical blow-up an unclamped cubic extrapolation can produce far
// outside the map.
func clamp(x float64, grid []float64) float64 {
	lo, hi := grid[0], grid[len(grid)-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	margin := (hi - lo) * 0.25
	if x < lo-margin {
		return lo - margin
	}
	if x > hi+margin {
		return hi + margin
	}
	return x
}

// SetScaling reads the map's own design-point performance at (Ncmapdes,
// Betamapdes) and derives the four scaling factors that bring the map's
// design point onto the host component's actual design point. Mirrors
// ReadMapAndSetScaling.
func (m *Map) SetScaling(Ncmapdes, Betamapdes, Ncdes, Wcdes, PRdes, Etades float64) error {
	m.Ncmapdes, m.Betamapdes = Ncmapdes, Betamapdes
	m.SFNc = Ncdes / Ncmapdes

	wc, err := bicubicEval(m.NcValues, m.BetaValues, m.Wc, Ncmapdes, Betamapdes)
	if err != nil {
		return err
	}
	m.Wcmapdes = wc
	m.SFWc = Wcdes / m.Wcmapdes

	pr, err := bicubicEval(m.NcValues, m.BetaValues, m.PR, Ncmapdes, Betamapdes)
	if err != nil {
		return err
	}
	m.PRmapAtDP = pr
	m.SFPR = (PRdes - 1) / (m.PRmapAtDP - 1)

	eta, err := bicubicEval(m.NcValues, m.BetaValues, m.Eta, Ncmapdes, Betamapdes)
	if err != nil {
		return err
	}
	m.EtaMapAtDP = eta
	m.SFEta = Etades / m.EtaMapAtDP
	return nil
}

// GetScaledMapPerformance evaluates the map at the given corrected speed and
// solver's normalized Beta state (converted here to map Beta by multiplying by
// Betamapdes, so 1.0 is the map design Beta), applies the four design-point
// scaling factors and the deterioration multipliers, and returns corrected
// mass flow, pressure ratio and isentropic efficiency.
func (m *Map) GetScaledMapPerformance(Nc, betaState float64) (Wc, PR, Eta float64, err error) {
	m.Ncmap = Nc / m.SFNc
	m.Betamap = betaState * m.Betamapdes

	wc, err := bicubicEval(m.NcValues, m.BetaValues, m.Wc, m.Ncmap, m.Betamap)
	if err != nil {
		return 0, 0, 0, err
	}
	eta, err := bicubicEval(m.NcValues, m.BetaValues, m.Eta, m.Ncmap, m.Betamap)
	if err != nil {
		return 0, 0, 0, err
	}
	pr, err := bicubicEval(m.NcValues, m.BetaValues, m.PR, m.Ncmap, m.Betamap)
	if err != nil {
		return 0, 0, 0, err
	}

	m.Wcmap, m.Etamap, m.PRmap = wc, eta, pr
	Wc = m.SFWc * wc * m.SFWcDeter
	Eta = m.SFEta * eta * m.SFEtaDeter
	PR = m.SFPR*(pr-1)*m.SFPRDeter + 1
	return Wc, PR, Eta, nil
}

// SurgeMargin returns the fractional distance (current PR below the surge
// line's PR at the same corrected mass flow); only meaningful for compressor
// maps that carry a surge line.
func (m *Map) SurgeMargin(Wc, PR float64) (float64, bool) {
	if len(m.SurgeWc) < 2 || len(m.SurgePR) < 2 {
		return 0, false
	}
	var li interp.PiecewiseLinear
	if err := li.Fit(m.SurgeWc, m.SurgePR); err != nil {
		return 0, false
	}
	prSurge := li.Predict(clamp(Wc, m.SurgeWc))
	if prSurge <= 0 {
		return 0, false
	}
	return (prSurge - PR) / prSurge, true
}
