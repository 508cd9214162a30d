// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
	"github.com/wvisser1958/GSPy/turbomap"
)

// Fan is a dual-map turbomachinery component splitting a single inlet flow
// into a core stream (compressed by MapCore) and a duct/bypass stream
// (compressed by MapDuct), coupled through a single bypass-ratio state.
// Mirrors GSPy's TFan, including its "1.5" bug fix: the residual mass-flow
// split used to normalize the core/duct continuity equations always uses the
// *design* BPR, while the actual outlet mass flows assigned to GasOut/
// GasOut_duct use the *current* (state-driven) BPR.
type Fan struct {
	GasPath
	StationOutDuct sim.StationID

	MapFileCore, MapFileDuct         string
	NcmapdesCore, BetamapdesCore     float64
	NcmapdesDuct, BetamapdesDuct     float64
	ShaftNr                         int
	Ndes, EtadesCore, EtadesDuct     float64
	PRdesCore, PRdesDuct             float64
	BPRdes                          float64
	Polytropic                       bool

	MapCore, MapDuct *turbomap.Map

	N, Nc, Ncdes, BPR                         float64
	PRCore, PRDuct, EtaCore, EtaDuct          float64
	WcCore, WcDuct                            float64
	WcoreIn, WductIn, WdesCoreIn, WdesDuctIn  float64
	WcdesCoreIn, WcdesDuctIn                  float64
	PWCore, PWDuct, PW                        float64

	istateN, istateBPR, istateBetaCore, istateBetaDuct int
	ierrorWcCore, ierrorWcDuct                         int
}

// NewFan constructs a Fan with independent core and duct maps.
func NewFan(name, mapFileCore, mapFileDuct string, stationIn, stationOutCore, stationOutDuct sim.StationID,
	shaftNr int, ndes, etadesCore, bprdes float64,
	ncmapdesCore, betamapdesCore, prdesCore float64,
	ncmapdesDuct, betamapdesDuct, prdesDuct, etadesDuct float64) *Fan {
	f := &Fan{
		MapFileCore: mapFileCore, MapFileDuct: mapFileDuct,
		StationOutDuct: stationOutDuct,
		ShaftNr:        shaftNr, Ndes: ndes, EtadesCore: etadesCore, BPRdes: bprdes,
		NcmapdesCore: ncmapdesCore, BetamapdesCore: betamapdesCore, PRdesCore: prdesCore,
		NcmapdesDuct: ncmapdesDuct, BetamapdesDuct: betamapdesDuct, PRdesDuct: prdesDuct, EtadesDuct: etadesDuct,
		istateN: -1, istateBPR: -1, istateBetaCore: -1, istateBetaDuct: -1,
		ierrorWcCore: -1, ierrorWcDuct: -1,
	}
	f.CompName = name
	f.StationIn, f.StationOut = stationIn, stationOutCore
	return f
}

// Run evaluates both fan streams.
func (f *Fan) Run(s *sim.Simulation) error {
	gIn := s.Stations.Get(f.StationIn)
	shaft := s.GetOrCreateShaft(f.ShaftNr, sim.ShaftGG, f.Ndes)
	gOutCore := gIn.Clone()
	gOutDuct := gIn.Clone()

	if s.Mode == sim.DP {
		f.BPR = f.BPRdes
	} else {
		f.BPR = s.States[f.istateBPR] * f.BPRdes
	}

	// "1.5" fix: residual-basis split always uses design BPR...
	f.WcoreIn = gIn.MassFlow / (f.BPRdes + 1)
	f.WductIn = gIn.MassFlow * f.BPRdes / (f.BPRdes + 1)
	// ...while the actual outlet assignment uses the current, state-driven BPR.
	gOutCore.MassFlow = gIn.MassFlow / (f.BPR + 1)
	gOutDuct.MassFlow = gIn.MassFlow * f.BPR / (f.BPR + 1)

	if s.Mode == sim.DP {
		f.Ncdes = f.Ndes / thermo.RotorspeedCorrectionFactor(gIn)
		f.Nc = f.Ncdes

		f.WdesCoreIn = f.WcoreIn
		f.WcdesCoreIn = f.WdesCoreIn * thermo.FlowCorrectionFactor(gIn)
		mCore, err := turbomap.LoadLegacyMap(f.MapFileCore, turbomap.Compressor)
		if err != nil {
			return err
		}
		f.MapCore = mCore
		if err := f.MapCore.SetScaling(f.NcmapdesCore, f.BetamapdesCore, f.Ncdes, f.WcdesCoreIn, f.PRdesCore, f.EtadesCore); err != nil {
			return err
		}
		pwCore, err := thermo.Compress(gIn, gOutCore, f.PRdesCore, f.EtadesCore, f.Polytropic)
		if err != nil {
			return err
		}
		f.PWCore = pwCore

		f.WdesDuctIn = f.WductIn
		f.WcdesDuctIn = f.WductIn * thermo.FlowCorrectionFactor(gIn)
		mDuct, err := turbomap.LoadLegacyMap(f.MapFileDuct, turbomap.Compressor)
		if err != nil {
			return err
		}
		f.MapDuct = mDuct
		if err := f.MapDuct.SetScaling(f.NcmapdesDuct, f.BetamapdesDuct, f.Ncdes, f.WcdesDuctIn, f.PRdesDuct, f.EtadesDuct); err != nil {
			return err
		}
		pwDuct, err := thermo.Compress(gIn, gOutDuct, f.PRdesDuct, f.EtadesDuct, f.Polytropic)
		if err != nil {
			return err
		}
		f.PWDuct = pwDuct

		f.PW = f.PWCore + f.PWDuct
		shaft.AddPower(-f.PW)

		f.istateN = s.NewStateVar(1)
		shaft.IState = f.istateN
		f.istateBPR = s.NewStateVar(1)
		f.istateBetaCore = s.NewStateVar(1)
		f.istateBetaDuct = s.NewStateVar(1)
		f.ierrorWcCore = s.NewErrorVar()
		f.ierrorWcDuct = s.NewErrorVar()

		f.PRCore, f.PRDuct = f.PRdesCore, f.PRdesDuct
		f.WcCore, f.WcDuct = f.WcdesCoreIn, f.WcdesDuctIn
		f.EtaCore, f.EtaDuct = f.EtadesCore, f.EtadesDuct
	} else {
		f.N = s.States[f.istateN] * f.Ndes
		f.Nc = f.N / thermo.RotorspeedCorrectionFactor(gIn)

		WcCore, PRCore, EtaCore, err := f.MapCore.GetScaledMapPerformance(f.Nc, s.States[f.istateBetaCore])
		if err != nil {
			return err
		}
		WcDuct, PRDuct, EtaDuct, err := f.MapDuct.GetScaledMapPerformance(f.Nc, s.States[f.istateBetaDuct])
		if err != nil {
			return err
		}
		f.WcCore, f.PRCore, f.EtaCore = WcCore, PRCore, EtaCore
		f.WcDuct, f.PRDuct, f.EtaDuct = WcDuct, PRDuct, EtaDuct

		pwCore, err := thermo.Compress(gIn, gOutCore, PRCore, EtaCore, f.Polytropic)
		if err != nil {
			return err
		}
		pwDuct, err := thermo.Compress(gIn, gOutDuct, PRDuct, EtaDuct, f.Polytropic)
		if err != nil {
			return err
		}
		f.PWCore, f.PWDuct = pwCore, pwDuct
		f.PW = pwCore + pwDuct
		shaft.AddPower(-f.PW)

		WCore := WcCore / thermo.FlowCorrectionFactor(gIn)
		WDuct := WcDuct / thermo.FlowCorrectionFactor(gIn)
		s.Errors[f.ierrorWcCore] = (WCore - f.WcoreIn) / f.WdesCoreIn
		s.Errors[f.ierrorWcDuct] = (WDuct - f.WductIn) / f.WdesDuctIn
	}

	s.Stations.Set(f.StationOut, gOutCore)
	s.Stations.Set(f.StationOutDuct, gOutDuct)
	f.W = gIn.MassFlow
	return nil
}

// AddOutput reports speed, BPR and both streams' map operating points.
func (f *Fan) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	f.GasPath.AddOutput(s, row)
	row.Set("N_"+f.CompName, f.N)
	row.Set("Nc_"+f.CompName, f.Nc)
	row.Set("BPR_"+f.CompName, f.BPR)
	row.Set("PR_core_"+f.CompName, f.PRCore)
	row.Set("PR_duct_"+f.CompName, f.PRDuct)
	row.Set("Wc_core_"+f.CompName, f.WcCore)
	row.Set("Wc_duct_"+f.CompName, f.WcDuct)
	row.Set("Eta_is_core_"+f.CompName, f.EtaCore)
	row.Set("Eta_is_duct_"+f.CompName, f.EtaDuct)
	row.Set("PW_"+f.CompName, f.PW)
}
