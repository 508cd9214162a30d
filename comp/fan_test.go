// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

func Test_fanDP01(tst *testing.T) {
	chk.PrintTitle("fanDP01: at DP a Fan splits flow by design BPR and realizes each stream's design PR")

	mapCore := writeSampleCompressorMap(tst)
	mapDuct := writeSampleCompressorMap(tst)
	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(100, 288.15, 101325, thermo.DryAirY))

	f := NewFan("fan", mapCore, mapDuct, 1, 2, 3, 1, 9000.0, 0.90, 5.0,
		9000.0, 0.5, 1.6,
		9000.0, 0.5, 1.6, 0.92)
	if err := f.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}
	chk.Float64(tst, "core PR at DP", 1e-9, f.PRCore, 1.6)
	chk.Float64(tst, "duct PR at DP", 1e-9, f.PRDuct, 1.6)

	gOutCore := s.Stations.Get(2)
	gOutDuct := s.Stations.Get(3)
	chk.Float64(tst, "core mass flow", 1e-6, gOutCore.MassFlow, 100.0/(5.0+1))
	chk.Float64(tst, "duct mass flow", 1e-6, gOutDuct.MassFlow, 100.0*5.0/(5.0+1))
}

func Test_fanOD_continuityAtDesign01(tst *testing.T) {
	chk.PrintTitle("fanOD_continuityAtDesign01: at the exact design speed/BPR/Beta state, both stream continuity residuals are zero")

	mapCore := writeSampleCompressorMap(tst)
	mapDuct := writeSampleCompressorMap(tst)
	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(100, 288.15, 101325, thermo.DryAirY))
	f := NewFan("fan", mapCore, mapDuct, 1, 2, 3, 1, 9000.0, 0.90, 5.0,
		9000.0, 0.5, 1.6,
		9000.0, 0.5, 1.6, 0.92)
	if err := f.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}

	s.Mode = sim.OD
	s.States[f.istateN] = 1.0
	s.States[f.istateBPR] = 1.0
	s.States[f.istateBetaCore] = 1.0
	s.States[f.istateBetaDuct] = 1.0
	if err := f.Run(s); err != nil {
		tst.Fatalf("OD run failed: %v", err)
	}
	chk.Float64(tst, "core continuity residual at design state", 1e-6, s.Errors[f.ierrorWcCore], 0)
	chk.Float64(tst, "duct continuity residual at design state", 1e-6, s.Errors[f.ierrorWcDuct], 0)
}
