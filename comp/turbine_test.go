// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/thermo"
)

// sampleTurbineMap mirrors the legacy grammar's turbine-only MIN/MAX PRESSURE
// RATIO sections, whose table is transposed relative to MASS FLOW/EFFICIENCY:
// a single "Nc" row carrying one PRmin (or PRmax) value per Nc point, with
// those Nc points given as the table's column headers instead of its rows.
const sampleTurbineMap = `99 sample turbine map
MIN PRESSURE RATIO
2.004 8000.0 9000.0 10000.0
1.0 1.2 1.3 1.5

MAX PRESSURE RATIO
2.004 8000.0 9000.0 10000.0
1.0 3.0 3.6 4.2

MASS FLOW
4.004 0.0 0.5 1.0
8000.0 10.0 11.0 12.0
9000.0 12.0 13.0 14.0
10000.0 14.0 15.0 16.0

EFFICIENCY
4.004 0.0 0.5 1.0
8000.0 0.85 0.87 0.86
9000.0 0.87 0.90 0.88
10000.0 0.86 0.89 0.87
`

func writeSampleTurbineMap(tst *testing.T) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, "turbine_map.dat")
	if err := os.WriteFile(path, []byte(sampleTurbineMap), 0o644); err != nil {
		tst.Fatalf("could not write sample turbine map: %v", err)
	}
	return path
}

func Test_turbineGG_DP_balancesShaftPower01(tst *testing.T) {
	chk.PrintTitle("turbineGG_DP_balancesShaftPower01: at DP a GG turbine solves PR so its delivered power exactly balances the shaft's debit, zeroing the shaft's running sum")

	mapFile := writeSampleTurbineMap(tst)
	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(40, 1500, 1800000, thermo.DryAirY))

	shaft := s.GetOrCreateShaft(1, sim.ShaftGG, 9000.0)
	shaft.AddPower(-5.0e6) // a compressor drawing 5 MW on the same shaft

	tb := NewTurbine("hpt", mapFile, 1, 2, 1, 9000.0, 0.88, 9000.0, 0.5, 0.995, 0, TurbineGG, nil)
	if err := tb.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}
	chk.Float64(tst, "PW balances the shaft debit", 1e-6, tb.PW, 5.0e6/0.995)
	chk.Float64(tst, "shaft running sum zeroed after DP balance", 1e-9, shaft.PWSum, 0)
	if tb.PRdes <= 1 {
		tst.Errorf("expected a solved design PR > 1, got %g", tb.PRdes)
	}
}

func Test_turbineGG_OD_continuityAndShaftResidualsAtDesign01(tst *testing.T) {
	chk.PrintTitle("turbineGG_OD_continuityAndShaftResidualsAtDesign01: re-running OD at the exact DP speed/beta state leaves both registered residuals at zero")

	mapFile := writeSampleTurbineMap(tst)
	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(40, 1500, 1800000, thermo.DryAirY))
	shaft := s.GetOrCreateShaft(1, sim.ShaftGG, 9000.0)
	shaft.IState = s.NewStateVar(1) // the speed state a compressor on this shaft registers at DP
	shaft.AddPower(-5.0e6)

	tb := NewTurbine("hpt", mapFile, 1, 2, 1, 9000.0, 0.88, 9000.0, 0.5, 0.995, 0, TurbineGG, nil)
	if err := tb.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}

	s.Mode = sim.OD
	s.States[shaft.IState] = 1.0
	s.States[tb.istateBeta] = 1.0
	shaft.PWSum = 0
	shaft.AddPower(-5.0e6)
	s.Stations.Set(1, thermo.NewState(40, 1500, 1800000, thermo.DryAirY))
	if err := tb.Run(s); err != nil {
		tst.Fatalf("OD run failed: %v", err)
	}
	chk.Float64(tst, "mass-flow continuity residual at the design state", 1e-4, s.Errors[tb.ierrorWc], 0)
	chk.Float64(tst, "shaft power residual at the design state", 1e-4, s.Errors[tb.ierrorShaftPW], 0)
}

func Test_turbineGG_coolingFlowPumpAndReexpandContributePower01(tst *testing.T) {
	chk.PrintTitle("turbineGG_coolingFlowPumpAndReexpandContributePower01: a cooling flow with Rexit>0 absorbs pumping power and delivers re-expansion power, both folded into the turbine's own power balance")

	mapFile := writeSampleTurbineMap(tst)
	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(40, 1500, 1800000, thermo.DryAirY))
	s.Stations.Set(5, thermo.NewState(8, 700, 1900000, thermo.DryAirY)) // bleed source station

	shaft := s.GetOrCreateShaft(1, sim.ShaftGG, 9000.0)
	shaft.AddPower(-5.0e6)

	cf := NewCoolingFlow("nozzle_cooling", 5, 1.0, 1.0, 0.15, 0.3)
	tb := NewTurbine("hpt", mapFile, 1, 2, 1, 9000.0, 0.88, 9000.0, 0.5, 0.995, 0, TurbineGG, []*CoolingFlow{cf})
	if err := tb.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}

	if cf.PWPump <= 0 {
		tst.Errorf("expected positive tangential-pumping power absorbed from the shaft, got %g", cf.PWPump)
	}
	if cf.PWExp <= 0 {
		tst.Errorf("expected positive re-expansion power delivered by the cooling flow, got %g", cf.PWExp)
	}
	chk.Float64(tst, "PW balances the shaft debit even with cooling flow power folded in", 1e-6, tb.PW, 5.0e6/0.995)
	chk.Float64(tst, "shaft running sum zeroed after DP balance", 1e-9, shaft.PWSum, 0)
	if tb.WClEff <= 0 {
		tst.Errorf("expected positive effective cooling mass flow counted toward continuity, got %g", tb.WClEff)
	}
}
