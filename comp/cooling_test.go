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

func Test_coolingFlowRunExtractsBleedFractionUnchanged01(tst *testing.T) {
	chk.PrintTitle("coolingFlowRunExtractsBleedFractionUnchanged01: Run alone only scales the bled mass flow, leaving T/P/Y untouched until a host turbine applies pumping and re-expansion")

	s := sim.New()
	gBleed := thermo.NewState(20, 700, 1900000, thermo.DryAirY)
	s.Stations.Set(5, gBleed)

	cf := NewCoolingFlow("nozzle_cooling", 5, 0.1, 1.0, 0.15, 0.3)
	if err := cf.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	chk.Float64(tst, "bled mass flow", 1e-9, cf.GasInjected.MassFlow, 20*0.1)
	chk.Float64(tst, "bled temperature unchanged before host turbine applies pumping", 1e-9, cf.GasInjected.T, gBleed.T)
	chk.Float64(tst, "bled pressure unchanged before host turbine applies pumping", 1e-6, cf.GasInjected.P, gBleed.P)
	chk.Float64(tst, "W matches the bled mass flow", 1e-9, cf.W, 20*0.1)
}
