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

func Test_bleedFlowSplitsAndRepressurizes01(tst *testing.T) {
	chk.PrintTitle("bleedFlowSplitsAndRepressurizes01: bled fraction is removed downstream and re-pressurized at a charge to the shaft")

	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(10, 500, 1000000, thermo.DryAirY))
	shaft := s.GetOrCreateShaft(1, sim.ShaftGG, 9000)

	b := NewBleedFlow("hpc_bleed", 1, 2, 1, 0.05, 0.02)
	if err := b.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}

	chk.Float64(tst, "bled mass flow", 1e-9, b.BledOut.MassFlow, 10*0.05)
	gOut := s.Stations.Get(2)
	chk.Float64(tst, "remaining mass flow", 1e-9, gOut.MassFlow, 10*0.95)
	chk.Float64(tst, "bled stream re-pressurized", 1e-6, b.BledOut.P, 1000000*1.02)
	if b.PW <= 0 {
		tst.Errorf("expected positive re-pressurization power, got %g", b.PW)
	}
	chk.Float64(tst, "shaft charged for bleed re-compression", 1e-6, shaft.PWSum, -b.PW)
}

func Test_bleedFlowZeroFractionIsNoOp01(tst *testing.T) {
	chk.PrintTitle("bleedFlowZeroFractionIsNoOp01: zero bleed fraction leaves the downstream flow untouched")

	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(10, 500, 1000000, thermo.DryAirY))

	b := NewBleedFlow("hpc_bleed", 1, 2, 1, 0, 0.02)
	if err := b.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	gOut := s.Stations.Get(2)
	chk.Float64(tst, "mass flow unchanged", 1e-9, gOut.MassFlow, 10)
}
