// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/wvisser1958/GSPy/sim"
)

func Test_ambientSeaLevelStatic01(tst *testing.T) {
	chk.PrintTitle("ambientSeaLevelStatic01: sea-level static conditions match the ISA table's zero-altitude row")

	s := sim.New()
	a := NewAmbient("amb", 1, 0, 0, 0, nil, nil)
	if err := a.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	chk.Float64(tst, "Tsa", 1e-6, a.Tsa_, 288.15)
	chk.Float64(tst, "Psa", 1e-6, a.Psa_, 101325)
	chk.Float64(tst, "Tta == Tsa at Mach 0", 1e-9, a.Tta, a.Tsa_)
	chk.Float64(tst, "Pta == Psa at Mach 0", 1e-9, a.Pta, a.Psa_)
	chk.Float64(tst, "V == 0 at Mach 0", 1e-9, a.V, 0)
}

func Test_ambientTsaOverrideIgnoresDTs01(tst *testing.T) {
	chk.PrintTitle("ambientTsaOverrideIgnoresDTs01: an explicit Tsa override replaces the ISA lookup and ignores DTs")

	s := sim.New()
	tsa := 250.0
	a := NewAmbient("amb", 1, 5000, 0.8, 15, nil, &tsa)
	if err := a.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	chk.Float64(tst, "Tsa equals the override, DTs ignored", 1e-9, a.Tsa_, 250.0)
}

func Test_ambientRamRecoveryRaisesTotals01(tst *testing.T) {
	chk.PrintTitle("ambientRamRecoveryRaisesTotals01: at Mach > 0 total conditions exceed static")

	s := sim.New()
	a := NewAmbient("amb", 1, 0, 0.8, 0, nil, nil)
	if err := a.Run(s); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	if a.Tta <= a.Tsa_ {
		tst.Errorf("expected Tta > Tsa at Mach 0.8, got Tta=%g Tsa=%g", a.Tta, a.Tsa_)
	}
	if a.Pta <= a.Psa_ {
		tst.Errorf("expected Pta > Psa at Mach 0.8, got Pta=%g Psa=%g", a.Pta, a.Psa_)
	}
	if a.V <= 0 {
		tst.Errorf("expected a positive flight speed at Mach 0.8, got %g", a.V)
	}

	gOut := s.Stations.Get(1)
	chk.Float64(tst, "station pressure matches Pta", 1e-9, gOut.P, a.Pta)
}
