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

func Test_inletDP01(tst *testing.T) {
	chk.PrintTitle("inletDP01: at DP an Inlet sizes to its design mass flow and applies design pressure recovery")

	s := sim.New()
	s.Mode = sim.DP
	s.AmbientV = 0
	s.Stations.Set(1, thermo.NewState(0, 288.15, 101325, thermo.DryAirY))

	in := NewInlet("inlet", 1, 2, 300.0, 0.99)
	if err := in.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}
	chk.Float64(tst, "DP mass flow", 1e-9, in.W, 300.0)
	gOut := s.Stations.Get(2)
	chk.Float64(tst, "Pout", 1e-3, gOut.P, 101325*0.99)
	if len(s.States) != 1 {
		tst.Fatalf("expected one state registered at DP, got %d", len(s.States))
	}
}

func Test_inletOD_ramDragScalesWithFlightVelocity01(tst *testing.T) {
	chk.PrintTitle("inletOD_ramDragScalesWithFlightVelocity01: ram drag is mass flow times ambient flight velocity")

	s := sim.New()
	s.Mode = sim.DP
	s.AmbientV = 0
	s.Stations.Set(1, thermo.NewState(0, 288.15, 101325, thermo.DryAirY))
	in := NewInlet("inlet", 1, 2, 300.0, 0.99)
	if err := in.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}

	s.Mode = sim.OD
	s.States[in.istateWc] = 1.0
	s.AmbientV = 200.0
	s.Stations.Set(1, thermo.NewState(0, 288.15, 101325, thermo.DryAirY))
	if err := in.Run(s); err != nil {
		tst.Fatalf("OD run failed: %v", err)
	}
	chk.Float64(tst, "OD mass flow at design Wc state", 1e-6, in.W, 300.0)
	chk.Float64(tst, "ram drag", 1e-6, in.RD, 300.0*200.0)
}
