// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"gopkg.in/yaml.v3"
)

const minimalYAML = `
components:
  - type: ambient
    name: amb
    station_out: 1
    altitude: 0
    mach: 0
  - type: inlet
    name: intake
    station_in: 1
    station_out: 2
    wdes: 50
    prdes: 0.99
  - type: duct
    name: bypass
    station_in: 2
    station_out: 3
    prdes: 0.98
od_points: 3
`

func Test_parseMinimalScenario01(tst *testing.T) {
	chk.PrintTitle("parseMinimalScenario01: a minimal ambient/inlet/duct scenario parses and assembles")

	var cfg Config
	if err := yaml.Unmarshal([]byte(minimalYAML), &cfg); err != nil {
		tst.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if len(cfg.Components) != 3 {
		tst.Fatalf("expected 3 components, got %d", len(cfg.Components))
	}
	if cfg.ODPoints != 3 {
		tst.Fatalf("expected od_points=3, got %d", cfg.ODPoints)
	}

	built, err := Build(&cfg)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	if len(built.Engine.Components) != 3 {
		tst.Fatalf("expected 3 assembled components, got %d", len(built.Engine.Components))
	}

	if _, err := built.Engine.RunDP(); err != nil {
		tst.Fatalf("RunDP failed: %v", err)
	}
	gOut := built.Sim.Stations.Get(3)
	if gOut == nil {
		tst.Fatalf("expected station 3 to be populated after RunDP")
	}
	if gOut.P <= 0 {
		tst.Errorf("expected a positive exit pressure, got %g", gOut.P)
	}
}
