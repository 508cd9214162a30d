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

const sampleVGMapLo = `99 sample compressor map, closed VG
MASS FLOW
4.004 0.0 0.5 1.0
8000.0 10.0 11.0 12.0
9000.0 12.0 13.0 14.0
10000.0 14.0 15.0 16.0

EFFICIENCY
4.004 0.0 0.5 1.0
8000.0 0.78 0.80 0.79
9000.0 0.80 0.84 0.82
10000.0 0.79 0.83 0.80

PRESSURE RATIO
4.004 0.0 0.5 1.0
8000.0 3.0 3.4 3.6
9000.0 3.6 4.0 4.3
10000.0 4.2 4.8 5.1
`

const sampleVGMapHi = `99 sample compressor map, open VG
MASS FLOW
4.004 0.0 0.5 1.0
8000.0 11.0 12.1 13.2
9000.0 13.2 14.3 15.4
10000.0 15.4 16.5 17.6

EFFICIENCY
4.004 0.0 0.5 1.0
8000.0 0.78 0.80 0.79
9000.0 0.80 0.84 0.82
10000.0 0.79 0.83 0.80

PRESSURE RATIO
4.004 0.0 0.5 1.0
8000.0 3.0 3.4 3.6
9000.0 3.6 4.0 4.3
10000.0 4.2 4.8 5.1
`

func writeVGMapFile(tst *testing.T, name, content string) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tst.Fatalf("could not write sample map: %v", err)
	}
	return path
}

func Test_vgCompressorDP01(tst *testing.T) {
	chk.PrintTitle("vgCompressorDP01: at DP a VGCompressor scales its design-angle map and holds the design angle")

	lo := writeVGMapFile(tst, "lo.dat", sampleVGMapLo)
	hi := writeVGMapFile(tst, "hi.dat", sampleVGMapHi)

	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(13.0, 288.15, 101325, thermo.DryAirY))

	c := NewVGCompressor("lpc", map[float64]string{0: lo, 10: hi}, 0, 1, 2, 1, 9000.0, 0.5, 9000.0, 0.84, 4.0)
	if err := c.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}
	chk.Float64(tst, "PR at DP", 1e-9, c.PR, 4.0)
	chk.Float64(tst, "VG angle held at design", 1e-9, c.VGAngle, 0)

	gOut := s.Stations.Get(2)
	chk.Float64(tst, "Pout", 1e-3, gOut.P, 101325*4.0)
}

func Test_vgCompressorOD_readsAngleFromControl01(tst *testing.T) {
	chk.PrintTitle("vgCompressorOD_readsAngleFromControl01: at OD the VG angle comes from the host's Control")

	lo := writeVGMapFile(tst, "lo.dat", sampleVGMapLo)
	hi := writeVGMapFile(tst, "hi.dat", sampleVGMapHi)

	s := sim.New()
	s.Mode = sim.DP
	s.Stations.Set(1, thermo.NewState(13.0, 288.15, 101325, thermo.DryAirY))

	c := NewVGCompressor("lpc", map[float64]string{0: lo, 10: hi}, 0, 1, 2, 1, 9000.0, 0.5, 9000.0, 0.84, 4.0)
	if err := c.Run(s); err != nil {
		tst.Fatalf("DP run failed: %v", err)
	}

	ctl, err := NewControl("vsv", 0, 5, 5, 1, "")
	if err != nil {
		tst.Fatalf("NewControl failed: %v", err)
	}
	c.SetControl(ctl)

	s.Mode = sim.OD
	s.States[c.istateN] = 1.0
	s.States[c.istateBeta] = 1.0
	if err := ctl.Run(s); err != nil {
		tst.Fatalf("control Run failed: %v", err)
	}
	if err := c.Run(s); err != nil {
		tst.Fatalf("OD run failed: %v", err)
	}
	chk.Float64(tst, "VG angle read from control", 1e-9, c.VGAngle, 5)
}
