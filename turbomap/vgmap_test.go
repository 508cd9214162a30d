// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbomap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// sampleCompressorMapHi is sampleCompressorMap with the mass flow table
// scaled up 10%, standing in for a more-open variable-geometry angle.
const sampleCompressorMapHi = `99 sample compressor map, open VG
MASS FLOW
4.004 0.0 0.5 1.0
80.0 11.0 12.1 13.2
90.0 13.2 14.3 15.4
100.0 15.4 16.5 17.6

EFFICIENCY
4.004 0.0 0.5 1.0
80.0 0.78 0.80 0.79
90.0 0.80 0.84 0.82
100.0 0.79 0.83 0.80

PRESSURE RATIO
4.004 0.0 0.5 1.0
80.0 3.0 3.4 3.6
90.0 3.6 4.0 4.3
100.0 4.2 4.8 5.1

SURGE LINE
2.004 10.0 12.0 14.0
1.0 1.9 2.0 2.1
`

func Test_vgMapSetDesignPoint01(tst *testing.T) {
	chk.PrintTitle("vgMapSetDesignPoint01: a VGMapSet reproduces its design map's DP point exactly")

	lo := writeSampleMap(tst, sampleCompressorMap)
	hi := writeSampleMap(tst, sampleCompressorMapHi)

	vg, err := NewVGMapSet(map[float64]string{0: lo, 10: hi}, Compressor, 0)
	if err != nil {
		tst.Fatalf("NewVGMapSet failed: %v", err)
	}
	if err := vg.SetScaling(90.0, 0.5, 90.0, 13.0, 4.0, 0.84); err != nil {
		tst.Fatalf("SetScaling failed: %v", err)
	}

	wc, pr, eta, err := vg.GetScaledMapPerformance(0, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance failed: %v", err)
	}
	chk.Float64(tst, "Wc at design angle", 1e-6, wc, 13.0)
	chk.Float64(tst, "PR at design angle", 1e-6, pr, 4.0)
	chk.Float64(tst, "Eta at design angle", 1e-6, eta, 0.84)
}

func Test_vgMapSetInterpolatesBetweenAngles01(tst *testing.T) {
	chk.PrintTitle("vgMapSetInterpolatesBetweenAngles01: Wc interpolates linearly between bracketing angle maps")

	lo := writeSampleMap(tst, sampleCompressorMap)
	hi := writeSampleMap(tst, sampleCompressorMapHi)

	vg, err := NewVGMapSet(map[float64]string{0: lo, 10: hi}, Compressor, 0)
	if err != nil {
		tst.Fatalf("NewVGMapSet failed: %v", err)
	}
	if err := vg.SetScaling(90.0, 0.5, 90.0, 13.0, 4.0, 0.84); err != nil {
		tst.Fatalf("SetScaling failed: %v", err)
	}

	wcLo, _, _, err := vg.GetScaledMapPerformance(0, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance(0) failed: %v", err)
	}
	wcHi, _, _, err := vg.GetScaledMapPerformance(10, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance(10) failed: %v", err)
	}
	wcMid, _, _, err := vg.GetScaledMapPerformance(5, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance(5) failed: %v", err)
	}
	chk.Float64(tst, "Wc at angle 5 (midpoint)", 1e-6, wcMid, 0.5*(wcLo+wcHi))

	// Beyond either end, the nearest map's performance is held, mirroring
	// GetTurboMapPerformance's bisect_left first/last-map clamp.
	wcBeyondLo, _, _, err := vg.GetScaledMapPerformance(-5, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance(-5) failed: %v", err)
	}
	chk.Float64(tst, "Wc beyond lower end holds lowest map", 1e-9, wcBeyondLo, wcLo)

	wcBeyondHi, _, _, err := vg.GetScaledMapPerformance(15, 90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance(15) failed: %v", err)
	}
	chk.Float64(tst, "Wc beyond upper end holds highest map", 1e-9, wcBeyondHi, wcHi)
}
