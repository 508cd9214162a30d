// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbomap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleCompressorMap = `99 sample compressor map
MASS FLOW
4.004 0.0 0.5 1.0
80.0 10.0 11.0 12.0
90.0 12.0 13.0 14.0
100.0 14.0 15.0 16.0

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

func writeSampleMap(tst *testing.T, content string) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, "map.dat")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tst.Fatalf("could not write sample map: %v", err)
	}
	return path
}

func Test_loadcompressor01(tst *testing.T) {

	chk.PrintTitle("loadcompressor01: legacy grammar parses Nc/Beta grid")

	path := writeSampleMap(tst, sampleCompressorMap)
	m, err := LoadLegacyMap(path, Compressor)
	if err != nil {
		tst.Fatalf("LoadLegacyMap failed: %v", err)
	}
	chk.IntAssert(len(m.NcValues), 3)
	chk.IntAssert(len(m.BetaValues), 3)
	chk.Float64(tst, "Wc[1][1]", 1e-9, m.Wc[1][1], 13.0)
	chk.Float64(tst, "Eta[0][0]", 1e-9, m.Eta[0][0], 0.78)
	chk.Float64(tst, "PR[2][2]", 1e-9, m.PR[2][2], 5.1)
	if len(m.SurgeWc) != 3 {
		tst.Errorf("expected 3 surge-line points, got %d", len(m.SurgeWc))
	}
}

func Test_scaledperformance01(tst *testing.T) {

	chk.PrintTitle("scaledperformance01: SetScaling then GetScaledMapPerformance reproduces the DP point")

	path := writeSampleMap(tst, sampleCompressorMap)
	m, err := LoadLegacyMap(path, Compressor)
	if err != nil {
		tst.Fatalf("LoadLegacyMap failed: %v", err)
	}
	if err := m.SetScaling(90.0, 0.5, 90.0, 13.0, 4.0, 0.84); err != nil {
		tst.Fatalf("SetScaling failed: %v", err)
	}
	wc, pr, eta, err := m.GetScaledMapPerformance(90.0, 1.0)
	if err != nil {
		tst.Fatalf("GetScaledMapPerformance failed: %v", err)
	}
	chk.Float64(tst, "Wc at DP", 1e-6, wc, 13.0)
	chk.Float64(tst, "PR at DP", 1e-6, pr, 4.0)
	chk.Float64(tst, "Eta at DP", 1e-6, eta, 0.84)
}
