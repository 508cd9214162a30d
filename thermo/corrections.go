// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import "math"

// TStd and PStd are the standard-day sea-level reference conditions every
// corrected flow/speed parameter is normalized against.
const (
	TStd = 288.15
	PStd = 101325.0
)

// FlowCorrectionFactor returns sqrt(T/TStd)/(P/PStd), the factor turbomachinery
// map lookups use to convert an actual mass flow to its corrected (map) value.
func FlowCorrectionFactor(g *State) float64 {
	return math.Sqrt(g.T/TStd) / (g.P / PStd)
}

// RotorspeedCorrectionFactor returns sqrt(T/TStd), the factor used to convert
// an actual mechanical speed to its corrected (map) value.
func RotorspeedCorrectionFactor(g *State) float64 {
	return math.Sqrt(g.T / TStd)
}
