// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solve hosts the 1-D root-finding helper shared by the combustor
// (fuel flow for a target exit temperature), the exhaust nozzle (throat
// pressure for mass-flow continuity when unchoked) and the turbine (pressure ratio for a target
// shaft power), all of which the reference implementation resolves with
// scipy.optimize.root/brentq single-equation solves.
package solve

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/wvisser1958/GSPy/simerr"
)

// Scalar1D finds x such that f(x) == 0, starting from the bracket [xa, xb]
// and, if it does not straddle a root, widening it outward by a fifth of its
// width on each side (up to 40 times), then refining with gosl/num's Brent
// solver. The root may therefore lie outside [xa, xb]; x0 is not used.
func Scalar1D(f func(x float64) float64, x0, xa, xb, tol float64) (float64, error) {
	lo, hi := xa, xb
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, fhi := f(lo), f(hi)
	for i := 0; i < 40 && flo*fhi > 0; i++ {
		lo -= (hi - lo) * 0.2
		hi += (hi - lo) * 0.2
		flo, fhi = f(lo), f(hi)
	}
	if flo*fhi > 0 {
		return 0, simerr.New(simerr.KindInnerRootFailure, "", "Scalar1D", "could not bracket a root in [%g, %g]", xa, xb)
	}
	solver := num.NewBrent(f, nil)
	root, err := solver.Root(lo, hi)
	if err != nil {
		return 0, simerr.Wrap(simerr.KindInnerRootFailure, "", "Scalar1D", err)
	}
	if math.IsNaN(root) {
		return 0, simerr.New(simerr.KindInnerRootFailure, "", "Scalar1D", "root solve returned NaN")
	}
	return root, nil
}
