// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/wvisser1958/GSPy/simerr"
)

// bracketAndSolve brackets a root of f around x0 by geometric expansion, then
// refines it with gosl/num's Brent solver. T-from-H and T-from-S both reduce
// to this: f is monotone increasing in temperature over the ranges the
// mixture library operates in, so a loose bracket always exists unless the
// target property is outside the physically reachable range.
func bracketAndSolve(f func(float64) float64, x0, tol float64) (float64, error) {
	lo, hi := x0*0.5, x0*1.5
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, fhi := f(lo), f(hi)
	for i := 0; i < 40 && flo*fhi > 0; i++ {
		lo *= 0.85
		hi *= 1.18
		flo, fhi = f(lo), f(hi)
	}
	if flo*fhi > 0 {
		return 0, simerr.New(simerr.KindEosConvergence, "", "bracketAndSolve",
			"could not bracket a root near x0=%g", x0)
	}
	solver := num.NewBrent(f, nil)
	root, err := solver.Root(lo, hi)
	if err != nil {
		return 0, simerr.Wrap(simerr.KindEosConvergence, "", "bracketAndSolve", err)
	}
	if math.IsNaN(root) {
		return 0, simerr.New(simerr.KindEosConvergence, "", "bracketAndSolve", "root solve returned NaN")
	}
	return root, nil
}
