// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"github.com/wvisser1958/GSPy/sim"
)

// Shaft is a reporting-only component: the shaft's power balance and speed
// are actually accumulated by the turbo components mounted on it (compressor,
// fan, turbine) during their own Run, so this component's Run is a no-op —
// it exists purely to give the shaft a place in the component graph's output
// row and to surface its number to scenario configuration.
type Shaft struct {
	GasPath
	Nr   int
	Ndes float64
}

// NewShaft constructs a reporting wrapper for shaft number nr.
func NewShaft(name string, nr int, ndes float64) *Shaft {
	sh := &Shaft{Nr: nr, Ndes: ndes}
	sh.CompName = name
	return sh
}

// Run is a no-op; the shaft's state is owned by sim.Shaft and updated by the
// turbo components mounted on it.
func (sh *Shaft) Run(s *sim.Simulation) error { return nil }

// AddOutput reports the shaft's resolved speed and residual power balance.
func (sh *Shaft) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	shaft := s.ShaftByNr(sh.Nr)
	if shaft == nil {
		return
	}
	N := sh.Ndes
	if shaft.IState >= 0 {
		N = s.States[shaft.IState] * sh.Ndes
	}
	row.Set("N_"+sh.CompName, N)
	row.Set("PWSum_"+sh.CompName, shaft.PWSum)
}
