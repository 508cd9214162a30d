// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/sirupsen/logrus"

// Mode distinguishes the single Design Point evaluation from an Off-Design
// sweep point, mirroring GSPy's literal 'DP'/'OD' mode strings.
type Mode int

const (
	DP Mode = iota
	OD
)

func (m Mode) String() string {
	if m == DP {
		return "DP"
	}
	return "OD"
}

// Totals accumulates the whole-engine scalar results every scenario reports:
// gross thrust, net thrust, ram drag and total fuel flow.
type Totals struct {
	FG float64 // gross thrust, N
	RD float64 // ram drag, N
	FN float64 // net thrust, N (FG - RD)
	WF float64 // total fuel flow, kg/s
}

// Simulation is the explicit context threaded through every component's
// Run/PostRun call: the station map, shaft table, the state/error vectors
// the Newton-Krylov solver drives to zero, run totals and the output
// collector. It replaces GSPy's module-level fsys globals.
type Simulation struct {
	Stations *Stations
	Shafts   []*Shaft

	States []float64
	Errors []float64

	Totals  Totals
	Output  *OutputCollector
	Log     *logrus.Logger

	// Scratch holds every component's output values as computed by the
	// current residual evaluation, refreshed on every solver iteration (not
	// just at convergence) so that a Control depending on another
	// component's named result — e.g. controlling net thrust by fuel flow —
	// always reads a value consistent with the trial state vector. Mirrors
	// GSPy's continuously-updated fsys.output_dict.
	Scratch *OutputRow

	// AmbientV is the flight velocity resolved by the Ambient component
	// this evaluation, shared with every Inlet for ram-drag calculation,
	// mirroring GSPy's fsys.Ambient.V lookup.
	AmbientV float64

	// AmbientPsa is the flight condition's static pressure, shared with every
	// ExhaustNozzle/ExhaustDiffuser the way GSPy reads fsys.Ambient.Psa.
	AmbientPsa float64

	Mode  Mode
	Point int
}

// New returns an initialized, empty Simulation.
func New() *Simulation {
	s := &Simulation{
		Stations: NewStations(),
		Output:   NewOutputCollector(),
		Log:      logrus.New(),
	}
	s.Scratch = NewOutputRow()
	return s
}

// NewStateVar appends a new solver state variable initialized to `initial`
// (GSPy always seeds a fresh state at 1, a unit multiplier on its design
// value) and returns its index.
func (s *Simulation) NewStateVar(initial float64) int {
	s.States = append(s.States, initial)
	return len(s.States) - 1
}

// NewErrorVar appends a new solver error/residual slot and returns its index.
func (s *Simulation) NewErrorVar() int {
	s.Errors = append(s.Errors, 0)
	return len(s.Errors) - 1
}

// ShaftByNr returns the shaft with the given number, or nil if not found.
func (s *Simulation) ShaftByNr(nr int) *Shaft {
	for _, sh := range s.Shafts {
		if sh.Nr == nr {
			return sh
		}
	}
	return nil
}

// GetOrCreateShaft returns the shaft numbered nr, creating it (in the given
// mode, at the given design mechanical speed) on first reference. Mirrors
// GSPy's shaft auto-creation: a shaft persists across the whole simulation
// once any turbo component first mentions its number.
func (s *Simulation) GetOrCreateShaft(nr int, mode ShaftMode, nMechDes float64) *Shaft {
	if sh := s.ShaftByNr(nr); sh != nil {
		return sh
	}
	sh := NewShaft(nr, mode, nMechDes)
	s.Shafts = append(s.Shafts, sh)
	return sh
}

// ResetShaftPower zeros every shaft's power accumulator at the start of a
// component-graph evaluation.
func (s *Simulation) ResetShaftPower() {
	for _, sh := range s.Shafts {
		sh.ResetPower()
	}
}
