// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// ShaftMode selects how a shaft's speed is determined at each operating
// point: a gas-generator shaft solves its speed from the power balance; a
// power-turbine/free-turbine shaft can additionally be load-matched; a
// constant-speed shaft (electrical generator drive, industrial) holds its
// mechanical speed fixed and instead solves the power balance for load.
type ShaftMode int

const (
	// ShaftGG is driven by PWSum = 0 with speed as the free unknown, the
	// default mode for a gas-generator or turboshaft gas-generator spool.
	ShaftGG ShaftMode = iota
	// ShaftPT is a free power/load turbine whose speed is independently
	// state-driven (e.g. toward a target output power or propeller load).
	ShaftPT
	// ShaftCS holds mechanical speed fixed at NMechDes; the state vector
	// instead carries excess/deficit load.
	ShaftCS
)

func (m ShaftMode) String() string {
	switch m {
	case ShaftGG:
		return "GG"
	case ShaftPT:
		return "PT"
	case ShaftCS:
		return "CS"
	default:
		return "?"
	}
}

// Shaft accumulates the net power balance of every turbomachinery component
// mounted on it (compressors/fans subtract, turbines add) across one
// evaluation of the component graph, mirroring GSPy's shaft.PW_sum.
type Shaft struct {
	Nr       int
	Mode     ShaftMode
	NMechDes float64 // design mechanical speed, rpm

	PWSum  float64 // net power balance accumulated this evaluation, W
	IState int     // index into the solver's state vector for this shaft's speed (or load, for ShaftCS)
}

// NewShaft constructs a shaft, zeroing its power accumulator.
func NewShaft(nr int, mode ShaftMode, nMechDes float64) *Shaft {
	return &Shaft{Nr: nr, Mode: mode, NMechDes: nMechDes, IState: -1}
}

// ResetPower zeros the power accumulator at the start of a component-graph
// evaluation.
func (s *Shaft) ResetPower() { s.PWSum = 0 }

// AddPower accumulates a turbomachinery component's power contribution:
// positive for a turbine (delivers power to the shaft), negative for a
// compressor/fan (absorbs power from the shaft).
func (s *Shaft) AddPower(pw float64) { s.PWSum += pw }
