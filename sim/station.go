// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim holds the explicit simulation context the engine is built
// around: the station map, shaft table, state/error vectors the
// Newton-Krylov solver drives to zero, run totals, and the output collector.
// It replaces the reference implementation's module-level globals
// (fsys.states, fsys.errors, fsys.gaspath_conditions, fsys.output_dict) with
// a struct threaded explicitly through every component's Run/PostRun.
package sim

import "github.com/wvisser1958/GSPy/thermo"

// StationID numbers a gas-path station, the same integer numbering scheme
// GSPy's station diagrams use (e.g. 2 = fan/compressor inlet, 4 = combustor
// exit).
type StationID int

// Stations is the integer-keyed map from station number to the ThermoState
// living there, mirroring fsys.gaspath_conditions.
type Stations struct {
	byID map[StationID]*thermo.State
}

// NewStations returns an empty station map.
func NewStations() *Stations {
	return &Stations{byID: make(map[StationID]*thermo.State)}
}

// Set records the gas state at a station.
func (s *Stations) Set(id StationID, g *thermo.State) { s.byID[id] = g }

// Get returns the gas state at a station, or nil if nothing has been set yet.
func (s *Stations) Get(id StationID) *thermo.State { return s.byID[id] }

// IDs returns the station numbers currently populated, for output ordering.
func (s *Stations) IDs() []StationID {
	ids := make([]StationID, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	return ids
}
