// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comp

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/simerr"
	"github.com/wvisser1958/GSPy/turbomap"
)

// DeterField selects which of a turbomachinery map's deterioration
// multipliers a MapModifier tunes.
type DeterField int

const (
	DeterWc DeterField = iota
	DeterEta
	DeterPR
)

// MapModifier ties one solver state to one map's deterioration multiplier,
// reconciled against one measured parameter, mirroring a single entry of
// GSPy's AMcontrol mapmod list.
type MapModifier struct {
	// MapFunc resolves the target map lazily rather than capturing it at
	// construction time: a turbomachinery component only populates its Map
	// field during its own first (DP) Run, which happens after this
	// modifier is built, so the pointer must be looked up fresh on use, not
	// cached up front.
	MapFunc func() *turbomap.Map
	Field   DeterField

	// Name identifies the modifier in output and error messages (e.g. "HPC").
	Name string

	// MeasuredParName is the AddOutput column this modifier's state is
	// reconciled against (e.g. "P3_" + compressor name).
	MeasuredParName string
	Tolerance       float64 // residual weight, GSPy's per-parameter tolerance

	// LowerPct/UpperPct bound the deterioration state as a percentage
	// deviation from 1 (e.g. -5, 2 allows 0.95..1.02); a violated bound adds
	// a quadratic penalty to this modifier's own residual.
	LowerPct, UpperPct float64

	istate, ierror int
	measDesValue   float64
}

func (m *MapModifier) set(value float64) {
	tm := m.MapFunc()
	if tm == nil {
		return
	}
	switch m.Field {
	case DeterWc:
		tm.SFWcDeter = value
	case DeterEta:
		tm.SFEtaDeter = value
	case DeterPR:
		tm.SFPRDeter = value
	}
}

// AdaptiveModel reconciles a gas turbine model against a table of measured
// operating points, tuning each turbomachinery map's deterioration
// multipliers (and optionally the power setting) so that model output
// matches measurement within tolerance at every point. Mirrors GSPy's
// AMcontrol / TAMcontrol.
type AdaptiveModel struct {
	CompName string

	MapMods []*MapModifier

	// PowerSettingParName, if non-empty, names the CSV column and the
	// AddOutput parameter (typically a shaft speed percentage, "N1%") used
	// to set the model's operating point at each measured OD point, closing
	// the loop the same way a Control's ODControlledParName does.
	PowerSettingParName string
	PowerSettingTol      float64
	SetPowerSetting      func(value float64)

	rows       map[int]map[string]float64
	pointOrder []int

	istatePower int
	ierrorPower int
	powerDesVal float64
}

// NewAdaptiveModel constructs an AdaptiveModel reading measured points from
// a CSV file, one row per OD point, columns named after the measured
// parameters (and the power-setting column, if used). The CSV must include
// a "Point" column matching the scenario's OD point index.
func NewAdaptiveModel(name, csvPath string, mapMods []*MapModifier) (*AdaptiveModel, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, simerr.New(simerr.KindConfig, name, "NewAdaptiveModel", "opening measured-points file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, simerr.New(simerr.KindConfig, name, "NewAdaptiveModel", "reading header: %v", err)
	}
	pointCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "Point") {
			pointCol = i
		}
	}
	if pointCol < 0 {
		return nil, simerr.New(simerr.KindConfig, name, "NewAdaptiveModel", "measured-points file has no Point column")
	}

	rows := make(map[int]map[string]float64)
	var order []int
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		point, err := strconv.Atoi(strings.TrimSpace(rec[pointCol]))
		if err != nil {
			return nil, simerr.New(simerr.KindConfig, name, "NewAdaptiveModel", "non-integer Point value %q", rec[pointCol])
		}
		row := make(map[string]float64, len(header))
		for i, h := range header {
			if i == pointCol || i >= len(rec) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				continue
			}
			row[strings.TrimSpace(h)] = v
		}
		rows[point] = row
		order = append(order, point)
	}

	return &AdaptiveModel{
		CompName: name, MapMods: mapMods,
		rows: rows, pointOrder: order,
		istatePower: -1, ierrorPower: -1,
	}, nil
}

// Name returns the adaptive model's configured name.
func (a *AdaptiveModel) Name() string { return a.CompName }

func (a *AdaptiveModel) measuredRow(point int) (map[string]float64, error) {
	row, ok := a.rows[point]
	if !ok {
		return nil, simerr.New(simerr.KindConfig, a.CompName, "Run", "no measured row for point %d", point)
	}
	return row, nil
}

// Run resets every map modifier's deterioration factor to 1 at DP, or sets
// it (and the power setting, if configured) from the current solver state
// at OD, mirroring AMcontrol's reset_mapmods/set_mapmods_from_states.
func (a *AdaptiveModel) Run(s *sim.Simulation) error {
	if s.Mode == sim.DP {
		for _, mm := range a.MapMods {
			mm.set(1)
		}
		return nil
	}

	row, err := a.measuredRow(s.Point)
	if err != nil {
		return err
	}
	for _, mm := range a.MapMods {
		mm.set(s.States[mm.istate])
	}
	if a.PowerSettingParName != "" && a.SetPowerSetting != nil {
		if v, ok := row[a.PowerSettingParName]; ok {
			a.SetPowerSetting(v)
		}
	}
	return nil
}

// PostRun registers one state/error pair per map modifier (plus, if
// configured, one for the power setting) at DP, capturing each parameter's
// design value from the live scratch row; at OD it computes the
// tolerance-weighted reconciliation residuals against the measured row and
// adds a quadratic penalty to any modifier whose state has strayed outside
// its design bounds. Mirrors AMcontrol.PostRun.
func (a *AdaptiveModel) PostRun(s *sim.Simulation) error {
	if s.Mode == sim.DP {
		for _, mm := range a.MapMods {
			mm.istate = s.NewStateVar(1)
			mm.ierror = s.NewErrorVar()
			v, ok := s.Scratch.Get(mm.MeasuredParName)
			if !ok {
				return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "measured parameter %q not found in output", mm.MeasuredParName)
			}
			mm.measDesValue = v
		}
		if a.PowerSettingParName != "" {
			a.istatePower = s.NewStateVar(1)
			a.ierrorPower = s.NewErrorVar()
			v, ok := s.Scratch.Get(a.PowerSettingParName)
			if !ok {
				return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "power setting parameter %q not found in output", a.PowerSettingParName)
			}
			a.powerDesVal = v
		}
		return nil
	}

	row, err := a.measuredRow(s.Point)
	if err != nil {
		return err
	}
	for _, mm := range a.MapMods {
		measured, ok := row[mm.MeasuredParName]
		if !ok {
			return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "measured point %d has no column %q", s.Point, mm.MeasuredParName)
		}
		v, ok := s.Scratch.Get(mm.MeasuredParName)
		if !ok {
			return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "measured parameter %q not found in output", mm.MeasuredParName)
		}
		desVal := mm.measDesValue
		if desVal == 0 {
			desVal = 1
		}
		residual := mm.Tolerance * (v - measured) / desVal

		lower, upper := 1+mm.LowerPct/100, 1+mm.UpperPct/100
		state := s.States[mm.istate]
		if state < lower {
			residual += (state - lower) * (state - lower)
		} else if state > upper {
			residual += (state - upper) * (state - upper)
		}
		s.Errors[mm.ierror] = residual
	}

	if a.PowerSettingParName != "" {
		measured, ok := row[a.PowerSettingParName]
		if !ok {
			return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "measured point %d has no column %q", s.Point, a.PowerSettingParName)
		}
		v, ok := s.Scratch.Get(a.PowerSettingParName)
		if !ok {
			return simerr.New(simerr.KindConfig, a.CompName, "PostRun", "power setting parameter %q not found in output", a.PowerSettingParName)
		}
		desVal := a.powerDesVal
		if desVal == 0 {
			desVal = 1
		}
		s.Errors[a.ierrorPower] = (measured - v) / desVal
	}
	return nil
}

// AddOutput reports every map modifier's resolved deterioration state.
func (a *AdaptiveModel) AddOutput(s *sim.Simulation, row *sim.OutputRow) {
	for _, mm := range a.MapMods {
		val := 1.0
		if mm.istate >= 0 {
			val = s.States[mm.istate]
		}
		row.Set(fmt.Sprintf("Deter_%s_%s", a.CompName, mm.Name), val)
	}
}
