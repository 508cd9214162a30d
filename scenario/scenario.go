// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenario loads a YAML engine description, wires it into a
// comp/sim component graph and solve.Engine, and writes converged output
// rows to CSV. It is the thin, non-interactive collaborator boundary: no
// component physics lives here, only assembly and I/O. Grounded on
// sagostin-goefidash's yaml.v3 config loading and encoding/csv logging.
package scenario

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wvisser1958/GSPy/comp"
	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/simerr"
	"github.com/wvisser1958/GSPy/solve"
	"github.com/wvisser1958/GSPy/turbomap"
)

// ComponentSpec is a sparse union of every component kind's construction
// parameters, discriminated by Type. Only the fields relevant to Type need
// be set in the YAML; the rest are left at their zero value.
type ComponentSpec struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`

	StationIn    int `yaml:"station_in"`
	StationOut   int `yaml:"station_out"`
	StationThroat int `yaml:"station_throat"`
	StationOutDuct int `yaml:"station_out_duct"`

	// ambient
	Altitude float64  `yaml:"altitude"`
	Mach     float64  `yaml:"mach"`
	DTs      float64  `yaml:"dts"`
	Psa      *float64 `yaml:"psa"`
	Tsa      *float64 `yaml:"tsa"`

	// inlet / duct / exhaust diffuser / combustor
	Wdes  float64 `yaml:"wdes"`
	PRdes float64 `yaml:"prdes"`

	// turbomachinery (compressor/fan/turbine)
	MapFile       string  `yaml:"map_file"`
	MapFileCore   string  `yaml:"map_file_core"`
	MapFileDuct   string  `yaml:"map_file_duct"`
	Ncmapdes      float64 `yaml:"ncmapdes"`
	Betamapdes    float64 `yaml:"betamapdes"`
	NcmapdesCore  float64 `yaml:"ncmapdes_core"`
	BetamapdesCore float64 `yaml:"betamapdes_core"`
	NcmapdesDuct  float64 `yaml:"ncmapdes_duct"`
	BetamapdesDuct float64 `yaml:"betamapdes_duct"`
	ShaftNr       int     `yaml:"shaft_nr"`
	Ndes          float64 `yaml:"ndes"`
	Etades        float64 `yaml:"etades"`
	EtadesCore    float64 `yaml:"etades_core"`
	EtadesDuct    float64 `yaml:"etades_duct"`
	PRdesCore     float64 `yaml:"prdes_core"`
	PRdesDuct     float64 `yaml:"prdes_duct"`
	BPRdes        float64 `yaml:"bprdes"`
	Etamechdes    float64 `yaml:"etamechdes"`
	PRdesInput    float64 `yaml:"prdes_input"`
	TurbineType   string  `yaml:"turbine_type"` // "GG" or "PT"
	CoolingFlows  []string `yaml:"cooling_flows"` // names of cooling-flow components feeding this turbine

	// variable-geometry compressor
	MapAngles   []MapAngleSpec `yaml:"map_angles"`
	DesignAngle float64        `yaml:"design_angle"`

	// combustor
	Wfdes      float64 `yaml:"wfdes"`
	Texitdes   float64 `yaml:"texitdes"`
	FuelMode   string  `yaml:"fuel_mode"` // "lhv" or "composition"
	LHVdes     float64 `yaml:"lhvdes"`
	HCratiodes float64 `yaml:"hcratiodes"`
	OCratiodes float64 `yaml:"ocratiodes"`
	Tfuel      float64 `yaml:"tfuel"`

	// exhaust nozzle
	CXdes float64 `yaml:"cxdes"`
	CVdes float64 `yaml:"cvdes"`
	CDdes float64 `yaml:"cddes"`

	// bleed / cooling flow
	BleedFractionDes float64 `yaml:"bleed_fraction_des"`
	DPfactor         float64 `yaml:"dpfactor"`
	WFraction        float64 `yaml:"w_fraction"`
	WTurEffFraction  float64 `yaml:"w_tur_eff_fraction"`
	StationBleed     int     `yaml:"station_bleed"`
	Rexit            float64 `yaml:"rexit"`       // cooling flow re-entry radius, m; 0 disables tangential pumping
	DPfraction       float64 `yaml:"dp_fraction"` // fraction of remaining turbine pressure head the cooling flow re-expands through

	// control
	DPInputValue         float64 `yaml:"dp_input_value"`
	ODStart              float64 `yaml:"od_start"`
	ODEnd                float64 `yaml:"od_end"`
	ODStep               float64 `yaml:"od_step"`
	ODControlledParName  string  `yaml:"od_controlled_par_name"`
	ControlName          string  `yaml:"control"` // name of a control component this gaspath component reads its input from

	// adaptive model
	MeasurementsFile string          `yaml:"measurements_file"`
	MapModifiers     []MapModifierSpec `yaml:"map_modifiers"`
	PowerSettingParName string       `yaml:"power_setting_par_name"`
}

// MapAngleSpec names one map file in a variable-geometry compressor's map
// family and the angle it applies at.
type MapAngleSpec struct {
	Angle float64 `yaml:"angle"`
	File  string  `yaml:"file"`
}

// MapModifierSpec names one deterioration-factor state an AdaptiveModel
// component registers, tied to a turbomachinery component's map by name.
type MapModifierSpec struct {
	Component       string  `yaml:"component"`
	Map             string  `yaml:"map"` // "" / "core" / "duct", for Fan's two maps
	Field           string  `yaml:"field"` // "wc", "eta" or "pr"
	Name            string  `yaml:"name"`
	MeasuredParName string  `yaml:"measured_par_name"`
	Tolerance       float64 `yaml:"tolerance"`
	LowerPct        float64 `yaml:"lower_pct"`
	UpperPct        float64 `yaml:"upper_pct"`
}

// Config is the top-level YAML scenario description: an ordered component
// list (run in gas-path order every pass) and how many off-design points to
// sweep.
type Config struct {
	Components []ComponentSpec `yaml:"components"`
	ODPoints   int             `yaml:"od_points"`
}

// Load parses a YAML scenario file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, simerr.New(simerr.KindConfig, "", "Load", "reading scenario file: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, simerr.New(simerr.KindConfig, "", "Load", "parsing scenario YAML: %v", err)
	}
	return &cfg, nil
}

// Built is the assembled simulation: the engine ready to run, plus the
// controls (if any) a caller may want to reach directly
// (e.g. to report the OD sweep's point count).
type Built struct {
	Sim    *sim.Simulation
	Engine *solve.Engine
	Controls map[string]*comp.Control
}

// Build assembles a Config into a runnable Engine, constructing one
// concrete comp.Component per ComponentSpec in declaration order (which
// must already be gas-path order: every component's Run depends on its
// upstream station already being set this pass).
func Build(cfg *Config) (*Built, error) {
	s := sim.New()
	built := &Built{Sim: s, Controls: make(map[string]*comp.Control)}

	byName := make(map[string]comp.Component)
	coolingByName := make(map[string]*comp.CoolingFlow)
	var components []solve.Component

	for _, spec := range cfg.Components {
		c, err := buildOne(spec, byName, coolingByName)
		if err != nil {
			return nil, err
		}
		byName[spec.Name] = c
		if ctl, ok := c.(*comp.Control); ok {
			built.Controls[spec.Name] = ctl
		}
		if cf, ok := c.(*comp.CoolingFlow); ok {
			coolingByName[spec.Name] = cf
		}
		components = append(components, c)
	}

	// Second pass: wire GasPath.Control references now that every Control
	// has been constructed, regardless of declaration order.
	for _, spec := range cfg.Components {
		if spec.ControlName == "" {
			continue
		}
		ctl, ok := built.Controls[spec.ControlName]
		if !ok {
			return nil, simerr.New(simerr.KindConfig, spec.Name, "Build", "control %q not found", spec.ControlName)
		}
		gp, ok := byName[spec.Name].(interface{ SetControl(*comp.Control) })
		if ok {
			gp.SetControl(ctl)
		}
	}

	built.Engine = solve.NewEngine(s, components)
	return built, nil
}

func buildOne(spec ComponentSpec, byName map[string]comp.Component, coolingByName map[string]*comp.CoolingFlow) (comp.Component, error) {
	switch spec.Type {
	case "ambient":
		return comp.NewAmbient(spec.Name, sim.StationID(spec.StationOut), spec.Altitude, spec.Mach, spec.DTs, spec.Psa, spec.Tsa), nil

	case "inlet":
		return comp.NewInlet(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.Wdes, spec.PRdes), nil

	case "duct":
		return comp.NewDuct(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.PRdes), nil

	case "compressor":
		return comp.NewCompressor(spec.Name, spec.MapFile, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.ShaftNr,
			spec.Ncmapdes, spec.Betamapdes, spec.Ndes, spec.Etades, spec.PRdes), nil

	case "vgcompressor":
		mapFiles := make(map[float64]string, len(spec.MapAngles))
		for _, ma := range spec.MapAngles {
			mapFiles[ma.Angle] = ma.File
		}
		return comp.NewVGCompressor(spec.Name, mapFiles, spec.DesignAngle, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.ShaftNr,
			spec.Ncmapdes, spec.Betamapdes, spec.Ndes, spec.Etades, spec.PRdes), nil

	case "fan":
		return comp.NewFan(spec.Name, spec.MapFileCore, spec.MapFileDuct, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), sim.StationID(spec.StationOutDuct),
			spec.ShaftNr, spec.Ndes, spec.EtadesCore, spec.BPRdes,
			spec.NcmapdesCore, spec.BetamapdesCore, spec.PRdesCore,
			spec.NcmapdesDuct, spec.BetamapdesDuct, spec.PRdesDuct, spec.EtadesDuct), nil

	case "combustor":
		switch spec.FuelMode {
		case "composition":
			return comp.NewCombustorComposition(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut),
				spec.PRdes, spec.Etades, spec.Wfdes, spec.Texitdes, spec.Tfuel), nil
		default:
			return comp.NewCombustorLHV(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut),
				spec.PRdes, spec.Etades, spec.Wfdes, spec.Texitdes, spec.LHVdes, spec.HCratiodes, spec.OCratiodes), nil
		}

	case "turbine":
		typ := comp.TurbineGG
		if spec.TurbineType == "PT" {
			typ = comp.TurbinePT
		}
		var cooling []*comp.CoolingFlow
		for _, n := range spec.CoolingFlows {
			cf, ok := coolingByName[n]
			if !ok {
				return nil, simerr.New(simerr.KindConfig, spec.Name, "Build", "cooling flow %q not found (declare it earlier)", n)
			}
			cooling = append(cooling, cf)
		}
		return comp.NewTurbine(spec.Name, spec.MapFile, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.ShaftNr,
			spec.Ndes, spec.Etades, spec.Ncmapdes, spec.Betamapdes, spec.Etamechdes, spec.PRdesInput, typ, cooling), nil

	case "exhaustnozzle":
		return comp.NewExhaustNozzle(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationThroat), sim.StationID(spec.StationOut),
			spec.CXdes, spec.CVdes, spec.CDdes), nil

	case "exhaustdiffuser":
		return comp.NewExhaustDiffuser(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationThroat), sim.StationID(spec.StationOut), spec.PRdes), nil

	case "bleed":
		return comp.NewBleedFlow(spec.Name, sim.StationID(spec.StationIn), sim.StationID(spec.StationOut), spec.ShaftNr, spec.BleedFractionDes, spec.DPfactor), nil

	case "cooling":
		return comp.NewCoolingFlow(spec.Name, sim.StationID(spec.StationBleed), spec.WFraction, spec.WTurEffFraction, spec.Rexit, spec.DPfraction), nil

	case "shaft":
		return comp.NewShaft(spec.Name, spec.ShaftNr, spec.Ndes), nil

	case "control":
		return comp.NewControl(spec.Name, spec.DPInputValue, spec.ODStart, spec.ODEnd, spec.ODStep, spec.ODControlledParName)

	case "adaptive":
		mods, err := buildMapModifiers(spec.MapModifiers, byName)
		if err != nil {
			return nil, err
		}
		a, err := comp.NewAdaptiveModel(spec.Name, spec.MeasurementsFile, mods)
		if err != nil {
			return nil, err
		}
		a.PowerSettingParName = spec.PowerSettingParName
		return a, nil

	default:
		return nil, simerr.New(simerr.KindConfig, spec.Name, "Build", "unknown component type %q", spec.Type)
	}
}

func buildMapModifiers(specs []MapModifierSpec, byName map[string]comp.Component) ([]*comp.MapModifier, error) {
	var mods []*comp.MapModifier
	for _, ms := range specs {
		host, ok := byName[ms.Component]
		if !ok {
			return nil, simerr.New(simerr.KindConfig, ms.Component, "buildMapModifiers", "component %q not found (declare it before the adaptive model)", ms.Component)
		}
		mapFunc, err := mapFuncOf(host, ms.Map)
		if err != nil {
			return nil, err
		}
		var field comp.DeterField
		switch ms.Field {
		case "eta":
			field = comp.DeterEta
		case "pr":
			field = comp.DeterPR
		default:
			field = comp.DeterWc
		}
		mods = append(mods, &comp.MapModifier{
			MapFunc: mapFunc, Field: field, Name: ms.Name,
			MeasuredParName: ms.MeasuredParName, Tolerance: ms.Tolerance,
			LowerPct: ms.LowerPct, UpperPct: ms.UpperPct,
		})
	}
	return mods, nil
}

// mapFuncOf returns a closure resolving the turbomachinery map an
// adaptive-model modifier should tune, fresh on each call since the map is
// only populated by the host component's first (DP) Run, which happens
// after the modifier is built. which selects between a Fan's two
// independent maps ("core"/"duct"); it is ignored for single-map
// components.
func mapFuncOf(host comp.Component, which string) (func() *turbomap.Map, error) {
	switch h := host.(type) {
	case *comp.Compressor:
		return func() *turbomap.Map { return h.Map }, nil
	case *comp.Turbine:
		return func() *turbomap.Map { return h.Map }, nil
	case *comp.VGCompressor:
		return func() *turbomap.Map {
			if h.Maps == nil {
				return nil
			}
			return h.Maps.Design
		}, nil
	case *comp.Fan:
		if which == "duct" {
			return func() *turbomap.Map { return h.MapDuct }, nil
		}
		return func() *turbomap.Map { return h.MapCore }, nil
	default:
		return nil, simerr.New(simerr.KindConfig, host.Name(), "mapFuncOf", "component does not carry a turbomachinery map")
	}
}
