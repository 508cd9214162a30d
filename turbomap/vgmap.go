// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbomap

import (
	"math"
	"sort"

	"github.com/wvisser1958/GSPy/simerr"
)

// VGMapSet is a family of legacy maps keyed by a variable-geometry angle
// (VSV/VIGV stagger, VBV position, ...), one of which is designated the
// design-point map. GetScaledMapPerformance linearly interpolates between
// the two maps bracketing the current angle, holding the nearest map's
// performance beyond either end of the family. Mirrors GSPy's
// TTurboComponent.maps_by_angle / GetTurboMapPerformance.
type VGMapSet struct {
	Angles []float64 // ascending, parallel to Maps
	Maps   []*Map
	Design *Map
}

// NewVGMapSet loads one legacy map per angle and designates the map at
// designAngle (within 1e-6) as the design-point scaling map, the way GSPy's
// constructor requires designAngle to match one of the supplied angles.
func NewVGMapSet(files map[float64]string, kind Kind, designAngle float64) (*VGMapSet, error) {
	angles := make([]float64, 0, len(files))
	for a := range files {
		angles = append(angles, a)
	}
	sort.Float64s(angles)

	vg := &VGMapSet{}
	for _, a := range angles {
		m, err := LoadLegacyMap(files[a], kind)
		if err != nil {
			return nil, err
		}
		vg.Angles = append(vg.Angles, a)
		vg.Maps = append(vg.Maps, m)
		if math.Abs(a-designAngle) <= 1e-6 {
			vg.Design = m
		}
	}
	if vg.Design == nil {
		return nil, simerr.New(simerr.KindConfig, "", "NewVGMapSet", "design angle %g does not match any map angle", designAngle)
	}
	return vg, nil
}

// SetScaling scales the design-angle map to the host's design point, then
// copies the same four scaling factors onto every other angle's map without
// re-deriving them, mirroring ReadTurboMapAndSetScaling's "scale the design
// map, copy the scaling factors to the others" approach.
func (vg *VGMapSet) SetScaling(Ncmapdes, Betamapdes, Ncdes, Wcdes, PRdes, Etades float64) error {
	if err := vg.Design.SetScaling(Ncmapdes, Betamapdes, Ncdes, Wcdes, PRdes, Etades); err != nil {
		return err
	}
	for _, m := range vg.Maps {
		if m == vg.Design {
			continue
		}
		m.Ncmapdes, m.Betamapdes = Ncmapdes, Betamapdes
		m.SFNc, m.SFWc, m.SFPR, m.SFEta = vg.Design.SFNc, vg.Design.SFWc, vg.Design.SFPR, vg.Design.SFEta
		m.SFWcDeter, m.SFEtaDeter, m.SFPRDeter = 1, 1, 1
	}
	return nil
}

// GetScaledMapPerformance evaluates the two maps bracketing angle at
// (Nc, betaState) and linearly interpolates their Wc/PR/Eta on angle.
func (vg *VGMapSet) GetScaledMapPerformance(angle, Nc, betaState float64) (Wc, PR, Eta float64, err error) {
	i := sort.SearchFloat64s(vg.Angles, angle)
	if i == 0 {
		return vg.Maps[0].GetScaledMapPerformance(Nc, betaState)
	}
	if i == len(vg.Angles) {
		return vg.Maps[len(vg.Maps)-1].GetScaledMapPerformance(Nc, betaState)
	}

	a0, a1 := vg.Angles[i-1], vg.Angles[i]
	Wc0, PR0, Eta0, err := vg.Maps[i-1].GetScaledMapPerformance(Nc, betaState)
	if err != nil {
		return 0, 0, 0, err
	}
	Wc1, PR1, Eta1, err := vg.Maps[i].GetScaledMapPerformance(Nc, betaState)
	if err != nil {
		return 0, 0, 0, err
	}

	w := (angle - a0) / (a1 - a0)
	Wc = (1-w)*Wc0 + w*Wc1
	PR = (1-w)*PR0 + w*PR1
	Eta = (1-w)*Eta0 + w*Eta1
	return Wc, PR, Eta, nil
}
