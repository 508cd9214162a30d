// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// OutputRow is one simulated operating point's named scalar results, keeping
// first-seen insertion order for the CSV writer's column ordering, mirroring
// GSPy's per-point fsys.output_dict plus its eventual append to OutputTable.
type OutputRow struct {
	Mode   string // "DP" or "OD"
	Point  int
	Order  []string
	Values map[string]float64
}

// Set stores a named value in the row, recording a new column name the first
// time it is seen.
func (r *OutputRow) Set(name string, v float64) {
	if _, ok := r.Values[name]; !ok {
		r.Order = append(r.Order, name)
	}
	r.Values[name] = v
}

// Get returns a previously set value, and whether it was present.
func (r *OutputRow) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// OutputCollector accumulates one OutputRow per simulated point, in the
// order the points were run, mirroring fsys.OutputTable.
type OutputCollector struct {
	Rows    []*OutputRow
	Columns []string
	seen    map[string]bool
}

// NewOutputCollector returns an empty collector.
func NewOutputCollector() *OutputCollector {
	return &OutputCollector{seen: make(map[string]bool)}
}

// NewOutputRow returns a freestanding, empty row not tracked by any
// collector, used for the Simulation's scratch row.
func NewOutputRow() *OutputRow {
	return &OutputRow{Values: make(map[string]float64)}
}

// NewRow starts a new output row for the given mode/point and appends it to
// the collector; Finalize later merges its columns into the collector-wide
// column order used by the CSV writer.
func (o *OutputCollector) NewRow(mode string, point int) *OutputRow {
	r := &OutputRow{Mode: mode, Point: point, Values: make(map[string]float64)}
	o.Rows = append(o.Rows, r)
	return r
}

// Finalize merges every row's column set into the collector's overall column
// order (first-seen across all rows), called once after all points have run
// and before writing output.
func (o *OutputCollector) Finalize() {
	for _, r := range o.Rows {
		for _, name := range r.Order {
			if !o.seen[name] {
				o.seen[name] = true
				o.Columns = append(o.Columns, name)
			}
		}
	}
}
