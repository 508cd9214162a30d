// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenario

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/wvisser1958/GSPy/sim"
	"github.com/wvisser1958/GSPy/simerr"
)

// WriteCSV writes every converged row the output collector has accumulated
// (DP first, then each OD point in run order) to path, one column per named
// result plus leading Mode/Point columns. Mirrors GSPy's OutputTable.to_csv,
// using encoding/csv the way sagostin-goefidash's trip logger does.
func WriteCSV(o *sim.OutputCollector, path string) error {
	o.Finalize()

	f, err := os.Create(path)
	if err != nil {
		return simerr.New(simerr.KindConfig, "", "WriteCSV", "creating output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"Mode", "Point"}, o.Columns...)
	if err := w.Write(header); err != nil {
		return simerr.New(simerr.KindConfig, "", "WriteCSV", "writing header: %v", err)
	}

	for _, row := range o.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.Mode, strconv.Itoa(row.Point))
		for _, col := range o.Columns {
			v, ok := row.Get(col)
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return simerr.New(simerr.KindConfig, "", "WriteCSV", "writing row: %v", err)
		}
	}
	return nil
}
