// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package turbomap implements the legacy Nc/Beta turbomachinery map file
// grammar, bicubic-interpolated lookup, and design-point scaling shared by
// every compressor, fan and turbine in the engine.
package turbomap

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/wvisser1958/GSPy/simerr"
)

// lineReader is a tiny line-at-a-time cursor over an open map file, mirroring
// the reference implementation's repeated file.readline() scanning: each
// section header is found by scanning forward from wherever the previous
// section left the cursor.
type lineReader struct {
	r   *bufio.Reader
	eof bool
}

func newLineReader(f *os.File) *lineReader {
	return &lineReader{r: bufio.NewReader(f)}
}

func (l *lineReader) next() (string, bool) {
	if l.eof {
		return "", false
	}
	line, err := l.r.ReadString('\n')
	if err == io.EOF {
		l.eof = true
		if line == "" {
			return "", false
		}
		return line, true
	}
	if err != nil {
		l.eof = true
		return "", false
	}
	return line, true
}

// seekKeyword advances the cursor until it reads a line containing keyword
// (case-insensitive), and returns that line.
func (l *lineReader) seekKeyword(keyword string) (string, error) {
	up := strings.ToUpper(keyword)
	for {
		line, ok := l.next()
		if !ok {
			return "", simerr.New(simerr.KindMapLoad, "", "seekKeyword", "keyword %q not found before EOF", keyword)
		}
		if strings.Contains(strings.ToUpper(line), up) {
			return line, nil
		}
	}
}

// readNcBetaCrossTable implements the legacy map grammar's repeated
// two-dimensional table section: a header line whose first token packs
// Nc-row-count and Beta-column-count, each plus one, as integer.fractional
// (e.g. "6.012" means 5 Nc rows, 11 beta columns), the Beta header values (wrapped across
// lines if needed), then one row per Nc value (again wrapped across lines if
// needed), terminated by a blank line.
func (l *lineReader) readNcBetaCrossTable(keyword string) (nc, beta []float64, vals [][]float64, err error) {
	if _, err = l.seekKeyword(keyword); err != nil {
		return nil, nil, nil, err
	}
	line, ok := l.next()
	if !ok {
		return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable", "unexpected EOF after %q header", keyword)
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable", "empty grid-size line for %q", keyword)
	}
	packed, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, nil, nil, simerr.Wrap(simerr.KindMapLoad, "", "readNcBetaCrossTable", err)
	}
	intPart, fracPart := math.Modf(packed)
	ncCount := int(math.Round(intPart)) - 1
	betaCount := int(math.Round(fracPart*1000)) - 1
	if ncCount <= 0 || betaCount <= 0 {
		return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable",
			"invalid packed grid size %g for %q", packed, keyword)
	}

	betaVals := parseFloats(fields[1:])
	for len(betaVals) < betaCount {
		line, ok = l.next()
		if !ok {
			return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable", "EOF while reading beta header for %q", keyword)
		}
		betaVals = append(betaVals, parseFloats(strings.Fields(line))...)
	}

	ncVals := make([]float64, ncCount)
	table := make([][]float64, ncCount)
	for row := 0; row < ncCount; row++ {
		line, ok = l.next()
		if !ok || strings.TrimSpace(line) == "" {
			return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable", "EOF/blank while reading row %d for %q", row, keyword)
		}
		fields = strings.Fields(line)
		nc, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, nil, simerr.Wrap(simerr.KindMapLoad, "", "readNcBetaCrossTable", err)
		}
		ncVals[row] = nc
		rowVals := parseFloats(fields[1:])
		for len(rowVals) < betaCount {
			line, ok = l.next()
			if !ok {
				return nil, nil, nil, simerr.New(simerr.KindMapLoad, "", "readNcBetaCrossTable", "EOF while reading row %d for %q", row, keyword)
			}
			rowVals = append(rowVals, parseFloats(strings.Fields(line))...)
		}
		table[row] = rowVals[:betaCount]
	}
	return ncVals, betaVals, table, nil
}

func parseFloats(fields []string) []float64 {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
