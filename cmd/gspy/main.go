// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gspy loads a YAML engine scenario, runs its design point followed
// by its off-design sweep, and writes the converged operating points to a
// CSV file. Mirrors gofem's flag-based, non-interactive main.go, minus the
// MPI startup/shutdown gofem's finite-element solves need and this
// single-process simulator does not.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wvisser1958/GSPy/scenario"
)

func main() {
	outPath := flag.String("out", "output.csv", "CSV file to write converged operating points to")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() < 1 {
		log.Fatal("usage: gspy [-out output.csv] [-v] <scenario.yaml>")
	}
	scenarioPath := flag.Arg(0)

	cfg, err := scenario.Load(scenarioPath)
	if err != nil {
		log.WithError(err).Fatal("loading scenario")
	}

	built, err := scenario.Build(cfg)
	if err != nil {
		log.WithError(err).Fatal("assembling scenario")
	}
	built.Sim.Log = log

	log.Info("running design point")
	if _, err := built.Engine.RunDP(); err != nil {
		log.WithError(err).Fatal("design point failed")
	}

	for point := 0; point < cfg.ODPoints; point++ {
		log.WithField("point", point).Info("running off-design point")
		if _, err := built.Engine.RunOD(point); err != nil {
			log.WithError(err).WithField("point", point).Fatal("off-design point failed to converge")
		}
	}

	if err := scenario.WriteCSV(built.Sim.Output, *outPath); err != nil {
		log.WithError(err).Fatal("writing output")
	}
	log.WithField("path", *outPath).Info("wrote output")
	os.Exit(0)
}
