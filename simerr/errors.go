// Copyright 2016 The GSPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simerr defines the typed error kinds raised across the simulation
// engine. Every kind wraps a gosl/chk-formatted message so call sites can both
// errors.As on the kind and get the usual chk-style formatted text.
package simerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies which of the five error categories a Error belongs to.
type Kind int

const (
	// KindMapLoad marks a failure to parse or scale a turbomachinery map file.
	KindMapLoad Kind = iota

	// KindEosConvergence marks a failure of the thermo EOS to converge a
	// T-from-H, T-from-S or equilibration solve.
	KindEosConvergence

	// KindInnerRootFailure marks a failure of a component-local 1-D root
	// find (combustor Wf-for-Texit, nozzle throat pressure, turbine
	// PR-for-power).
	KindInnerRootFailure

	// KindNewtonKrylovNonConvergence marks a failure of the outer
	// matrix-free Newton-Krylov solver to drive the state/error vectors to
	// zero within the configured iteration budget.
	KindNewtonKrylovNonConvergence

	// KindConfig marks a malformed or inconsistent scenario/component
	// configuration discovered before or during assembly.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindMapLoad:
		return "MapLoadError"
	case KindEosConvergence:
		return "EosConvergence"
	case KindInnerRootFailure:
		return "InnerRootFailure"
	case KindNewtonKrylovNonConvergence:
		return "NewtonKrylovNonConvergence"
	case KindConfig:
		return "ConfigError"
	default:
		return "UnknownError"
	}
}

// Error is the concrete type returned for all five error kinds. Component and
// Where identify, respectively, the component instance name (if any) and the
// operation that failed, so a single log line is enough to locate the fault
// without re-running under a debugger.
type Error struct {
	Kind      Kind
	Component string
	Where     string
	Cause     error
}

func (e *Error) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s: %s[%s]: %v", e.Kind, e.Where, e.Component, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Where, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, simerr.MapLoad) instead of type-asserting by hand.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Component == "" && t.Where == ""
}

// sentinel values usable with errors.Is(err, simerr.MapLoad) etc.
var (
	MapLoad                = &Error{Kind: KindMapLoad}
	EosConvergence          = &Error{Kind: KindEosConvergence}
	InnerRootFailure        = &Error{Kind: KindInnerRootFailure}
	NewtonKrylovNonConverge = &Error{Kind: KindNewtonKrylovNonConvergence}
	Config                  = &Error{Kind: KindConfig}
)

// New builds a *Error of the given kind, formatting the message the way
// gosl/chk.Err does (printf-style) and storing it as Cause.
func New(kind Kind, component, where, msg string, args ...interface{}) *Error {
	return &Error{
		Kind:      kind,
		Component: component,
		Where:     where,
		Cause:     chk.Err(msg, args...),
	}
}

// Wrap builds a *Error of the given kind around an already-existing error,
// preserving it as Cause so errors.Unwrap still reaches the root cause.
func Wrap(kind Kind, component, where string, cause error) *Error {
	return &Error{Kind: kind, Component: component, Where: where, Cause: cause}
}
