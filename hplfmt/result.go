// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hplfmt provides a reader and writer for the result tables
// printed by the HPL (High-Performance Linpack) benchmark.
//
// HPL prints one table row per test, for example:
//
//	================================================================================
//	T/V                N    NB     P     Q               Time                 Gflops
//	--------------------------------------------------------------------------------
//	WR11C2R4       29184   192     2     2             243.65             6.8064e+01
//	HPL_pdgesv() start time Wed Jan  1 10:00:00 2020
//
//	HPL_pdgesv() end time   Wed Jan  1 10:04:03 2020
//
//	--------------------------------------------------------------------------------
//	||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   3.37840120e-03 ...... PASSED
//
// The Reader turns each row and the lines that follow it into a
// Result. Everything else in the log (the parameter echo, the
// legend, warnings) is ignored.
//
// This package is designed to be used with package hplproc, which
// groups and summarizes Results.
package hplfmt

import (
	"fmt"
	"time"
)

// A Result is a single HPL test run.
//
// Results returned by a Reader are freshly allocated and are never
// modified afterwards, so callers may retain them. Callers should
// treat a Result as a read-only value.
type Result struct {
	// Encoding is HPL's T/V column, which encodes the variant of
	// the factorization that was run (for example, "WR11C2R4").
	Encoding string

	// N is the problem size and NB the block size.
	N, NB int

	// P and Q are the process grid dimensions.
	P, Q int

	// Time is the wall-clock time of the solve, in seconds.
	Time float64

	// Gflops is the achieved rate, in Gflop/s.
	Gflops float64

	// Start and End are the solve's start and end times. They are
	// zero if the log does not print them.
	Start, End time.Time

	// Residual is the scaled residual of the first check line.
	// Checked reports whether any check line was read, and
	// Passed whether every check line read PASSED.
	Residual float64
	Checked  bool
	Passed   bool

	// fileName and line record where this Result was read from.
	fileName string
	line     int
}

// Pos returns the file name and line number of the table row a
// Result was read from. For Results that were not read from a file,
// it returns "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// String returns the table row of r with its columns labeled.
func (r *Result) String() string {
	return fmt.Sprintf("%s N=%d NB=%d P=%d Q=%d Time=%v Gflops=%v", r.Encoding, r.N, r.NB, r.P, r.Q, r.Time, r.Gflops)
}
