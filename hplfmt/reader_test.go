// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

func parseAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		switch rec := r.Result(); rec := rec.(type) {
		case *Result:
			res := *rec
			// Wipe position information for comparisons.
			res.fileName = ""
			res.line = 0
			out = append(out, &res)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected result type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func printRecord(w io.Writer, r Record) {
	switch r := r.(type) {
	case *Result:
		fmt.Fprintf(w, "%s", r)
		if !r.Start.IsZero() || !r.End.IsZero() {
			fmt.Fprintf(w, " [%s, %s]", r.Start.Format(time.ANSIC), r.End.Format(time.ANSIC))
		}
		if r.Checked {
			fmt.Fprintf(w, " residual=%v passed=%v", r.Residual, r.Passed)
		}
		fmt.Fprintf(w, "\n")
	case *SyntaxError:
		fmt.Fprintf(w, "SyntaxError: %s\n", r)
	default:
		panic(fmt.Sprintf("unknown record type %T", r))
	}
}

type resultBuilder struct {
	res *Result
}

func r(enc string, n, nb, p, q int, tm, gflops float64) *resultBuilder {
	return &resultBuilder{
		&Result{Encoding: enc, N: n, NB: nb, P: p, Q: q, Time: tm, Gflops: gflops},
	}
}

func (b *resultBuilder) times(start, end string) *resultBuilder {
	b.res.Start = mustTime(start)
	b.res.End = mustTime(end)
	return b
}

func (b *resultBuilder) check(residual float64, passed bool) *resultBuilder {
	b.res.Residual = residual
	b.res.Checked = true
	b.res.Passed = passed
	return b
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.ANSIC, s)
	if err != nil {
		panic(err)
	}
	return t
}

func compareRecords(t *testing.T, got, want []Record) {
	t.Helper()
	var diff bytes.Buffer
	for i := 0; i < len(got) || i < len(want); i++ {
		if i >= len(got) {
			fmt.Fprintf(&diff, "[%d] got: none, want:\n", i)
			printRecord(&diff, want[i])
		} else if i >= len(want) {
			fmt.Fprintf(&diff, "[%d] want: none, got:\n", i)
			printRecord(&diff, got[i])
		} else if !reflect.DeepEqual(got[i], want[i]) {
			fmt.Fprintf(&diff, "[%d] got:\n", i)
			printRecord(&diff, got[i])
			fmt.Fprintf(&diff, "[%d] want:\n", i)
			printRecord(&diff, want[i])
		}
	}
	if diff.Len() != 0 {
		t.Error(diff.String())
	}
}

const hpl23 = `================================================================================
HPLinpack 2.3  --  High-Performance Linpack benchmark  --   December 2, 2018
================================================================================

The following parameter values will be used:

N      :   29184
NB     :     192    256
PMAP   : Row-major process mapping
P      :       2
Q      :       2

================================================================================
T/V                N    NB     P     Q               Time                 Gflops
--------------------------------------------------------------------------------
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
HPL_pdgesv() start time Wed Jan  1 10:00:00 2020

HPL_pdgesv() end time   Wed Jan  1 10:04:03 2020

--------------------------------------------------------------------------------
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   3.37840120e-03 ...... PASSED
================================================================================
T/V                N    NB     P     Q               Time                 Gflops
--------------------------------------------------------------------------------
WR11C2R4       29184   256     2     2             231.20             7.1730e+01
HPL_pdgesv() start time Wed Jan  1 10:04:10 2020

HPL_pdgesv() end time   Wed Jan  1 10:08:01 2020

--------------------------------------------------------------------------------
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   2.91522004e-03 ...... PASSED
================================================================================

Finished      2 tests with the following results:
              2 tests completed and passed residual checks,
              0 tests completed and failed residual checks,
              0 tests skipped because of illegal input values.
--------------------------------------------------------------------------------

End of Tests.
================================================================================
`

// hplPreamble is the banner, legend and parameter echo HPL prints
// before its first results table.
const hplPreamble = `================================================================================
HPLinpack 2.3  --  High-Performance Linpack benchmark  --   December 2, 2018
Written by A. Petitet and R. Clint Whaley,  Innovative Computing Laboratory, UTK
Modified by Piotr Luszczek, Innovative Computing Laboratory, UTK
Modified by Julien Langou, University of Colorado Denver
================================================================================

An explanation of the input/output parameters follows:
T/V    : Wall time / encoded variant.
N      : The order of the coefficient matrix A.
NB     : The partitioning blocking factor.
P      : The number of process rows.
Q      : The number of process columns.
Time   : Time in seconds to solve the linear system.
Gflops : Rate of execution for solving the linear system.

The following parameter values will be used:

N      :   29184
NB     :     192
PMAP   : Row-major process mapping
P      :       2
Q      :       2
PFACT  :   Right
NBMIN  :       4
NDIV   :       2
RFACT  :   Crout
BCAST  :  1ringM
DEPTH  :       1
SWAP   : Mix (threshold = 64)
L1     : transposed form
U      : transposed form
EQUIL  : yes
ALIGN  : 8 double precision words

--------------------------------------------------------------------------------

- The matrix A is randomly generated for each test.
- The following scaled residual check will be computed:
      ||Ax-b||_oo / ( eps * ( || x ||_oo * || A ||_oo + || b ||_oo ) * N )
- The relative machine precision (eps) is taken to be               1.110223e-16
- Computational tests pass if scaled residuals are less than                16.0

`

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []Record
	}
	for _, test := range []testCase{
		{
			"hpl 2.3",
			hpl23,
			[]Record{
				r("WR11C2R4", 29184, 192, 2, 2, 243.65, 68.064).
					times("Wed Jan  1 10:00:00 2020", "Wed Jan  1 10:04:03 2020").
					check(3.37840120e-03, true).res,
				r("WR11C2R4", 29184, 256, 2, 2, 231.20, 71.730).
					times("Wed Jan  1 10:04:10 2020", "Wed Jan  1 10:08:01 2020").
					check(2.91522004e-03, true).res,
			},
		},
		{
			"no timestamps",
			`T/V                N    NB     P     Q               Time             Gflops
--------------------------------------------------------------------------------
WR00L2L2        1000     4     1     1               0.10          6.702e+00
WR00L2L4        1000     4     1     1               0.09          7.447e+00
`,
			[]Record{
				r("WR00L2L2", 1000, 4, 1, 1, 0.10, 6.702).res,
				r("WR00L2L4", 1000, 4, 1, 1, 0.09, 7.447).res,
			},
		},
		{
			"hpl 1.0 checks",
			`T/V                N    NB     P     Q               Time             Gflops
--------------------------------------------------------------------------------
WR00L2L2        1000     4     1     1               0.10          6.702e+00
--------------------------------------------------------------------------------
||Ax-b||_oo / ( eps * ||A||_1  * N        ) =        0.0345672 ...... PASSED
||Ax-b||_oo / ( eps * ||A||_1  * ||x||_1  ) =        0.0123456 ...... FAILED
||Ax-b||_oo / ( eps * ||A||_oo * ||x||_oo ) =        0.0045678 ...... PASSED
`,
			[]Record{
				r("WR00L2L2", 1000, 4, 1, 1, 0.10, 6.702).check(0.0345672, false).res,
			},
		},
		{
			"outside table",
			`WR11C2R4       29184   192     2     2             243.65             6.8064e+01
T/V                N    NB     P     Q               Time                 Gflops
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
Finished      1 tests with the following results:
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
`,
			[]Record{
				r("WR11C2R4", 29184, 192, 2, 2, 243.65, 68.064).res,
			},
		},
		{
			"legend",
			hplPreamble + `================================================================================
T/V                N    NB     P     Q               Time                 Gflops
--------------------------------------------------------------------------------
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
`,
			[]Record{
				r("WR11C2R4", 29184, 192, 2, 2, 243.65, 68.064).res,
			},
		},
		{
			"stray lines",
			`T/V                N    NB     P     Q               Time                 Gflops
Gflops : Rate of execution for solving the linear system.
HPL_pdgesv() start time Wed Jan  1 10:00:00 2020
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   3.37840120e-03 ...... PASSED
Column=000000192 Fraction=0.005 Gflops=5.066e+04
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
`,
			[]Record{
				r("WR11C2R4", 29184, 192, 2, 2, 243.65, 68.064).res,
			},
		},
		{
			"syntax errors",
			`T/V                N    NB     P     Q               Time                 Gflops
WR11C2R4       29x84   192     2     2             243.65             6.8064e+01
WR11C2R4       29184   192     2     2             24?.65             6.8064e+01
WR11C2R4       29184   192     2     2             243.65             6.8064e+01
HPL_pdgesv() start time yesterday
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   3.37840120e-03 ...... MAYBE
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   x ...... PASSED
||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)
`,
			[]Record{
				&SyntaxError{"test", 2, "parsing N: invalid syntax"},
				&SyntaxError{"test", 3, "parsing Time: invalid syntax"},
				&SyntaxError{"test", 5, `parsing time "yesterday"`},
				&SyntaxError{"test", 6, `unknown residual verdict "MAYBE"`},
				&SyntaxError{"test", 7, "parsing residual: invalid syntax"},
				&SyntaxError{"test", 8, "malformed residual check"},
				r("WR11C2R4", 29184, 192, 2, 2, 243.65, 68.064).res,
			},
		},
		{
			"empty",
			"",
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			compareRecords(t, got, test.want)
		})
	}
}

func TestReaderPos(t *testing.T) {
	r := NewReader(strings.NewReader(hpl23), "hpl.out")
	var lines []int
	for r.Scan() {
		res, ok := r.Result().(*Result)
		if !ok {
			t.Fatalf("unexpected record %v", r.Result())
		}
		name, line := res.Pos()
		if name != "hpl.out" {
			t.Errorf("want file name hpl.out, got %s", name)
		}
		lines = append(lines, line)
	}
	if want := []int{16, 26}; !reflect.DeepEqual(lines, want) {
		t.Errorf("want lines %v, got %v", want, lines)
	}
}

func TestReaderNoScan(t *testing.T) {
	r := NewReader(strings.NewReader(hpl23), "test")
	if r.Result() != noResult {
		t.Errorf("want noResult before Scan, got %v", r.Result())
	}
}

type errReader struct{}

var errBroken = errors.New("broken pipe")

func (errReader) Read([]byte) (int, error) {
	return 0, errBroken
}

func TestReaderIOError(t *testing.T) {
	r := NewReader(errReader{}, "test")
	if r.Scan() {
		t.Fatalf("Scan succeeded on broken reader")
	}
	if !errors.Is(r.Err(), errBroken) {
		t.Errorf("want %v, got %v", errBroken, r.Err())
	}
	if r.Scan() {
		t.Errorf("Scan succeeded after error")
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader(hpl23), "a")
	if !r.Scan() {
		t.Fatal("no results")
	}
	r.Reset(strings.NewReader("WR11C2R4 1 2 3 4 5 6\n"), "b")
	// The reset reader is no longer inside a table.
	if r.Scan() {
		t.Errorf("unexpected record %v after Reset", r.Result())
	}
}
