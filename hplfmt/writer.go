// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplfmt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// A Writer writes Results as HPL results tables.
//
// Each Result is written as its own table, the way HPL itself prints
// one table per test, so that the output can be read back by a Reader.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewWriter returns a writer that writes HPL results tables to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

var (
	rule      = strings.Repeat("=", 80)
	thinRule  = strings.Repeat("-", 80)
	headerFmt = "%-8s %12s %5s %5s %5s %18s %22s\n"
	rowFmt    = "%-8s %12d %5d %5d %5d %18.2f %22.4e\n"
	checkText = "||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)="
)

// Write writes Record rec to w. Syntax errors are ignored.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Result:
		w.writeResult(rec)
	case *SyntaxError:
		// Ignore
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}

	// Flush the buffer out to the io.Writer. Write to the buffer
	// can't fail, so we only have to check if this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) writeResult(res *Result) {
	fmt.Fprintln(&w.buf, rule)
	fmt.Fprintf(&w.buf, headerFmt, rowColumns[0], rowColumns[1], rowColumns[2], rowColumns[3], rowColumns[4], rowColumns[5], rowColumns[6])
	fmt.Fprintln(&w.buf, thinRule)
	fmt.Fprintf(&w.buf, rowFmt, res.Encoding, res.N, res.NB, res.P, res.Q, res.Time, res.Gflops)

	if !res.Start.IsZero() {
		fmt.Fprintf(&w.buf, "%s %s\n\n", startPrefix, res.Start.Format(time.ANSIC))
	}
	if !res.End.IsZero() {
		fmt.Fprintf(&w.buf, "%s   %s\n\n", endPrefix, res.End.Format(time.ANSIC))
	}
	if res.Checked {
		verdict := "PASSED"
		if !res.Passed {
			verdict = "FAILED"
		}
		fmt.Fprintln(&w.buf, thinRule)
		fmt.Fprintf(&w.buf, "%s %15.8e ...... %s\n", checkText, res.Residual, verdict)
	}
}
