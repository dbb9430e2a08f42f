// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// A Reader reads HPL output.
//
// Its API is modeled on bufio.Scanner. Unlike the Scanner, every
// Result it returns is a new allocation and may be retained.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	// q is the queue of records to return before processing the next
	// input line. qPos is the index of the current record in q.
	q    []Record
	qPos int

	fileName string
	line     int

	// inTable is set once a T/V header has been read and cleared
	// by HPL's closing "Finished" line.
	inTable bool

	// pending is the Result whose row has been read but which may
	// still be followed by time or check lines.
	pending *Result
}

// A SyntaxError represents a syntax error on a particular line of an
// HPL output file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse HPL output from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.qPos = 0
	r.q = r.q[:0]
	r.fileName = fileName
	r.line = 0
	r.inTable = false
	r.pending = nil
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

var (
	startPrefix    = []byte("HPL_pdgesv() start time")
	endPrefix      = []byte("HPL_pdgesv() end time")
	checkPrefix    = []byte("||Ax-b||")
	finishedPrefix = []byte("Finished")
)

// Scan advances the reader to the next record and reports whether a
// record was read.
// The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	// If there's anything in the queue from an earlier line, just pop
	// the queue and return without consuming any more input.
	if r.qPos+1 < len(r.q) {
		r.qPos++
		return true
	}
	r.qPos = 0
	r.q = r.q[:0]

	// Process lines until we add something to the queue or hit EOF.
	for len(r.q) == 0 && r.s.Scan() {
		r.line++
		r.parseLine(r.s.Bytes())
	}
	if len(r.q) > 0 {
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
		return false
	}
	// EOF ends the last test.
	r.flush()
	return len(r.q) > 0
}

// parseLine processes a single input line, queuing any records it
// completes.
func (r *Reader) parseLine(line []byte) {
	switch {
	case isHeader(line):
		r.flush()
		r.inTable = true

	case bytes.HasPrefix(line, startPrefix):
		if r.pending != nil {
			r.pending.Start = r.parseTime(line[len(startPrefix):], r.pending.Start)
		}

	case bytes.HasPrefix(line, endPrefix):
		if r.pending != nil {
			r.pending.End = r.parseTime(line[len(endPrefix):], r.pending.End)
		}

	case bytes.HasPrefix(line, checkPrefix):
		if r.pending != nil {
			r.parseCheck(line)
		}

	case bytes.HasPrefix(line, finishedPrefix):
		r.flush()
		r.inTable = false

	case r.inTable && isRow(line):
		r.flush()
		if err := r.parseRow(line); err != nil {
			r.q = append(r.q, err)
		}
	}
	// Ignore anything else.
}

// flush queues the pending Result, if any.
func (r *Reader) flush() {
	if r.pending != nil {
		r.q = append(r.q, r.pending)
		r.pending = nil
	}
}

// isHeader reports whether line is the column header of a results
// table. HPL's legend also starts with "T/V", but is followed by a
// colon and a description.
func isHeader(line []byte) bool {
	f := bytes.Fields(line)
	if len(f) != len(rowColumns) {
		return false
	}
	for i, col := range rowColumns {
		if string(f[i]) != col {
			return false
		}
	}
	return true
}

// isRow reports whether line looks like a results table row: it
// begins with an upper case T/V code and has at least the seven
// table columns. Separator lines, HPL's free-form warnings, and
// "NAME : value" parameter lines fail one of these tests.
func isRow(line []byte) bool {
	if len(line) == 0 || line[0] < 'A' || line[0] > 'Z' {
		return false
	}
	f := bytes.Fields(line)
	return len(f) >= 7 && !bytes.Equal(f[1], []byte(":"))
}

// parseRow parses line as a results table row and makes it the
// pending Result.
func (r *Reader) parseRow(line []byte) *SyntaxError {
	f := bytes.Fields(line)
	res := &Result{
		Encoding: string(f[0]),
		fileName: r.fileName,
		line:     r.line,
	}
	for i, dst := range []*int{&res.N, &res.NB, &res.P, &res.Q} {
		v, err := strconv.Atoi(string(f[1+i]))
		if err != nil {
			return r.newSyntaxError(fmt.Sprintf("parsing %s: %s", rowColumns[1+i], numErr(err)))
		}
		*dst = v
	}
	for i, dst := range []*float64{&res.Time, &res.Gflops} {
		v, err := strconv.ParseFloat(string(f[5+i]), 64)
		if err != nil {
			return r.newSyntaxError(fmt.Sprintf("parsing %s: %s", rowColumns[5+i], numErr(err)))
		}
		*dst = v
	}
	r.pending = res
	return nil
}

var rowColumns = [...]string{"T/V", "N", "NB", "P", "Q", "Time", "Gflops"}

// numErr strips the function and input from a strconv error, which
// the syntax error already locates.
func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

// parseTime parses the ctime-formatted timestamp at the end of a start
// or end time line. On failure it queues a syntax error and returns
// old.
func (r *Reader) parseTime(x []byte, old time.Time) time.Time {
	s := strings.TrimSpace(string(x))
	t, err := time.Parse(time.ANSIC, s)
	if err != nil {
		r.q = append(r.q, r.newSyntaxError(fmt.Sprintf("parsing time %q", s)))
		return old
	}
	return t
}

// parseCheck parses a residual check line of the form
//
//	||Ax-b||_oo/(eps*(||A||_oo*||x||_oo+||b||_oo)*N)=   3.37840120e-03 ...... PASSED
//
// and records it in the pending Result. HPL 1.0 prints three such
// lines per test; the first residual is kept and the test passes only
// if all of them do.
func (r *Reader) parseCheck(line []byte) {
	eq := bytes.LastIndexByte(line, '=')
	f := bytes.Fields(line[eq+1:])
	if eq < 0 || len(f) < 2 {
		r.q = append(r.q, r.newSyntaxError("malformed residual check"))
		return
	}
	val, err := strconv.ParseFloat(string(f[0]), 64)
	if err != nil {
		r.q = append(r.q, r.newSyntaxError(fmt.Sprintf("parsing residual: %s", numErr(err))))
		return
	}
	var passed bool
	switch verdict := string(f[len(f)-1]); verdict {
	case "PASSED":
		passed = true
	case "FAILED":
		passed = false
	default:
		r.q = append(r.q, r.newSyntaxError(fmt.Sprintf("unknown residual verdict %q", verdict)))
		return
	}

	res := r.pending
	if !res.Checked {
		res.Residual = val
		res.Checked = true
		res.Passed = passed
		return
	}
	res.Passed = res.Passed && passed
}

// A Record is a single record read from an HPL output file. It may be
// a *Result or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not read
	// from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*SyntaxError)(nil)

// Result returns the record that was just read by Scan. This is either
// a *Result or a *SyntaxError indicating a parse error.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
func (r *Reader) Result() Record {
	if r.qPos >= len(r.q) {
		// This should only happen if Scan has never been called.
		return noResult
	}
	return r.q[r.qPos]
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
