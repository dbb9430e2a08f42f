// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain text tables whose cells may be
// colored.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows [][]cell

	// Indent is printed at the start of every non-empty row.
	Indent string
}

type cell struct {
	value     string
	alignment align
	color     *color.Color
}

type CellOption func(c *cell)

var (
	Left  CellOption = func(c *cell) { c.alignment = alignLeft }
	Right CellOption = func(c *cell) { c.alignment = alignRight }
)

// Color prints the cell's value in color c. The cell's width does not
// include c's escape sequences.
func Color(c *color.Color) CellOption {
	return func(cl *cell) {
		cl.color = c
	}
}

type align int

const (
	alignLeft align = iota
	alignRight
)

// pad returns the padding that aligns s in a column w runes wide, as
// spaces before and after s.
func (a align) pad(s string, w int) (before, after int) {
	n := w - utf8.RuneCountInString(s)
	if n < 0 {
		n = 0
	}
	if a == alignRight {
		return n, 0
	}
	return 0, n
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	row := &t.rows[len(t.rows)-1]
	*row = append(*row, c)
	return t
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces.
func (t *Table) Format(w io.Writer) error {
	var ws []int
	for _, row := range t.rows {
		for col, c := range row {
			if col >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[col] {
				ws[col] = n
			}
		}
	}

	var b strings.Builder
	for _, row := range t.rows {
		b.Reset()
		// Drop empty trailing cells so lines have no trailing
		// spaces.
		for len(row) > 0 && row[len(row)-1].value == "" {
			row = row[:len(row)-1]
		}
		if len(row) > 0 {
			b.WriteString(t.Indent)
		}
		for col, c := range row {
			if col > 0 {
				b.WriteString("  ")
			}
			before, after := c.alignment.pad(c.value, ws[col])
			if col == len(row)-1 {
				after = 0
			}
			b.WriteString(strings.Repeat(" ", before))
			if c.color != nil {
				b.WriteString(c.color.Sprint(c.value))
			} else {
				b.WriteString(c.value)
			}
			b.WriteString(strings.Repeat(" ", after))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
