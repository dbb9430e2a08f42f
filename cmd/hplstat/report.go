// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/safehtml/template"
	"github.com/olekukonko/tablewriter"

	"github.com/hpcbench/hplstat/cmd/hplstat/internal/texttab"
	"github.com/hpcbench/hplstat/hplfmt"
	"github.com/hpcbench/hplstat/hplproc"
)

// A report holds the binned results, the statistics of each bin, and
// the best bin.
type report struct {
	inputs    []string
	bin, stat hplproc.Field
	verbose   bool

	keys  []hplproc.Value // in presentation order
	bins  map[hplproc.Value][]*hplfmt.Result
	stats map[hplproc.Value]hplproc.Stats
	best  hplproc.Value
}

func newReport(opts *options, results []*hplfmt.Result) (*report, error) {
	bins := hplproc.Bin(results, opts.bin.Accessor())
	metric := opts.stat.Metric()
	best, err := hplproc.Best(bins, metric, opts.lowerIsBetter)
	if err != nil {
		return nil, err
	}
	stats, err := hplproc.Aggregate(bins, metric)
	if err != nil {
		return nil, err
	}
	return &report{
		inputs:  opts.inputs,
		bin:     opts.bin,
		stat:    opts.stat,
		verbose: opts.Verbose,
		keys:    hplproc.SortedKeys(bins),
		bins:    bins,
		stats:   stats,
		best:    best,
	}, nil
}

// A formatter writes rep to w. If hl is non-nil, it highlights the
// best bin with hl.
type formatter func(rep *report, w io.Writer, hl *color.Color) error

var formats = map[string]formatter{
	"text": func(rep *report, w io.Writer, hl *color.Color) error {
		return rep.writeText(w, hl, newTextGrid)
	},
	"table": func(rep *report, w io.Writer, hl *color.Color) error {
		return rep.writeText(w, hl, newBoxGrid)
	},
	"csv":  (*report).writeCSV,
	"html": (*report).writeHTML,
}

// write formats rep with f and writes it to w in one piece.
func (rep *report) write(w io.Writer, f formatter, hl *color.Color) error {
	var buf bytes.Buffer
	if err := f(rep, &buf, hl); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// highlight returns the color for the best bin when writing to w, or
// nil for no color.
func (o *options) highlight(w io.Writer) *color.Color {
	c := color.New(color.FgGreen, color.Bold)
	switch o.Color {
	case "always":
		c.EnableColor()
		return c
	case "auto":
		// color.NoColor is set when stdout isn't a terminal.
		if w == io.Writer(os.Stdout) && !color.NoColor {
			return c
		}
	}
	return nil
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.ANSIC)
}

// recordColumns names the columns of a Result, in the order of
// recordCells.
var recordColumns = []string{"T/V", "N", "NB", "P", "Q", "Time", "Gflops", "Start", "End"}

func recordCells(r *hplfmt.Result) []string {
	return []string{
		r.Encoding,
		strconv.Itoa(r.N),
		strconv.Itoa(r.NB),
		strconv.Itoa(r.P),
		strconv.Itoa(r.Q),
		num(r.Time),
		num(r.Gflops),
		timeString(r.Start),
		timeString(r.End),
	}
}

// A grid lays out the rows of one table.
type grid interface {
	header(cells ...string)
	row(hl *color.Color, cells ...string)
	render(w io.Writer) error
}

// textGrid lays out plain text columns. All but the first column are
// right-aligned.
type textGrid struct {
	tab texttab.Table
}

func newTextGrid(indent string) grid {
	g := new(textGrid)
	g.tab.Indent = indent
	return g
}

func (g *textGrid) header(cells ...string) {
	g.row(nil, cells...)
}

func (g *textGrid) row(hl *color.Color, cells ...string) {
	g.tab.Row()
	for i, c := range cells {
		opts := []texttab.CellOption{texttab.Right}
		if i == 0 {
			opts[0] = texttab.Left
		}
		if hl != nil {
			opts = append(opts, texttab.Color(hl))
		}
		g.tab.Cell(c, opts...)
	}
}

func (g *textGrid) render(w io.Writer) error {
	return g.tab.Format(w)
}

// boxGrid lays out a boxed table.
type boxGrid struct {
	head []string
	rows [][]string
}

func newBoxGrid(string) grid {
	return new(boxGrid)
}

func (g *boxGrid) header(cells ...string) {
	g.head = cells
}

func (g *boxGrid) row(hl *color.Color, cells ...string) {
	if hl != nil {
		colored := make([]string, len(cells))
		for i, c := range cells {
			colored[i] = hl.Sprint(c)
		}
		cells = colored
	}
	g.rows = append(g.rows, cells)
}

func (g *boxGrid) render(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	head := make([]any, len(g.head))
	for i, h := range g.head {
		head[i] = h
	}
	table.Header(head...)
	for _, r := range g.rows {
		cells := make([]any, len(r))
		for i, c := range r {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// writeText writes rep in the layout of the text report, laying out
// tables with newGrid.
func (rep *report) writeText(w io.Writer, hl *color.Color, newGrid func(indent string) grid) error {
	fmt.Fprintf(w, "Results for %s\n", strings.Join(rep.inputs, " "))
	if rep.verbose {
		fmt.Fprintf(w, "Arguments to HPLResult are defined as follows:\n")
		fmt.Fprintf(w, "Encoded time, N, NB, P, Q, Time, Gigaflops, Start time, End time\n")
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Results are binned by %s\n", rep.bin)
	fmt.Fprintf(w, "\n")

	if rep.verbose {
		fmt.Fprintf(w, "Binned results\n")
		for _, k := range rep.keys {
			fmt.Fprintf(w, "%s=%s:\n", rep.bin, k)
			g := newGrid("  ")
			g.header(recordColumns...)
			for _, r := range rep.bins[k] {
				g.row(nil, recordCells(r)...)
			}
			if err := g.render(w); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "Minimum, maximum, and average %s per bin\n", rep.stat)
	g := newGrid("")
	g.header(rep.bin.String(), "min", "max", "mean", "n")
	for _, k := range rep.keys {
		st := rep.stats[k]
		var rowColor *color.Color
		if k == rep.best {
			rowColor = hl
		}
		g.row(rowColor, k.String(), num(st.Min), num(st.Max), num(st.Mean), strconv.Itoa(st.N))
	}
	if err := g.render(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Best bin with respect to %s\n", rep.stat)
	best := rep.best.String()
	if hl != nil {
		best = hl.Sprint(best)
	}
	fmt.Fprintf(w, "%s\n", best)
	return nil
}

// writeCSV writes the statistics of each bin as CSV, with full
// precision. The best column is "true" for the best bin.
func (rep *report) writeCSV(w io.Writer, _ *color.Color) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{rep.bin.String(), "min", "max", "mean", "n", "best"})
	f := func(x float64) string {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	for _, k := range rep.keys {
		st := rep.stats[k]
		cw.Write([]string{k.String(), f(st.Min), f(st.Max), f(st.Mean), strconv.Itoa(st.N), strconv.FormatBool(k == rep.best)})
	}
	cw.Flush()
	return cw.Error()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>HPL results</title>
<style>
.hplstat { border-collapse: collapse; }
.hplstat th { border-bottom: 1px solid #666; }
.hplstat td { text-align: right; padding: 0em 1em; }
.hplstat .best td { font-weight: bold; }
</style>
</head>
<body>
<p>Results for {{.Inputs}}, binned by {{.Bin}}</p>
{{- if .Binned}}
{{range .Binned}}
<table class="hplstat">
<caption>{{.Caption}}</caption>
<tr>{{range $.Columns}}<th>{{.}}{{end}}
{{range .Rows}}<tr>{{range .}}<td>{{.}}{{end}}
{{end -}}
</table>
{{- end}}
{{- end}}
<table class="hplstat">
<caption>Minimum, maximum, and average {{.Stat}} per bin</caption>
<tr><th>{{.Bin}}<th>min<th>max<th>mean<th>n
{{range .Rows}}{{if .Best}}<tr class="best">{{else}}<tr>{{end}}<td>{{.Key}}<td>{{.Min}}<td>{{.Max}}<td>{{.Mean}}<td>{{.N}}
{{end -}}
</table>
<p>Best bin with respect to {{.Stat}}: {{.Best}}</p>
</body>
</html>
`))

type htmlBin struct {
	Caption string
	Rows    [][]string
}

type htmlRow struct {
	Key, Min, Max, Mean string
	N                   int
	Best                bool
}

func (rep *report) writeHTML(w io.Writer, _ *color.Color) error {
	data := struct {
		Inputs, Bin, Stat, Best string
		Columns                 []string
		Binned                  []htmlBin
		Rows                    []htmlRow
	}{
		Inputs:  strings.Join(rep.inputs, " "),
		Bin:     rep.bin.String(),
		Stat:    rep.stat.String(),
		Best:    rep.best.String(),
		Columns: recordColumns,
	}
	for _, k := range rep.keys {
		st := rep.stats[k]
		data.Rows = append(data.Rows, htmlRow{k.String(), num(st.Min), num(st.Max), num(st.Mean), st.N, k == rep.best})
		if rep.verbose {
			b := htmlBin{Caption: fmt.Sprintf("%s=%s", rep.bin, k)}
			for _, r := range rep.bins[k] {
				b.Rows = append(b.Rows, recordCells(r))
			}
			data.Binned = append(data.Binned, b)
		}
	}
	return htmlTemplate.Execute(w, data)
}
