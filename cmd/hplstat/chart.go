// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	// Register the image formats for plot.WriterTo.
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// errorBars gives the spread from each bin's mean to its minimum and
// maximum.
type errorBars struct {
	plotter.XYs
	plotter.YErrors
}

// writeChart draws the mean of each bin of rep as a bar, with error
// bars spanning the bin's minimum and maximum, and saves it to path.
// The image format is given by path's extension.
func writeChart(path string, rep *report) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("%s: missing image format extension", path)
	}

	means := make(plotter.Values, len(rep.keys))
	bars := errorBars{
		XYs:     make(plotter.XYs, len(rep.keys)),
		YErrors: make(plotter.YErrors, len(rep.keys)),
	}
	var names []string
	for i, k := range rep.keys {
		st := rep.stats[k]
		means[i] = st.Mean
		bars.XYs[i].X = float64(i)
		bars.XYs[i].Y = st.Mean
		bars.YErrors[i].Low = st.Mean - st.Min
		bars.YErrors[i].High = st.Max - st.Mean
		names = append(names, k.String())
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s by %s", rep.stat, rep.bin)
	pl.X.Label.Text = rep.bin.String()
	pl.Y.Label.Text = "mean " + rep.stat.String()

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	w := vg.Points(20)
	bc, err := plotter.NewBarChart(means, w)
	if err != nil {
		return err
	}
	bc.Color = color.RGBA{R: 0x40, G: 0x70, B: 0xc0, A: 0xff}
	bc.LineStyle.Width = vg.Length(0)
	eb, err := plotter.NewYErrorBars(bars)
	if err != nil {
		return err
	}
	pl.Add(bc, eb)
	pl.NominalX(names...)

	// Heuristic width.
	width := vg.Length(2+len(rep.keys)) * 1.5 * vg.Centimeter
	if width < 12*vg.Centimeter {
		width = 12 * vg.Centimeter
	}
	height := 10 * vg.Centimeter

	wt, err := pl.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
