// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplproc

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrEmptyInput is returned when there is nothing to summarize
	// or choose from.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyBin is returned when a bin passed to Aggregate has no
	// records. Bin never produces such a bin.
	ErrEmptyBin = errors.New("empty bin")
)

// Stats summarizes a sample of values.
type Stats struct {
	Min, Max, Mean float64

	// N is the number of values in the sample.
	N int
}

// Summarize computes the Stats of values. It returns ErrEmptyInput
// if values is empty.
func Summarize(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, ErrEmptyInput
	}
	lo, hi := stats.Bounds(values)
	return Stats{Min: lo, Max: hi, Mean: stats.Mean(values), N: len(values)}, nil
}

// Bin groups records by the key returned by keyOf. Each record
// appears in exactly one bin, and records within a bin are in the
// order they appear in records.
//
// If records is empty, Bin returns an empty map. If keyOf panics,
// the panic propagates to the caller.
func Bin[K comparable, R any](records []R, keyOf func(R) K) map[K][]R {
	bins := make(map[K][]R)
	for _, r := range records {
		k := keyOf(r)
		bins[k] = append(bins[k], r)
	}
	return bins
}

// Aggregate computes the Stats of valueOf over the records of each
// bin.
//
// Every bin must have at least one record. If a bin is empty,
// Aggregate returns an error wrapping ErrEmptyBin.
func Aggregate[K comparable, R any](bins map[K][]R, valueOf func(R) float64) (map[K]Stats, error) {
	out := make(map[K]Stats, len(bins))
	var values []float64
	for k, recs := range bins {
		if len(recs) == 0 {
			return nil, fmt.Errorf("bin %v: %w", k, ErrEmptyBin)
		}
		values = values[:0]
		for _, r := range recs {
			values = append(values, valueOf(r))
		}
		st, err := Summarize(values)
		if err != nil {
			return nil, err
		}
		out[k] = st
	}
	return out, nil
}

// Rank returns the keys of bins ordered from best to worst by the
// mean of valueOf over each bin. If lowerIsBetter, smaller means are
// better; otherwise larger means are better. Bins with a NaN mean
// rank last.
//
// The relative order of bins with equal means is not specified and
// may differ between calls.
//
// If bins is empty, Rank returns ErrEmptyInput. It also returns any
// error from Aggregate.
func Rank[K comparable, R any](bins map[K][]R, valueOf func(R) float64, lowerIsBetter bool) ([]K, error) {
	if len(bins) == 0 {
		return nil, ErrEmptyInput
	}
	st, err := Aggregate(bins, valueOf)
	if err != nil {
		return nil, err
	}
	// Collect (key, mean) pairs rather than looking means up by key,
	// since a NaN key can't be found in a map.
	type ranked struct {
		key  K
		mean float64
	}
	rs := make([]ranked, 0, len(st))
	for k, s := range st {
		rs = append(rs, ranked{k, s.Mean})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i].mean, rs[j].mean
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		if lowerIsBetter {
			return a < b
		}
		return a > b
	})
	keys := make([]K, len(rs))
	for i, r := range rs {
		keys[i] = r.key
	}
	return keys, nil
}

// Best returns the key of the bin ranked first by Rank. As with Rank,
// which of several bins with equal means is returned is not
// specified.
//
// If bins is empty, Best returns an error wrapping ErrEmptyInput.
func Best[K comparable, R any](bins map[K][]R, valueOf func(R) float64, lowerIsBetter bool) (K, error) {
	keys, err := Rank(bins, valueOf, lowerIsBetter)
	if err != nil {
		var zero K
		return zero, fmt.Errorf("best bin: %w", err)
	}
	return keys[0], nil
}
