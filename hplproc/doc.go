// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hplproc provides tools for grouping HPL results into bins,
// summarizing each bin, and picking the best one.
//
// The typical steps for processing HPL results are:
//
// 1. Read a stream of hplfmt.Results, usually using hplfmt.Files.
// Optionally drop Results that don't match a Filter built by NewFilter.
//
// 2. Group the Results with Bin. The key function is usually a
// Field's Accessor, selected by name with ParseField, but Bin accepts
// any comparable key.
//
// 3. Summarize each bin with Aggregate, which computes the minimum,
// maximum, and mean of a metric such as a Field's Metric.
//
// 4. Pick the bin with the best mean with Best, or order all bins
// from best to worst with Rank. For presentation, SortedKeys orders
// Field keys numerically or alphabetically.
//
// All of these are pure functions of their inputs and may be called
// concurrently.
package hplproc
