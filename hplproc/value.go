// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplproc

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// A Value is the value of a Field in a Result. It holds either a
// number or a string.
//
// Values are comparable and can be used as map keys. Two Values are
// == if they hold the same kind and the same number or string. As
// with float64, a NaN Value is never == to another Value.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Num returns a numeric Value.
func Num(x float64) Value {
	return Value{num: x, isNum: true}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{str: s}
}

// Float returns v's number and true if v is numeric, or 0 and false
// otherwise.
func (v Value) Float() (float64, bool) {
	return v.num, v.isNum
}

// String returns the string form of v. Numbers are printed in the
// shortest form that parses back to the same number.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// compare orders numbers numerically with NaNs last, then strings
// alphabetically.
func compare(a, b Value) int {
	switch {
	case a.isNum && b.isNum:
		if a.num < b.num || (!math.IsNaN(a.num) && math.IsNaN(b.num)) {
			return -1
		}
		if a.num > b.num || (math.IsNaN(a.num) && !math.IsNaN(b.num)) {
			return 1
		}
		// The values are equal or unordered.
		return 0
	case a.isNum:
		// Put numbers before strings.
		return -1
	case b.isNum:
		return 1
	}
	return strings.Compare(a.str, b.str)
}

// Less reports whether v sorts before o. Numbers sort numerically,
// with NaN after every other number, and before all strings. Strings
// sort alphabetically.
func (v Value) Less(o Value) bool {
	return compare(v, o) < 0
}

// SortValues sorts vs using Value.Less.
func SortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool {
		return compare(vs[i], vs[j]) < 0
	})
}

// SortedKeys returns the keys of bins sorted using Value.Less.
func SortedKeys[R any](bins map[Value][]R) []Value {
	keys := make([]Value, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	SortValues(keys)
	return keys
}
