// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplproc

import (
	"fmt"
	"strings"

	"github.com/hpcbench/hplstat/hplfmt"
)

// A Field identifies one attribute of an hplfmt.Result.
type Field int

const (
	EncodedTime Field = iota // The T/V code, such as "WR11C2R4".
	N                        // Problem size.
	NB                       // Block size.
	P                        // Process grid rows.
	Q                        // Process grid columns.
	Time                     // Wall time in seconds.
	Gflops                   // Achieved rate.

	numFields
)

var fieldNames = [numFields]string{
	EncodedTime: "encodedtime",
	N:           "n",
	NB:          "nb",
	P:           "p",
	Q:           "q",
	Time:        "time",
	Gflops:      "gflops",
}

// String returns the name of f, as accepted by ParseField.
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

func (f Field) valid() bool {
	return f >= 0 && f < numFields
}

func (f Field) mustValid() {
	if !f.valid() {
		panic(fmt.Sprintf("hplproc: undefined %s", f))
	}
}

// Fields returns all Fields in declaration order.
func Fields() []Field {
	fs := make([]Field, numFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}

// ParseField returns the Field with the given name. Names are
// matched exactly.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q (want one of %s)", name, strings.Join(fieldNames[:], ", "))
}

// Numeric reports whether f's values are numbers. Only numeric Fields
// can be used as a metric.
func (f Field) Numeric() bool {
	f.mustValid()
	return f != EncodedTime
}

// LowerIsBetter reports whether smaller values of f indicate a better
// result. This is true only of Time.
func (f Field) LowerIsBetter() bool {
	f.mustValid()
	return f == Time
}

// Key returns the value of f in r as a comparable Value.
//
// Key panics if f is not a defined Field.
func (f Field) Key(r *hplfmt.Result) Value {
	if f == EncodedTime {
		return Str(r.Encoding)
	}
	return Num(f.Float(r))
}

// Float returns the value of f in r as a float64. Integer fields are
// converted exactly.
//
// Float panics if f is EncodedTime or is not a defined Field.
func (f Field) Float(r *hplfmt.Result) float64 {
	switch f {
	case N:
		return float64(r.N)
	case NB:
		return float64(r.NB)
	case P:
		return float64(r.P)
	case Q:
		return float64(r.Q)
	case Time:
		return r.Time
	case Gflops:
		return r.Gflops
	case EncodedTime:
		panic("hplproc: encodedtime is not numeric")
	}
	f.mustValid()
	panic("unreachable")
}

// Accessor returns Key as a function, for use as the key function of
// Bin.
func (f Field) Accessor() func(*hplfmt.Result) Value {
	f.mustValid()
	return f.Key
}

// Metric returns Float as a function, for use as the value function
// of Aggregate, Rank, and Best.
func (f Field) Metric() func(*hplfmt.Result) float64 {
	if !f.Numeric() {
		panic(fmt.Sprintf("hplproc: %s is not numeric", f))
	}
	return f.Float
}
