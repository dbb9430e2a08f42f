// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplproc

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hpcbench/hplstat/hplfmt"
)

// A Filter selects Results by the values of their Fields.
type Filter struct {
	terms []filterTerm
}

// filterTerm matches a Result if Field f matches any of its values.
type filterTerm struct {
	f    Field
	nums []float64
	pats []string
}

// A FilterSyntaxError reports a malformed filter query.
type FilterSyntaxError struct {
	Query string // The original query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *FilterSyntaxError) Error() string {
	// Translate byte offset to a rune offset.
	pos := utf8.RuneCountInString(e.Query[:e.Off])
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, pos, "")
}

// NewFilter parses a filter query. A query is a sequence of
// space-separated field:value terms, such as "nb:192 p:2". A Result
// matches the filter if it matches every term. A term's value may be
// a comma-separated list, in which case the term matches if any value
// does, as in "nb:192,256".
//
// Values of numeric fields are compared as numbers. Values of
// encodedtime are shell patterns as accepted by path.Match, such as
// "WR11*".
//
// An empty query or "*" matches everything.
func NewFilter(query string) (*Filter, error) {
	f := new(Filter)
	if strings.TrimSpace(query) == "*" {
		return f, nil
	}
	for off := 0; off < len(query); {
		// Skip space and find the end of the term.
		r, size := utf8.DecodeRuneInString(query[off:])
		if unicode.IsSpace(r) {
			off += size
			continue
		}
		end := strings.IndexFunc(query[off:], unicode.IsSpace)
		if end < 0 {
			end = len(query)
		} else {
			end += off
		}
		term, err := parseTerm(query, off, end)
		if err != nil {
			return nil, err
		}
		f.terms = append(f.terms, term)
		off = end
	}
	return f, nil
}

func parseTerm(query string, start, end int) (filterTerm, error) {
	errAt := func(off int, msg string) error {
		return &FilterSyntaxError{query, off, msg}
	}

	word := query[start:end]
	colon := strings.IndexByte(word, ':')
	if colon <= 0 || colon == len(word)-1 {
		return filterTerm{}, errAt(start, "expected field:value")
	}
	f, err := ParseField(word[:colon])
	if err != nil {
		return filterTerm{}, errAt(start, fmt.Sprintf("unknown field %q", word[:colon]))
	}

	term := filterTerm{f: f}
	off := start + colon + 1
	for _, val := range strings.Split(word[colon+1:], ",") {
		switch {
		case val == "":
			return filterTerm{}, errAt(off, "empty value")
		case f.Numeric():
			x, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return filterTerm{}, errAt(off, "expected number")
			}
			term.nums = append(term.nums, x)
		default:
			if _, err := path.Match(val, ""); err != nil {
				return filterTerm{}, errAt(off, "bad pattern")
			}
			term.pats = append(term.pats, val)
		}
		off += len(val) + 1
	}
	return term, nil
}

// Match reports whether r matches every term of the filter.
func (f *Filter) Match(r *hplfmt.Result) bool {
	for _, t := range f.terms {
		if !t.match(r) {
			return false
		}
	}
	return true
}

func (t *filterTerm) match(r *hplfmt.Result) bool {
	if t.f == EncodedTime {
		for _, pat := range t.pats {
			// Patterns were checked by parseTerm.
			if ok, _ := path.Match(pat, r.Encoding); ok {
				return true
			}
		}
		return false
	}
	x := t.f.Float(r)
	for _, v := range t.nums {
		if x == v {
			return true
		}
	}
	return false
}
