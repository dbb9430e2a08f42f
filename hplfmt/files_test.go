// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hplfmt

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFiles(t *testing.T) {
	type pos struct {
		file string
		line int
	}
	check := func(f *Files, want ...pos) {
		t.Helper()
		var got []pos
		for f.Scan() {
			file, line := f.Result().Pos()
			got = append(got, pos{file, line})
		}
		if err := f.Err(); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	}

	a := filepath.Join("testdata", "a.out")
	b := filepath.Join("testdata", "b.out")

	check(&Files{Paths: []string{a, b}},
		pos{a, 4}, pos{a, 8}, pos{b, 4})

	// Repeated paths are read again.
	check(&Files{Paths: []string{b, b}},
		pos{b, 4}, pos{b, 4})

	// Without AllowStdin, an empty path list reads nothing.
	check(&Files{})
}

func TestFilesStdin(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "b.out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	stdin := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = stdin }()

	files := &Files{AllowStdin: true}
	var n int
	for files.Scan() {
		res, ok := files.Result().(*Result)
		if !ok {
			t.Fatalf("unexpected record %v", files.Result())
		}
		if name, _ := res.Pos(); name != "-" {
			t.Errorf("want file name -, got %s", name)
		}
		n++
	}
	if err := files.Err(); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("want 1 result, got %d", n)
	}
}

func TestFilesMissing(t *testing.T) {
	files := &Files{Paths: []string{filepath.Join("testdata", "missing.out")}}
	if files.Scan() {
		t.Fatalf("Scan succeeded on missing file")
	}
	if !os.IsNotExist(files.Err()) {
		t.Errorf("want not-exist error, got %v", files.Err())
	}
}

func TestFilesReadError(t *testing.T) {
	// Opening a directory succeeds, but reading it fails.
	files := &Files{Paths: []string{"testdata", filepath.Join("testdata", "a.out")}}
	if files.Scan() {
		t.Fatalf("Scan succeeded reading a directory: %v", files.Result())
	}
	if files.Err() == nil {
		t.Fatalf("want read error, got nil")
	}
	if files.file != nil {
		t.Errorf("file left open after read error")
	}
	if files.Scan() {
		t.Errorf("Scan succeeded after error")
	}
}
