// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hplfilter reads HPL output from input files, filters the results,
// and writes the matching results as HPL results tables. If no inputs
// are provided, it reads from stdin.
//
// A query is a sequence of space-separated field:value terms, all of
// which must match. For example,
//
//	hplfilter 'nb:192,256 encodedtime:WR11*' HPL.out
//
// keeps the WR11 variants of the tests with block size 192 or 256.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/hpcbench/hplstat/hplfmt"
	"github.com/hpcbench/hplstat/hplproc"
)

const usageText = `Usage: hplfilter [flags] query [inputs...]

hplfilter reads HPL output from input files, filters the results,
and writes the matching results to stdout as HPL results tables. If
no inputs are provided, it reads from stdin.

A query is a list of space-separated field:value terms, such as
"nb:192 p:2". A term's value may be a comma-separated list of
alternatives. Fields are encodedtime, n, nb, p, q, time, and gflops.

Flags:
`

// errUsage reports bad command-line arguments. The usage message
// has already been printed.
var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("hplfilter: ")
	log.SetFlags(0)

	if err := hplfilter(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return
		case errors.Is(err, errUsage):
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func hplfilter(stdout, stderr io.Writer, args []string) error {
	fs := pflag.NewFlagSet("hplfilter", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	flagOutput := fs.StringP("output", "o", "", "write results to `file` instead of stdout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		fmt.Fprintf(stderr, "%s: %s\n", fs.Name(), err)
		fs.Usage()
		return errUsage
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errUsage
	}

	filter, err := hplproc.NewFilter(fs.Arg(0))
	if err != nil {
		return err
	}

	out := stdout
	var outFile *os.File
	if *flagOutput != "" {
		outFile, err = os.Create(*flagOutput)
		if err != nil {
			return err
		}
		defer outFile.Close()
		out = outFile
	}

	writer := hplfmt.NewWriter(out)
	files := hplfmt.Files{Paths: fs.Args()[1:], AllowStdin: true}
	for files.Scan() {
		rec := files.Result()
		switch rec := rec.(type) {
		case *hplfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
			continue
		case *hplfmt.Result:
			if !filter.Match(rec) {
				continue
			}
		}

		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if outFile != nil {
		return outFile.Close()
	}
	return nil
}
