// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hplstat bins HPL benchmark results and reports the best bin.
//
// Usage:
//
//	hplstat -b field -s field [flags] HPL.out...
//
// Hplstat reads the results tables from one or more HPL output files
// ("-" for stdin), groups the results into bins by the value of the
// --bin field, and computes the minimum, maximum, and mean of the
// --statistic field in each bin. It then reports the bin with the
// best mean. Lower is better for time and higher is better for every
// other field, unless --order says otherwise.
//
// The fields are encodedtime (HPL's T/V code), n, nb, p, q, time, and
// gflops. Any field can be used for binning; all but encodedtime can
// be used as the statistic.
//
// For example, given the output of an HPL run that tried several
// block sizes,
//
//	hplstat -b nb -s gflops HPL.out
//
// prints
//
//	Results for HPL.out
//
//	Results are binned by nb
//
//	Minimum, maximum, and average gflops per bin
//	nb      min     max    mean  n
//	192  68.064  68.712  68.388  2
//	256   71.73  72.166  71.948  2
//
//	Best bin with respect to gflops
//	256
//
// # Options
//
// Every flag can also be set in a configuration file named by
// --config (YAML, TOML, or JSON, by extension) or with an environment
// variable: HPLSTAT_ followed by the flag name in upper case, with "-"
// replaced by "_". Flags take precedence over the environment, which
// takes precedence over the configuration file.
//
// The --format flag selects the report format: "text" (the default),
// "table" for a boxed table, "csv", or "html".
//
// The --filter flag keeps only results matching a query of
// space-separated field:value terms, such as "p:2 q:2". See hplfilter.
//
// The --chart flag additionally draws the mean of each bin, with its
// minimum and maximum, as a bar chart. The image format is taken from
// the file extension: .png, .svg, .pdf, and others.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hpcbench/hplstat/hplfmt"
	"github.com/hpcbench/hplstat/hplproc"
)

func main() {
	log.SetPrefix("hplstat: ")
	log.SetFlags(0)

	if err := hplstat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return
		case errors.Is(err, errUsage):
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

const usageText = `Usage: hplstat -b field -s field [flags] inputs...

hplstat bins the results in HPL output files by the --bin field and
reports the minimum, maximum, and mean of the --statistic field in
each bin, and the bin with the best mean. Fields are encodedtime, n,
nb, p, q, time, and gflops. An input of "-" reads stdin.

Flags:
`

// errUsage reports bad command-line arguments. The usage message has
// already been printed.
var errUsage = errors.New("usage error")

// config is the complete configuration of one run, merged from
// flags, the environment, and the configuration file.
type config struct {
	Bin       string `mapstructure:"bin"`
	Statistic string `mapstructure:"statistic"`
	Output    string `mapstructure:"output"`
	Verbose   bool   `mapstructure:"verbose"`
	Format    string `mapstructure:"format"`
	Order     string `mapstructure:"order"`
	Filter    string `mapstructure:"filter"`
	Chart     string `mapstructure:"chart"`
	Color     string `mapstructure:"color"`
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("hplstat", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	fs.StringP("bin", "b", "", "bin results by `field`")
	fs.StringP("statistic", "s", "", "summarize and optimize `field`")
	fs.StringP("output", "o", "", "write the report to `file` instead of stdout")
	fs.BoolP("verbose", "v", false, "also print the results in each bin")
	fs.String("format", "text", "report `format`: text, table, csv, or html")
	fs.String("order", "auto", "best bin `order`: lower, higher, or auto (lower for time only)")
	fs.String("filter", "", "only use results matching `query`")
	fs.String("chart", "", "draw a bar chart of each bin to `file`")
	fs.String("color", "auto", "highlight the best bin: auto, always, or never")
	fs.String("config", "", "read flag defaults from `file`")
	return fs
}

// loadConfig merges fs, the environment, and the configuration file
// named by fs's --config flag. fs must already be parsed.
func loadConfig(fs *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("hplstat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// options is a validated config.
type options struct {
	*config
	inputs        []string
	bin, stat     hplproc.Field
	lowerIsBetter bool
	filter        *hplproc.Filter
}

func (cfg *config) validate(inputs []string) (*options, error) {
	opts := &options{config: cfg, inputs: inputs}
	if cfg.Bin == "" || cfg.Statistic == "" {
		return nil, fmt.Errorf("both --bin and --statistic are required")
	}
	var err error
	if opts.bin, err = hplproc.ParseField(cfg.Bin); err != nil {
		return nil, fmt.Errorf("--bin: %w", err)
	}
	if opts.stat, err = hplproc.ParseField(cfg.Statistic); err != nil {
		return nil, fmt.Errorf("--statistic: %w", err)
	}
	if !opts.stat.Numeric() {
		return nil, fmt.Errorf("--statistic: %s is not numeric", opts.stat)
	}
	switch cfg.Order {
	case "auto":
		opts.lowerIsBetter = opts.stat.LowerIsBetter()
	case "lower":
		opts.lowerIsBetter = true
	case "higher":
		opts.lowerIsBetter = false
	default:
		return nil, fmt.Errorf("--order: unknown order %q", cfg.Order)
	}
	if _, ok := formats[cfg.Format]; !ok {
		return nil, fmt.Errorf("--format: unknown format %q", cfg.Format)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("--color: want auto, always, or never, got %q", cfg.Color)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	if opts.filter, err = hplproc.NewFilter(cfg.Filter); err != nil {
		return nil, err
	}
	return opts, nil
}

func hplstat(stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		fmt.Fprintf(stderr, "%s: %s\n", fs.Name(), err)
		fs.Usage()
		return errUsage
	}
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	opts, err := cfg.validate(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "hplstat: %s\n", err)
		fs.Usage()
		return errUsage
	}

	// Read the inputs.
	var results []*hplfmt.Result
	files := hplfmt.Files{Paths: opts.inputs, AllowStdin: true}
	for files.Scan() {
		switch rec := files.Result(); rec := rec.(type) {
		case *hplfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
		case *hplfmt.Result:
			if opts.filter.Match(rec) {
				results = append(results, rec)
			}
		}
	}
	if err := files.Err(); err != nil {
		return err
	}

	rep, err := newReport(opts, results)
	if err != nil {
		return err
	}

	out := stdout
	var outFile *os.File
	if opts.Output != "" {
		outFile, err = os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer outFile.Close()
		out = outFile
	}
	if err := rep.write(out, formats[opts.Format], opts.highlight(out)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return err
		}
	}

	if opts.Chart != "" {
		if err := writeChart(opts.Chart, rep); err != nil {
			return fmt.Errorf("writing chart: %w", err)
		}
	}
	return nil
}
