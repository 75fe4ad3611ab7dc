// Command fdinfo prints the measured response of a fractional delay line.
//
// Usage:
//
//	fdinfo [flags] delay-seconds ...
//
// For each delay it reports the integer/fractional split in samples, the
// all-pass coefficient, the phase delay at selected frequencies and the
// largest magnitude deviation from 0 dB.
//
// Examples:
//
//	fdinfo 0.0001 0.00025
//	fdinfo -rate 44100 -freqs 100,1000,10000 0.5 0.3
//	fdinfo -rate 8 -max 1 0.25 0.3125
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/measure/ir"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fdinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rate := fs.Float64("rate", 48000, "sample rate in Hz")
	maxDelay := fs.Float64("max", 1, "maximum delay time in seconds")
	block := fs.Int("block", 1024, "block size used to drive the line")
	freqs := fs.String("freqs", "100,1000,10000", "comma-separated frequencies (Hz) for phase delay columns")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fdinfo [flags] delay-seconds ...\n\n")
		fmt.Fprintf(stderr, "Prints the measured response of a fractional delay line.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fdinfo 0.0001 0.00025\n")
		fmt.Fprintf(stderr, "  fdinfo -rate 44100 -freqs 100,1000,10000 0.5 0.3\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *rate <= 0 || *maxDelay <= 0 {
		fmt.Fprintf(stderr, "error: -rate and -max must be positive\n")
		return 2
	}

	delays, err := parseFloats(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if len(delays) == 0 {
		fs.Usage()
		return 2
	}

	columns, err := parseFloats(strings.Split(*freqs, ","))
	if err != nil {
		fmt.Fprintf(stderr, "error: -freqs: %v\n", err)
		return 2
	}

	points, err := ir.Sweep(ctx, delays,
		core.WithSampleRate(*rate),
		core.WithMaxDelay(*maxDelay),
		core.WithBlockSize(*block),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := printAnalysis(stdout, points, columns); err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return 1
	}
	return 0
}

func parseFloats(fields []string) ([]float64, error) {
	var out []float64
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func printAnalysis(w io.Writer, points []ir.SweepPoint, freqs []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "Delay [s]\tSamples\tInt\tFrac\tCoefficient"
	rule := "---------\t-------\t---\t----\t-----------"
	for _, f := range freqs {
		header += fmt.Sprintf("\tPD@%gHz", f)
		rule += "\t" + strings.Repeat("-", len(fmt.Sprintf("PD@%gHz", f)))
	}
	header += "\tMax dev [dB]\n"
	rule += "\t------------\n"

	if _, err := fmt.Fprint(tw, header, rule); err != nil {
		return err
	}

	for _, p := range points {
		row := fmt.Sprintf("%g\t%.4f\t%d\t%.4f\t%.6f",
			p.Delay, p.Samples(), p.IntegerDelay, p.FractionalDelay, p.Coefficient)
		for _, f := range freqs {
			row += fmt.Sprintf("\t%.4f", p.Response.PhaseDelayAt(f))
		}
		row += fmt.Sprintf("\t%.2e\n", p.Response.MaxMagnitudeDeviationDB())

		if _, err := fmt.Fprint(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}
