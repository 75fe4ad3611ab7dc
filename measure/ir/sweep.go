package ir

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/delay"
)

// SweepPoint is the measured response of one delay setting.
type SweepPoint struct {
	Delay           float64 // requested delay in seconds
	IntegerDelay    int
	FractionalDelay float64
	Coefficient     float64
	Response        Response
}

// Samples returns the requested delay in samples.
func (p SweepPoint) Samples() float64 {
	return float64(p.IntegerDelay) + p.FractionalDelay
}

// Sweep measures a fresh delay line for each entry of delays, concurrently.
// Sample rate, max delay and the block size used to drive the lines come
// from opts. Results keep the order of delays. The first failing setting
// (for example a delay outside [0, max delay)) cancels the rest.
func Sweep(ctx context.Context, delays []float64, opts ...core.ProcessorOption) ([]SweepPoint, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	points := make([]SweepPoint, len(delays))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seconds := range delays {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			point, err := measure(cfg, seconds)
			if err != nil {
				return fmt.Errorf("ir: sweep delay %v s: %w", seconds, err)
			}

			points[i] = point
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}

// Measure analyses a single delay setting.
func Measure(seconds float64, opts ...core.ProcessorOption) (SweepPoint, error) {
	return measure(core.ApplyProcessorOptions(opts...), seconds)
}

func measure(cfg core.ProcessorConfig, seconds float64) (SweepPoint, error) {
	line := delay.New(cfg.SampleRate, delay.WithMaxDelay(cfg.MaxDelay))
	if err := line.SetDelay(seconds); err != nil {
		return SweepPoint{}, err
	}

	coeff := 0.0
	if line.FractionalDelay() != 0 {
		coeff = line.Coefficient()
	}

	samples := float64(line.IntegerDelay()) + line.FractionalDelay()
	size := FFTSizeFor(samples, coeff)

	h := ImpulseResponse(line, size, cfg.BlockSize)

	resp, err := NewAnalyzer(cfg.SampleRate, WithFFTSize(size)).Analyze(h)
	if err != nil {
		return SweepPoint{}, err
	}

	return SweepPoint{
		Delay:           seconds,
		IntegerDelay:    line.IntegerDelay(),
		FractionalDelay: line.FractionalDelay(),
		Coefficient:     coeff,
		Response:        resp,
	}, nil
}
