package ir_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/delay"
	"github.com/cwbudde/algo-fracdelay/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	line := delay.New(8)
	_ = line.SetDelay(0.3125) // 2.5 samples

	h := ir.ImpulseResponse(line, 256, 32)
	resp, err := ir.NewAnalyzer(8, ir.WithFFTSize(256)).Analyze(h)
	if err != nil {
		panic(err)
	}

	fmt.Printf("peak=%d dc=%.3f nyquist=%.3f flat=%t\n",
		resp.PeakIndex, resp.GroupDelay[0], resp.PhaseDelayAt(4), resp.MaxMagnitudeDeviationDB() < 1e-6)

	// Output:
	// peak=3 dc=2.500 nyquist=3.000 flat=true
}

func ExampleSweep() {
	points, err := ir.Sweep(context.Background(), []float64{0.002, 0.0025},
		core.WithSampleRate(1000),
		core.WithMaxDelay(0.01),
	)
	if err != nil {
		panic(err)
	}

	for _, p := range points {
		fmt.Printf("%.4fs -> %d + %.2f samples\n", p.Delay, p.IntegerDelay, p.FractionalDelay)
	}

	// Output:
	// 0.0020s -> 2 + 0.00 samples
	// 0.0025s -> 2 + 0.50 samples
}
