// Package ir measures the impulse and frequency response of delay lines.
//
// The analysis verifies the two properties a fractional delay line is built
// for: a flat magnitude response (the Thiran stage is all-pass) and a phase
// delay close to the requested delay, in samples, at low frequencies.
//
//   - Magnitude: |H(k)| per bin, from an FFT of the impulse response
//   - Phase delay: -arg H(k) / w(k), in samples, from the unwrapped phase
//   - Group delay: Re{DFT(n h[n]) / DFT(h[n])}, in samples
//   - PeakIndex and CenterTime of the impulse response itself
//
// # Usage
//
//	line := delay.New(48000)
//	_ = line.SetDelay(0.0001)
//	h := ir.ImpulseResponse(line, 4096, 256)
//	resp, err := ir.NewAnalyzer(48000).Analyze(h)
//	fmt.Printf("phase delay at 1 kHz = %.3f samples\n", resp.PhaseDelayAt(1000))
//
// [Sweep] analyses a set of delay settings concurrently, one line per
// goroutine.
package ir
