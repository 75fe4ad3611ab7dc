package ir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
)

const defaultFFTSize = 4096

// Errors returned by response analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("ir: FFT size must be a power of two >= 2")
)

// Response holds the analysed frequency response for bins 0..FFTSize/2.
type Response struct {
	SampleRate  float64
	FFTSize     int
	Frequencies []float64 // bin centre in Hz
	Magnitude   []float64 // linear |H|
	Phase       []float64 // unwrapped, radians
	PhaseDelay  []float64 // samples; bin 0 holds the DC group delay
	GroupDelay  []float64 // samples
	PeakIndex   int       // sample index of the absolute maximum
	CenterTime  float64   // energy centroid in seconds
}

// Analyzer computes frequency responses from impulse responses.
type Analyzer struct {
	SampleRate float64
	FFTSize    int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFFTSize sets the transform length. Impulse responses are zero padded
// or truncated to this length.
func WithFFTSize(n int) Option {
	return func(a *Analyzer) {
		a.FFTSize = n
	}
}

// NewAnalyzer creates an analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...Option) *Analyzer {
	a := &Analyzer{SampleRate: sampleRate, FFTSize: defaultFFTSize}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Analyze computes the frequency response of ir.
//
// Phase unwrapping needs the delay to stay below FFTSize/2 samples; pick the
// size with [FFTSizeFor] when in doubt.
func (a *Analyzer) Analyze(ir []float64) (Response, error) {
	if len(ir) == 0 {
		return Response{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Response{}, ErrInvalidSampleRate
	}

	n := a.FFTSize
	if n < 2 || n&(n-1) != 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}

	h := make([]float64, n)
	copy(h, ir)

	ramp := make([]float64, n)
	for i := range ramp {
		ramp[i] = float64(i)
	}

	weighted := make([]float64, n)
	vecmath.MulBlock(weighted, h, ramp)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Response{}, fmt.Errorf("ir: fft plan: %w", err)
	}

	spectrum, err := forward(plan, h)
	if err != nil {
		return Response{}, err
	}

	weightedSpectrum, err := forward(plan, weighted)
	if err != nil {
		return Response{}, err
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	resp := Response{
		SampleRate:  a.SampleRate,
		FFTSize:     n,
		Frequencies: make([]float64, bins),
		Magnitude:   make([]float64, bins),
		Phase:       make([]float64, bins),
		PhaseDelay:  make([]float64, bins),
		GroupDelay:  make([]float64, bins),
		PeakIndex:   findPeak(ir),
		CenterTime:  a.centerTime(ir),
	}

	vecmath.Magnitude(resp.Magnitude, re, im)

	for k := 0; k < bins; k++ {
		resp.Frequencies[k] = float64(k) * a.SampleRate / float64(n)
		resp.Phase[k] = cmplx.Phase(spectrum[k])

		if spectrum[k] != 0 {
			resp.GroupDelay[k] = real(weightedSpectrum[k] / spectrum[k])
		}
	}

	unwrapPhase(resp.Phase)

	resp.PhaseDelay[0] = resp.GroupDelay[0]
	for k := 1; k < bins; k++ {
		w := 2 * math.Pi * float64(k) / float64(n)
		resp.PhaseDelay[k] = -resp.Phase[k] / w
	}

	return resp, nil
}

// PhaseDelayAt returns the phase delay in samples at hz, linearly
// interpolated between bins.
func (r Response) PhaseDelayAt(hz float64) float64 {
	return r.interpolate(r.PhaseDelay, hz)
}

// GroupDelayAt returns the group delay in samples at hz.
func (r Response) GroupDelayAt(hz float64) float64 {
	return r.interpolate(r.GroupDelay, hz)
}

// MaxMagnitudeDeviationDB returns the largest |20 log10 |H|| over all bins.
// It is 0 for an ideal all-pass response.
func (r Response) MaxMagnitudeDeviationDB() float64 {
	worst := 0.0
	for _, m := range r.Magnitude {
		if dev := math.Abs(core.LinearToDB(m)); dev > worst {
			worst = dev
		}
	}
	return worst
}

func (r Response) interpolate(values []float64, hz float64) float64 {
	if len(values) == 0 || r.FFTSize == 0 || r.SampleRate <= 0 {
		return 0
	}

	pos := hz * float64(r.FFTSize) / r.SampleRate
	if pos <= 0 {
		return values[0]
	}

	last := len(values) - 1
	if pos >= float64(last) {
		return values[last]
	}

	k := int(pos)
	t := pos - float64(k)
	return values[k] + t*(values[k+1]-values[k])
}

func forward(plan *algofft.Plan[complex128], samples []float64) ([]complex128, error) {
	in := make([]complex128, len(samples))
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, len(samples))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("ir: forward fft: %w", err)
	}
	return out, nil
}

// unwrapPhase removes 2*pi jumps between neighbouring bins in place.
func unwrapPhase(phase []float64) {
	offset := 0.0
	prev := 0.0
	for i, v := range phase {
		if i > 0 {
			switch d := v - prev; {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		prev = v
		phase[i] = v + offset
	}
}

// centerTime computes the energy centroid (unchecked).
func (a *Analyzer) centerTime(ir []float64) float64 {
	var numerator, denominator float64

	for i, v := range ir {
		e := v * v
		t := float64(i) / a.SampleRate
		numerator += t * e
		denominator += e
	}

	if denominator <= 0 {
		return 0
	}

	return numerator / denominator
}

func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}
