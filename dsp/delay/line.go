package delay

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/interp"
)

// Fractional is a circular delay line with sub-sample delay resolution.
type Fractional[F constraints.Float] struct {
	sampleRate float64
	maxDelay   float64

	buffer   []F
	writePos int
	readPos  int

	delayTime float64
	intDelay  int
	fracDelay float64

	allpass interp.Allpass[F]
}

// New returns a float64 line for the given sample rate.
func New(sampleRate float64, opts ...Option) *Fractional[float64] {
	return NewFractional[float64](sampleRate, opts...)
}

// NewFractional returns a line holding up to the configured max delay
// (default 1 second) at sampleRate. The sample rate must be positive.
func NewFractional[F constraints.Float](sampleRate float64, opts ...Option) *Fractional[F] {
	cfg := applyOptions(opts)

	size := int(math.Ceil(cfg.maxDelay * sampleRate))
	if size < 1 {
		size = 1
	}

	return &Fractional[F]{
		sampleRate: sampleRate,
		maxDelay:   cfg.maxDelay,
		buffer:     make([]F, size),
	}
}

// SetDelay sets the delay in seconds. It fails with [ErrInvalidArgument] when
// seconds is not in [0, max delay); the line is left unchanged in that case.
func (d *Fractional[F]) SetDelay(seconds float64) error {
	if seconds >= d.maxDelay || math.IsNaN(seconds) {
		return fmt.Errorf("%w: delay %v s must be below max delay %v s", ErrInvalidArgument, seconds, d.maxDelay)
	}
	if seconds < 0 {
		return fmt.Errorf("%w: delay %v s must not be negative", ErrInvalidArgument, seconds)
	}

	d.delayTime = seconds
	samples := core.SecondsToSamples(seconds, d.sampleRate)
	d.intDelay = int(samples)
	d.fracDelay = samples - float64(d.intDelay)
	d.resample()

	// With no fractional part the coefficient is kept but not applied.
	if d.fracDelay != 0 {
		d.allpass.SetCoefficient(interp.ThiranCoefficient(d.fracDelay))
	}
	return nil
}

// Delay returns the last accepted delay in seconds.
func (d *Fractional[F]) Delay() float64 {
	return d.delayTime
}

// Process delays in and returns a newly allocated block of the same length.
// Consecutive calls behave like one call on the concatenated input.
func (d *Fractional[F]) Process(in []F) []F {
	return d.ProcessTo(make([]F, len(in)), in)
}

// ProcessTo is like Process but writes into dst, reusing its capacity.
// dst may alias in. It returns the written slice.
func (d *Fractional[F]) ProcessTo(dst, in []F) []F {
	dst = core.EnsureLen(dst, len(in))

	for i, x := range in {
		d.buffer[d.writePos] = x
		dst[i] = d.buffer[d.readPos]
		d.advance()
	}

	if d.fracDelay != 0 {
		d.allpass.ProcessInPlace(dst)
	}
	return dst
}

// ProcessSample delays a single sample.
func (d *Fractional[F]) ProcessSample(x F) F {
	d.buffer[d.writePos] = x
	y := d.buffer[d.readPos]
	d.advance()

	if d.fracDelay != 0 {
		y = d.allpass.Tick(y)
	}
	return y
}

// Reset clears the buffer and filter memories. The delay setting is kept.
func (d *Fractional[F]) Reset() {
	core.Zero(d.buffer)
	d.allpass.Reset()
	d.writePos = 0
	d.resample()
}

// Len returns the buffer capacity in samples.
func (d *Fractional[F]) Len() int {
	return len(d.buffer)
}

// SampleRate returns the sample rate in Hz.
func (d *Fractional[F]) SampleRate() float64 {
	return d.sampleRate
}

// MaxDelay returns the exclusive upper bound for SetDelay, in seconds.
func (d *Fractional[F]) MaxDelay() float64 {
	return d.maxDelay
}

// IntegerDelay returns the whole-sample part of the current delay.
func (d *Fractional[F]) IntegerDelay() int {
	return d.intDelay
}

// FractionalDelay returns the sub-sample part of the current delay, in [0, 1).
func (d *Fractional[F]) FractionalDelay() float64 {
	return d.fracDelay
}

// Coefficient returns the all-pass coefficient. It is 0 until a delay with a
// fractional part has been set.
func (d *Fractional[F]) Coefficient() float64 {
	return d.allpass.Coefficient()
}

// advance moves both cursors one position, wrapping at the buffer end.
func (d *Fractional[F]) advance() {
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}

	d.readPos++
	if d.readPos >= len(d.buffer) {
		d.readPos = 0
	}
}

// resample places the read cursor intDelay positions behind the write cursor.
func (d *Fractional[F]) resample() {
	if d.writePos-d.intDelay < 0 {
		pos := d.intDelay - d.writePos
		d.readPos = len(d.buffer) - pos
	} else {
		d.readPos = d.writePos - d.intDelay
	}
}
