package interp

import "golang.org/x/exp/constraints"

// ThiranCoefficient returns the first-order Thiran all-pass coefficient
// (1-frac)/(1+frac) for a fractional delay of frac samples.
func ThiranCoefficient(frac float64) float64 {
	return (1 - frac) / (1 + frac)
}

// Allpass is a first-order all-pass filter with persistent state.
//
// The zero value has coefficient 0, which is a pure one-sample delay.
type Allpass[F constraints.Float] struct {
	a  F
	x1 F
	y1 F
}

// NewAllpass returns a filter tuned for a fractional delay of frac samples.
func NewAllpass[F constraints.Float](frac float64) *Allpass[F] {
	return &Allpass[F]{a: F(ThiranCoefficient(frac))}
}

// SetCoefficient replaces the coefficient. The filter memories are kept.
func (f *Allpass[F]) SetCoefficient(a float64) {
	f.a = F(a)
}

// Coefficient returns the current coefficient.
func (f *Allpass[F]) Coefficient() float64 {
	return float64(f.a)
}

// Tick filters a single sample.
func (f *Allpass[F]) Tick(x F) F {
	y := f.a*x + f.x1 - f.a*f.y1
	f.x1 = x
	f.y1 = y
	return y
}

// ProcessInPlace filters buf sample by sample, in order.
func (f *Allpass[F]) ProcessInPlace(buf []F) {
	a, x1, y1 := f.a, f.x1, f.y1
	for i, x := range buf {
		y := a*x + x1 - a*y1
		x1 = x
		y1 = y
		buf[i] = y
	}
	f.x1 = x1
	f.y1 = y1
}

// State returns the previous input and output sample.
func (f *Allpass[F]) State() (x1, y1 F) {
	return f.x1, f.y1
}

// Reset clears the filter memories. The coefficient is kept.
func (f *Allpass[F]) Reset() {
	f.x1 = 0
	f.y1 = 0
}
