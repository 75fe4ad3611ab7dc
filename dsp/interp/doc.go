// Package interp provides the fractional-delay interpolators used by
// delay-based DSP blocks.
//
// The first-order Thiran all-pass approximates a delay of D samples,
// 0 <= D < 1, with unity magnitude at every frequency:
//
//	H(z) = (a + z^-1) / (1 + a z^-1),  a = (1 - D) / (1 + D)
//
// Its phase delay is accurate at low frequencies and drifts towards Nyquist.
// [Allpass] keeps the one-sample filter memories between calls, so a
// stream may be processed in blocks of any size.
package interp
