package core

import "math"

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SecondsToSamples converts a duration in seconds to a (possibly fractional)
// sample count.
func SecondsToSamples(seconds, sampleRate float64) float64 {
	return seconds * sampleRate
}
