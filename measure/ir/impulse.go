package ir

import "math"

// Processor is a stateful block processor such as a delay line.
type Processor interface {
	Process(in []float64) []float64
}

// ImpulseResponse feeds a unit impulse followed by silence through p, in
// blocks of blockSize samples, and returns the first n output samples.
// A non-positive blockSize processes everything in one block.
func ImpulseResponse(p Processor, n, blockSize int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if blockSize <= 0 || blockSize > n {
		blockSize = n
	}

	out := make([]float64, 0, n)
	block := make([]float64, blockSize)
	block[0] = 1

	for len(out) < n {
		m := min(blockSize, n-len(out))
		out = append(out, p.Process(block[:m])...)
		block[0] = 0
	}

	return out
}

// FFTSizeFor returns a power-of-two transform length that holds a response
// delayed by delaySamples whose all-pass tail decays with coefficient a.
func FFTSizeFor(delaySamples, a float64) int {
	need := 4*delaySamples + float64(tailLength(a))

	n := 256
	for float64(n) < need && n < 1<<24 {
		n *= 2
	}
	return n
}

// tailLength estimates the samples needed for the all-pass tail to fall
// below -240 dB.
func tailLength(a float64) int {
	const floor = 1e-12
	const longest = 1 << 20

	a = math.Abs(a)
	switch {
	case a < floor:
		return 2
	case a >= 1:
		return longest
	}

	n := math.Log(floor)/math.Log(a) + 2
	if n > longest {
		return longest
	}
	return int(n)
}
