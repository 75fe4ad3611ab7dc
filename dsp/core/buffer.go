package core

import "golang.org/x/exp/constraints"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[F constraints.Float](buf []F, n int) []F {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]F, n)
}

// Zero sets all values in buf to 0.
func Zero[F constraints.Float](buf []F) {
	for i := range buf {
		buf[i] = 0
	}
}
