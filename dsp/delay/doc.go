// Package delay provides a single-channel fractional delay line.
//
// [Fractional] stores incoming samples in a fixed circular buffer sized for
// the configured maximum delay. The integer part of the requested delay is a
// read-cursor offset behind the write cursor; the sub-sample remainder is
// approximated by a first-order Thiran all-pass (see package interp).
//
// Changing the delay moves the read cursor immediately. Buffer contents and
// filter memories are kept, so an abrupt change produces a discontinuity.
//
// A line is not safe for concurrent use.
package delay
