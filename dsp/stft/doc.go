// Package stft provides a streaming short-time spectrum analyzer built on
// the ring and frame packages. It windows each overlapping frame and
// transforms it with an FFT plan that is created once and reused, which
// makes it suitable for sample-by-sample or block-by-block feeding from a
// capture loop.
package stft
