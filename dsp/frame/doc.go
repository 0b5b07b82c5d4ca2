// Package frame extracts overlapping fixed-size frames from a ring buffer
// stream for block-based signal processing. Like the ring package it is
// strictly sequential; one goroutine owns each extractor.
package frame
