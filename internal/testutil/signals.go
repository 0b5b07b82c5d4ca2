package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Ramp returns [start, start+1, ..., start+length-1] as float64 samples.
// Frame-ordering tests use it because every value identifies its position
// in the stream.
func Ramp(start, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(start + i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// PeakBin returns the index of the largest value in spectrum.
func PeakBin(spectrum []float64) int {
	peak := 0
	for i, v := range spectrum {
		if v > spectrum[peak] {
			peak = i
		}
	}
	return peak
}
