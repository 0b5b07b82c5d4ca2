package stft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stream/dsp/core"
	"github.com/cwbudde/algo-stream/dsp/frame"
	"github.com/cwbudde/algo-stream/dsp/ring"
)

// Analyzer computes streaming magnitude spectra over overlapping frames.
//
// Samples are written into an internal ring buffer; whenever hop new samples
// have accumulated the next frame is extracted, windowed, and transformed.
// All scratch memory is pre-allocated, so steady-state processing allocates
// only when Next is asked to return a fresh slice.
type Analyzer struct {
	buf    *ring.Buffer[float64]
	ext    *frame.Extractor[float64]
	window []float64

	plan     *algofft.Plan[complex128]
	windowed []float64
	fftIn    []complex128
	fftOut   []complex128
	re       []float64
	im       []float64
}

// Option configures an Analyzer.
type Option func(*config)

type config struct {
	window   []float64
	capacity int
}

// WithWindow sets the analysis window coefficients. The slice must have
// frameSize elements; it is used as-is without copying.
func WithWindow(coeffs []float64) Option {
	return func(c *config) {
		c.window = coeffs
	}
}

// WithBufferCapacity sets the internal ring capacity in samples.
// The default is four frames.
func WithBufferCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New returns an Analyzer for frames of frameSize samples with the given
// overlap between successive frames. The default window is a periodic Hann.
func New(frameSize, overlap int, opts ...Option) (*Analyzer, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ext, err := frame.New[float64](frameSize, overlap)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	capacity := cfg.capacity
	if capacity == 0 {
		capacity = 4 * frameSize
	}
	if capacity < frameSize {
		return nil, fmt.Errorf("stft: buffer capacity must hold at least one frame: %d < %d", capacity, frameSize)
	}
	buf, err := ring.New[float64](capacity)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	window := cfg.window
	if window == nil {
		window = hann(frameSize)
	} else if len(window) != frameSize {
		return nil, fmt.Errorf("stft: window length must match frame size: %d != %d", len(window), frameSize)
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	bins := frameSize/2 + 1
	return &Analyzer{
		buf:      buf,
		ext:      ext,
		window:   window,
		plan:     plan,
		windowed: make([]float64, frameSize),
		fftIn:    make([]complex128, frameSize),
		fftOut:   make([]complex128, frameSize),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
	}, nil
}

// Write feeds samples into the analyzer and returns the number accepted.
// Samples beyond the internal buffer's free space are dropped, per the ring
// buffer's bounded-sink policy; callers that must not lose data should drain
// pending frames via Next before writing more.
func (a *Analyzer) Write(samples []float64) int {
	return a.buf.Enqueue(samples)
}

// Pending returns the number of buffered samples not yet consumed by Next.
func (a *Analyzer) Pending() int {
	return a.buf.Len()
}

// Next returns the magnitude spectrum of the next frame, or nil when not
// enough samples have accumulated. The returned slice is freshly allocated
// with Bins() elements.
func (a *Analyzer) Next() ([]float64, error) {
	return a.NextTo(nil)
}

// NextTo is like Next but writes the spectrum into dst, reusing its capacity
// when possible. It returns the (possibly reallocated) destination slice, or
// nil when no frame is ready.
func (a *Analyzer) NextTo(dst []float64) ([]float64, error) {
	ok, err := a.ext.Pull(a.buf)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	if !ok {
		return nil, nil
	}

	vecmath.MulBlock(a.windowed, a.ext.Frame(), a.window)
	for i, v := range a.windowed {
		a.fftIn[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return nil, fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	bins := len(a.re)
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.fftOut[i])
		a.im[i] = imag(a.fftOut[i])
	}
	dst = core.EnsureLen(dst, bins)
	vecmath.Magnitude(dst, a.re, a.im)
	return dst, nil
}

// FrameSize returns the analysis frame length in samples.
func (a *Analyzer) FrameSize() int {
	return a.ext.FrameSize()
}

// Overlap returns the overlap between successive frames in samples.
func (a *Analyzer) Overlap() int {
	return a.ext.Overlap()
}

// Hop returns the number of new samples consumed per spectrum after the first.
func (a *Analyzer) Hop() int {
	return a.ext.Hop()
}

// Bins returns the number of spectrum bins per frame: frameSize/2 + 1.
func (a *Analyzer) Bins() int {
	return len(a.re)
}

// Reset discards buffered samples and overlap state for a new stream.
func (a *Analyzer) Reset() {
	a.buf.Flush()
	a.ext.Reset()
}

// hann returns periodic (FFT-form) Hann coefficients.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
