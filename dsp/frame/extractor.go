package frame

import (
	"unsafe"

	"github.com/cwbudde/algo-stream/dsp/core"
	"github.com/cwbudde/algo-stream/dsp/ring"
)

// Extractor slices a continuous overlapping sequence of equal-size frames
// out of a ring buffer's sample stream.
//
// The first frame becomes ready once a full frame of samples has
// accumulated. Every later frame reuses the previous frame's trailing
// overlap elements and becomes ready once hop = frameSize - overlap new
// samples are available. The overlap carry is per-instance state, so
// independent extractors can share nothing.
//
// For the readiness check to trigger on every produced sample, callers must
// keep frameSize an integer multiple of overlap; other geometries delay or
// skip frames rather than fail.
type Extractor[T ring.Scalar] struct {
	frame    []T
	carry    []T
	overlap  int
	hop      int
	elemSize int
	primed   bool
}

// Option configures an Extractor.
type Option func(*config)

type config struct {
	elemSize int
}

// WithElemSize overrides the element width the extractor expects its paired
// buffer to have. It defaults to the width of T; overriding it is only
// useful for callers that reinterpret buffer storage at a different width.
func WithElemSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.elemSize = n
		}
	}
}

// New returns an Extractor producing frames of frameSize elements with the
// given overlap carried over between successive frames.
func New[T ring.Scalar](frameSize, overlap int, opts ...Option) (*Extractor[T], error) {
	if err := validateGeometry(frameSize, overlap); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	elemSize := cfg.elemSize
	if elemSize == 0 {
		var zero T
		elemSize = int(unsafe.Sizeof(zero))
	}

	return &Extractor[T]{
		frame:    make([]T, frameSize),
		carry:    make([]T, overlap),
		overlap:  overlap,
		hop:      frameSize - overlap,
		elemSize: elemSize,
	}, nil
}

// Pull attempts to extract the next frame from buf.
//
// It returns (true, nil) when a frame was extracted into Frame, and
// (false, nil) when not enough new samples have accumulated; in that case
// Frame still holds the previous frame unchanged. The only error is
// [ErrElemSizeMismatch] when buf stores elements of a different width than
// the extractor was configured for; the pairing is re-checked on every call
// since the buffer may be rebound between calls.
func (x *Extractor[T]) Pull(buf *ring.Buffer[T]) (bool, error) {
	if buf.ElemSize() != x.elemSize {
		return false, ErrElemSizeMismatch
	}

	if !x.primed {
		if buf.Len() < len(x.frame) {
			return false, nil
		}
		buf.Dequeue(x.frame)
		core.CopyInto(x.carry, x.frame[x.hop:])
		x.primed = true
		return true, nil
	}

	if buf.Len() < x.hop {
		return false, nil
	}
	core.CopyInto(x.frame[:x.overlap], x.carry)
	buf.Dequeue(x.frame[x.overlap:])
	core.CopyInto(x.carry, x.frame[x.hop:])
	return true, nil
}

// Frame returns the extractor's frame storage. It is overwritten in place by
// every successful Pull and holds the last extracted frame until then.
func (x *Extractor[T]) Frame() []T {
	return x.frame
}

// FrameSize returns the number of elements per frame.
func (x *Extractor[T]) FrameSize() int {
	return len(x.frame)
}

// Overlap returns the number of elements carried over between frames.
func (x *Extractor[T]) Overlap() int {
	return x.overlap
}

// Hop returns the number of new elements consumed per frame after the first.
func (x *Extractor[T]) Hop() int {
	return x.hop
}

// ElemSize returns the element width in bytes the extractor expects.
func (x *Extractor[T]) ElemSize() int {
	return x.elemSize
}

// Reset returns the extractor to its bootstrap state: the next Pull requires
// a full frame again, and frame and carry storage are zeroed.
func (x *Extractor[T]) Reset() {
	core.Zero(x.frame)
	core.Zero(x.carry)
	x.primed = false
}
