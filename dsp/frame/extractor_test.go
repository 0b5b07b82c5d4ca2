package frame

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-stream/dsp/ring"
	"github.com/cwbudde/algo-stream/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name      string
		frameSize int
		overlap   int
	}{
		{"zero frame size", 0, 0},
		{"negative frame size", -4, 0},
		{"negative overlap", 4, -1},
		{"overlap equals frame size", 4, 4},
		{"overlap exceeds frame size", 4, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New[float64](tc.frameSize, tc.overlap); err == nil {
				t.Fatalf("New(%d, %d) should fail", tc.frameSize, tc.overlap)
			}
		})
	}
}

func TestGeometryAccessors(t *testing.T) {
	x, err := New[int32](8, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if x.FrameSize() != 8 || x.Overlap() != 2 || x.Hop() != 6 {
		t.Fatalf("geometry = %d/%d/%d, want 8/2/6", x.FrameSize(), x.Overlap(), x.Hop())
	}
	if x.ElemSize() != 4 {
		t.Fatalf("ElemSize = %d, want 4", x.ElemSize())
	}
}

func TestOverlapSequence(t *testing.T) {
	// Feeding 1..8 one sample at a time with frameSize=4, overlap=2 must
	// produce [1 2 3 4], [3 4 5 6], [5 6 7 8]: each frame starts with the
	// previous frame's tail.
	buf := mustRing[float64](t, 8)
	x := mustNew[float64](t, 4, 2)

	want := [][]float64{
		{1, 2, 3, 4},
		{3, 4, 5, 6},
		{5, 6, 7, 8},
	}

	var got [][]float64
	for v := 1; v <= 8; v++ {
		buf.Enqueue([]float64{float64(v)})
		ready, err := x.Pull(buf)
		if err != nil {
			t.Fatalf("Pull failed at sample %d: %v", v, err)
		}
		if ready {
			got = append(got, append([]float64(nil), x.Frame()...))
		}
	}

	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("frame %d = %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestBootstrapNeedsFullFrame(t *testing.T) {
	buf := mustRing[float64](t, 8)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue([]float64{1, 2, 3})
	ready, err := x.Pull(buf)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if ready {
		t.Fatal("frame should not be ready before a full frame accumulated")
	}

	buf.Enqueue([]float64{4})
	ready, err = x.Pull(buf)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if !ready {
		t.Fatal("frame should be ready")
	}
	// The first pull consumes a full frame, not just a hop.
	if buf.Len() != 0 {
		t.Fatalf("buffer holds %d samples after first frame, want 0", buf.Len())
	}
}

func TestSteadyStateConsumesHop(t *testing.T) {
	buf := mustRing[float64](t, 16)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue(testutil.Ramp(1, 10))
	mustPull(t, x, buf) // bootstrap: consumes 4
	if buf.Len() != 6 {
		t.Fatalf("Len = %d after bootstrap, want 6", buf.Len())
	}
	mustPull(t, x, buf)
	if buf.Len() != 4 {
		t.Fatalf("Len = %d after steady-state pull, want 4", buf.Len())
	}
	mustPull(t, x, buf)
	if buf.Len() != 2 {
		t.Fatalf("Len = %d after steady-state pull, want 2", buf.Len())
	}
}

func TestNotReadyLeavesFrame(t *testing.T) {
	buf := mustRing[float64](t, 8)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue([]float64{1, 2, 3, 4})
	mustPull(t, x, buf)

	buf.Enqueue([]float64{5})
	ready, err := x.Pull(buf)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if ready {
		t.Fatal("one new sample must not be enough with hop 2")
	}
	// A caller that reads anyway sees the last valid frame, not garbage.
	want := []float64{1, 2, 3, 4}
	for i, v := range x.Frame() {
		if v != want[i] {
			t.Fatalf("Frame()[%d] = %v after NotReady, want %v", i, v, want[i])
		}
	}
}

func TestZeroOverlap(t *testing.T) {
	buf := mustRing[float64](t, 8)
	x := mustNew[float64](t, 3, 0)

	buf.Enqueue([]float64{1, 2, 3, 4, 5, 6})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{1, 2, 3})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{4, 5, 6})
}

func TestPullAcrossWrap(t *testing.T) {
	// Drive the ring around its wrap point between pulls; frame content
	// must stay a contiguous view of the stream.
	buf := mustRing[float64](t, 6)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue(testutil.Ramp(1, 6))
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{1, 2, 3, 4})

	// Storage front is now at index 4; these writes wrap to the start.
	buf.Enqueue([]float64{7, 8, 9, 10})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{3, 4, 5, 6})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{5, 6, 7, 8})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{7, 8, 9, 10})
}

func TestPullFromFullBuffer(t *testing.T) {
	// A full buffer counts as capacity live elements, not as empty.
	buf := mustRing[float64](t, 4)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue([]float64{1, 2, 3, 4})
	if !buf.IsFull() {
		t.Fatal("buffer should be full")
	}
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{1, 2, 3, 4})
}

func TestElemSizeMismatch(t *testing.T) {
	buf := mustRing[int32](t, 8)
	x, err := New[int32](4, 2, WithElemSize(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if x.ElemSize() != 2 {
		t.Fatalf("ElemSize = %d, want 2", x.ElemSize())
	}

	// The pairing stays invalid on every call, even with data available.
	buf.Enqueue([]int32{1, 2, 3, 4, 5, 6})
	for i := 0; i < 3; i++ {
		ready, err := x.Pull(buf)
		if !errors.Is(err, ErrElemSizeMismatch) {
			t.Fatalf("call %d: err = %v, want ErrElemSizeMismatch", i, err)
		}
		if ready {
			t.Fatalf("call %d: mismatched pairing must never be ready", i)
		}
	}
	if buf.Len() != 6 {
		t.Fatalf("mismatched Pull must not consume data, Len = %d", buf.Len())
	}
}

func TestReset(t *testing.T) {
	buf := mustRing[float64](t, 8)
	x := mustNew[float64](t, 4, 2)

	buf.Enqueue([]float64{1, 2, 3, 4, 5, 6})
	mustPull(t, x, buf)
	x.Reset()

	for _, v := range x.Frame() {
		if v != 0 {
			t.Fatalf("Frame not zeroed after Reset: %v", x.Frame())
		}
	}

	// Back in bootstrap: two buffered samples (a hop's worth) are not enough.
	ready, err := x.Pull(buf)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if ready {
		t.Fatal("Reset extractor must require a full frame again")
	}
	buf.Enqueue([]float64{7, 8})
	mustPull(t, x, buf)
	requireFrame(t, x, []float64{5, 6, 7, 8})
}

func mustRing[T ring.Scalar](t *testing.T, capacity int) *ring.Buffer[T] {
	t.Helper()
	b, err := ring.New[T](capacity)
	if err != nil {
		t.Fatalf("ring.New failed: %v", err)
	}
	return b
}

func mustNew[T ring.Scalar](t *testing.T, frameSize, overlap int) *Extractor[T] {
	t.Helper()
	x, err := New[T](frameSize, overlap)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return x
}

func mustPull[T ring.Scalar](t *testing.T, x *Extractor[T], buf *ring.Buffer[T]) {
	t.Helper()
	ready, err := x.Pull(buf)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if !ready {
		t.Fatal("frame should be ready")
	}
}

func requireFrame(t *testing.T, x *Extractor[float64], want []float64) {
	t.Helper()
	got := x.Frame()
	if len(got) != len(want) {
		t.Fatalf("Frame length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Frame = %v, want %v", got, want)
		}
	}
}
