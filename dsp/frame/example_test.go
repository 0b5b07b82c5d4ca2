package frame_test

import (
	"fmt"

	"github.com/cwbudde/algo-stream/dsp/frame"
	"github.com/cwbudde/algo-stream/dsp/ring"
)

func ExampleExtractor() {
	buf, _ := ring.New[float64](8)
	x, _ := frame.New[float64](4, 2)

	for v := 1.0; v <= 8; v++ {
		buf.Enqueue([]float64{v})
		if ready, _ := x.Pull(buf); ready {
			fmt.Println(x.Frame())
		}
	}

	// Output:
	// [1 2 3 4]
	// [3 4 5 6]
	// [5 6 7 8]
}
