// Command framedump feeds a sample stream through a ring buffer and
// overlap frame extractor and prints every frame that becomes ready.
//
// Usage:
//
//	framedump [flags] < samples.txt
//
// Samples are whitespace-separated numbers on stdin, consumed one at a
// time. With -sine, a generated sine replaces stdin.
//
// Examples:
//
//	seq 1 16 | framedump -frame 4 -overlap 2
//	framedump -frame 64 -overlap 32 -sine 256
//	seq 1 16 | framedump -frame 4 -overlap 2 -state
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-stream/dsp/frame"
	"github.com/cwbudde/algo-stream/dsp/ring"
)

func main() {
	frameSize := flag.Int("frame", 4, "frame length in samples")
	overlap := flag.Int("overlap", 2, "overlap between successive frames in samples")
	capacity := flag.Int("cap", 0, "ring buffer capacity in samples (default 2x frame)")
	sine := flag.Int("sine", 0, "generate n sine samples instead of reading stdin")
	state := flag.Bool("state", false, "print buffer fill state after each sample")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: framedump [flags] < samples.txt\n\n")
		fmt.Fprintf(os.Stderr, "Feeds samples one at a time and prints each ready frame.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *capacity == 0 {
		*capacity = 2 * *frameSize
	}

	buf, err := ring.New[float64](*capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ext, err := frame.New[float64](*frameSize, *overlap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	next := sampleSource(*sine)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	nframe := 0
	for {
		sample, ok, err := next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			break
		}

		buf.Enqueue([]float64{sample})
		if *state {
			fmt.Fprintf(tw, "in %g\tfill %d/%d\n", sample, buf.Len(), buf.Cap())
		}

		ready, err := ext.Pull(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if !ready {
			continue
		}
		nframe++
		fmt.Fprintf(tw, "frame %d\t", nframe)
		for _, v := range ext.Frame() {
			fmt.Fprintf(tw, "%g\t", v)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		os.Exit(1)
	}
}

// sampleSource returns a generator over stdin samples, or over n generated
// sine samples when n > 0.
func sampleSource(n int) func() (float64, bool, error) {
	if n > 0 {
		i := 0
		return func() (float64, bool, error) {
			if i >= n {
				return 0, false, nil
			}
			v := math.Sin(2 * math.Pi * float64(i) / 16)
			i++
			return v, true, nil
		}
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Split(bufio.ScanWords)
	return func() (float64, bool, error) {
		if !sc.Scan() {
			return 0, false, sc.Err()
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return 0, false, fmt.Errorf("bad sample %q: %w", sc.Text(), err)
		}
		return v, true, nil
	}
}
