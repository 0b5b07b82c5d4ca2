package frame

import (
	"errors"
	"fmt"
)

// ErrElemSizeMismatch is returned by Pull when the buffer's element width
// differs from the width the extractor was configured for.
var ErrElemSizeMismatch = errors.New("buffer and extractor element sizes differ")

func validateGeometry(frameSize, overlap int) error {
	if frameSize <= 0 {
		return fmt.Errorf("frame size must be > 0: %d", frameSize)
	}
	if overlap < 0 {
		return fmt.Errorf("overlap must be >= 0: %d", overlap)
	}
	if overlap >= frameSize {
		return fmt.Errorf("overlap must be smaller than frame size: %d >= %d", overlap, frameSize)
	}
	return nil
}
