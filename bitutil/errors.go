package bitutil

import "fmt"

// OutOfBoundsError is the panic value raised when a bit outside a
// BitArray or BitMatrix is addressed.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	if e.Height == 0 {
		return fmt.Sprintf("bitutil: index %d out of range [0,%d)", e.X, e.Width)
	}
	return fmt.Sprintf("bitutil: (%d,%d) out of range [0,%d)x[0,%d)", e.X, e.Y, e.Width, e.Height)
}
