package hstring

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every *OutOfRangeError through errors.Is.
var ErrOutOfRange = errors.New("hstring: index out of range")

// OutOfRangeError reports an index outside [0, Size).
type OutOfRangeError struct {
	Index int // requested logical index
	Size  int // length of the string at the time of the access
}

// Error implements the error interface
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("hstring: index %d out of range [0:%d)", e.Index, e.Size)
}

// Is makes errors.Is(err, ErrOutOfRange) succeed
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IsOutOfRange reports whether err is, or wraps, an *OutOfRangeError
func IsOutOfRange(err error) bool {
	var rangeErr *OutOfRangeError
	return errors.As(err, &rangeErr)
}
