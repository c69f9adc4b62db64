package img2c

import "errors"

var (
	// ErrFileNotFound is returned when the input image does not exist
	ErrFileNotFound = errors.New("input file not found")
	// ErrDecode is returned when the input cannot be decoded as an image
	ErrDecode = errors.New("cannot decode image")
	// ErrInvalidSizeSpec is returned for a size that is not WIDTHxHEIGHT
	ErrInvalidSizeSpec = errors.New("invalid size format, use WIDTHxHEIGHT (e.g. 200x200)")
	// ErrInvalidThreshold is returned for a threshold outside 0-255
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 255")
	// ErrWrite is returned when the output cannot be written
	ErrWrite = errors.New("cannot write output")
)

// causeError ties a sentinel error to the underlying error that caused it
// so both errors.Is(err, sentinel) and the cause survive.
type causeError struct {
	sentinel error
	cause    error
}

func wrapCause(sentinel, cause error) error {
	return &causeError{sentinel: sentinel, cause: cause}
}

func (e *causeError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *causeError) Unwrap() error {
	return e.cause
}

func (e *causeError) Is(target error) bool {
	return target == e.sentinel
}
