package bitmap

import (
	"errors"
	"image"
)

var (
	errNotEnough = errors.New("bitmap: not enough image data")
	errTooMuch   = errors.New("bitmap: too much image data")
)

// Decode returns a width by height Mono image backed by b. The length of b
// must be exactly Size(width, height).
func Decode(b []byte, width, height int) (*Mono, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}

	switch n := Size(width, height); {
	case len(b) < n:
		return nil, errNotEnough
	case len(b) > n:
		return nil, errTooMuch
	}

	return &Mono{
		Pix:  b,
		Rect: image.Rect(0, 0, width, height),
	}, nil
}
