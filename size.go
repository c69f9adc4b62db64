package img2c

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxDimension is the largest width or height accepted
const MaxDimension = 1 << 14

func positive(s string) (int, bool) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > MaxDimension {
		return 0, false
	}
	return n, true
}

// ParseSize parses a WIDTHxHEIGHT string such as "200x200". Each side must be
// between 1 and MaxDimension.
func ParseSize(s string) (int, int, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(ErrInvalidSizeSpec, "%q", s)
	}

	w, ok := positive(parts[0])
	if !ok {
		return 0, 0, errors.Wrapf(ErrInvalidSizeSpec, "%q", s)
	}
	h, ok := positive(parts[1])
	if !ok {
		return 0, 0, errors.Wrapf(ErrInvalidSizeSpec, "%q", s)
	}

	return w, h, nil
}
