package img2c

import (
	"image"
	"image/color"

	"github.com/bodgit/img2c/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
)

// AutoThreshold picks a threshold for m by reducing it to its two dominant
// colors and splitting the difference between their intensities. An image
// that reduces to a single intensity yields bitmap.DefaultThreshold.
func AutoThreshold(m image.Image) uint8 {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	if len(p) < 2 {
		return bitmap.DefaultThreshold
	}

	lo := color.GrayModel.Convert(p[0]).(color.Gray).Y
	hi := color.GrayModel.Convert(p[1]).(color.Gray).Y
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return bitmap.DefaultThreshold
	}

	// Rounds up so lo stays black and hi becomes white
	return uint8((int(lo) + int(hi) + 1) / 2)
}
