package img2c

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/bodgit/img2c/bitmap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Grayscale converts m to 8-bit grayscale, resampling it to width by height
// if it is not already that size. The result always has its origin at (0, 0).
func Grayscale(m image.Image, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, bitmap.ErrInvalidDimension
	}

	b := m.Bounds()
	dst := image.NewGray(image.Rect(0, 0, width, height))

	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Rect, m, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Rect, m, b, draw.Src, nil)
	}

	return dst, nil
}

func decode(r io.Reader) (image.Image, string, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, "", wrapCause(ErrDecode, err)
	}
	return m, format, nil
}

// Load decodes an image from r and returns it as a width by height
// grayscale image
func Load(r io.Reader, width, height int) (*image.Gray, error) {
	m, _, err := decode(r)
	if err != nil {
		return nil, err
	}
	return Grayscale(m, width, height)
}
