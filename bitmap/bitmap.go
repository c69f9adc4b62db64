/*
Package bitmap implements the packed 1-bit monochrome format used by SSD16xx
e-paper controllers.

Pixels are stored column-major in strips of 8 rows. Each byte holds 8
vertically stacked pixels of one column with the top row of the strip in the
most significant bit. The strip for rows 8..15 follows all of the bytes for
rows 0..7, so pixel (x, y) lives in byte x + (y/8)*width at bit 7 - y%8.
A set bit is white, a clear bit is black. A buffer is width * ceil(height/8)
bytes long; rows past the height in the last strip are always black.
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
)

const (
	stripHeight = 8

	// DefaultThreshold is the intensity at or above which a pixel is white
	DefaultThreshold = 128
)

// ErrInvalidDimension is returned when a width or height is not positive.
var ErrInvalidDimension = errors.New("bitmap: invalid dimension")

var (
	black = color.Gray{Y: 0x00}
	white = color.Gray{Y: 0xff}
)

// Size returns the number of bytes needed to hold a width by height bitmap.
func Size(width, height int) int {
	return width * ((height + stripHeight - 1) / stripHeight)
}

// Classify reports whether c is considered white for the given threshold.
func Classify(c color.Gray, threshold uint8) bool {
	return c.Y >= threshold
}

func toMono(c color.Color) color.Color {
	if Classify(color.GrayModel.Convert(c).(color.Gray), DefaultThreshold) {
		return white
	}
	return black
}

// Model converts colors to either pure black or pure white.
var Model = color.ModelFunc(toMono)

// Mono is an in-memory 1-bit image laid out in column strips. It implements
// the image.Image interface.
type Mono struct {
	// Pix holds the packed pixels, Size(Rect.Dx(), Rect.Dy()) bytes
	Pix  []byte
	Rect image.Rectangle
}

// NewMono returns a new all black Mono image with the given bounds.
func NewMono(r image.Rectangle) (*Mono, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, ErrInvalidDimension
	}
	return &Mono{
		Pix:  make([]byte, Size(r.Dx(), r.Dy())),
		Rect: r,
	}, nil
}

// ColorModel returns the color model of the image.
func (p *Mono) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Mono) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Mono) At(x, y int) color.Color {
	if p.BitAt(x, y) {
		return white
	}
	return black
}

// BitAt reports whether the pixel at (x, y) is white. Pixels outside the
// bounds are black.
func (p *Mono) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return false
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the pixel at (x, y) after converting c with Model.
func (p *Mono) Set(x, y int, c color.Color) {
	p.SetBit(x, y, Model.Convert(c) == white)
}

// SetBit sets the pixel at (x, y) to white if v is true, black otherwise.
func (p *Mono) SetBit(x, y int, v bool) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if v {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

func (p *Mono) pixOffset(x, y int) (int, byte) {
	dx, dy := x-p.Rect.Min.X, y-p.Rect.Min.Y
	return dx + (dy/stripHeight)*p.Rect.Dx(), 1 << uint(stripHeight-1-dy%stripHeight)
}
