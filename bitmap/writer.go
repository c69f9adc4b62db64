package bitmap

import (
	"image"
)

// Pack binarizes the grayscale image m and packs it into column strips.
// Pixels with an intensity of at least threshold become white bits.
func Pack(m *image.Gray, threshold uint8) (*Mono, error) {
	b := m.Bounds()

	p, err := NewMono(b)
	if err != nil {
		return nil, err
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if Classify(m.GrayAt(x, y), threshold) {
				offset, mask := p.pixOffset(x, y)
				p.Pix[offset] |= mask
			}
		}
	}

	return p, nil
}
