package img2c

import (
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// EncodePreview writes m to w as a BMP if file has a .bmp extension and as a
// PNG otherwise
func EncodePreview(w io.Writer, file string, m image.Image) error {
	if strings.EqualFold(filepath.Ext(file), ".bmp") {
		return bmp.Encode(w, m)
	}
	return png.Encode(w, m)
}
