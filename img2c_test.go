package img2c

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/img2c/bitmap"
	"github.com/bodgit/img2c/header"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, file string, m image.Image) {
	f, err := os.Create(file)
	require.Nil(t, err)
	defer f.Close()
	require.Nil(t, png.Encode(f, m))
}

func checkerboard() *image.Gray {
	m := image.NewGray(image.Rect(0, 0, 2, 2))
	m.SetGray(1, 0, color.Gray{Y: 255})
	m.SetGray(0, 1, color.Gray{Y: 255})
	return m
}

func newConverter(t *testing.T) *Converter {
	return New(log.New(ioutil.Discard, "", 0))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in     string
		w, h   int
		wantOK bool
	}{
		{"200x200", 200, 200, true},
		{"128x64", 128, 64, true},
		{"1x1", 1, 1, true},
		{"200", 0, 0, false},
		{"", 0, 0, false},
		{"x", 0, 0, false},
		{"0x10", 0, 0, false},
		{"10x0", 0, 0, false},
		{"-5x10", 0, 0, false},
		{"10x10x10", 0, 0, false},
		{"axb", 0, 0, false},
		{"10X10", 0, 0, false},
		{" 10x10", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseSize(tt.in)
			if !tt.wantOK {
				assert.True(t, errors.Is(err, ErrInvalidSizeSpec), "%v", err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	o := NewOptions("in.png")
	assert.Nil(t, o.Validate())

	o.Threshold = 256
	assert.True(t, errors.Is(o.Validate(), ErrInvalidThreshold))

	o.Threshold = -1
	assert.True(t, errors.Is(o.Validate(), ErrInvalidThreshold))

	o = NewOptions("in.png")
	o.Height = 0
	assert.True(t, errors.Is(o.Validate(), bitmap.ErrInvalidDimension))

	o = NewOptions("in.png")
	o.Name = "not a name"
	assert.NotNil(t, o.Validate())
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 9))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	g, err := Grayscale(src, 4, 4)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), g.Bounds())
	for _, y := range g.Pix {
		assert.Equal(t, uint8(0xff), y)
	}

	g, err = Grayscale(src, 10, 3)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 3), g.Bounds())
	for _, y := range g.Pix {
		assert.Equal(t, uint8(0xff), y)
	}

	_, err = Grayscale(src, 0, 3)
	assert.Equal(t, bitmap.ErrInvalidDimension, err)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not an image")), 2, 2)
	assert.True(t, errors.Is(err, ErrDecode), "%v", err)
}

func TestAutoThreshold(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range m.Pix {
		if (i/8)%2 == 0 {
			m.Pix[i] = 20
		} else {
			m.Pix[i] = 60
		}
	}

	threshold := AutoThreshold(m)
	assert.True(t, threshold > 20 && threshold <= 60, "%d", threshold)

	p, err := bitmap.Pack(m, threshold)
	require.Nil(t, err)
	for x := 0; x < 8; x++ {
		assert.Equal(t, byte(0x55), p.Pix[x], "column %d", x)
	}

	assert.Equal(t, uint8(bitmap.DefaultThreshold), AutoThreshold(image.NewGray(image.Rect(0, 0, 4, 4))))
}

func TestConvertScenario(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny.png")
	out := filepath.Join(dir, "src", "tiny.h")
	writePNG(t, in, checkerboard())

	o := NewOptions(in)
	o.Output = out
	o.Width, o.Height = 2, 2

	stdout := new(bytes.Buffer)
	require.Nil(t, newConverter(t).Convert(o, stdout))
	assert.Zero(t, stdout.Len())

	b, err := ioutil.ReadFile(out)
	require.Nil(t, err)

	var d header.Declaration
	require.Nil(t, d.UnmarshalText(b))
	assert.Equal(t, header.Declaration{
		Source: "tiny.png",
		Name:   "tiny_gray",
		Width:  2,
		Height: 2,
		Data:   []byte{0x40, 0x80},
	}, d)
}

func TestConvertStdout(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny.png")
	writePNG(t, in, checkerboard())

	o := NewOptions(in)
	o.Name = "logo"
	o.Width, o.Height = 2, 2
	o.Example = true

	stdout := new(bytes.Buffer)
	require.Nil(t, newConverter(t).Convert(o, stdout))
	assert.Contains(t, stdout.String(), "static const uint8_t logo[] = {\n    0x40, 0x80\n};\n")
	assert.Contains(t, stdout.String(), "#define BUFFER_SIZE LOGO_BYTES")
}

func TestConvertThreshold(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mid.png")

	m := image.NewGray(image.Rect(0, 0, 1, 2))
	m.SetGray(0, 0, color.Gray{Y: 100})
	m.SetGray(0, 1, color.Gray{Y: 99})
	writePNG(t, in, m)

	tests := []struct {
		threshold int
		want      string
	}{
		{128, "0x00"},
		{100, "0x80"},
		{99, "0xc0"},
	}

	for _, tt := range tests {
		o := NewOptions(in)
		o.Width, o.Height = 1, 2
		o.Threshold = tt.threshold

		stdout := new(bytes.Buffer)
		require.Nil(t, newConverter(t).Convert(o, stdout))
		assert.Contains(t, stdout.String(), "{\n    "+tt.want+"\n};", "threshold %d", tt.threshold)
	}
}

func TestConvertResize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "white.png")

	m := image.NewGray(image.Rect(0, 0, 40, 30))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	writePNG(t, in, m)

	o := NewOptions(in)
	o.Width, o.Height = 10, 12

	stdout := new(bytes.Buffer)
	require.Nil(t, newConverter(t).Convert(o, stdout))

	var d header.Declaration
	require.Nil(t, d.UnmarshalText(stdout.Bytes()))
	want := append(bytes.Repeat([]byte{0xff}, 10), bytes.Repeat([]byte{0xf0}, 10)...)
	assert.Equal(t, want, d.Data)
}

func TestConvertPreview(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny.png")
	writePNG(t, in, checkerboard())

	for _, name := range []string{"preview.png", "preview.bmp"} {
		o := NewOptions(in)
		o.Width, o.Height = 2, 2
		o.Preview = filepath.Join(dir, name)

		require.Nil(t, newConverter(t).Convert(o, ioutil.Discard))

		f, err := os.Open(o.Preview)
		require.Nil(t, err)
		p, err := Load(f, 2, 2)
		f.Close()
		require.Nil(t, err)
		assert.Equal(t, []uint8{0x00, 0xff, 0xff, 0x00}, p.Pix, name)
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.h")

	garbage := filepath.Join(dir, "garbage.png")
	require.Nil(t, ioutil.WriteFile(garbage, []byte("not an image"), 0644))

	good := filepath.Join(dir, "tiny.png")
	writePNG(t, good, checkerboard())

	blocker := filepath.Join(dir, "blocker")
	require.Nil(t, ioutil.WriteFile(blocker, nil, 0644))

	tests := []struct {
		name   string
		input  string
		output string
		want   error
	}{
		{"missing input", filepath.Join(dir, "missing.png"), out, ErrFileNotFound},
		{"undecodable input", garbage, out, ErrDecode},
		{"unwritable output", good, filepath.Join(blocker, "out.h"), ErrWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.input)
			o.Output = tt.output

			err := newConverter(t).Convert(o, ioutil.Discard)
			assert.True(t, errors.Is(err, tt.want), "%v", err)

			_, err = os.Stat(out)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestSizeLimits(t *testing.T) {
	for _, s := range []string{"3037000500x3037000500", "16385x1", "1x16385", "99999999999999999999x1"} {
		_, _, err := ParseSize(s)
		assert.True(t, errors.Is(err, ErrInvalidSizeSpec), "%s: %v", s, err)
	}

	w, h, err := ParseSize("16384x16384")
	require.Nil(t, err)
	assert.Equal(t, MaxDimension, w)
	assert.Equal(t, MaxDimension, h)

	o := NewOptions("in.png")
	o.Width, o.Height = 3037000500, 3037000500
	assert.True(t, errors.Is(o.Validate(), bitmap.ErrInvalidDimension))

	_, err = Grayscale(image.NewGray(image.Rect(0, 0, 1, 1)), MaxDimension+1, 1)
	assert.Equal(t, bitmap.ErrInvalidDimension, err)
}

func TestNilLogger(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny.png")
	writePNG(t, in, checkerboard())

	o := NewOptions(in)
	o.Width, o.Height = 2, 2

	assert.NotPanics(t, func() {
		assert.Nil(t, New(nil).Convert(o, ioutil.Discard))
	})
}

func TestConvertFailedOutputSkipsPreview(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny.png")
	writePNG(t, in, checkerboard())

	blocker := filepath.Join(dir, "blocker")
	require.Nil(t, ioutil.WriteFile(blocker, nil, 0644))

	o := NewOptions(in)
	o.Width, o.Height = 2, 2
	o.Output = filepath.Join(blocker, "out.h")
	o.Preview = filepath.Join(dir, "preview.png")

	err := newConverter(t).Convert(o, ioutil.Discard)
	assert.True(t, errors.Is(err, ErrWrite), "%v", err)

	_, err = os.Stat(o.Preview)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileRemovesPartial(t *testing.T) {
	file := filepath.Join(t.TempDir(), "partial.h")
	failure := errors.New("disk full")

	err := writeFile(file, func(w io.Writer) error {
		if _, err := w.Write([]byte("/* Generated")); err != nil {
			return err
		}
		return failure
	})
	assert.True(t, errors.Is(err, ErrWrite))
	assert.True(t, errors.Is(err, failure))

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteErrorMessage(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.Nil(t, ioutil.WriteFile(blocker, nil, 0644))

	err := writeFile(filepath.Join(blocker, "out.h"), func(io.Writer) error { return nil })
	require.NotNil(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), ErrWrite.Error()+": "), err.Error())
	assert.Contains(t, err.Error(), "not a directory")

	_, err = Load(bytes.NewReader([]byte("not an image")), 2, 2)
	assert.True(t, strings.HasPrefix(err.Error(), ErrDecode.Error()+": "), err.Error())
}
