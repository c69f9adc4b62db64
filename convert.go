package img2c

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/img2c/bitmap"
	"github.com/bodgit/img2c/header"
	"github.com/pkg/errors"
)

const (
	// DefaultWidth is the width of the target display
	DefaultWidth = 200
	// DefaultHeight is the height of the target display
	DefaultHeight = 200
)

// Options controls a single conversion.
type Options struct {
	Input  string // Path to the source image
	Output string // Path to write the header to, empty for stdout
	Name   string // Array name, derived from Input if empty

	Width, Height int

	Threshold     int  // 0-255, pixels at or above are white
	AutoThreshold bool // Derive the threshold from the image instead

	Preview string // Optional path to write the binarized image to
	Example bool   // Write a usage example to stdout afterwards
}

// NewOptions returns Options for input with the default size and threshold
func NewOptions(input string) *Options {
	return &Options{
		Input:     input,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Threshold: bitmap.DefaultThreshold,
	}
}

// Validate checks o before any work is done
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 || o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.Wrapf(bitmap.ErrInvalidDimension, "%dx%d", o.Width, o.Height)
	}
	if o.Threshold < 0 || o.Threshold > 255 {
		return errors.Wrapf(ErrInvalidThreshold, "%d", o.Threshold)
	}
	if o.Name != "" && !header.ValidName(o.Name) {
		return errors.Errorf("invalid array name %q", o.Name)
	}
	return nil
}

// writeFile creates file and fills it with fn. On failure the partially
// written file is removed.
func writeFile(file string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return wrapCause(ErrWrite, err)
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return wrapCause(ErrWrite, err)
	}

	if err := fn(f); err != nil {
		f.Close()
		os.Remove(file)
		return wrapCause(ErrWrite, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(file)
		return wrapCause(ErrWrite, err)
	}

	return nil
}

func (c *Converter) pack(o *Options) (*header.Declaration, *bitmap.Mono, error) {
	f, err := os.Open(o.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(ErrFileNotFound, "%q", o.Input)
		}
		return nil, nil, err
	}
	defer f.Close()

	m, format, err := decode(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%q", o.Input)
	}
	c.logger.Printf("Original image size: %dx%d (%s)\n", m.Bounds().Dx(), m.Bounds().Dy(), format)

	g, err := Grayscale(m, o.Width, o.Height)
	if err != nil {
		return nil, nil, err
	}
	if m.Bounds().Dx() != o.Width || m.Bounds().Dy() != o.Height {
		c.logger.Printf("Resized to: %dx%d\n", o.Width, o.Height)
	}

	threshold := uint8(o.Threshold)
	if o.AutoThreshold {
		threshold = AutoThreshold(g)
	}
	c.logger.Printf("Using threshold: %d\n", threshold)

	p, err := bitmap.Pack(g, threshold)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Printf("Converted to 1-bit monochrome: %dx%d, %d bytes\n", o.Width, o.Height, len(p.Pix))

	name := o.Name
	if name == "" {
		name = header.DefaultName(o.Input)
	}

	return &header.Declaration{
		Source: filepath.Base(o.Input),
		Name:   name,
		Width:  o.Width,
		Height: o.Height,
		Data:   p.Pix,
	}, p, nil
}

// Convert converts the image named by o.Input to a C header written to
// o.Output, or to stdout if o.Output is empty
func (c *Converter) Convert(o *Options, stdout io.Writer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	d, p, err := c.pack(o)
	if err != nil {
		return err
	}

	b, err := d.MarshalText()
	if err != nil {
		return err
	}

	if o.Output == "" {
		if _, err := stdout.Write(b); err != nil {
			return wrapCause(ErrWrite, err)
		}
	} else {
		if err := writeFile(o.Output, func(w io.Writer) error {
			_, err := w.Write(b)
			return err
		}); err != nil {
			return errors.Wrapf(err, "%q", o.Output)
		}
		c.logger.Printf("C array written to: %s\n", o.Output)
	}

	if o.Preview != "" {
		if err := writeFile(o.Preview, func(w io.Writer) error {
			return EncodePreview(w, o.Preview, p)
		}); err != nil {
			return errors.Wrapf(err, "%q", o.Preview)
		}
		c.logger.Printf("Preview written to: %s\n", o.Preview)
	}

	if o.Example {
		if err := header.Example(stdout, d.Name); err != nil {
			return wrapCause(ErrWrite, err)
		}
	}

	return nil
}
