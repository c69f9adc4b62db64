/*
Package header implements the C header declaration wrapping a packed bitmap.

The header is a comment block describing the source and layout, an include
of <stdint.h>, three size constants derived from the upper-cased array name
and a static uint8_t array holding the bytes as lower case hexadecimal
literals, 16 per line.
*/
package header

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bodgit/img2c/bitmap"
	"github.com/pkg/errors"
)

const (
	bytesPerLine = 16
	indent       = "    "

	// NameSuffix is appended to the default array name
	NameSuffix = "_gray"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Declaration describes a packed bitmap as a C array. It implements the
// encoding.TextMarshaler and encoding.TextUnmarshaler interfaces.
type Declaration struct {
	Source string // Base name of the source image, used in the comment
	Name   string // C array name
	Width  int
	Height int
	Data   []byte
}

// ValidName reports whether name can be used as a C identifier
func ValidName(name string) bool {
	return identifier.MatchString(name)
}

// DefaultName derives an array name from the base name of file
func DefaultName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	b := []byte(base)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			b[i] = '_'
		}
	}
	if len(b) == 0 || (b[0] >= '0' && b[0] <= '9') {
		b = append([]byte{'_'}, b...)
	}

	return string(b) + NameSuffix
}

func (d *Declaration) validate() error {
	if !ValidName(d.Name) {
		return errors.Errorf("header: invalid array name %q", d.Name)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return bitmap.ErrInvalidDimension
	}
	if n := bitmap.Size(d.Width, d.Height); len(d.Data) != n {
		return errors.Errorf("header: have %d bytes, want %d for %dx%d", len(d.Data), n, d.Width, d.Height)
	}
	return nil
}

// Encode writes d to w as a C header
func Encode(w io.Writer, d *Declaration) error {
	if err := d.validate(); err != nil {
		return err
	}

	upper := strings.ToUpper(d.Name)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* Generated from %s */\n", d.Source)
	fmt.Fprintf(bw, "/* Image size: %dx%d pixels */\n", d.Width, d.Height)
	fmt.Fprintf(bw, "/* Array size: %d bytes */\n", len(d.Data))
	fmt.Fprint(bw, "/* Format: 1-bit monochrome, 8 pixels per byte */\n")
	fmt.Fprint(bw, "/* Pixel format: 0=black, 1=white */\n")
	fmt.Fprint(bw, "/* Memory layout: column-major, 8 rows per byte */\n")
	fmt.Fprint(bw, "\n#include <stdint.h>\n\n")
	fmt.Fprintf(bw, "#define %s_WIDTH  %d\n", upper, d.Width)
	fmt.Fprintf(bw, "#define %s_HEIGHT %d\n", upper, d.Height)
	fmt.Fprintf(bw, "#define %s_BYTES  %d\n", upper, len(d.Data))
	fmt.Fprintf(bw, "\nstatic const uint8_t %s[] = {\n", d.Name)

	for i := 0; i < len(d.Data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(d.Data) {
			end = len(d.Data)
		}

		bw.WriteString(indent)
		for j, b := range d.Data[i:end] {
			if j > 0 {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "0x%02x", b)
		}
		if end < len(d.Data) {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}

	fmt.Fprint(bw, "};\n")

	return bw.Flush()
}

// MarshalText encodes the declaration into C source and returns the result
func (d *Declaration) MarshalText() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, d); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

var (
	sourceLine = regexp.MustCompile(`^/\* Generated from (.*) \*/$`)
	defineLine = regexp.MustCompile(`^#define\s+([A-Za-z0-9_]+)_(WIDTH|HEIGHT|BYTES)\s+(\d+)$`)
	arrayLine  = regexp.MustCompile(`^static\s+const\s+uint8_t\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*\]\s*=\s*\{$`)
	hexByte    = regexp.MustCompile(`^0[xX]([0-9a-fA-F]{1,2})$`)
)

// UnmarshalText decodes a declaration previously produced by MarshalText
func (d *Declaration) UnmarshalText(text []byte) error {
	var (
		out     Declaration
		nbytes  = -1
		inArray bool
		closed  bool
	)

	s := bufio.NewScanner(bytes.NewReader(text))
	for line := 1; s.Scan(); line++ {
		l := strings.TrimSpace(s.Text())

		if inArray {
			if l == "};" {
				inArray, closed = false, true
				continue
			}
			for _, f := range strings.Split(strings.TrimSuffix(l, ","), ",") {
				m := hexByte.FindStringSubmatch(strings.TrimSpace(f))
				if m == nil {
					return errors.Errorf("header: line %d: invalid byte %q", line, f)
				}
				var b byte
				fmt.Sscanf(m[1], "%x", &b)
				out.Data = append(out.Data, b)
			}
			continue
		}

		if m := sourceLine.FindStringSubmatch(l); m != nil {
			out.Source = m[1]
		} else if m := defineLine.FindStringSubmatch(l); m != nil {
			var v int
			fmt.Sscanf(m[3], "%d", &v)
			switch m[2] {
			case "WIDTH":
				out.Width = v
			case "HEIGHT":
				out.Height = v
			case "BYTES":
				nbytes = v
			}
		} else if m := arrayLine.FindStringSubmatch(l); m != nil {
			out.Name = m[1]
			inArray = true
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "header")
	}

	if !closed {
		return errors.New("header: unterminated or missing array")
	}
	if nbytes >= 0 && nbytes != len(out.Data) {
		return errors.Errorf("header: declared %d bytes, found %d", nbytes, len(out.Data))
	}
	if err := out.validate(); err != nil {
		return err
	}

	*d = out
	return nil
}
