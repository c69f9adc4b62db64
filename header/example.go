package header

import (
	"io"
	"strings"
	"text/template"
)

var exampleTemplate = template.Must(template.New("example").Parse(`
Usage example in your code:

#include "generated_header.h"

// Buffer size calculation: width * ceil(height/8)
#define BUFFER_SIZE {{.Upper}}_BYTES

// Copy image data directly to display buffer
uint8_t display_buffer[BUFFER_SIZE];
memcpy(display_buffer, {{.Name}}, {{.Upper}}_BYTES);

// For display buffer descriptor
struct display_buffer_descriptor desc = {
    .buf_size = {{.Upper}}_BYTES,
    .width = {{.Upper}}_WIDTH,
    .height = {{.Upper}}_HEIGHT,
    .pitch = {{.Upper}}_WIDTH,
};

// Display the monochrome image
display_write(display_dev, 0, 0, &desc, display_buffer);
`))

// Example writes a snippet to w showing how to hand the named array to the
// Zephyr display API
func Example(w io.Writer, name string) error {
	return exampleTemplate.Execute(w, struct {
		Name, Upper string
	}{
		Name:  name,
		Upper: strings.ToUpper(name),
	})
}
