/*
Package img2c converts raster images into packed 1-bit monochrome C arrays
for SSD16xx e-paper displays driven by the Zephyr display API.
*/
package img2c

import (
	"io/ioutil"
	"log"
)

// Converter runs the decode, resize, binarize, pack and emit pipeline.
type Converter struct {
	logger *log.Logger
}

// New returns a Converter that reports progress to logger. A nil logger
// discards everything.
func New(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		logger: logger,
	}
}
