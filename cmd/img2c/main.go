package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/img2c"
	"github.com/bodgit/img2c/bitmap"
	"github.com/urfave/cli/v2"
)

// defaults is used when the program is run without any arguments.
type defaults struct {
	input  string
	output string
	name   string
	width  int
	height int
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func convert(c *cli.Context, o *img2c.Options, stdout, stderr io.Writer) error {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(stderr)
	}

	if err := img2c.New(logger).Convert(o, stdout); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp(d defaults, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "img2c"
	app.Usage = "Convert an image to a 1-bit monochrome C array for SSD16xx displays"
	app.Version = "1.0.0"
	app.ArgsUsage = "INPUT"
	app.Writer = stdout

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write the C header to `FILE` instead of stdout",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "C array name (default: input base name with \"_gray\" suffix)",
		},
		&cli.IntFlag{
			Name:    "threshold",
			EnvVars: []string{"IMG2C_THRESHOLD"},
			Value:   bitmap.DefaultThreshold,
			Usage:   "black/white threshold (0-255), pixels at or above are white",
		},
		&cli.BoolFlag{
			Name:  "auto-threshold",
			Usage: "derive the threshold from the two dominant intensities in the image",
		},
		&cli.StringFlag{
			Name:    "size",
			Aliases: []string{"s"},
			EnvVars: []string{"IMG2C_SIZE"},
			Value:   fmt.Sprintf("%dx%d", img2c.DefaultWidth, img2c.DefaultHeight),
			Usage:   "target size as WIDTHxHEIGHT",
		},
		&cli.StringFlag{
			Name:  "preview",
			Usage: "write the binarized image to `FILE` (PNG, or BMP with a .bmp extension)",
		},
		&cli.BoolFlag{
			Name:  "example",
			Usage: "print an example of using the array with the Zephyr display API",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			if c.NumFlags() > 0 {
				cli.ShowAppHelp(c)
				return cli.NewExitError("", 1)
			}

			if _, err := os.Stat(d.input); err != nil {
				fmt.Fprintf(stdout, "Default file %s not found\n", d.input)
				cli.ShowAppHelp(c)
				return nil
			}

			fmt.Fprintf(stderr, "Processing default file: %s\n", d.input)

			o := img2c.NewOptions(d.input)
			o.Output = d.output
			o.Name = d.name
			o.Width, o.Height = d.width, d.height

			return convert(c, o, stdout, stderr)
		}

		if c.NArg() > 1 {
			cli.ShowAppHelp(c)
			return cli.NewExitError(fmt.Sprintf("unexpected arguments: %s", strings.Join(c.Args().Tail(), " ")), 1)
		}

		width, height, err := img2c.ParseSize(c.String("size"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		o := &img2c.Options{
			Input:         c.Args().First(),
			Output:        c.String("output"),
			Name:          c.String("name"),
			Width:         width,
			Height:        height,
			Threshold:     c.Int("threshold"),
			AutoThreshold: c.Bool("auto-threshold"),
			Preview:       c.String("preview"),
			Example:       c.Bool("example"),
		}

		return convert(c, o, stdout, stderr)
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app := newApp(defaults{
		input:  filepath.Join(cwd, "imgs", "cat.png"),
		output: filepath.Join(cwd, "src", "cat_image.h"),
		name:   "cat_gray",
		width:  img2c.DefaultWidth,
		height: img2c.DefaultHeight,
	}, os.Stdout, os.Stderr)

	if err := app.Run(permute(app.Flags, os.Args)); err != nil {
		log.Fatal(err)
	}
}
