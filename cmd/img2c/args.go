package main

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// takesValue reports whether the flag named name consumes the following
// argument when given without "=value".
func takesValue(flags []cli.Flag, name string) bool {
	all := make([]cli.Flag, 0, len(flags)+2)
	all = append(all, flags...)
	for _, f := range append(all, cli.HelpFlag, cli.VersionFlag) {
		for _, n := range f.Names() {
			if n != name {
				continue
			}
			_, isBool := f.(*cli.BoolFlag)
			return !isBool
		}
	}
	return false
}

// permute moves flags in front of positional arguments so that
// "INPUT -s 128x64" parses the same as "-s 128x64 INPUT". Everything after
// "--" is left untouched. args[0] is the program name.
func permute(flags []cli.Flag, args []string) []string {
	if len(args) < 2 {
		return args
	}

	opts := []string{args[0]}
	var positional []string

	for i := 1; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positional = append(positional, args[i:]...)
			i = len(args)
		case len(a) > 1 && a[0] == '-':
			opts = append(opts, a)
			name := strings.TrimLeft(a, "-")
			if strings.Contains(name, "=") {
				continue
			}
			if takesValue(flags, name) && i+1 < len(args) {
				i++
				opts = append(opts, args[i])
			}
		default:
			positional = append(positional, a)
		}
	}

	return append(opts, positional...)
}
