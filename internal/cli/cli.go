// Package cli handles command line interface logic.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/retroenv/subleqgo/internal/options"
	"github.com/retroenv/subleqgo/internal/word"
)

// ParseFlags parses command line flags and returns the program options.
// The word size argument accepts the usual integer literal forms, decimal
// as well as base prefixed ones like 0x10. Width validation happens here,
// before the core is invoked, a bad width is a configuration error.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 || len(args) > 2 {
		return opts, &UsageError{flags: flags}
	}

	opts.Input = args[0]

	if len(args) == 2 {
		size, err := strconv.ParseInt(args[1], 0, 0)
		if err != nil {
			return opts, &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("invalid word size '%s'", args[1]),
			}
		}
		opts.WordSize = int(size)
	}

	if opts.WordSize < 1 || opts.WordSize > word.MaxSize {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("word size %d out of range [1,%d]", opts.WordSize, word.MaxSize),
		}
	}

	return opts, nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the program usage to the console.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: subleqgo [options] <program image> [word size]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging with per-step instruction traces")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
