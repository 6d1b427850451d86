// Package options contains the program options.
package options

import "github.com/retroenv/subleqgo/internal/word"

// Program options of the interpreter.
type Program struct {
	Input    string // path of the program image to run
	WordSize int    // word width in bytes, 1 to 8

	Debug bool // enable debug logging with per-step instruction traces
	Quiet bool // perform operations quietly
}

// New returns a new options instance with default options.
func New() Program {
	return Program{
		WordSize: word.DefaultSize,
	}
}
