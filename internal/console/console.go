// Package console provides the byte-oriented standard input and output of
// a run. When standard input is attached to a terminal it is switched into
// raw mode for the duration of the run so the machine sees single
// keystrokes instead of line-buffered, echoed input.
package console

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// Console adapts the process standard streams to the byte source and sink
// the machine consumes.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	fd       int
	raw      bool
	oldState *term.State
}

// New returns a console over standard input and output.
func New() *Console {
	return &Console{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// MakeRaw switches the terminal into raw mode if standard input is a
// terminal, a no-op otherwise. Restore must be called before the process
// exits.
func (c *Console) MakeRaw() error {
	if !term.IsTerminal(c.fd) {
		return nil
	}

	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		return err
	}
	c.oldState = oldState
	c.raw = true
	return nil
}

// Restore resets the terminal to its previous state. Safe to call when
// MakeRaw did nothing or was never called.
func (c *Console) Restore() {
	if c.oldState == nil {
		return
	}
	_ = term.Restore(c.fd, c.oldState)
	c.oldState = nil
	c.raw = false
}

// ReadByte reads a single input byte, blocking until one is available or
// the stream ends. In raw mode the Enter key arrives as CR and is
// translated to LF so programs see the conventional line ending.
func (c *Console) ReadByte() (byte, error) {
	b, err := c.in.ReadByte()
	if err != nil {
		return 0, err
	}
	if c.raw && b == '\r' {
		b = '\n'
	}
	return b, nil
}

// Write emits output bytes verbatim.
func (c *Console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}
