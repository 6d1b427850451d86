// Package word fixes the machine word configuration for a run.
// Every address and stored value of the interpreter is an unsigned integer
// of 1 to 8 bytes, chosen once at startup. Go has native integer types only
// for 1, 2, 4 and 8 byte widths, so all widths are carried in a uint64 that
// is kept reduced modulo 2^(8*size); the mask doubles as the maximal
// representable value and the input/output sentinel.
package word

import (
	"errors"
	"fmt"
)

const (
	// DefaultSize is the word width in bytes used when none is requested.
	DefaultSize = 2

	// MaxSize is the largest supported word width in bytes.
	MaxSize = 8
)

// ErrInvalidSize is returned for word widths outside of [1,8].
var ErrInvalidSize = errors.New("invalid word size")

// Config describes the word width of a run and provides the arithmetic
// helpers that depend on it. The zero value is not usable, use New.
type Config struct {
	size int
	mask uint64
}

// New returns the configuration for a word width of size bytes.
func New(size int) (Config, error) {
	if size < 1 || size > MaxSize {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	mask := uint64(1)<<(8*size) - 1
	if size == MaxSize {
		mask = ^uint64(0)
	}

	return Config{
		size: size,
		mask: mask,
	}, nil
}

// Size returns the word width in bytes.
func (c Config) Size() int {
	return c.size
}

// UMax returns the maximal representable value 2^(8*size)-1.
func (c Config) UMax() uint64 {
	return c.mask
}

// Sentinel returns the reserved address that triggers input/output instead
// of a memory access. It equals UMax and never addresses ordinary storage.
func (c Config) Sentinel() uint64 {
	return c.mask
}

// Stride returns the byte length of one instruction, three operand words.
func (c Config) Stride() uint64 {
	return uint64(3 * c.size)
}

// Wrap reduces v modulo 2^(8*size).
func (c Config) Wrap(v uint64) uint64 {
	return v & c.mask
}

// Sub returns x minus y with wrapping modular subtraction.
func (c Config) Sub(x, y uint64) uint64 {
	return (x - y) & c.mask
}

// Negative reports whether v has the sign bit of the width set, i.e. is
// negative when reinterpreted as a two's-complement signed integer.
func (c Config) Negative(v uint64) bool {
	return v > c.mask>>1
}
