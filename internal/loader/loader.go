// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/subleqgo/internal/memory"
)

// ErrProgramTooLarge is returned for images that do not fit the address
// space of the configured word width.
var ErrProgramTooLarge = errors.New("program image too large")

// Loader handles loading program images from disk into machine memory.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// LoadFile opens the image file, validates its size against the address
// space and copies it into memory starting at address 0.
func (l *Loader) LoadFile(mem *memory.Memory, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stating file %s: %w", path, err)
	}

	if err := l.Load(mem, file, info.Size()); err != nil {
		return fmt.Errorf("loading file %s: %w", path, err)
	}
	return nil
}

// Load copies size bytes from r into memory as consecutive pages starting
// at address 0. Three words of headroom below the top of the address space
// stay reserved so the operands of the final instruction and the sentinel
// remain representable, images larger than that are rejected with
// ErrProgramTooLarge. The remainder of a partially filled final page reads
// as zero.
func (l *Loader) Load(mem *memory.Memory, r io.Reader, size int64) error {
	cfg := mem.Config()
	limit := cfg.UMax() - cfg.Stride()
	if size < 0 || uint64(size) > limit {
		return fmt.Errorf("%w: %d bytes, %d usable", ErrProgramTooLarge, size, limit)
	}

	buf := make([]byte, memory.PageSize)
	var address uint64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			mem.WriteBytes(address, buf[:n])
			address += uint64(n)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading program image: %w", err)
		}
	}
}
