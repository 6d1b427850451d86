// Package memory implements the sparse paged address space of the machine.
//
// The address space is backed by fixed 4096 byte pages that are created on
// first touch and kept for the remainder of the run. Pages are zero filled
// on creation so freshly touched memory reads deterministically as zero.
// Words are stored big-endian and are accessed byte by byte, each byte
// resolved through its own page, so a word access that falls into the last
// bytes of a page transparently continues into the following page.
package memory

import (
	"github.com/retroenv/subleqgo/internal/word"
)

// PageSize is the fixed byte size of one page, the unit of lazy allocation.
const PageSize = 4096

// Memory is the sparse address space of one run. It is exclusively owned
// by the execution engine, no locking is needed.
type Memory struct {
	cfg   word.Config
	pages map[uint64][]byte
}

// New returns an empty address space for the given word configuration.
// No pages exist before the first access.
func New(cfg word.Config) *Memory {
	return &Memory{
		cfg:   cfg,
		pages: map[uint64][]byte{},
	}
}

// Config returns the word configuration the address space was created with.
func (m *Memory) Config() word.Config {
	return m.cfg
}

// ReadWord reads the word at the given address as a big-endian unsigned
// integer. Missing pages are created zero filled, the read never fails.
func (m *Memory) ReadWord(address uint64) uint64 {
	var value uint64
	for i := range m.cfg.Size() {
		value = value<<8 | uint64(m.ReadByte(address+uint64(i)))
	}
	return value
}

// WriteWord stores value as big-endian bytes at the given address.
func (m *Memory) WriteWord(address, value uint64) {
	size := m.cfg.Size()
	for i := range size {
		shift := 8 * (size - 1 - i)
		m.WriteByte(address+uint64(i), byte(value>>shift))
	}
}

// ReadByte reads a single byte, creating the containing page if absent.
func (m *Memory) ReadByte(address uint64) byte {
	return m.page(address/PageSize)[address%PageSize]
}

// WriteByte stores a single byte, creating the containing page if absent.
func (m *Memory) WriteByte(address uint64, value byte) {
	m.page(address/PageSize)[address%PageSize] = value
}

// WriteBytes stores data verbatim starting at the given address.
// The program loader uses it to place whole image chunks.
func (m *Memory) WriteBytes(address uint64, data []byte) {
	for len(data) > 0 {
		page := m.page(address / PageSize)
		offset := address % PageSize
		n := copy(page[offset:], data)
		data = data[n:]
		address += uint64(n)
	}
}

// PageCount returns the number of pages created so far.
func (m *Memory) PageCount() int {
	return len(m.pages)
}

// page returns the page with the given index, creating it zero filled on
// first use. Creation is idempotent, an existing page is never reset.
func (m *Memory) page(index uint64) []byte {
	p, ok := m.pages[index]
	if !ok {
		p = make([]byte, PageSize)
		m.pages[index] = p
	}
	return p
}
