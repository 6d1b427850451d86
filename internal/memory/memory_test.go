package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/subleqgo/internal/word"
)

func newMemory(t *testing.T, size int) *Memory {
	t.Helper()
	cfg, err := word.New(size)
	assert.NoError(t, err)
	return New(cfg)
}

func TestReadWriteWord(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		address uint64
		value   uint64
	}{
		{"width 1", 1, 10, 0xAB},
		{"width 2", 2, 100, 0x1234},
		{"width 3", 3, 0, 0xABCDEF},
		{"width 4", 4, 4092, 0xDEADBEEF},
		{"width 8", 8, 123456, 0x0102030405060708},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemory(t, tt.size)

			mem.WriteWord(tt.address, tt.value)
			assert.Equal(t, tt.value, mem.ReadWord(tt.address))
		})
	}
}

func TestBigEndianLayout(t *testing.T) {
	mem := newMemory(t, 2)

	mem.WriteWord(0, 0x1234)

	assert.Equal(t, byte(0x12), mem.ReadByte(0))
	assert.Equal(t, byte(0x34), mem.ReadByte(1))
}

func TestPagesZeroFilled(t *testing.T) {
	mem := newMemory(t, 2)

	// a fresh page reads as zero everywhere
	assert.Equal(t, uint64(0), mem.ReadWord(0))
	assert.Equal(t, uint64(0), mem.ReadWord(5*PageSize+7))
}

func TestPageCreationIdempotent(t *testing.T) {
	mem := newMemory(t, 1)

	mem.WriteWord(42, 0x77)
	assert.Equal(t, 1, mem.PageCount())

	// reading other addresses of the same page must not reset it
	_ = mem.ReadWord(100)
	assert.Equal(t, 1, mem.PageCount())
	assert.Equal(t, uint64(0x77), mem.ReadWord(42))
}

func TestLazyPageCreation(t *testing.T) {
	mem := newMemory(t, 2)
	assert.Equal(t, 0, mem.PageCount())

	mem.WriteWord(0, 1)
	assert.Equal(t, 1, mem.PageCount())

	// distant address creates a separate page, the map stays sparse
	mem.WriteWord(100*PageSize, 2)
	assert.Equal(t, 2, mem.PageCount())
}

func TestCrossPageWordAccess(t *testing.T) {
	// a 3 byte word written at the last byte of a page continues into the
	// next page
	mem := newMemory(t, 3)

	mem.WriteWord(PageSize-1, 0xABCDEF)

	assert.Equal(t, uint64(0xABCDEF), mem.ReadWord(PageSize-1))
	assert.Equal(t, byte(0xAB), mem.ReadByte(PageSize-1))
	assert.Equal(t, byte(0xCD), mem.ReadByte(PageSize))
	assert.Equal(t, byte(0xEF), mem.ReadByte(PageSize+1))
	assert.Equal(t, 2, mem.PageCount())
}

func TestWriteBytes(t *testing.T) {
	t.Run("within one page", func(t *testing.T) {
		mem := newMemory(t, 1)

		mem.WriteBytes(10, []byte{1, 2, 3})

		assert.Equal(t, byte(1), mem.ReadByte(10))
		assert.Equal(t, byte(2), mem.ReadByte(11))
		assert.Equal(t, byte(3), mem.ReadByte(12))
	})

	t.Run("spanning a page boundary", func(t *testing.T) {
		mem := newMemory(t, 1)

		data := make([]byte, PageSize+10)
		for i := range data {
			data[i] = byte(i)
		}
		mem.WriteBytes(0, data)

		assert.Equal(t, 2, mem.PageCount())
		assert.Equal(t, data[PageSize-1], mem.ReadByte(PageSize-1))
		assert.Equal(t, data[PageSize], mem.ReadByte(PageSize))
		assert.Equal(t, data[PageSize+9], mem.ReadByte(PageSize+9))
	})
}
