// Package machine implements the subleq execution engine.
//
// The machine knows a single instruction: subtract and branch if the result
// is less than or equal to zero. An instruction is three consecutive words
// a, b, c. Each step computes mem[b] = mem[b] - mem[a] with wrapping
// subtraction and branches to c if the result, reinterpreted as a signed
// integer of the word width, is <= 0. The maximal representable address is
// reserved as the input/output sentinel: a == sentinel reads one input byte
// as the a operand, b == sentinel emits the low 8 bits of the a operand to
// the output instead of writing memory.
//
// There is no halt opcode. The machine halts when the program counter gets
// close enough to the top of the address space that no full instruction
// plus the reserved headroom fits anymore. An instruction branching to
// itself is not detected and runs forever.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/subleqgo/internal/memory"
	"github.com/retroenv/subleqgo/internal/word"
)

// cancelCheckInterval is the number of steps executed between context
// cancellation checks in Run.
const cancelCheckInterval = 4096

// Machine is the execution engine of one run. It owns the memory and the
// program counter for the duration of the run.
type Machine struct {
	cfg    word.Config
	mem    *memory.Memory
	logger *log.Logger

	input  io.ByteReader
	output io.Writer

	pc        uint64
	steps     uint64
	inputDone bool
	trace     bool
}

// New returns a machine executing the program already loaded into mem,
// reading input bytes from input and writing output bytes to output.
func New(mem *memory.Memory, input io.ByteReader, output io.Writer, logger *log.Logger) *Machine {
	return &Machine{
		cfg:    mem.Config(),
		mem:    mem,
		logger: logger,
		input:  input,
		output: output,
	}
}

// SetTrace enables per-step debug logging of the executed instructions.
func (m *Machine) SetTrace(trace bool) {
	m.trace = trace
}

// PC returns the current program counter.
func (m *Machine) PC() uint64 {
	return m.pc
}

// SetPC sets the program counter.
func (m *Machine) SetPC(pc uint64) {
	m.pc = m.cfg.Wrap(pc)
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Run executes instructions until the machine halts or a fatal I/O error
// occurs. The context is checked periodically so that signal-triggered
// cancellation can end a program that never reaches the halt condition.
func (m *Machine) Run(ctx context.Context) error {
	for i := 0; ; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		halted, err := m.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step executes a single instruction. It returns true once the program
// counter has run out of room for another full instruction below the
// reserved top-of-address-space headroom, this is the only way the machine
// halts.
func (m *Machine) Step() (bool, error) {
	stride := m.cfg.Stride()
	if m.pc >= m.cfg.UMax()-2*stride { // pc + 3W >= umax - 3W, overflow safe
		return true, nil
	}

	size := uint64(m.cfg.Size())
	a := m.mem.ReadWord(m.pc)
	b := m.mem.ReadWord(m.pc + size)
	c := m.mem.ReadWord(m.pc + 2*size)

	av, err := m.resolveA(a)
	if err != nil {
		return false, err
	}

	var bv uint64
	if b == m.cfg.Sentinel() {
		// output instruction, no memory write, the branch test runs on av
		if _, err := m.output.Write([]byte{byte(av)}); err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
		bv = av
	} else {
		bv = m.cfg.Sub(m.mem.ReadWord(b), av)
		m.mem.WriteWord(b, bv)
	}

	branch := bv == 0 || m.cfg.Negative(bv)
	if m.trace {
		m.logger.Debug("step",
			log.Hex("pc", m.pc),
			log.Hex("a", a),
			log.Hex("b", b),
			log.Hex("c", c),
			log.Hex("result", bv),
		)
	}

	if branch {
		m.pc = c
	} else {
		m.pc += stride
	}
	m.steps++
	return false, nil
}

// resolveA resolves the a operand. The sentinel address reads one byte from
// the input stream, end of input yields the all-bits-set sentinel value
// instead of failing and keeps doing so for the rest of the run.
func (m *Machine) resolveA(a uint64) (uint64, error) {
	if a != m.cfg.Sentinel() {
		return m.mem.ReadWord(a), nil
	}

	if m.inputDone {
		return m.cfg.UMax(), nil
	}

	value, err := m.input.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			m.inputDone = true
			return m.cfg.UMax(), nil
		}
		return 0, fmt.Errorf("reading input: %w", err)
	}
	return uint64(value), nil
}
