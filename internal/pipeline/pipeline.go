// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/subleqgo/internal/loader"
	"github.com/retroenv/subleqgo/internal/machine"
	"github.com/retroenv/subleqgo/internal/memory"
	"github.com/retroenv/subleqgo/internal/options"
	"github.com/retroenv/subleqgo/internal/word"
)

// Pipeline orchestrates the complete run workflow: word configuration,
// memory setup, image loading and machine execution.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new run pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the program image and runs it to completion, reading input
// bytes from input and writing output bytes to output.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program,
	input io.ByteReader, output io.Writer) error {

	cfg, err := word.New(opts.WordSize)
	if err != nil {
		return fmt.Errorf("configuring word size: %w", err)
	}

	p.logger.Info("Running program",
		log.String("file", opts.Input),
		log.String("word_size", strconv.Itoa(cfg.Size())),
	)

	mem := memory.New(cfg)
	if err := p.loader.LoadFile(mem, opts.Input); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	m := machine.New(mem, input, output, p.logger)
	m.SetTrace(opts.Debug)

	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Debug("Run complete",
		log.String("steps", strconv.FormatUint(m.Steps(), 10)),
		log.String("pages", strconv.Itoa(mem.PageCount())),
	)
	return nil
}
