// Package main implements a batch interpreter for subleq binary images.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/subleqgo/internal/cli"
	"github.com/retroenv/subleqgo/internal/config"
	"github.com/retroenv/subleqgo/internal/console"
	"github.com/retroenv/subleqgo/internal/options"
	"github.com/retroenv/subleqgo/internal/pipeline"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	con := console.New()
	if err := con.MakeRaw(); err != nil {
		return err
	}
	// restore before exiting, an os.Exit higher up would skip the defer
	defer con.Restore()

	return pipeline.New(logger).Execute(ctx, opts, con, con)
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("subleqgo", log.String("version", buildinfo.Version(version, commit, date)))
}
