// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that runs the documentation jobs.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/runopts"
	"github.com/matt-FFFFFF/docbuilder/internal/builder"
	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/matt-FFFFFF/docbuilder/internal/tui"
	"github.com/urfave/cli/v3"
)

const tuiFlag = "tui"

// ErrJobsFailed is returned when jobs failed and the run is set to fail on job errors.
var ErrJobsFailed = errors.New("jobs failed")

// NewCommand returns the run command.
func NewCommand() *cli.Command {
	flags := runopts.Flags()
	flags = append(flags, &cli.BoolFlag{
		Name:        tuiFlag,
		Aliases:     []string{"t", "interactive"},
		Usage:       "Run with interactive Terminal User Interface (TUI) showing real-time progress",
		Value:       false,
		DefaultText: "false",
		OnlyOnce:    true,
	})

	return &cli.Command{
		Name:  "run",
		Usage: "Run every documentation job in parallel",
		Description: `Run the documentation generators for every job in the settings file.
All jobs are started at once. Each job's output is collected and written to the log
file once every job has finished. A failing job does not stop the others.

Settings file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.`,
		Flags:  flags,
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running run command")

	cfg, err := runopts.RunConfig(ctx, cmd)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	var summary runbatch.Summary

	if cmd.Bool(tuiFlag) {
		summary, err = runWithTUI(ctx, cmd, cfg)
	} else {
		summary, err = builder.New(cfg, builder.WithOutput(cmd.Writer)).Run(ctx)
	}

	if err != nil {
		logger.Error("documentation build failed", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	logger.Info("documentation build finished", "succeeded", summary.Succeeded, "total", summary.Total)

	if cfg.FailOnJobError && summary.Failed() > 0 {
		return cli.Exit(fmt.Errorf("%w: %d of %d", ErrJobsFailed, summary.Failed(), summary.Total), 1)
	}

	return nil
}

func runWithTUI(ctx context.Context, cmd *cli.Command, cfg settings.RunConfig) (runbatch.Summary, error) {
	buf := new(bytes.Buffer)
	tuiCtx := ctxlog.NewForTUI(ctx, buf)

	runner := tui.NewRunner(tuiCtx, cfg.JobNames())

	summary, err := runner.Run(tuiCtx, func(ctx context.Context, r progress.Reporter) (runbatch.Summary, error) {
		return builder.New(cfg, builder.WithReporter(r)).Run(ctx) //nolint:wrapcheck
	})

	buf.WriteTo(cmd.ErrWriter) //nolint:errcheck

	err = dropTUIError(ctx, summary, err)
	if err == nil {
		fmt.Fprintln(cmd.Writer, summary.Line()) //nolint:errcheck
	}

	return summary, err
}

// dropTUIError ignores a terminal UI failure once the jobs have run.
// Build errors, such as a failed log write, are always returned.
func dropTUIError(ctx context.Context, summary runbatch.Summary, err error) error {
	if err == nil || summary.Total == 0 || !errors.Is(err, tui.ErrTUI) {
		return err
	}

	ctxlog.Logger(ctx).Warn("terminal UI exited with error", "error", err)

	return nil
}
