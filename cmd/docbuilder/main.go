// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the docbuilder command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/docbuilder"
	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/config"
	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/run"
	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/show"
	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			config.NewCommand(),
			run.NewCommand(),
			show.NewCommand(),
		},
		DefaultCommand: "run",
		Writer:         os.Stdout,
		ErrWriter:      os.Stderr,
		Name:           "docbuilder",
		Description: `Docbuilder runs the documentation generators for a set of projects in parallel.
Each job names a generator command template and a project location. The outputs of
every job are collected into a single log file once all jobs have finished.`,
		Usage:     "docbuilder run -f .docbuilder_config.json",
		Version:   fmt.Sprintf("%s (commit: %s)", docbuilder.Version, docbuilder.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
