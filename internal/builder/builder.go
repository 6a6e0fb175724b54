// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/cmdtemplate"
	"github.com/matt-FFFFFF/docbuilder/internal/color"
	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/matt-FFFFFF/docbuilder/internal/workspace"
)

// Builder runs the jobs of one RunConfig.
type Builder struct {
	cfg      settings.RunConfig
	out      io.Writer
	reporter progress.Reporter
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithOutput sets where console lines are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) {
		b.out = w
	}
}

// WithReporter sends job events to r instead of printing console lines.
func WithReporter(r progress.Reporter) Option {
	return func(b *Builder) {
		b.reporter = r
	}
}

// WithClock replaces time.Now for the log header and summary line.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// New creates a Builder.
func New(cfg settings.RunConfig, opts ...Option) *Builder {
	b := &Builder{
		cfg: cfg,
		out: os.Stdout,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Plan resolves the command line of every job without running anything.
// The error wraps settings.ErrConfig.
func (b *Builder) Plan() ([]cmdtemplate.ResolvedCommand, error) {
	return cmdtemplate.ResolveAll(b.cfg.Generators, b.cfg.Jobs, b.cfg.OutputFolder) //nolint:wrapcheck
}

// Run builds the documentation. Configuration and workspace errors are returned
// before any job is started; job failures are only reported in the Summary.
func (b *Builder) Run(ctx context.Context) (runbatch.Summary, error) {
	logger := ctxlog.Logger(ctx)

	cmds, err := b.Plan()
	if err != nil {
		return runbatch.Summary{}, err
	}

	logFile := b.cfg.LogFile
	if b.cfg.NoLogging {
		logFile = ""
	}

	ws := workspace.New(b.cfg.BaseDir, b.cfg.OutputFolder, logFile)
	if err := ws.Prepare(b.cfg.RemoveOld, b.now()); err != nil {
		return runbatch.Summary{}, err //nolint:wrapcheck
	}

	logger.Debug("workspace prepared",
		"outputFolder", ws.OutputFolder(),
		"logFile", ws.LogFile(),
		"runID", ws.RunID().String())

	batch := &runbatch.ParallelBatch{
		Label:    "docbuilder",
		Commands: make([]runbatch.Runnable, 0, len(cmds)),
		OnSettled: func(o *runbatch.Outcome) {
			logger.Info("job settled",
				"job", o.Name,
				"status", o.Status.String(),
				"exitCode", o.ExitCode,
				"duration", o.Duration().String())
		},
	}

	for _, rc := range cmds {
		if rc.Job.CheckFolder {
			if err := ws.EnsureJobFolder(rc.Job.Name); err != nil {
				return runbatch.Summary{}, err //nolint:wrapcheck
			}
		}

		cmd, err := runbatch.NewShellCommand(ctx, rc.Job.Name, rc.CommandLine, b.cfg.BaseDir, b.cfg.Env)
		if err != nil {
			return runbatch.Summary{}, fmt.Errorf("%w: %w", settings.ErrConfig, err)
		}

		cmd.Timeout = b.cfg.JobTimeout
		batch.Commands = append(batch.Commands, cmd)
	}

	console := b.reporter == nil
	if console {
		writeBanner(b.out, logFile)
		batch.SetProgressReporter(newConsoleReporter(b.out))
	} else {
		batch.SetProgressReporter(b.reporter)
	}

	outcomes := batch.Run(ctx)
	summary := runbatch.Summarize(outcomes, b.now())

	if err := ws.AppendLog(summary.LogText); err != nil {
		return summary, err //nolint:wrapcheck
	}

	if console {
		b.printSummary(summary)
	}

	return summary, nil
}

func (b *Builder) printSummary(s runbatch.Summary) {
	c := color.FgGreen
	if s.Failed() > 0 {
		c = color.FgYellow
	}

	fmt.Fprintf(b.out, "\n%s\n", color.Colorize(s.Line(), c)) //nolint:errcheck
}
