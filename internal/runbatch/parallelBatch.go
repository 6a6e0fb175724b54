// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
)

var (
	// ErrPanic is recorded in the Outcome of a command that panicked.
	ErrPanic = errors.New("command panicked")
	// ErrNoOutcome is recorded when a command returned a nil Outcome.
	ErrNoOutcome = errors.New("command returned no outcome")
)

// ParallelBatch runs all of its commands at once and waits for every one of them to settle.
type ParallelBatch struct {
	Label     string
	Commands  []Runnable
	OnSettled func(*Outcome) // Called for each outcome as it arrives, one at a time
	reporter  progress.Reporter
}

// SetProgressReporter sets the reporter for batch and command events.
func (b *ParallelBatch) SetProgressReporter(r progress.Reporter) {
	b.reporter = r
}

// Run dispatches every command in its own goroutine and returns once all have settled.
// The outcomes are in the order the commands settled; Outcome.Index is the command's position.
// A command failing, or panicking, never stops the others.
func (b *ParallelBatch) Run(ctx context.Context) Outcomes {
	logger := ctxlog.Logger(ctx).
		With("label", b.Label).
		With("runnableType", "ParallelBatch")

	logger.Debug("dispatching commands", "count", len(b.Commands))

	results := make(chan *Outcome, len(b.Commands))

	for i, cmd := range b.Commands {
		label := cmd.GetLabel()

		if r := newJobReporter(b.reporter, i, label); r != nil {
			cmd.SetProgressReporter(r)
		}

		reportStarted(b.reporter, i, label)

		go func() {
			results <- runSettled(ctx, i, cmd)
		}()
	}

	outcomes := make(Outcomes, 0, len(b.Commands))

	for range len(b.Commands) {
		o := <-results

		logger.Debug("command settled",
			"job", o.Name,
			"index", o.Index,
			"status", o.Status,
			"exitCode", o.ExitCode)

		reportSettled(b.reporter, o)

		if b.OnSettled != nil {
			b.OnSettled(o)
		}

		outcomes = append(outcomes, o)
	}

	logger.Debug("all commands settled",
		"succeeded", outcomes.SucceededCount(),
		"total", len(outcomes))

	return outcomes
}

// runSettled runs cmd and turns a panic or a nil result into a failed Outcome.
func runSettled(ctx context.Context, index int, cmd Runnable) (out *Outcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "command panicked", "job", cmd.GetLabel(), "panic", r)

			out = &Outcome{
				Name:     cmd.GetLabel(),
				ExitCode: -1,
				Error:    fmt.Errorf("%w: %v", ErrPanic, r),
				Start:    start,
			}
			out.settle()
		}

		out.Index = index
	}()

	out = cmd.Run(ctx)
	if out == nil {
		out = &Outcome{
			Name:     cmd.GetLabel(),
			ExitCode: -1,
			Error:    ErrNoOutcome,
			Start:    start,
		}
		out.settle()
	}

	return out
}
