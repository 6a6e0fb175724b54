// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
)

var _ progress.Reporter = (*Reporter)(nil)

// ErrTUI wraps errors from the terminal UI program. Errors from the build are
// returned unwrapped.
var ErrTUI = errors.New("terminal UI error")

// Reporter forwards progress events to a running TUI program.
type Reporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewReporter creates a Reporter that sends to program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (tr *Reporter) Report(event progress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	tr.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (tr *Reporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.closed = true
}

// BuildFunc runs a build, sending its events to reporter.
type BuildFunc func(ctx context.Context, reporter progress.Reporter) (runbatch.Summary, error)

// Runner shows a TUI while a build runs.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
}

// NewRunner creates a Runner listing the given jobs.
func NewRunner(ctx context.Context, jobs []string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(jobs)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewReporter(program),
	}
}

// Run starts the TUI and the build. Once the build has finished the TUI stays up until
// the user quits. Quitting early cancels the build and waits for its jobs to settle.
func (r *Runner) Run(ctx context.Context, build BuildFunc) (runbatch.Summary, error) {
	buildCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type buildResult struct {
		summary runbatch.Summary
		err     error
	}

	buildDone := make(chan buildResult, 1)

	go func() {
		s, err := build(buildCtx, r.reporter)
		r.program.Send(BuildCompletedMsg{Summary: s, Err: err})
		buildDone <- buildResult{summary: s, err: err}
	}()

	_, tuiErr := r.program.Run()

	// The user quit, or the program failed; stop whatever is still running.
	cancel()

	res := <-buildDone

	r.reporter.Close()

	if res.err != nil {
		return res.summary, res.err
	}

	if tuiErr != nil {
		return res.summary, fmt.Errorf("%w: %w", ErrTUI, tuiErr)
	}

	return res.summary, nil
}
