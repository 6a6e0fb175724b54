// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessRunner(ctx context.Context, jobs ...string) *Runner {
	return NewRunner(ctx, jobs,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
}

func TestRunner_BuildErrorIsReturned(t *testing.T) {
	errLogWrite := errors.New("log write failed")

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	runner := headlessRunner(ctx, "api")

	summary, err := runner.Run(ctx, func(_ context.Context, _ progress.Reporter) (runbatch.Summary, error) {
		// Stop the program; the build result must still win.
		cancel()

		return runbatch.Summary{Total: 1, Succeeded: 1}, errLogWrite
	})

	require.ErrorIs(t, err, errLogWrite)
	assert.NotErrorIs(t, err, ErrTUI)
	assert.Equal(t, 1, summary.Total)
}

func TestRunner_ProgramErrorIsWrapped(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	runner := headlessRunner(ctx, "api")

	summary, err := runner.Run(ctx, func(_ context.Context, _ progress.Reporter) (runbatch.Summary, error) {
		cancel()

		return runbatch.Summary{Total: 1, Succeeded: 1}, nil
	})

	require.ErrorIs(t, err, ErrTUI)
	assert.Equal(t, 1, summary.Succeeded)
}
