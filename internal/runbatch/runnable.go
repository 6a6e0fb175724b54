// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"

	"github.com/matt-FFFFFF/docbuilder/internal/progress"
)

// Runnable is something that can be run as part of a batch.
type Runnable interface {
	// Run executes the command and returns its outcome. It must not return nil.
	// It should handle context cancellation and passing signals to any spawned process.
	Run(context.Context) *Outcome
	// GetLabel returns the label of the command, the job name.
	GetLabel() string
	// SetProgressReporter sets the reporter that receives output updates while the command runs.
	SetProgressReporter(progress.Reporter)
}
