// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/docbuilder/internal/color"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
)

var _ progress.Reporter = (*consoleReporter)(nil)

// consoleReporter prints one line per dispatch and one per settled job.
type consoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleReporter(w io.Writer) *consoleReporter {
	return &consoleReporter{w: w}
}

// Report implements progress.Reporter.
func (c *consoleReporter) Report(e progress.Event) {
	var line string

	switch e.Type {
	case progress.EventStarted:
		line = fmt.Sprintf("Running job %s...", e.Job)
	case progress.EventCompleted:
		line = color.Colorize("Complete! "+e.Job, color.FgGreen)
	case progress.EventFailed:
		line = color.Colorize(fmt.Sprintf("WARNING: problems running job '%s', see log for details", e.Job), color.FgRed)
	default:
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w, line) //nolint:errcheck
}

// Close implements progress.Reporter.
func (c *consoleReporter) Close() {}

// writeBanner prints the title and, when logging, where the log goes.
func writeBanner(w io.Writer, logFile string) {
	fmt.Fprintf(w, "%s\n\n", color.Colorize("Documentation Generation Script", color.FgCyan)) //nolint:errcheck

	if logFile == "" {
		return
	}

	notice := fmt.Sprintf("Logging output to '%s'...", logFile)
	fmt.Fprintf(w, "%s\n\n", color.Colorize(notice, color.Faint, color.FgYellow)) //nolint:errcheck
}
