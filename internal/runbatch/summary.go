// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// SummaryTimeFormat is the timestamp layout of the summary line.
	SummaryTimeFormat = "2006-01-02 15:04:05"
	logSeparator      = "--------------------------------------------------"
)

// Summary is the aggregate of a settled batch.
type Summary struct {
	Total     int       // Number of jobs
	Succeeded int       // Number of jobs that succeeded
	At        time.Time // When the summary was made
	LogText   string    // One block per job in settle order, then the summary line
}

// Failed is the number of jobs that did not succeed.
func (s Summary) Failed() int {
	return s.Total - s.Succeeded
}

// Line returns "<succeeded> of <total> jobs completed successfully at <timestamp>".
func (s Summary) Line() string {
	return fmt.Sprintf("%d of %d jobs completed successfully at %s",
		s.Succeeded, s.Total, s.At.Format(SummaryTimeFormat))
}

// Summarize counts the outcomes and renders the log text for them.
func Summarize(outcomes Outcomes, at time.Time) Summary {
	s := Summary{
		Total:     len(outcomes),
		Succeeded: outcomes.SucceededCount(),
		At:        at,
	}

	var sb strings.Builder
	for _, o := range outcomes {
		writeLogEntry(&sb, o)
	}

	sb.WriteString(s.Line())
	sb.WriteString("\n")

	s.LogText = sb.String()

	return s
}

// LogEntry returns the log block for the outcome.
func (o *Outcome) LogEntry() string {
	var sb strings.Builder
	writeLogEntry(&sb, o)

	return sb.String()
}

func writeLogEntry(w io.Writer, o *Outcome) {
	fmt.Fprintf(w, "%s\nJob: %s\n%s\n", logSeparator, o.Name, logSeparator) // nolint:errcheck
	fmt.Fprintf(w, "Command: %s\nReturn code: %d\n", o.Command, o.ExitCode)  // nolint:errcheck

	if o.Error != nil {
		fmt.Fprintf(w, "Error: %s\n", strings.ReplaceAll(o.Error.Error(), "\n", "; ")) // nolint:errcheck
	}

	fmt.Fprintf(w, "\nOutput:\n%s\nErrors:\n%s\n", o.StdOut, o.StdErr) // nolint:errcheck
}
