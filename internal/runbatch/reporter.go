// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/progress"
)

var _ progress.Reporter = (*jobReporter)(nil)

// jobReporter stamps the batch index and job name onto events from one command.
type jobReporter struct {
	parent progress.Reporter
	index  int
	job    string
}

func newJobReporter(parent progress.Reporter, index int, job string) progress.Reporter {
	if parent == nil {
		return nil
	}

	return &jobReporter{parent: parent, index: index, job: job}
}

// Report implements progress.Reporter.
func (r *jobReporter) Report(event progress.Event) {
	event.Index = r.index
	event.Job = r.job
	r.parent.Report(event)
}

// Close implements progress.Reporter. The parent is owned by the caller and is not closed.
func (r *jobReporter) Close() {}

func reportStarted(reporter progress.Reporter, index int, job string) {
	if reporter == nil {
		return
	}

	reporter.Report(progress.Event{
		Job:       job,
		Index:     index,
		Type:      progress.EventStarted,
		Message:   fmt.Sprintf("Running job %s", job),
		Timestamp: time.Now(),
	})
}

func reportSettled(reporter progress.Reporter, o *Outcome) {
	if reporter == nil {
		return
	}

	if o.Succeeded() {
		reporter.Report(progress.Event{
			Job:       o.Name,
			Index:     o.Index,
			Type:      progress.EventCompleted,
			Message:   fmt.Sprintf("Complete! %s", o.Name),
			Timestamp: o.End,
			Data: progress.EventData{
				ExitCode: o.ExitCode,
			},
		})

		return
	}

	firstErrLine, _, _ := strings.Cut(strings.TrimSpace(string(o.StdErr)), "\n")

	reporter.Report(progress.Event{
		Job:       o.Name,
		Index:     o.Index,
		Type:      progress.EventFailed,
		Message:   fmt.Sprintf("problems running job '%s'", o.Name),
		Timestamp: o.End,
		Data: progress.EventData{
			OutputLine: firstErrLine,
			ExitCode:   o.ExitCode,
			Error:      o.Error,
		},
	})
}
