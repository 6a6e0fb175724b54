// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"cmp"
	"slices"
	"time"
)

// JobState is the lifecycle state of a job.
type JobState int

const (
	// JobStatePending means the job has not been dispatched yet.
	JobStatePending JobState = iota
	// JobStateRunning means the job has been dispatched and has not settled.
	JobStateRunning
	// JobStateSucceeded means the process exited 0 and nothing went wrong.
	JobStateSucceeded
	// JobStateFailed means the process exited non-zero, could not be started or was killed.
	JobStateFailed
)

// String implements fmt.Stringer.
func (s JobState) String() string {
	switch s {
	case JobStatePending:
		return "pending"
	case JobStateRunning:
		return "running"
	case JobStateSucceeded:
		return "succeeded"
	case JobStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of one job.
type Outcome struct {
	Index    int       // Position of the command in the batch
	Name     string    // Job name
	Command  string    // The command line that was run
	ExitCode int       // Process exit code, -1 if there is none
	StdOut   []byte    // Captured standard output
	StdErr   []byte    // Captured standard error
	Status   JobState  // JobStateSucceeded or JobStateFailed once settled
	Error    error     // Launch, timeout, signal or read error. A non-zero exit alone is not an error.
	Start    time.Time // When the job was dispatched
	End      time.Time // When the job settled
}

// Succeeded reports whether the job exited 0 without error.
func (o *Outcome) Succeeded() bool {
	return o.Status == JobStateSucceeded
}

// Duration is how long the job ran for.
func (o *Outcome) Duration() time.Duration {
	if o.Start.IsZero() || o.End.IsZero() {
		return 0
	}

	return o.End.Sub(o.Start)
}

// settle sets the final status from the exit code and error.
func (o *Outcome) settle() {
	if o.Error == nil && o.ExitCode == 0 {
		o.Status = JobStateSucceeded
	} else {
		o.Status = JobStateFailed
	}

	o.End = time.Now()
}

// Outcomes is a list of outcomes, in the order the jobs settled.
type Outcomes []*Outcome

// SucceededCount returns how many outcomes succeeded.
func (oc Outcomes) SucceededCount() int {
	n := 0

	for o := range slices.Values(oc) {
		if o.Succeeded() {
			n++
		}
	}

	return n
}

// HasFailure reports whether any outcome failed.
func (oc Outcomes) HasFailure() bool {
	return oc.SucceededCount() != len(oc)
}

// ByIndex returns a copy sorted back into the order the commands were given.
func (oc Outcomes) ByIndex() Outcomes {
	sorted := slices.Clone(oc)
	slices.SortStableFunc(sorted, func(a, b *Outcome) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return sorted
}
