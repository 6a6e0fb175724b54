// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update about one job.
type Event struct {
	Job       string    // Name of the job the event is about
	Index     int       // Position of the job in the configured job list
	Type      EventType // What happened
	Message   string    // Human readable status message
	Timestamp time.Time // When it happened
	Data      EventData // Type specific payload
}

// EventType identifies what an Event reports.
type EventType int

const (
	// EventStarted is sent when a job has been dispatched.
	EventStarted EventType = iota
	// EventProgress carries the latest line of output of a running job.
	EventProgress
	// EventCompleted is sent when a job exited successfully.
	EventCompleted
	// EventFailed is sent when a job failed to start, exited non-zero or was killed.
	EventFailed
)

// String implements fmt.Stringer.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventData holds the payload for the event types that have one.
type EventData struct {
	// EventProgress
	OutputLine string

	// EventCompleted, EventFailed
	ExitCode int
	Error    error
}

// Reporter receives events from running jobs.
// Report must not block the caller for long; it is called from job goroutines.
type Reporter interface {
	Report(event Event)
	Close()
}

// Listener consumes events delivered by a ChannelReporter.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter discards every event.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}

// NewNullReporter returns a Reporter that discards events.
func NewNullReporter() Reporter {
	return NullReporter{}
}
