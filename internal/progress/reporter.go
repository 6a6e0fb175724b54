// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
)

var _ Reporter = (*ChannelReporter)(nil)

// ChannelReporter is a Reporter backed by a buffered channel.
// Events are dropped rather than blocking the sender when the buffer is full
// or the reporter has been closed.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewChannelReporter creates a ChannelReporter with the given buffer size.
// Listening stops early if ctx is cancelled.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	return &ChannelReporter{
		ch:  make(chan Event, bufferSize),
		ctx: ctx,
	}
}

// Report implements Reporter.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	default:
		// buffer full
	}
}

// Close stops accepting events and waits for listeners to drain the buffer.
// It is safe to call more than once.
func (cr *ChannelReporter) Close() {
	cr.mu.Lock()
	if !cr.closed {
		cr.closed = true
		close(cr.ch)
	}
	cr.mu.Unlock()

	cr.wg.Wait()
}

// Listen delivers events to listener on a separate goroutine until the
// reporter is closed or its context is done.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events exposes the underlying channel for callers that want to consume
// events directly instead of through Listen.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
