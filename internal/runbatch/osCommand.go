// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/signalbroker"
	"github.com/matt-FFFFFF/docbuilder/internal/teereader"
)

const (
	maxBufferSize    = 8 * 1024 * 1024 // 8MB
	maxProgressLine  = 120             // Longest output line sent in a progress event
	pipeGracePeriod  = 2 * time.Second // How long to wait for output after the process has exited
	progressInterval = 500 * time.Millisecond
)

var _ Runnable = (*OSCommand)(nil)

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrTimeoutExceeded is returned when the command runs past its timeout or the context deadline.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
	// ErrCancelled is returned when the context is cancelled while the command runs.
	ErrCancelled = errors.New("cancelled")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrSignalReceived is returned when a operating system signal was forwarded to the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// OSCommand runs a single operating system process.
type OSCommand struct {
	Label       string            // Job name
	Path        string            // The executable to run (e.g. full path to the shell)
	Args        []string          // Arguments to the executable, not including its name
	Cwd         string            // Working directory, empty for the current one
	Env         map[string]string // Added to the environment of the parent process
	Timeout     time.Duration     // Kill the process after this long, zero for no limit
	CommandLine string            // Recorded in the Outcome, defaults to Path and Args joined
	reporter    progress.Reporter // Receives the last output line while running
	sigCh       chan os.Signal    // Channel to receive signals, allows mocking in test.
}

// GetLabel implements Runnable.
func (c *OSCommand) GetLabel() string {
	if c.Label == "" {
		return filepath.Base(c.Path)
	}

	return c.Label
}

// SetProgressReporter implements Runnable.
func (c *OSCommand) SetProgressReporter(r progress.Reporter) {
	c.reporter = r
}

func (c *OSCommand) commandString() string {
	if c.CommandLine != "" {
		return c.CommandLine
	}

	return strings.Join(slices.Concat([]string{c.Path}, c.Args), " ")
}

// environ returns the parent environment with Env appended in key order.
func (c *OSCommand) environ() []string {
	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, k+"="+c.Env[k])
	}

	return env
}

// Run implements Runnable. It always returns an Outcome; failures are recorded in it.
func (c *OSCommand) Run(ctx context.Context) *Outcome {
	logger := ctxlog.Logger(ctx).
		With("runnableType", "OSCommand").
		With("label", c.GetLabel())

	logger.Debug("command info", "path", c.Path, "cwd", c.Cwd, "args", c.Args, "timeout", c.Timeout)

	out := &Outcome{
		Name:     c.GetLabel(),
		Command:  c.commandString(),
		Status:   JobStateRunning,
		Start:    time.Now(),
		ExitCode: -1,
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		out.Error = errors.Join(ErrFailedToCreatePipe, err)
		out.settle()

		return out
	}

	defer rOut.Close() //nolint:errcheck

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = wOut.Close()
		out.Error = errors.Join(ErrFailedToCreatePipe, err)
		out.settle()

		return out
	}

	defer rErr.Close() //nolint:errcheck

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		_ = wOut.Close()
		_ = wErr.Close()
		out.Error = errors.Join(ErrCouldNotStartProcess, err)
		out.settle()

		return out
	}

	argv := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	ps, err := os.StartProcess(c.Path, argv, &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   c.environ(),
		Files: []*os.File{stdin, wOut, wErr},
	})

	// The child holds its own copies; ours must be closed so reads see EOF when it exits.
	_ = stdin.Close()
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		logger.Debug("could not start process", "error", err)
		out.Error = errors.Join(ErrCouldNotStartProcess, err)
		out.settle()

		return out
	}

	logger.Debug("process started", "pid", ps.Pid)

	tee := teereader.NewLastLineReader(rOut)

	var (
		stdout, stderr       []byte
		stdoutErr, stderrErr error
		readers              sync.WaitGroup
	)

	readers.Add(2) //nolint:mnd

	go func() {
		defer readers.Done()

		stdout, stdoutErr = readAllUpToMax(ctx, tee, maxBufferSize)
	}()

	go func() {
		defer readers.Done()

		stderr, stderrErr = readAllUpToMax(ctx, rErr, maxBufferSize)
	}()

	done := make(chan struct{})
	watchdogErr := make(chan error, 1)
	watchdogExited := make(chan struct{})

	go func() {
		defer close(watchdogExited)

		c.watchdog(ctx, ps, sigCh, tee, done, watchdogErr)
	}()

	logger.Debug("waiting for process to finish")

	state, waitErr := ps.Wait()

	close(done)
	<-watchdogExited

	// Output may still be arriving from grandchildren that inherited the pipes.
	drained := make(chan struct{})

	go func() {
		readers.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(pipeGracePeriod):
		logger.Debug("output still open after process exit, closing pipes")

		_ = rOut.Close()
		_ = rErr.Close()

		<-drained
	}

	if state != nil {
		out.ExitCode = state.ExitCode()
	}

	out.StdOut = stdout
	out.StdErr = stderr
	out.Error = errors.Join(waitErr, stdoutErr, stderrErr)

	select {
	case e := <-watchdogErr:
		out.Error = errors.Join(e, out.Error)
		out.ExitCode = -1
	default:
	}

	out.settle()

	logger.Debug("process finished", "exitCode", out.ExitCode, "status", out.Status, "error", out.Error)

	return out
}

// watchdog forwards signals, reports progress and kills the process when ctx is done.
// It sends at most one error on result and returns when done is closed.
func (c *OSCommand) watchdog(
	ctx context.Context,
	ps *os.Process,
	sigCh <-chan os.Signal,
	tee *teereader.LastLineReader,
	done <-chan struct{},
	result chan<- error,
) {
	logger := ctxlog.Logger(ctx).With("label", c.GetLabel(), "pid", ps.Pid)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	signalCount := make(map[os.Signal]struct{})
	lastReported := ""

	for {
		select {
		case <-ticker.C:
			if c.reporter == nil {
				continue
			}

			line := tee.LastLine(maxProgressLine)
			if line == "" || line == lastReported {
				continue
			}

			lastReported = line

			c.reporter.Report(progress.Event{
				Job:       c.GetLabel(),
				Type:      progress.EventProgress,
				Message:   "Output from " + c.GetLabel(),
				Timestamp: time.Now(),
				Data: progress.EventData{
					OutputLine: line,
				},
			})

		case s := <-sigCh:
			// is this the second signal received of this type?
			if _, ok := signalCount[s]; ok {
				logger.Info("received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)

				result <- ErrDuplicateSignalReceived

				return
			}

			signalCount[s] = struct{}{}

			logger.Info("received signal", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}

		case <-ctx.Done():
			logger.Info("context done, killing process", "reason", ctx.Err())
			killPs(ctx, ps)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				result <- ErrTimeoutExceeded
			} else {
				result <- ErrCancelled
			}

			return

		case <-done:
			if len(signalCount) > 0 {
				result <- ErrSignalReceived
			}

			return
		}
	}
}

// readAllUpToMax reads r to EOF, keeping at most maxBufferSize bytes.
// The remainder is discarded so the writer is never blocked on a full pipe.
func readAllUpToMax(ctx context.Context, r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && !isEndOfPipe(err) {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		discarded, _ := io.Copy(io.Discard, r)

		ctxlog.Logger(ctx).Debug(
			"buffer overflow in readAllUpToMax",
			"bytesRead", n+discarded,
			"maxBytes", maxBufferSize,
		)

		return buf.Bytes()[:maxBufferSize], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

// isEndOfPipe reports whether err only means there is nothing more to read.
// A closed read end is expected after the grace period.
func isEndOfPipe(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed)
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)
}
