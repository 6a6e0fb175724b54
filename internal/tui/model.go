// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	reservedLines = 7 // title, summary, status bar and help
)

// JobRow is the display state of one job.
type JobRow struct {
	Index      int
	Name       string
	Status     runbatch.JobState
	StartTime  time.Time
	EndTime    time.Time
	LastOutput string
	ErrorMsg   string
	ExitCode   int
}

// Elapsed returns how long the job has been, or was, running.
func (r *JobRow) Elapsed(now time.Time) time.Duration {
	switch {
	case r.StartTime.IsZero():
		return 0
	case r.EndTime.IsZero():
		return now.Sub(r.StartTime)
	default:
		return r.EndTime.Sub(r.StartTime)
	}
}

// Model is the bubbletea model of a build.
type Model struct {
	rows      []*JobRow
	spinner   spinner.Model
	viewport  viewport.Model
	width     int
	height    int
	quitting  bool
	completed bool
	summary   runbatch.Summary
	err       error
	styles    *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
	}
}

// NewModel creates a model listing jobs in the given order, all pending.
func NewModel(jobs []string) *Model {
	rows := make([]*JobRow, len(jobs))
	for i, name := range jobs {
		rows[i] = &JobRow{Index: i, Name: name, Status: runbatch.JobStatePending}
	}

	m := &Model{
		rows:     rows,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(defaultWidth, defaultHeight-reservedLines),
		width:    defaultWidth,
		height:   defaultHeight,
		styles:   NewStyles(),
	}

	return m
}

// Rows returns the job rows in configured order.
func (m *Model) Rows() []*JobRow {
	return m.rows
}

// Completed reports whether the build has finished.
func (m *Model) Completed() bool {
	return m.completed
}

// row finds the row for an event, growing the list for jobs it has not seen.
func (m *Model) row(e progress.Event) *JobRow {
	if e.Index >= 0 && e.Index < len(m.rows) && m.rows[e.Index].Name == e.Job {
		return m.rows[e.Index]
	}

	for _, r := range m.rows {
		if r.Name == e.Job {
			return r
		}
	}

	r := &JobRow{Index: len(m.rows), Name: e.Job}
	m.rows = append(m.rows, r)

	return r
}

// applyEvent updates the row an event is about.
func (m *Model) applyEvent(e progress.Event) {
	r := m.row(e)

	switch e.Type {
	case progress.EventStarted:
		r.Status = runbatch.JobStateRunning
		r.StartTime = e.Timestamp

	case progress.EventProgress:
		if line := lastLine(e.Data.OutputLine); line != "" {
			r.LastOutput = line
		}

	case progress.EventCompleted:
		r.Status = runbatch.JobStateSucceeded
		r.EndTime = e.Timestamp
		r.ExitCode = e.Data.ExitCode

	case progress.EventFailed:
		r.Status = runbatch.JobStateFailed
		r.EndTime = e.Timestamp
		r.ExitCode = e.Data.ExitCode

		switch {
		case e.Data.Error != nil:
			r.ErrorMsg = lastLine(e.Data.Error.Error())
		case e.Data.OutputLine != "":
			r.ErrorMsg = e.Data.OutputLine
		}
	}
}

// counts returns how many jobs are running, succeeded and failed.
func (m *Model) counts() (running, succeeded, failed int) {
	for _, r := range m.rows {
		switch r.Status {
		case runbatch.JobStateRunning:
			running++
		case runbatch.JobStateSucceeded:
			succeeded++
		case runbatch.JobStateFailed:
			failed++
		}
	}

	return running, succeeded, failed
}

func (m *Model) updateViewportSize() {
	m.viewport.Width = max(m.width-2, 1) //nolint:mnd
	m.viewport.Height = max(m.height-reservedLines, 1)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
