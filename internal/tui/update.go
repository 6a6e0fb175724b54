// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/docbuilder/internal/progress"
	"github.com/matt-FFFFFF/docbuilder/internal/runbatch"
)

const (
	minStatusBarAvailableHeight = 10
	commandDurationRounding     = 100 * time.Millisecond
	ellipsis                    = "..."
	minNameWidth                = 12
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// BuildCompletedMsg is sent once every job has settled, or the build failed to start.
type BuildCompletedMsg struct {
	Summary runbatch.Summary
	Err     error
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()

		return m, nil

	case spinner.TickMsg:
		if m.completed {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case ProgressEventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case BuildCompletedMsg:
		m.completed = true
		m.summary = msg.Summary
		m.err = msg.Err

		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var content strings.Builder

	now := time.Now()
	nameWidth := m.nameWidth()

	for _, r := range m.rows {
		m.renderRow(&content, r, nameWidth, now)
	}

	m.viewport.SetContent(content.String())

	var view strings.Builder

	view.WriteString(m.styles.Title.Render("Documentation build"))
	view.WriteString("\n")
	view.WriteString(m.styles.Border.Render(m.viewport.View()))
	view.WriteString("\n")

	if m.completed {
		view.WriteString(m.renderSummary())
		view.WriteString("\n")
	}

	if m.height > minStatusBarAvailableHeight {
		view.WriteString(m.renderStatusBar())
		view.WriteString("\n")

		helpText := "↑/↓ to scroll, 'q' to quit and stop the build"
		if m.completed {
			helpText = "↑/↓ to scroll, 'q' to quit"
		}

		view.WriteString(m.styles.Help.Render(helpText))
	}

	return view.String()
}

func (m *Model) nameWidth() int {
	w := minNameWidth
	for _, r := range m.rows {
		w = max(w, len(r.Name))
	}

	return w
}

func (m *Model) renderRow(b *strings.Builder, r *JobRow, nameWidth int, now time.Time) {
	var icon, name string

	padded := fmt.Sprintf("%-*s", nameWidth, r.Name)

	switch r.Status {
	case runbatch.JobStateRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(padded)
	case runbatch.JobStateSucceeded:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(padded)
	case runbatch.JobStateFailed:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(padded)
	default:
		icon = m.styles.Pending.Render("·")
		name = m.styles.Pending.Render(padded)
	}

	elapsed := fmt.Sprintf("%8s", r.Elapsed(now).Round(commandDurationRounding))

	var detail string

	switch {
	case r.Status == runbatch.JobStateFailed && r.ErrorMsg != "":
		detail = m.styles.Error.Render(truncate("Error: "+r.ErrorMsg, m.detailWidth(nameWidth)))
	case r.Status == runbatch.JobStateFailed:
		detail = m.styles.Error.Render(fmt.Sprintf("exit code %d", r.ExitCode))
	case r.Status == runbatch.JobStateRunning && r.LastOutput != "":
		detail = m.styles.Output.Render(truncate(r.LastOutput, m.detailWidth(nameWidth)))
	}

	fmt.Fprintf(b, "%s %s %s  %s\n", icon, name, m.styles.Pending.Render(elapsed), detail) //nolint:errcheck
}

// detailWidth is what is left of the line after icon, name and elapsed time.
func (m *Model) detailWidth(nameWidth int) int {
	return max(m.viewport.Width-nameWidth-14, len(ellipsis)+1) //nolint:mnd
}

func (m *Model) renderStatusBar() string {
	running, succeeded, failed := m.counts()
	pending := len(m.rows) - running - succeeded - failed

	return fmt.Sprintf("%s  %s  %s  %s",
		m.styles.Pending.Render(fmt.Sprintf("%d pending", pending)),
		m.styles.Running.Render(fmt.Sprintf("%d running", running)),
		m.styles.Success.Render(fmt.Sprintf("%d succeeded", succeeded)),
		m.styles.Failed.Render(fmt.Sprintf("%d failed", failed)))
}

func (m *Model) renderSummary() string {
	if m.err != nil {
		return m.styles.Failed.Render("Build could not start: " + m.err.Error())
	}

	if m.summary.Failed() > 0 {
		return m.styles.Failed.Render(m.summary.Line())
	}

	return m.styles.Success.Render(m.summary.Line())
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}

	if width <= len(ellipsis) {
		return s[:width]
	}

	return s[:width-len(ellipsis)] + ellipsis
}
