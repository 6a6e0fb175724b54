// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a real-time terminal user interface for a documentation build.
// It lists every job with its status, run time and the last line of output from the
// jobs still running, and shows the summary once the batch has settled.
//
// The TUI consumes the same progress events that drive the plain console output.
package tui
