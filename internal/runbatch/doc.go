// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a batch of commands in parallel and collects one Outcome per command.
// A command that fails to start, exits non-zero, times out or panics still produces an Outcome,
// so a batch always settles with exactly as many outcomes as it has commands.
// Summarize turns the outcomes into counts and the text that is written to the log file.
package runbatch
