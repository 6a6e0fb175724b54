// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builder runs a documentation build: it resolves the command for each job,
// prepares the workspace, runs every job in parallel and writes the log.
package builder
