// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries job lifecycle events from a running batch to whoever
// displays them: the console printer or the terminal UI.
package progress
