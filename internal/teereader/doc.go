// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides an io.Reader wrapper that remembers the last
// complete line that passed through it, for showing the latest output of a
// running job.
package teereader
