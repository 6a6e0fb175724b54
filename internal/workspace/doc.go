// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workspace manages the files a run touches: the output folder, the per-job folders and the log file.
package workspace
