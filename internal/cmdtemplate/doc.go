// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdtemplate turns a generator template and a job into the command line that is run for the job.
package cmdtemplate
