// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runopts holds the flags shared by the docbuilder commands and turns them,
// together with the settings file they point at, into a settings.RunConfig.
package runopts
