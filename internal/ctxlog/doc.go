// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes through PrettyHandler, a console handler that prints
// a timestamp, a coloured level, the message and the attributes as indented JSON.
// The level is read once from the DOCBUILDER_LOG_LEVEL environment variable.
package ctxlog
