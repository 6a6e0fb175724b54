// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"run", "show", "config"} {
		assert.NotNil(t, root.Command(name), "missing command %q", name)
	}

	assert.Equal(t, "run", root.DefaultCommand)
}

func TestRootCmd_Version(t *testing.T) {
	root := newRootCmd()

	var out bytes.Buffer

	root.Writer = &out

	require.NoError(t, root.Run(t.Context(), []string{"docbuilder", "--version"}))
	assert.Contains(t, out.String(), "dev (commit: unknown)")
}
