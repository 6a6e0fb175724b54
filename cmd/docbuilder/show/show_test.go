// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "docbuilder.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`
generators = {
  doxygen = "doxygen $PROJECT_LOCATION/Doxyfile -o $OUTPUT_FOLDER/$PROJECT"
}

job "engine" {
  generator   = "doxygen"
  path        = "../engine"
  checkfolder = true
}
`), 0o600))

	var out bytes.Buffer

	cmd := NewCommand()
	cmd.Writer = &out

	require.NoError(t, cmd.Run(t.Context(), []string{"show", "-f", file, "-o", "site"}))

	assert.Contains(t, out.String(), "engine")
	assert.Contains(t, out.String(), "(checkfolder)")
	assert.Contains(t, out.String(), "  doxygen ../engine/Doxyfile -o site/engine\n")

	_, err := os.Stat("site")
	assert.True(t, os.IsNotExist(err), "show does not touch the workspace")
}
