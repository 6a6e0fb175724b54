// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfig(t *testing.T) {
	cfg := settings.DefaultRunConfig()
	cfg.Generators = map[string]string{"jsdoc": "jsdoc $PROJECT_LOCATION"}
	cfg.Jobs = []settings.JobSpec{{Name: "webui", Generator: "jsdoc", Path: "../webui", CheckFolder: true}}
	cfg.JobTimeout = 90 * time.Second

	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, cfg, false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Equal(t, "docs", got["outputFolder"])
	assert.Equal(t, ".docbuilder.log", got["logFile"])
	assert.Equal(t, "1m30s", got["jobTimeout"])
	assert.Equal(t, false, got["noLogging"])

	jobs, ok := got["jobs"].([]any)
	require.True(t, ok)
	require.Len(t, jobs, 1)

	job, ok := jobs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "webui", job["name"])
	assert.Equal(t, true, job["checkfolder"])
}

func TestWriteConfig_NoTimeout(t *testing.T) {
	cfg := settings.DefaultRunConfig()

	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, cfg, false))
	assert.Contains(t, out.String(), `"jobTimeout": "none"`)
}
