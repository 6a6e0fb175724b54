// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runopts

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runConfigFromArgs(t *testing.T, args ...string) (settings.RunConfig, error) {
	t.Helper()

	var (
		cfg    settings.RunConfig
		cfgErr error
	)

	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgErr = RunConfig(ctx, cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))

	return cfg, cfgErr
}

func TestRunConfig_FromFile(t *testing.T) {
	cfg, err := runConfigFromArgs(t, "-f", "testdata/docbuilder.yaml")
	require.NoError(t, err)

	assert.Equal(t, "yaml.log", cfg.LogFile)
	assert.Equal(t, "yaml-docs", cfg.OutputFolder)
	assert.Equal(t, "testdata", cfg.BaseDir, "paths are relative to the settings file")
	assert.Equal(t, 60*time.Second, cfg.JobTimeout)
	assert.False(t, cfg.NoLogging)
	assert.Equal(t, []string{"webui"}, cfg.JobNames())
	assert.Equal(t, map[string]string{"DOC_THEME": "light"}, cfg.Env)
}

func TestRunConfig_FlagsOverride(t *testing.T) {
	cfg, err := runConfigFromArgs(t,
		"--file", "testdata/docbuilder.yaml",
		"--env-file", "testdata/jobs.env",
		"--log-file", "cli.log",
		"--output-folder", "cli-docs",
		"--no-logging",
		"--remove-old",
		"--timeout", "0",
		"--fail-on-error",
	)
	require.NoError(t, err)

	assert.Equal(t, "cli.log", cfg.LogFile)
	assert.Equal(t, "cli-docs", cfg.OutputFolder)
	assert.True(t, cfg.NoLogging)
	assert.True(t, cfg.RemoveOld)
	assert.Zero(t, cfg.JobTimeout)
	assert.True(t, cfg.FailOnJobError)
	assert.Equal(t, map[string]string{"DOC_THEME": "dark", "DOC_VERSION": "1.2.3"}, cfg.Env)
}

func TestRunConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "missing settings file",
			args:    []string{"-f", "testdata/missing.json"},
			wantErr: settings.ErrConfig,
		},
		{
			name:    "negative timeout",
			args:    []string{"-f", "testdata/docbuilder.yaml", "--timeout=-1"},
			wantErr: settings.ErrConfig,
		},
		{
			name:    "missing env file",
			args:    []string{"-f", "testdata/docbuilder.yaml", "--env-file", "testdata/missing.env"},
			wantErr: ErrEnvFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDefinition_RemoteFailure(t *testing.T) {
	_, _, err := LoadDefinition(t.Context(), "git::http://notexist.invalid//docbuilder.yaml")
	require.ErrorIs(t, err, settings.ErrConfig)
	require.ErrorIs(t, err, ErrGetConfigFile)
}

func Test_getURL(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantErr   error
		wantBytes string
		wantName  string
	}{
		{
			name:    "empty url returns error",
			url:     "",
			wantErr: ErrGetConfigFile,
		},
		{
			name:    "unreachable git url",
			url:     "git::http://notexist.invalid//file.yaml",
			wantErr: ErrGetConfigFile,
		},
		{
			name:      "local file",
			url:       "./testdata/jobs.env",
			wantBytes: "# extra variables for the generators\nDOC_THEME=dark\nDOC_VERSION=\"1.2.3\"\n",
			wantName:  "jobs.env",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, name, err := getURL(t.Context(), tc.url)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, string(data))
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func Test_splitFileNameFromGetterURL(t *testing.T) {
	testCases := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//docs/.docbuilder_config.json?ref=v1.0.0",
			wantURL:  "git::https://github.com/org/repo//docs?ref=v1.0.0",
			wantFile: ".docbuilder_config.json",
		},
		{
			url:      "git::https://github.com/org/repo//settings.yaml",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "settings.yaml",
		},
		{
			url: "https://example.com/settings.json",
		},
		{
			url: "git::https://github.com/org/repo//docs/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tc.url)
			assert.Equal(t, tc.wantURL, gotURL)
			assert.Equal(t, tc.wantFile, gotFile)
		})
	}
}

func Test_isLocalPath(t *testing.T) {
	assert.True(t, isLocalPath(".docbuilder_config.json"))
	assert.True(t, isLocalPath("../configs/docs.hcl"))
	assert.False(t, isLocalPath("git::https://github.com/org/repo//docs.yaml"))
	assert.False(t, isLocalPath("https://example.com/docs.yaml"))
}
