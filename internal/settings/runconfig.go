// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"maps"
	"slices"
	"time"
)

// RunConfig is the validated, effective configuration of one run.
// It is built once by NewRunConfig and passed by value; the maps and slices
// are private copies.
type RunConfig struct {
	Generators     map[string]string
	Jobs           []JobSpec
	LogFile        string
	OutputFolder   string
	NoLogging      bool
	RemoveOld      bool
	JobTimeout     time.Duration
	FailOnJobError bool
	Env            map[string]string // added to the environment of every job
	BaseDir        string            // output folder and log file are relative to this
}

// Option overrides a RunConfig value after the settings file has been applied.
type Option func(*RunConfig)

// WithLogFile overrides the log file path.
func WithLogFile(path string) Option {
	return func(c *RunConfig) {
		if path != "" {
			c.LogFile = path
		}
	}
}

// WithOutputFolder overrides the output folder.
func WithOutputFolder(folder string) Option {
	return func(c *RunConfig) {
		if folder != "" {
			c.OutputFolder = folder
		}
	}
}

// WithNoLogging turns writing the log file off or on.
func WithNoLogging(v bool) Option {
	return func(c *RunConfig) {
		c.NoLogging = v
	}
}

// WithRemoveOld sets whether the output folder is removed before the run.
func WithRemoveOld(v bool) Option {
	return func(c *RunConfig) {
		c.RemoveOld = v
	}
}

// WithJobTimeout sets the per-job timeout. Zero disables it.
func WithJobTimeout(d time.Duration) Option {
	return func(c *RunConfig) {
		if d >= 0 {
			c.JobTimeout = d
		}
	}
}

// WithFailOnJobError sets whether a failed job makes the run fail.
func WithFailOnJobError(v bool) Option {
	return func(c *RunConfig) {
		c.FailOnJobError = v
	}
}

// WithEnv adds environment variables for the jobs, overriding same-named
// variables from the settings file.
func WithEnv(env map[string]string) Option {
	return func(c *RunConfig) {
		if len(env) == 0 {
			return
		}

		if c.Env == nil {
			c.Env = make(map[string]string, len(env))
		}

		maps.Copy(c.Env, env)
	}
}

// WithBaseDir sets the directory relative paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(c *RunConfig) {
		c.BaseDir = dir
	}
}

// DefaultRunConfig returns the configuration used before any settings are applied.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		LogFile:      DefaultLogFile,
		OutputFolder: DefaultOutputFolder,
		BaseDir:      ".",
	}
}

// NewRunConfig validates def and layers defaults, the definition and the
// options, in that order. The error wraps ErrConfig.
func NewRunConfig(def *Definition, opts ...Option) (RunConfig, error) {
	if err := def.Validate(); err != nil {
		return RunConfig{}, err
	}

	cfg := DefaultRunConfig()
	cfg.Generators = maps.Clone(def.Generators)
	cfg.Env = maps.Clone(def.Env)
	cfg.NoLogging = def.NoLogging
	cfg.RemoveOld = def.RemoveOld
	cfg.FailOnJobError = def.FailOnError
	cfg.JobTimeout = time.Duration(def.Timeout) * time.Second

	if def.LogFile != "" {
		cfg.LogFile = def.LogFile
	}

	if def.OutputFolder != "" {
		cfg.OutputFolder = def.OutputFolder
	}

	cfg.Jobs = make([]JobSpec, 0, len(def.Jobs))
	for _, jd := range def.Jobs {
		cfg.Jobs = append(cfg.Jobs, jd.ToJobSpec())
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, nil
}

// JobNames returns the job names in configured order.
func (c RunConfig) JobNames() []string {
	names := make([]string, 0, len(c.Jobs))
	for job := range slices.Values(c.Jobs) {
		names = append(names, job.Name)
	}

	return names
}
