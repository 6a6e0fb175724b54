// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config contains the command that prints the effective run configuration.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/runopts"
	"github.com/matt-FFFFFF/docbuilder/internal/color"
	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/urfave/cli/v3"
)

const jsonIndent = 2

// ErrFormat is returned when the configuration cannot be rendered.
var ErrFormat = errors.New("failed to format configuration")

// jobView and configView are the JSON shape of a RunConfig.
type jobView struct {
	Name        string `json:"name"`
	Generator   string `json:"generator"`
	Path        string `json:"path"`
	CheckFolder bool   `json:"checkfolder"`
}

type configView struct {
	Generators     map[string]string `json:"generators"`
	Jobs           []jobView         `json:"jobs"`
	LogFile        string            `json:"logFile"`
	OutputFolder   string            `json:"outputFolder"`
	NoLogging      bool              `json:"noLogging"`
	RemoveOld      bool              `json:"removeOld"`
	JobTimeout     string            `json:"jobTimeout"`
	FailOnJobError bool              `json:"failOnJobError"`
	Env            map[string]string `json:"env"`
	BaseDir        string            `json:"baseDir"`
}

// NewCommand returns the config command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Print the effective configuration",
		Description: "Print the configuration after the settings file and the command line flags have been applied.",
		Flags:       runopts.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := runopts.RunConfig(ctx, cmd)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			if err := writeConfig(cmd.Writer, cfg, color.Enabled()); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			return nil
		},
	}
}

func newConfigView(cfg settings.RunConfig) configView {
	jobs := make([]jobView, 0, len(cfg.Jobs))
	for _, j := range cfg.Jobs {
		jobs = append(jobs, jobView(j))
	}

	timeout := "none"
	if cfg.JobTimeout > 0 {
		timeout = cfg.JobTimeout.String()
	}

	return configView{
		Generators:     cfg.Generators,
		Jobs:           jobs,
		LogFile:        cfg.LogFile,
		OutputFolder:   cfg.OutputFolder,
		NoLogging:      cfg.NoLogging,
		RemoveOld:      cfg.RemoveOld,
		JobTimeout:     timeout,
		FailOnJobError: cfg.FailOnJobError,
		Env:            cfg.Env,
		BaseDir:        cfg.BaseDir,
	}
}

func writeConfig(w io.Writer, cfg settings.RunConfig, colour bool) error {
	raw, err := json.Marshal(newConfigView(cfg))
	if err != nil {
		return errors.Join(ErrFormat, err)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Join(ErrFormat, err)
	}

	f := colorjson.NewFormatter()
	f.Indent = jsonIndent
	f.DisabledColor = !colour

	out, err := f.Marshal(obj)
	if err != nil {
		return errors.Join(ErrFormat, err)
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return errors.Join(ErrFormat, err)
	}

	return nil
}
