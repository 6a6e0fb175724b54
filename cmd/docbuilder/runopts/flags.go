// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runopts

import (
	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	FileFlag         = "file"
	EnvFileFlag      = "env-file"
	LogFileFlag      = "log-file"
	OutputFolderFlag = "output-folder"
	NoLoggingFlag    = "no-logging"
	RemoveOldFlag    = "remove-old"
	TimeoutFlag      = "timeout"
	FailOnErrorFlag  = "fail-on-error"

	fileEnvVar = "DOCBUILDER_FILE"
)

// Flags returns the flags that select and override the settings.
// It returns new flag values on each call.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FileFlag,
			Aliases: []string{"f"},
			Usage: "Settings file to use. JSON, YAML or HCL, chosen by extension. " +
				"Supports Hashicorp's go-getter syntax for fetching the file from elsewhere.",
			Value:     settings.DefaultSettingsFile,
			TakesFile: true,
			OnlyOnce:  true,
			Sources:   cli.EnvVars(fileEnvVar),
		},
		&cli.StringFlag{
			Name:      EnvFileFlag,
			Usage:     "Dotenv file whose variables are added to the environment of every job",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      LogFileFlag,
			Usage:     "Override the log file (LOG_FILE)",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     OutputFolderFlag,
			Aliases:  []string{"o"},
			Usage:    "Override the output folder (OUTPUT_FOLDER)",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        NoLoggingFlag,
			Usage:       "Do not write the log file",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        RemoveOldFlag,
			Usage:       "Remove the output folder before running the jobs",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.IntFlag{
			Name:     TimeoutFlag,
			Usage:    "Kill a job after this many seconds, 0 for no limit",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        FailOnErrorFlag,
			Usage:       "Exit with code 1 when any job fails",
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}
