// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show contains the command that prints the resolved job commands without running them.
package show

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/docbuilder/cmd/docbuilder/runopts"
	"github.com/matt-FFFFFF/docbuilder/internal/builder"
	"github.com/matt-FFFFFF/docbuilder/internal/cmdtemplate"
	"github.com/matt-FFFFFF/docbuilder/internal/color"
	"github.com/urfave/cli/v3"
)

// NewCommand returns the show command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Print the command each job would run",
		Description: "Resolve the generator template of every job and print the command lines without running them.",
		Flags:       runopts.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := runopts.RunConfig(ctx, cmd)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			cmds, err := builder.New(cfg).Plan()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			writePlan(cmd.Writer, cmds)

			return nil
		},
	}
}

func writePlan(w io.Writer, cmds []cmdtemplate.ResolvedCommand) {
	for _, rc := range cmds {
		name := color.Colorize(rc.Job.Name, color.Bold)
		if rc.Job.CheckFolder {
			name += color.Colorize(" (checkfolder)", color.Faint)
		}

		fmt.Fprintf(w, "%s\n  %s\n", name, rc.CommandLine) //nolint:errcheck
	}
}
