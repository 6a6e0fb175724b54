// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runopts

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// ErrEnvFile is returned when the dotenv file cannot be read.
var ErrEnvFile = errors.New("failed to read env file")

// RunConfig loads the settings named by the file flag and applies the other flags
// that were set on the command line. Relative paths are resolved against the
// directory of a local settings file. The error wraps settings.ErrConfig when the
// settings are missing or invalid.
func RunConfig(ctx context.Context, cmd *cli.Command) (settings.RunConfig, error) {
	def, baseDir, err := LoadDefinition(ctx, cmd.String(FileFlag))
	if err != nil {
		return settings.RunConfig{}, err
	}

	opts, err := options(cmd)
	if err != nil {
		return settings.RunConfig{}, err
	}

	opts = append([]settings.Option{settings.WithBaseDir(baseDir)}, opts...)

	return settings.NewRunConfig(def, opts...) //nolint:wrapcheck
}

// LoadDefinition reads a settings file. A path that exists locally is read directly,
// anything else is fetched with go-getter. The returned directory holds a local
// settings file; it is "." for a fetched one.
func LoadDefinition(ctx context.Context, src string) (*settings.Definition, string, error) {
	if src == "" {
		src = settings.DefaultSettingsFile
	}

	exists, err := afero.Exists(settings.FsFactory(), src)
	if err != nil {
		return nil, "", errors.Join(settings.ErrConfig, err)
	}

	if exists || isLocalPath(src) {
		ctxlog.Debug(ctx, "loading local settings file", "path", src)

		def, err := settings.Load(src)

		return def, filepath.Dir(src), err //nolint:wrapcheck
	}

	ctxlog.Debug(ctx, "fetching settings file", "url", src)

	data, fileName, err := getURL(ctx, src)
	if err != nil {
		return nil, "", errors.Join(settings.ErrConfig, err)
	}

	def, err := settings.Parse(fileName, data)

	return def, ".", err //nolint:wrapcheck
}

func options(cmd *cli.Command) ([]settings.Option, error) {
	var opts []settings.Option

	if cmd.IsSet(LogFileFlag) {
		opts = append(opts, settings.WithLogFile(cmd.String(LogFileFlag)))
	}

	if cmd.IsSet(OutputFolderFlag) {
		opts = append(opts, settings.WithOutputFolder(cmd.String(OutputFolderFlag)))
	}

	if cmd.IsSet(NoLoggingFlag) {
		opts = append(opts, settings.WithNoLogging(cmd.Bool(NoLoggingFlag)))
	}

	if cmd.IsSet(RemoveOldFlag) {
		opts = append(opts, settings.WithRemoveOld(cmd.Bool(RemoveOldFlag)))
	}

	if cmd.IsSet(TimeoutFlag) {
		secs := cmd.Int(TimeoutFlag)
		if secs < 0 {
			return nil, fmt.Errorf("%w: --%s must not be negative, got %d", settings.ErrConfig, TimeoutFlag, secs)
		}

		opts = append(opts, settings.WithJobTimeout(time.Duration(secs)*time.Second))
	}

	if cmd.IsSet(FailOnErrorFlag) {
		opts = append(opts, settings.WithFailOnJobError(cmd.Bool(FailOnErrorFlag)))
	}

	if path := cmd.String(EnvFileFlag); path != "" {
		env, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, path, err)
		}

		opts = append(opts, settings.WithEnv(env))
	}

	return opts, nil
}
