// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	shellEnv             = "SHELL"
)

// ErrEmptyCommandLine is returned when a shell command is created without a command line.
var ErrEmptyCommandLine = errors.New("command line is empty")

// NewShellCommand creates an OSCommand that runs commandLine with the platform shell.
func NewShellCommand(ctx context.Context, label, commandLine, cwd string, env map[string]string) (*OSCommand, error) {
	if commandLine == "" {
		return nil, fmt.Errorf("%w: job %q", ErrEmptyCommandLine, label)
	}

	var args []string

	switch runtime.GOOS {
	case GOOSWindows:
		args = []string{commandSwitchWindows, commandLine}
	default:
		args = []string{commandSwitchUnix, commandLine}
	}

	return &OSCommand{
		Label:       label,
		Path:        defaultShell(ctx),
		Args:        args,
		Cwd:         cwd,
		Env:         env,
		CommandLine: commandLine,
	}, nil
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv(shellEnv); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}
