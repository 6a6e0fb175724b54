// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	// HeaderTimeFormat is the layout of the "Last ran" line in the log header.
	HeaderTimeFormat = "2006-01-02 15:04:05"
)

var (
	// ErrWorkspace wraps every filesystem failure. It is fatal to the run.
	ErrWorkspace = errors.New("workspace error")
	// ErrUnsafeOutputFolder is returned when removing the output folder would remove
	// the base directory or a filesystem root.
	ErrUnsafeOutputFolder = errors.New("refusing to remove output folder")
)

// FsFactory returns the filesystem the workspace operates on.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Workspace is the output folder and log file of one run.
type Workspace struct {
	fs           afero.Fs
	baseDir      string
	outputFolder string
	logFile      string
	logging      bool
	runID        uuid.UUID
}

// New creates a Workspace rooted at baseDir. Relative output folder and log file
// paths are resolved against it. An empty logFile disables logging.
func New(baseDir, outputFolder, logFile string) *Workspace {
	ws := &Workspace{
		fs:           FsFactory(),
		baseDir:      baseDir,
		outputFolder: resolve(baseDir, outputFolder),
		logging:      logFile != "",
		runID:        uuid.New(),
	}

	if ws.logging {
		ws.logFile = resolve(baseDir, logFile)
	}

	return ws
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}

	return filepath.Join(baseDir, p)
}

// RunID identifies this run in the log file.
func (w *Workspace) RunID() uuid.UUID {
	return w.runID
}

// OutputFolder returns the resolved output folder.
func (w *Workspace) OutputFolder() string {
	return w.outputFolder
}

// LogFile returns the resolved log file, or "" when logging is off.
func (w *Workspace) LogFile() string {
	return w.logFile
}

// JobFolder returns <output folder>/<name>.
func (w *Workspace) JobFolder(name string) string {
	return filepath.Join(w.outputFolder, name)
}

// Prepare readies the workspace for a run. With removeOld the output folder is
// deleted first. The output folder is created, and when logging the log file is
// truncated and the header written.
func (w *Workspace) Prepare(removeOld bool, now time.Time) error {
	if removeOld {
		if err := w.checkRemovable(); err != nil {
			return err
		}

		if err := w.fs.RemoveAll(w.outputFolder); err != nil {
			return fmt.Errorf("%w: removing %s: %w", ErrWorkspace, w.outputFolder, err)
		}
	}

	if err := w.fs.MkdirAll(w.outputFolder, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrWorkspace, w.outputFolder, err)
	}

	if !w.logging {
		return nil
	}

	if dir := filepath.Dir(w.logFile); dir != "." {
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("%w: creating %s: %w", ErrWorkspace, dir, err)
		}
	}

	header := fmt.Sprintf("Documentation Generation Script Log File\nLast ran: %s\nRun ID: %s\n\n",
		now.Format(HeaderTimeFormat), w.runID)

	if err := afero.WriteFile(w.fs, w.logFile, []byte(header), filePerm); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrWorkspace, w.logFile, err)
	}

	return nil
}

// checkRemovable rejects an output folder that is a filesystem root or that is,
// or contains, the base directory.
func (w *Workspace) checkRemovable() error {
	out, err := filepath.Abs(w.outputFolder)
	if err != nil {
		return fmt.Errorf("%w: %w: %s: %w", ErrWorkspace, ErrUnsafeOutputFolder, w.outputFolder, err)
	}

	base, err := filepath.Abs(w.baseDir)
	if err != nil {
		return fmt.Errorf("%w: %w: %s: %w", ErrWorkspace, ErrUnsafeOutputFolder, w.baseDir, err)
	}

	if filepath.Dir(out) == out {
		return fmt.Errorf("%w: %w: %s is a filesystem root", ErrWorkspace, ErrUnsafeOutputFolder, out)
	}

	rel, err := filepath.Rel(out, base)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %w: %s contains the base directory %s", ErrWorkspace, ErrUnsafeOutputFolder, out, base)
	}

	return nil
}

// EnsureJobFolder creates the folder for a job if it does not exist.
func (w *Workspace) EnsureJobFolder(name string) error {
	dir := w.JobFolder(name)
	if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrWorkspace, dir, err)
	}

	return nil
}

// AppendLog appends text to the log file. It does nothing when logging is off.
func (w *Workspace) AppendLog(text string) error {
	if !w.logging {
		return nil
	}

	f, err := w.fs.OpenFile(w.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrWorkspace, w.logFile, err)
	}

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrWorkspace, w.logFile, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrWorkspace, w.logFile, err)
	}

	return nil
}
