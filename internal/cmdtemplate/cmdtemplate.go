// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtemplate

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/docbuilder/internal/settings"
)

// Placeholders recognised in generator templates.
const (
	ProjectLocation = "$PROJECT_LOCATION"
	Project         = "$PROJECT"
	OutputFolder    = "$OUTPUT_FOLDER"
)

// Vars are the values substituted into a template.
type Vars struct {
	Name         string // replaces $PROJECT
	Path         string // replaces $PROJECT_LOCATION
	OutputFolder string // replaces $OUTPUT_FOLDER
}

// ResolvedCommand is a job together with the command line built for it.
type ResolvedCommand struct {
	Job         settings.JobSpec
	CommandLine string
}

// UnknownGeneratorError is returned when a job names a generator that has no template.
type UnknownGeneratorError struct {
	Job       string
	Generator string
}

// Error implements the error interface.
func (e *UnknownGeneratorError) Error() string {
	return fmt.Sprintf("%s: job %q uses undefined generator %q", settings.ErrConfig, e.Job, e.Generator)
}

// Unwrap makes errors.Is(err, settings.ErrConfig) hold.
func (e *UnknownGeneratorError) Unwrap() error {
	return settings.ErrConfig
}

// Resolve replaces every placeholder in template in a single pass.
// $PROJECT_LOCATION takes precedence over its prefix $PROJECT, substituted
// values are not scanned again and any other $TOKEN is left as it is.
func Resolve(template string, vars Vars) string {
	r := strings.NewReplacer(
		ProjectLocation, vars.Path,
		Project, vars.Name,
		OutputFolder, vars.OutputFolder,
	)

	return r.Replace(template)
}

// ResolveJob builds the command line for job from its generator template.
func ResolveJob(generators map[string]string, job settings.JobSpec, outputFolder string) (ResolvedCommand, error) {
	tmpl, ok := generators[job.Generator]
	if !ok {
		return ResolvedCommand{}, &UnknownGeneratorError{Job: job.Name, Generator: job.Generator}
	}

	return ResolvedCommand{
		Job: job,
		CommandLine: Resolve(tmpl, Vars{
			Name:         job.Name,
			Path:         job.Path,
			OutputFolder: outputFolder,
		}),
	}, nil
}

// ResolveAll resolves every job in order and stops at the first unknown generator.
func ResolveAll(generators map[string]string, jobs []settings.JobSpec, outputFolder string) ([]ResolvedCommand, error) {
	cmds := make([]ResolvedCommand, 0, len(jobs))

	for _, job := range jobs {
		rc, err := ResolveJob(generators, job, outputFolder)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, rc)
	}

	return cmds, nil
}
