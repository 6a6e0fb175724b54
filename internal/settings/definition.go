// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultSettingsFile is read from the working directory when no file is given.
	DefaultSettingsFile = ".docbuilder_config.json"
	// DefaultLogFile is where the run log is written unless overridden.
	DefaultLogFile = ".docbuilder.log"
	// DefaultOutputFolder is the folder generators write into unless overridden.
	DefaultOutputFolder = "docs"

	hclExt = ".hcl"
)

var (
	// ErrConfig is returned for any missing or malformed setting.
	// It is fatal: no job is started once it has been returned.
	ErrConfig = errors.New("configuration error")
	// ErrNoGenerators is returned when the settings do not define any generator templates.
	ErrNoGenerators = errors.New("must define documentation generators to run")
	// ErrNoJobs is returned when the settings do not define any jobs.
	ErrNoJobs = errors.New("must define at least one job")
	// ErrInvalidJob is returned when a job misses one of its required fields.
	ErrInvalidJob = errors.New("invalid job format")
)

// JobSpec is one configured unit of work.
type JobSpec struct {
	Name        string // Job name, used for $PROJECT and the per-job output folder
	Generator   string // Key into the generator templates
	Path        string // Project location, used for $PROJECT_LOCATION
	CheckFolder bool   // Create <output folder>/<name> before the job runs
}

// Definition is the settings file as written on disk.
type Definition struct {
	Generators   map[string]string `yaml:"generators"`
	Jobs         []JobDefinition   `yaml:"jobs"`
	LogFile      string            `yaml:"LOG_FILE"`
	OutputFolder string            `yaml:"OUTPUT_FOLDER"`
	NoLogging    bool              `yaml:"nologging"`
	RemoveOld    bool              `yaml:"removeold"`
	Timeout      int               `yaml:"timeout"` // seconds, 0 disables
	FailOnError  bool              `yaml:"failonerror"`
	Env          map[string]string `yaml:"env"`
}

// JobDefinition is a job entry as written on disk.
type JobDefinition struct {
	Name        string `yaml:"name"`
	Job         string `yaml:"job"` // older settings files named the job with this key
	Generator   string `yaml:"generator"`
	Path        string `yaml:"path"`
	CheckFolder bool   `yaml:"checkfolder"`
}

// ToJobSpec converts the on-disk form, preferring name over the legacy job key.
func (d JobDefinition) ToJobSpec() JobSpec {
	name := d.Name
	if name == "" {
		name = d.Job
	}

	return JobSpec{
		Name:        name,
		Generator:   d.Generator,
		Path:        d.Path,
		CheckFolder: d.CheckFolder,
	}
}

// Parse decodes settings data. The format is chosen from the file name:
// .hcl is HCL, anything else is YAML, which includes JSON.
func Parse(filename string, data []byte) (*Definition, error) {
	if strings.EqualFold(filepath.Ext(filename), hclExt) {
		return parseHCL(filename, data)
	}

	def := new(Definition)
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Join(ErrConfig, fmt.Errorf("failed to decode %s: %w", filename, err))
	}

	return def, nil
}

// Validate reports every problem in the definition at once.
// The returned error wraps ErrConfig.
func (d *Definition) Validate() error {
	var result *multierror.Error

	if d.Generators == nil {
		result = multierror.Append(result, ErrNoGenerators)
	}

	if len(d.Jobs) == 0 {
		result = multierror.Append(result, ErrNoJobs)
	}

	if d.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative, got %d", d.Timeout))
	}

	seen := make(map[string]int, len(d.Jobs))

	for i, jd := range d.Jobs {
		job := jd.ToJobSpec()

		var missing []string

		if job.Name == "" {
			missing = append(missing, "name")
		}

		if job.Generator == "" {
			missing = append(missing, "generator")
		}

		if job.Path == "" {
			missing = append(missing, "path")
		}

		if len(missing) > 0 {
			result = multierror.Append(result,
				fmt.Errorf("%w: job %d is missing %s", ErrInvalidJob, i, strings.Join(missing, ", ")))

			continue
		}

		if !validJobName(job.Name) {
			result = multierror.Append(result,
				fmt.Errorf("%w: job %d name %q must not contain a path separator or be . or ..", ErrInvalidJob, i, job.Name))
		}

		if prev, dup := seen[job.Name]; dup {
			result = multierror.Append(result,
				fmt.Errorf("%w: job %d has the same name as job %d: %q", ErrInvalidJob, i, prev, job.Name))
		}

		seen[job.Name] = i

		if d.Generators != nil {
			if _, ok := d.Generators[job.Generator]; !ok {
				result = multierror.Append(result,
					fmt.Errorf("%w: job %q uses undefined generator %q", ErrInvalidJob, job.Name, job.Generator))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrConfig, err)
	}

	return nil
}

// validJobName reports whether name is a single path element, as it names a
// folder under the output folder.
func validJobName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
