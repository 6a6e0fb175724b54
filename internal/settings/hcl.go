// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

type hclDefinition struct {
	LogFile      string            `hcl:"log_file,optional"`
	OutputFolder string            `hcl:"output_folder,optional"`
	NoLogging    bool              `hcl:"nologging,optional"`
	RemoveOld    bool              `hcl:"removeold,optional"`
	Timeout      int               `hcl:"timeout,optional"`
	FailOnError  bool              `hcl:"failonerror,optional"`
	Env          map[string]string `hcl:"env,optional"`
	Generators   map[string]string `hcl:"generators,optional"`
	Jobs         []hclJob          `hcl:"job,block"`
}

type hclJob struct {
	Name        string `hcl:"name,label"`
	Generator   string `hcl:"generator,optional"`
	Path        string `hcl:"path,optional"`
	CheckFolder bool   `hcl:"checkfolder,optional"`
}

// EnvFunc returns the environment exposed to HCL expressions as the env object.
var EnvFunc = os.Environ

func parseHCL(filename string, data []byte) (*Definition, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Join(ErrConfig, diags)
	}

	var raw hclDefinition
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &raw); diags.HasErrors() {
		return nil, errors.Join(ErrConfig, diags)
	}

	def := &Definition{
		Generators:   raw.Generators,
		LogFile:      raw.LogFile,
		OutputFolder: raw.OutputFolder,
		NoLogging:    raw.NoLogging,
		RemoveOld:    raw.RemoveOld,
		Timeout:      raw.Timeout,
		FailOnError:  raw.FailOnError,
		Env:          raw.Env,
		Jobs:         make([]JobDefinition, 0, len(raw.Jobs)),
	}

	for _, j := range raw.Jobs {
		def.Jobs = append(def.Jobs, JobDefinition{
			Name:        j.Name,
			Generator:   j.Generator,
			Path:        j.Path,
			CheckFolder: j.CheckFolder,
		})
	}

	return def, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range EnvFunc() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	envVal := cty.EmptyObjectVal
	if len(env) > 0 {
		envVal = cty.ObjectVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
		},
	}
}
