// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtemplate

import (
	"errors"
	"testing"

	"github.com/matt-FFFFFF/docbuilder/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	vars := Vars{Name: "X", Path: "/p", OutputFolder: "docs"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "every occurrence replaced",
			template: "$PROJECT at $PROJECT_LOCATION for $PROJECT",
			want:     "X at /p for X",
		},
		{
			name:     "output folder",
			template: "gen -i $PROJECT_LOCATION -o $OUTPUT_FOLDER/$PROJECT",
			want:     "gen -i /p -o docs/X",
		},
		{
			name:     "adjacent tokens",
			template: "$PROJECT$PROJECT_LOCATION$OUTPUT_FOLDER",
			want:     "X/pdocs",
		},
		{
			name:     "unknown token kept",
			template: "echo $HOME $PROJECTS $PROJECT",
			want:     "echo $HOME XS X",
		},
		{
			name:     "no placeholders",
			template: "make docs",
			want:     "make docs",
		},
		{
			name:     "empty",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.template, vars))
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	vars := Vars{Name: "api", Path: "../api", OutputFolder: "out"}
	tmpl := "doxygen $PROJECT_LOCATION/Doxyfile > $OUTPUT_FOLDER/$PROJECT.txt"

	once := Resolve(tmpl, vars)
	assert.Equal(t, once, Resolve(once, vars))
}

func TestResolve_ValuesNotRescanned(t *testing.T) {
	vars := Vars{Name: "$PROJECT_LOCATION", Path: "/p"}
	assert.Equal(t, "$PROJECT_LOCATION /p", Resolve("$PROJECT $PROJECT_LOCATION", vars))
}

func TestResolveJob(t *testing.T) {
	generators := map[string]string{
		"jsdoc": "jsdoc -r $PROJECT_LOCATION -d $OUTPUT_FOLDER/$PROJECT",
	}
	job := settings.JobSpec{Name: "webui", Generator: "jsdoc", Path: "../webui"}

	rc, err := ResolveJob(generators, job, "site")
	require.NoError(t, err)
	assert.Equal(t, job, rc.Job)
	assert.Equal(t, "jsdoc -r ../webui -d site/webui", rc.CommandLine)
}

func TestResolveJob_UnknownGenerator(t *testing.T) {
	job := settings.JobSpec{Name: "webui", Generator: "sphinx", Path: "."}

	_, err := ResolveJob(map[string]string{}, job, "docs")
	require.ErrorIs(t, err, settings.ErrConfig)

	var uge *UnknownGeneratorError
	require.True(t, errors.As(err, &uge))
	assert.Equal(t, "sphinx", uge.Generator)
	assert.Equal(t, "webui", uge.Job)
	assert.Contains(t, err.Error(), `undefined generator "sphinx"`)
}

func TestResolveAll(t *testing.T) {
	generators := map[string]string{"echo": "echo $PROJECT"}
	jobs := []settings.JobSpec{
		{Name: "a", Generator: "echo", Path: "."},
		{Name: "b", Generator: "echo", Path: "."},
	}

	cmds, err := ResolveAll(generators, jobs, "docs")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, "echo a", cmds[0].CommandLine)
	assert.Equal(t, "echo b", cmds[1].CommandLine)

	jobs = append(jobs, settings.JobSpec{Name: "c", Generator: "missing", Path: "."})
	cmds, err = ResolveAll(generators, jobs, "docs")
	require.ErrorIs(t, err, settings.ErrConfig)
	assert.Nil(t, cmds)
}
