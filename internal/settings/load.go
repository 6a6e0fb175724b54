// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// FsFactory returns the filesystem settings files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads and parses the settings file at path.
func Load(path string) (*Definition, error) {
	fs := FsFactory()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: can't find a local '%s' configuration file", ErrConfig, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	return Parse(path, data)
}
