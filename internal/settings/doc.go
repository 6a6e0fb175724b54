// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package settings loads and validates the docbuilder settings file and turns
// it into a RunConfig.
//
// JSON and YAML files are decoded with goccy/go-yaml. Files ending in .hcl are
// decoded with hashicorp/hcl, where jobs are written as labelled blocks:
//
//	output_folder = "docs"
//
//	generators = {
//	  jsdoc = "jsdoc -r $PROJECT_LOCATION -d $OUTPUT_FOLDER/$PROJECT"
//	}
//
//	job "api" {
//	  generator   = "jsdoc"
//	  path        = "${env.HOME}/src/api"
//	  checkfolder = true
//	}
package settings
