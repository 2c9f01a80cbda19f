// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete blog CLI command tree. The
// pipeline has two stages — build (render the asset bundle) and serve
// (publish it over HTTP) — plus supporting commands for engine
// acquisition and content inspection. Deploy chains the two stages in
// strict order: the publisher only ever sees a completed bundle.
package commands

import (
	"github.com/tomasfarias/hugo-blog/cmd/blog/cli"
	"github.com/tomasfarias/hugo-blog/lib/config"
)

// Root builds and returns the complete blog CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "blog",
		Description: `blog: static site build-and-publish pipeline.

Renders a content tree with a pinned release of the Hugo engine and
serves the resulting asset bundle over HTTP.`,
		Subcommands: []*cli.Command{
			buildCommand(),
			serveCommand(),
			deployCommand(),
			engineCommand(),
			contentCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Render the site into its asset bundle",
				Command:     "blog build --config blog.yaml",
			},
			{
				Description: "Build and serve in one process",
				Command:     "blog deploy --config blog.yaml",
			},
			{
				Description: "Pre-fetch the pinned engine binary",
				Command:     "blog engine fetch --config blog.yaml",
			},
		},
	}
}

// loadConfig resolves the configuration: an explicit --config path
// wins, otherwise the BLOG_CONFIG environment variable.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
