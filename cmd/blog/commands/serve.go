// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomasfarias/hugo-blog/cmd/blog/cli"
	"github.com/tomasfarias/hugo-blog/lib/serve"
)

func serveCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "serve",
		Summary: "Serve an already-built asset bundle over HTTP",
		Description: `Copy the most recently built asset bundle into the document root
and serve it on the configured address until terminated. The build
output is required to exist: serve never triggers a build.

Binding fails fast if the address is in use — there is no fallback
port.`,
		Usage: "blog serve [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to blog.yaml (default: $BLOG_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			logger := serve.NewLogger()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			publisher := serve.NewPublisher(serve.PublisherConfig{
				Address: cfg.Serve.Address(),
				DocRoot: cfg.Serve.DocRoot,
				Logger:  logger,
			})
			if err := publisher.Stage(cfg.OutputDir()); err != nil {
				return err
			}
			return publisher.Serve(ctx)
		},
	}
}
