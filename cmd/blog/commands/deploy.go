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
	"github.com/tomasfarias/hugo-blog/lib/site"
)

func deployCommand() *cli.Command {
	var (
		configPath   string
		engineBinary string
	)

	return &cli.Command{
		Name:    "deploy",
		Summary: "Build the site, then serve it until terminated",
		Description: `Run the full pipeline in one process: build to completion, then
hand the asset bundle to the publisher and serve until terminated.

The two stages are strictly ordered — a failed build exits nonzero
and the publisher never starts. Once serving there is no rebuild; a
new deployment is a new process.`,
		Usage: "blog deploy [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("deploy", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to blog.yaml (default: $BLOG_CONFIG)")
			flags.StringVar(&engineBinary, "engine-binary", "", "use this engine binary instead of fetching the pinned release")
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

			builder := &site.Builder{
				Config:       cfg,
				Logger:       logger,
				EngineBinary: engineBinary,
			}
			result, err := builder.Build(ctx)
			if err != nil {
				return err
			}

			publisher := serve.NewPublisher(serve.PublisherConfig{
				Address: cfg.Serve.Address(),
				DocRoot: cfg.Serve.DocRoot,
				Logger:  logger,
			})
			if err := publisher.Stage(result.BundleDir); err != nil {
				return err
			}
			if err := builder.MarkServing(); err != nil {
				return err
			}
			return publisher.Serve(ctx)
		},
	}
}
