// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomasfarias/hugo-blog/cmd/blog/cli"
	"github.com/tomasfarias/hugo-blog/lib/serve"
	"github.com/tomasfarias/hugo-blog/lib/site"
)

func buildCommand() *cli.Command {
	var (
		configPath   string
		engineBinary string
	)

	return &cli.Command{
		Name:    "build",
		Summary: "Render the content tree into an asset bundle",
		Description: `Run the build pipeline once: resolve theme submodules to their
pinned revisions, acquire the pinned engine release, preflight the
content tree, render, and atomically publish the asset bundle.

Any failure aborts the build with a nonzero exit and leaves a
previously published bundle untouched.`,
		Usage: "blog build [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
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

			fmt.Printf("bundle %s\ndigest %s\npages %d (%d drafts)\n",
				result.BundleDir, result.Digest, result.Pages, result.Drafts)
			return nil
		},
	}
}
