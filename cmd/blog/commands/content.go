// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/tomasfarias/hugo-blog/cmd/blog/cli"
	"github.com/tomasfarias/hugo-blog/lib/content"
)

func contentCommand() *cli.Command {
	return &cli.Command{
		Name:    "content",
		Summary: "Inspect the content tree",
		Subcommands: []*cli.Command{
			contentListCommand(),
			contentTagsCommand(),
		},
	}
}

func contentListCommand() *cli.Command {
	var (
		configPath string
		draftsOnly bool
	)

	return &cli.Command{
		Name:    "list",
		Summary: "List the documents the build would render",
		Description: `Walk the content tree and print every markdown document with its
front-matter metadata. This is the same scan the build preflight
runs, so a tree this command rejects will not build either.`,
		Usage: "blog content list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to blog.yaml (default: $BLOG_CONFIG)")
			flags.BoolVar(&draftsOnly, "drafts", false, "list draft documents only")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			pages, err := content.Scan(cfg.Site.Root)
			if err != nil {
				return err
			}
			if draftsOnly {
				pages = content.Drafts(pages)
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(writer, "PATH\tTITLE\tDRAFT\tTAGS")
			for _, page := range pages {
				draft := ""
				if page.Draft {
					draft = "draft"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					page.Path, page.Title, draft, strings.Join(page.Tags, ","))
			}
			return writer.Flush()
		},
	}
}

func contentTagsCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "tags",
		Summary: "List the distinct taxonomy tags in use",
		Usage:   "blog content tags [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("tags", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "path to blog.yaml (default: $BLOG_CONFIG)")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			pages, err := content.Scan(cfg.Site.Root)
			if err != nil {
				return err
			}
			for _, tag := range content.Tags(pages) {
				fmt.Println(tag)
			}
			return nil
		},
	}
}
