// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/tomasfarias/hugo-blog/cmd/blog/cli"
	"github.com/tomasfarias/hugo-blog/lib/version"
)

func versionCommand() *cli.Command {
	var (
		full  bool
		short bool
	)

	return &cli.Command{
		Name:    "version",
		Summary: "Print the blog binary version",
		Usage:   "blog version [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flags.BoolVar(&full, "full", false, "include Go version and platform")
			flags.BoolVar(&short, "short", false, "print the bare version number")
			return flags
		},
		Run: func(args []string) error {
			switch {
			case short:
				fmt.Println(version.Short())
			case full:
				fmt.Println(version.Full())
			default:
				fmt.Println(version.Info())
			}
			return nil
		},
	}
}
