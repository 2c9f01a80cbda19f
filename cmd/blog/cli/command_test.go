// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "blog",
		Subcommands: []*Command{
			{
				Name: "build",
				Run: func(args []string) error {
					called = "build"
					return nil
				},
			},
			{
				Name: "serve",
				Run: func(args []string) error {
					called = "serve"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"serve"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "serve" {
		t.Errorf("dispatched to %q, want %q", called, "serve")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "blog",
		Subcommands: []*Command{
			{
				Name: "engine",
				Subcommands: []*Command{
					{
						Name: "fetch",
						Run: func(args []string) error {
							called = "engine fetch"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"engine", "fetch", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "engine fetch" {
		t.Errorf("dispatched to %q, want %q", called, "engine fetch")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var configPath string

	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--config", "/tmp/blog.yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if configPath != "/tmp/blog.yaml" {
		t.Errorf("config = %q, want /tmp/blog.yaml", configPath)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "blog",
		Subcommands: []*Command{
			{Name: "build", Run: func(args []string) error { return nil }},
			{Name: "deploy", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"buidl"})
	if err == nil {
		t.Fatal("Execute with typo: want error, got nil")
	}
	if !strings.Contains(err.Error(), `did you mean "build"`) {
		t.Errorf("error %q does not suggest build", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "serve",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			flags.String("config", "", "config file path")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--confg", "x"})
	if err == nil {
		t.Fatal("Execute with flag typo: want error, got nil")
	}
	if !strings.Contains(err.Error(), "--config") {
		t.Errorf("error %q does not suggest --config", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "blog",
		Subcommands: []*Command{
			{Name: "build", Run: func(args []string) error { return nil }},
		},
	}

	if err := root.Execute(nil); err == nil {
		t.Fatal("Execute without subcommand: want error, got nil")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:    "blog",
		Summary: "Static blog build-and-publish pipeline.",
		Subcommands: []*Command{
			{Name: "build", Summary: "Render the asset bundle"},
			{Name: "serve", Summary: "Serve a built bundle"},
		},
		Examples: []Example{
			{Description: "Build and serve in one go", Command: "blog deploy --config blog.yaml"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{"build", "serve", "Render the asset bundle", "blog deploy --config blog.yaml"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"build", "build", 0},
		{"build", "buidl", 2},
		{"serve", "", 5},
		{"fetch", "patch", 2},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
