// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yaml")
	data := "engine:\n  version: \"0.147.2\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandTree(t *testing.T) {
	root := Root()
	want := []string{"build", "serve", "deploy", "engine", "content", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Subcommands {
			if sub.Name == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root is missing %q subcommand", name)
		}
	}
	if len(root.Subcommands) != len(want) {
		t.Errorf("root has %d subcommands, want %d", len(root.Subcommands), len(want))
	}
}

func TestContentSubcommands(t *testing.T) {
	command := contentCommand()
	want := []string{"list", "tags"}
	if len(command.Subcommands) != len(want) {
		t.Fatalf("content has %d subcommands, want %d", len(command.Subcommands), len(want))
	}
	for i, name := range want {
		if command.Subcommands[i].Name != name {
			t.Errorf("content subcommand %d = %q, want %q", i, command.Subcommands[i].Name, name)
		}
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := writeConfig(t)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.Version != "0.147.2" {
		t.Errorf("engine version = %q, want %q", cfg.Engine.Version, "0.147.2")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	path := writeConfig(t)
	t.Setenv("BLOG_CONFIG", path)
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.Version != "0.147.2" {
		t.Errorf("engine version = %q, want %q", cfg.Engine.Version, "0.147.2")
	}
}

func TestLoadConfigWithoutPathOrEnvironment(t *testing.T) {
	t.Setenv("BLOG_CONFIG", "")
	if _, err := loadConfig(""); err == nil {
		t.Fatal("expected an error with no --config and no BLOG_CONFIG")
	}
}
