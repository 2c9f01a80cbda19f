// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeScript installs an executable shell script and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRenderWritesDestination(t *testing.T) {
	siteDir := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")

	// Stub engine: record its working directory and render one page.
	binary := writeScript(t, "hugo", `
mkdir -p "$2"
pwd > "$2/workdir"
echo "<html>about</html>" > "$2/index.html"
`)

	e := New(binary, siteDir)
	if err := e.Render(context.Background(), destination); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The engine runs from the content-tree root.
	workdir, err := os.ReadFile(filepath.Join(destination, "workdir"))
	if err != nil {
		t.Fatalf("read workdir marker: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(siteDir)
	if err != nil {
		t.Fatalf("resolve site dir: %v", err)
	}
	if strings.TrimSpace(string(workdir)) != resolved {
		t.Errorf("engine ran from %q, want %q", strings.TrimSpace(string(workdir)), resolved)
	}

	if _, err := os.Stat(filepath.Join(destination, "index.html")); err != nil {
		t.Errorf("rendered page missing: %v", err)
	}
}

func TestRenderSurfacesDiagnosticsVerbatim(t *testing.T) {
	binary := writeScript(t, "hugo", `
echo 'Error: "/site/content/bad.md:7:1": unmarshal failed' >&2
exit 1
`)

	e := New(binary, t.TempDir())
	err := e.Render(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("Render with failing engine: want error, got nil")
	}
	// The engine's own diagnostic line passes through unmodified.
	if !strings.Contains(err.Error(), `"/site/content/bad.md:7:1": unmarshal failed`) {
		t.Errorf("error %q does not carry the engine diagnostic", err)
	}
}

func TestVersionString(t *testing.T) {
	binary := writeScript(t, "hugo", `
echo "hugo v0.147.2-abc+extended linux/amd64"
echo "second line ignored"
`)

	e := New(binary, t.TempDir())
	got, err := e.VersionString(context.Background())
	if err != nil {
		t.Fatalf("VersionString: %v", err)
	}
	if got != "hugo v0.147.2-abc+extended linux/amd64" {
		t.Errorf("VersionString = %q", got)
	}
}

func TestVersionStringFailure(t *testing.T) {
	binary := writeScript(t, "hugo", `
echo "no such subcommand" >&2
exit 2
`)

	e := New(binary, t.TempDir())
	if _, err := e.VersionString(context.Background()); err == nil {
		t.Fatal("VersionString with failing binary: want error, got nil")
	}
}
