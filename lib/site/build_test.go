// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomasfarias/hugo-blog/lib/config"
)

// stubEngine is a stand-in engine: renders each content document into
// <dest>/<name>/index.html the way the real engine lays out pages.
const stubEngine = `#!/bin/sh
dest="$2"
mkdir -p "$dest"
echo "<html>home</html>" > "$dest/index.html"
for doc in content/*.md; do
	[ -e "$doc" ] || continue
	name=$(basename "$doc" .md)
	mkdir -p "$dest/$name"
	echo "<html>$name</html>" > "$dest/$name/index.html"
done
`

const failingEngine = `#!/bin/sh
echo "Error: render exploded" >&2
exit 1
`

// testSite creates a minimal content tree and returns a config
// pointing at it plus the path of a stub engine binary.
func testSite(t *testing.T, engineScript string) (*config.Config, string) {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "content"), 0755); err != nil {
		t.Fatalf("mkdir content: %v", err)
	}
	about := "---\ntitle: About\n---\nAbout me.\n"
	if err := os.WriteFile(filepath.Join(root, "content", "about.md"), []byte(about), 0644); err != nil {
		t.Fatalf("write about.md: %v", err)
	}

	binary := filepath.Join(t.TempDir(), "hugo")
	if err := os.WriteFile(binary, []byte(engineScript), 0755); err != nil {
		t.Fatalf("write engine stub: %v", err)
	}

	cfg := config.Default()
	cfg.Site.Root = root
	cfg.Engine.Version = "0.147.2"
	cfg.Engine.CacheDir = t.TempDir()
	return cfg, binary
}

func newBuilder(cfg *config.Config, binary string) *Builder {
	return &Builder{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		EngineBinary: binary,
	}
}

func TestBuildPublishesBundle(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)
	builder := newBuilder(cfg, binary)

	if builder.Status() != NotStarted {
		t.Errorf("initial status = %s, want not_started", builder.Status())
	}

	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if builder.Status() != Built {
		t.Errorf("status after build = %s, want built", builder.Status())
	}
	if result.Pages != 1 {
		t.Errorf("pages = %d, want 1", result.Pages)
	}

	page, err := os.ReadFile(filepath.Join(result.BundleDir, "about", "index.html"))
	if err != nil {
		t.Fatalf("read rendered page: %v", err)
	}
	if string(page) != "<html>about</html>\n" {
		t.Errorf("rendered page = %q", page)
	}

	// No staging leftovers next to the published bundle.
	if _, err := os.Stat(result.BundleDir + ".staging"); !os.IsNotExist(err) {
		t.Error("staging directory survived a successful build")
	}
}

func TestBuildReproducible(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)

	first, err := newBuilder(cfg, binary).Build(context.Background())
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := newBuilder(cfg, binary).Build(context.Background())
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if first.Digest != second.Digest {
		t.Errorf("unchanged content built twice: digests differ (%s vs %s)",
			first.Digest, second.Digest)
	}
}

func TestBuildIsSingleShot(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)
	builder := newBuilder(cfg, binary)

	if _, err := builder.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("second Build on same Builder: want error, got nil")
	}
}

func TestBuildRenderFailure(t *testing.T) {
	cfg, binary := testSite(t, failingEngine)
	builder := newBuilder(cfg, binary)

	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build with failing engine: want error, got nil")
	}

	if builder.Status() != BuildFailed {
		t.Errorf("status = %s, want build_failed", builder.Status())
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %T is not a StageError", err)
	}
	if stageErr.Stage != StageRender {
		t.Errorf("failed stage = %s, want %s", stageErr.Stage, StageRender)
	}

	// No partial bundle at the output path, no staging leftovers.
	if _, statErr := os.Stat(cfg.OutputDir()); !os.IsNotExist(statErr) {
		t.Error("output path exists after failed render")
	}
	if _, statErr := os.Stat(cfg.OutputDir() + ".staging"); !os.IsNotExist(statErr) {
		t.Error("staging path exists after failed render")
	}
}

func TestBuildFailureKeepsPreviousBundle(t *testing.T) {
	cfg, goodBinary := testSite(t, stubEngine)

	first, err := newBuilder(cfg, goodBinary).Build(context.Background())
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}

	// Break the next render; the published bundle must survive.
	badBinary := filepath.Join(t.TempDir(), "hugo")
	if err := os.WriteFile(badBinary, []byte(failingEngine), 0755); err != nil {
		t.Fatalf("write failing engine: %v", err)
	}
	if _, err := newBuilder(cfg, badBinary).Build(context.Background()); err == nil {
		t.Fatal("Build with failing engine: want error, got nil")
	}

	page, err := os.ReadFile(filepath.Join(first.BundleDir, "about", "index.html"))
	if err != nil {
		t.Fatalf("previous bundle damaged: %v", err)
	}
	if string(page) != "<html>about</html>\n" {
		t.Errorf("previous bundle content changed: %q", page)
	}
}

func TestBuildPreflightFailure(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)

	bad := filepath.Join(cfg.Site.Root, "content", "bad.md")
	if err := os.WriteFile(bad, []byte("---\ntitle: [broken\n---\n"), 0644); err != nil {
		t.Fatalf("write bad.md: %v", err)
	}

	builder := newBuilder(cfg, binary)
	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build with malformed content: want error, got nil")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StagePreflight {
		t.Errorf("error = %v, want preflight stage failure", err)
	}

	// Preflight failures abort before rendering: no output created.
	if _, statErr := os.Stat(cfg.OutputDir()); !os.IsNotExist(statErr) {
		t.Error("output path exists after preflight failure")
	}
}

// runGit runs a git command in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	command := exec.Command("git", append([]string{"-C", dir}, args...)...)
	command.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.local",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.local",
	)
	if output, err := command.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, output)
	}
}

func TestBuildDependencyResolutionFailure(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)
	root := cfg.Site.Root

	// A content tree pinning a theme submodule whose URL cannot be
	// cloned: .gitmodules plus a gitlink index entry.
	runGit(t, root, "init", "-b", "main")
	modules := "[submodule \"themes/paper\"]\n\tpath = themes/paper\n\turl = /nonexistent/repo.git\n"
	if err := os.WriteFile(filepath.Join(root, ".gitmodules"), []byte(modules), 0644); err != nil {
		t.Fatalf("write .gitmodules: %v", err)
	}
	runGit(t, root, "add", ".gitmodules")
	runGit(t, root, "update-index", "--add", "--cacheinfo",
		"160000,0123456789012345678901234567890123456789,themes/paper")

	builder := newBuilder(cfg, binary)
	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build with unresolvable submodule: want error, got nil")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error %T is not a StageError", err)
	}
	if stageErr.Stage != StageResolveDeps {
		t.Errorf("failed stage = %s, want %s", stageErr.Stage, StageResolveDeps)
	}
	if builder.Status() != BuildFailed {
		t.Errorf("status = %s, want build_failed", builder.Status())
	}

	// Dependency resolution fails before rendering starts: no bundle
	// directory is created or modified.
	if _, statErr := os.Stat(cfg.OutputDir()); !os.IsNotExist(statErr) {
		t.Error("output path exists after dependency resolution failure")
	}
	if _, statErr := os.Stat(cfg.OutputDir() + ".staging"); !os.IsNotExist(statErr) {
		t.Error("staging path exists after dependency resolution failure")
	}
}

func TestBuildMissingEngineBinary(t *testing.T) {
	cfg, _ := testSite(t, stubEngine)
	builder := newBuilder(cfg, filepath.Join(t.TempDir(), "missing"))

	_, err := builder.Build(context.Background())
	if err == nil {
		t.Fatal("Build with missing engine binary: want error, got nil")
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageAcquireEngine {
		t.Errorf("error = %v, want acquire_engine stage failure", err)
	}
}

func TestMarkServing(t *testing.T) {
	cfg, binary := testSite(t, stubEngine)
	builder := newBuilder(cfg, binary)

	if err := builder.MarkServing(); err == nil {
		t.Error("MarkServing before build: want error, got nil")
	}

	if _, err := builder.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := builder.MarkServing(); err != nil {
		t.Fatalf("MarkServing after build: %v", err)
	}
	if builder.Status() != Serving {
		t.Errorf("status = %s, want serving", builder.Status())
	}
}
