// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package site orchestrates one build: resolve external template
// dependencies, acquire the pinned engine, preflight the content
// tree, render, and atomically publish the asset bundle. The build is
// single-shot and strictly sequential — no stage starts before the
// previous one succeeds, and the first failure aborts the whole build
// with no retry.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tomasfarias/hugo-blog/lib/bundle"
	"github.com/tomasfarias/hugo-blog/lib/config"
	"github.com/tomasfarias/hugo-blog/lib/content"
	"github.com/tomasfarias/hugo-blog/lib/engine"
	"github.com/tomasfarias/hugo-blog/lib/git"
)

// Builder runs the build pipeline for one content tree. A Builder is
// single-use: Build may be called exactly once, mirroring the
// process-level state machine.
type Builder struct {
	// Config is the loaded pipeline configuration. Required.
	Config *config.Config

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// EngineBinary, when set, is an already-installed engine binary
	// to use instead of fetching the pinned release. For air-gapped
	// builds where the operator provisions the binary out of band.
	EngineBinary string

	// Client overrides the HTTP client used for engine downloads.
	Client *http.Client

	status Status
}

// Result describes a completed build.
type Result struct {
	// BundleDir is the published asset-bundle path.
	BundleDir string

	// Digest is the bundle tree digest. Stable across rebuilds of
	// unchanged content with the same engine pin.
	Digest bundle.Digest

	// Pages and Drafts count the scanned documents.
	Pages  int
	Drafts int

	// EngineBinary is the verified binary the render ran with.
	EngineBinary string
}

// Status returns the pipeline state.
func (b *Builder) Status() Status {
	return b.status
}

// MarkServing records the transition from Built to Serving. Called by
// the deploy path once the publisher has taken over; any other
// starting state is a programming error.
func (b *Builder) MarkServing() error {
	if b.status != Built {
		return fmt.Errorf("cannot serve from state %s", b.status)
	}
	b.status = Serving
	return nil
}

// Build runs the pipeline to completion and returns the published
// bundle. On error the status is BuildFailed, nothing has been
// written to the output path, and any previously published bundle
// there is untouched.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if b.status != NotStarted {
		return nil, fmt.Errorf("build already ran (state %s): a rebuild is a new process", b.status)
	}
	b.status = Building

	result, err := b.build(ctx)
	if err != nil {
		b.status = BuildFailed
		return nil, err
	}
	b.status = Built
	return result, nil
}

func (b *Builder) build(ctx context.Context) (*Result, error) {
	siteRoot := b.Config.Site.Root

	if err := b.resolveDependencies(ctx, siteRoot); err != nil {
		return nil, &StageError{Stage: StageResolveDeps, Err: err}
	}

	binary, err := b.acquireEngine(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageAcquireEngine, Err: err}
	}

	pages, err := b.preflight(siteRoot)
	if err != nil {
		return nil, &StageError{Stage: StagePreflight, Err: err}
	}

	output := b.Config.OutputDir()
	staging := output + ".staging"
	if err := b.render(ctx, binary, siteRoot, staging); err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}

	digest, err := b.publish(staging, output)
	if err != nil {
		return nil, &StageError{Stage: StagePublish, Err: err}
	}

	drafts := len(content.Drafts(pages))
	b.Logger.Info("build complete",
		"bundle", output,
		"digest", digest.String(),
		"pages", len(pages),
		"drafts", drafts,
	)
	return &Result{
		BundleDir:    output,
		Digest:       digest,
		Pages:        len(pages),
		Drafts:       drafts,
		EngineBinary: binary,
	}, nil
}

// resolveDependencies brings externally-referenced template and theme
// submodules to the revisions the content tree pins. A content tree
// that is not a git repository, or has no submodules, resolves
// trivially.
func (b *Builder) resolveDependencies(ctx context.Context, siteRoot string) error {
	if _, err := os.Stat(filepath.Join(siteRoot, ".git")); os.IsNotExist(err) {
		b.Logger.Info("content tree is not a git repository, skipping dependency resolution")
		return nil
	}

	repo := git.NewRepository(siteRoot)
	if !repo.HasSubmodules() {
		b.Logger.Info("content tree has no external template dependencies")
		return nil
	}

	if err := repo.SubmoduleSync(ctx); err != nil {
		return err
	}

	revisions, err := repo.SubmoduleStatus(ctx)
	if err != nil {
		return err
	}
	for _, revision := range revisions {
		if !revision.Synced {
			return fmt.Errorf("submodule %s not at pinned revision %s after sync",
				revision.Path, revision.Commit)
		}
		b.Logger.Info("template dependency resolved",
			"path", revision.Path, "commit", revision.Commit)
	}
	return nil
}

// acquireEngine returns a verified engine binary for the pinned
// version, fetching it unless the operator supplied one.
func (b *Builder) acquireEngine(ctx context.Context) (string, error) {
	if b.EngineBinary != "" {
		if _, err := os.Stat(b.EngineBinary); err != nil {
			return "", fmt.Errorf("supplied engine binary: %w", err)
		}
		b.Logger.Info("using operator-supplied engine binary", "path", b.EngineBinary)
		return b.EngineBinary, nil
	}

	version, err := engine.ParseVersion(b.Config.Engine.Version)
	if err != nil {
		return "", err
	}

	fetcher := &engine.Fetcher{
		Version:  version,
		Extended: b.Config.Engine.Extended,
		CacheDir: b.Config.Engine.CacheDir,
		BaseURL:  b.Config.Engine.DownloadBase,
		Client:   b.Client,
		Logger:   b.Logger,
	}
	return fetcher.Fetch(ctx)
}

// preflight validates the content tree before the engine runs:
// themes materialized, every document's front matter and markdown
// parsable.
func (b *Builder) preflight(siteRoot string) ([]content.Page, error) {
	if err := content.VerifyThemes(siteRoot); err != nil {
		return nil, err
	}
	pages, err := content.Scan(siteRoot)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("content tree preflight passed",
		"pages", len(pages), "drafts", len(content.Drafts(pages)))
	return pages, nil
}

// render invokes the engine once, into the staging directory. A
// failed render removes the staging tree so nothing partial survives.
func (b *Builder) render(ctx context.Context, binary, siteRoot, staging string) error {
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clearing staging directory: %w", err)
	}

	if err := engine.New(binary, siteRoot).Render(ctx, staging); err != nil {
		os.RemoveAll(staging)
		return err
	}
	return nil
}

// publish atomically swaps the staged bundle into the output path and
// fingerprints it.
func (b *Builder) publish(staging, output string) (bundle.Digest, error) {
	if err := bundle.Publish(staging, output); err != nil {
		return bundle.Digest{}, err
	}
	digest, err := bundle.TreeDigest(output)
	if err != nil {
		return bundle.Digest{}, err
	}
	return digest, nil
}
