// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine is an installed rendering engine binary bound to a content
// tree. All invocations run from the content-tree root, matching the
// engine's own convention of discovering its site configuration there.
type Engine struct {
	binaryPath string
	siteDir    string
}

// New returns an Engine that runs binaryPath from siteDir.
func New(binaryPath, siteDir string) *Engine {
	return &Engine{binaryPath: binaryPath, siteDir: siteDir}
}

// Render invokes the engine exactly once over the full content tree,
// writing the asset bundle to destination. There is no incremental or
// partial rendering. On failure the engine's own diagnostic output is
// returned verbatim — the engine knows which template or document is
// broken, this pipeline does not.
func (e *Engine) Render(ctx context.Context, destination string) error {
	// The only deviation from a bare default invocation: the
	// destination override, which the atomic-publish strategy
	// requires (render somewhere temporary, rename on success).
	command := exec.CommandContext(ctx, e.binaryPath, "--destination", destination)
	command.Dir = e.siteDir

	var output bytes.Buffer
	command.Stdout = &output
	command.Stderr = &output

	if err := command.Run(); err != nil {
		return fmt.Errorf("engine render failed: %w\n%s", err, output.String())
	}
	return nil
}

// VersionString runs the engine's version subcommand and returns its
// first output line. Used to confirm an installed binary actually is
// the release the pin names.
func (e *Engine) VersionString(ctx context.Context) (string, error) {
	command := exec.CommandContext(ctx, e.binaryPath, "version")
	command.Dir = e.siteDir

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("engine version check: %w (stderr: %s)",
			err, strings.TrimSpace(stderr.String()))
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}
