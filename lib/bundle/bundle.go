// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle handles asset bundles: the self-contained directory
// of static files one rendering pass produces. A bundle is written
// once by the builder and then only ever read — the package's job is
// to make that lifecycle safe: atomic publication (a half-rendered
// bundle is never visible at the output path), copying into a serving
// document root, and a content digest for reproducibility checks.
package bundle

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Publish moves a completed bundle from its staging directory to the
// final output path in one rename. If the output path already holds a
// previous bundle, it is swapped aside first and removed only after
// the new bundle is in place, so a crash mid-publish leaves either
// the old or the new bundle at the path — never a mixture. Staging
// and output must be on the same filesystem for the rename to be
// atomic; the builder stages inside the site root for that reason.
func Publish(staging, output string) error {
	previous := output + ".previous"

	// Leftover from an interrupted earlier publish.
	if err := os.RemoveAll(previous); err != nil {
		return fmt.Errorf("clearing stale previous bundle: %w", err)
	}

	swapped := false
	if _, err := os.Stat(output); err == nil {
		if err := os.Rename(output, previous); err != nil {
			return fmt.Errorf("setting aside previous bundle: %w", err)
		}
		swapped = true
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking output path: %w", err)
	}

	if err := os.Rename(staging, output); err != nil {
		if swapped {
			// Best effort: put the old bundle back so a failed
			// publish leaves the previous state intact.
			os.Rename(previous, output)
		}
		return fmt.Errorf("publishing bundle to %s: %w", output, err)
	}

	if swapped {
		if err := os.RemoveAll(previous); err != nil {
			return fmt.Errorf("removing previous bundle: %w", err)
		}
	}
	return nil
}

// CopyTo copies the bundle into destination, replacing whatever was
// there. Real copies, not symlinks: the served snapshot must outlive
// the build tree it came from. Destination contents are replaced via
// a staging copy and the same swap as Publish, so an interrupted copy
// never leaves a partially populated document root.
func CopyTo(bundleDir, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return fmt.Errorf("creating document root parent: %w", err)
	}

	staging := destination + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clearing staging copy: %w", err)
	}
	if err := copyTree(bundleDir, staging); err != nil {
		os.RemoveAll(staging)
		return err
	}
	return Publish(staging, destination)
}

// copyTree recursively copies src to dst. Regular files and
// directories only — an asset bundle contains nothing else.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relative)

		if entry.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !entry.Type().IsRegular() {
			return fmt.Errorf("bundle contains non-regular file %s", relative)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer source.Close()

	target, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		return fmt.Errorf("copying %s: %w", dst, err)
	}
	return target.Close()
}
