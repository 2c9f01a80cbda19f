// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SubmoduleRevision is one entry from git submodule status: a
// submodule path and the commit it is pinned to in the superproject
// index.
type SubmoduleRevision struct {
	// Path is the submodule path relative to the repository root
	// (e.g., "themes/hermit").
	Path string

	// Commit is the full SHA the superproject records for this
	// submodule.
	Commit string

	// Synced reports whether the submodule working tree is checked
	// out at exactly the recorded commit. An unsynced submodule
	// means the content tree would not render reproducibly.
	Synced bool
}

// HasSubmodules reports whether the repository declares any
// submodules. A content tree without a .gitmodules file has no
// external template dependencies and the resolution step is a no-op.
func (r *Repository) HasSubmodules() bool {
	_, err := os.Stat(filepath.Join(r.dir, ".gitmodules"))
	return err == nil
}

// SubmoduleSync brings every submodule working tree to the exact
// revision recorded in the superproject index: sync refreshes remote
// URLs from .gitmodules, then update --init --recursive --checkout
// materializes the pinned commits. The result is deterministic for a
// given superproject state — no branch tracking, no remote HEAD
// resolution.
func (r *Repository) SubmoduleSync(ctx context.Context) error {
	if _, err := r.Run(ctx, "submodule", "sync", "--recursive"); err != nil {
		return fmt.Errorf("syncing submodule urls: %w", err)
	}
	if _, err := r.Run(ctx, "submodule", "update", "--init", "--recursive", "--checkout"); err != nil {
		return fmt.Errorf("updating submodules: %w", err)
	}
	return nil
}

// SubmoduleStatus parses git submodule status into the revision set
// the superproject pins. Status lines have the form
//
//	" <sha> <path> (<ref>)"  — checked out at the recorded commit
//	"-<sha> <path>"          — not initialized
//	"+<sha> <path> (<ref>)"  — checked out at a different commit
//
// The leading character determines Synced.
func (r *Repository) SubmoduleStatus(ctx context.Context) ([]SubmoduleRevision, error) {
	output, err := r.Run(ctx, "submodule", "status", "--recursive")
	if err != nil {
		return nil, err
	}

	var revisions []SubmoduleRevision
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 2 {
			return nil, fmt.Errorf("malformed submodule status line %q", line)
		}
		marker := line[0]
		fields := strings.Fields(line[1:])
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed submodule status line %q", line)
		}
		revisions = append(revisions, SubmoduleRevision{
			Path:   fields[1],
			Commit: fields[0],
			Synced: marker == ' ',
		})
	}
	return revisions, nil
}
