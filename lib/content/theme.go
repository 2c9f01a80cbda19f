// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"os"
	"path/filepath"
)

// VerifyThemes checks that every directory under themes/ is
// materialized: an empty theme directory means a submodule was
// recorded but never resolved, which would render a bare skeleton
// site rather than failing loudly. A content tree without a themes
// directory passes — single-file template setups keep layouts in the
// tree itself.
func VerifyThemes(siteRoot string) error {
	themesDir := filepath.Join(siteRoot, "themes")
	entries, err := os.ReadDir(themesDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading themes directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		themeEntries, err := os.ReadDir(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading theme %s: %w", entry.Name(), err)
		}
		if len(themeEntries) == 0 {
			return fmt.Errorf("theme %s is empty: external template dependency not resolved", entry.Name())
		}
	}
	return nil
}
