// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.Contains(info, Version) || !strings.Contains(info, GitCommit) {
		t.Errorf("Info() = %q, missing version or commit", info)
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{Version, "Go:", "Platform:"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() = %q, missing %q", full, want)
		}
	}
}
