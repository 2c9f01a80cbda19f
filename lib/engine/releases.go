// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"github.com/tidwall/jsonc"
)

//go:embed releases.jsonc
var releasesFile []byte

// Release is one engine version the pipeline has been run against.
type Release struct {
	// Version is the exact release version, e.g. "0.147.2".
	Version string `json:"version"`
}

// Manifest is the embedded release manifest: tested engine versions
// plus the platform naming table for release archives. Authored as
// JSONC (JSON with comments and trailing commas).
type Manifest struct {
	Releases  []Release         `json:"releases"`
	Platforms map[string]string `json:"platforms"`
}

var (
	manifestOnce  sync.Once
	manifestValue *Manifest
	manifestErr   error
)

// LoadManifest parses the embedded release manifest. The parse
// happens once; subsequent calls return the cached result.
func LoadManifest() (*Manifest, error) {
	manifestOnce.Do(func() {
		stripped := jsonc.ToJSON(releasesFile)
		var m Manifest
		if err := json.Unmarshal(stripped, &m); err != nil {
			manifestErr = fmt.Errorf("parsing embedded release manifest: %w", err)
			return
		}
		if len(m.Platforms) == 0 {
			manifestErr = fmt.Errorf("embedded release manifest has no platform table")
			return
		}
		manifestValue = &m
	})
	return manifestValue, manifestErr
}

// Known reports whether version appears in the manifest's tested
// release list. An unknown version is not an error — the pin is an
// external parameter — but callers log it so the operator knows they
// are off the tested path.
func (m *Manifest) Known(v Version) bool {
	for _, release := range m.Releases {
		if release.Version == v.String() {
			return true
		}
	}
	return false
}

// PlatformSuffix returns the archive platform suffix for a GOOS/GOARCH
// pair. Returns an error for platforms the engine project does not
// publish archives for.
func (m *Manifest) PlatformSuffix(goos, goarch string) (string, error) {
	key := goos + "/" + goarch
	suffix, ok := m.Platforms[key]
	if !ok {
		return "", fmt.Errorf("no engine release archive for platform %s", key)
	}
	return suffix, nil
}

// HostPlatformSuffix returns the archive platform suffix for the
// platform this binary is running on.
func (m *Manifest) HostPlatformSuffix() (string, error) {
	return m.PlatformSuffix(runtime.GOOS, runtime.GOARCH)
}
