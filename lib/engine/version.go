// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a pinned engine release: an exact MAJOR.MINOR.PATCH
// triple. The pin is immutable for the lifetime of a build — there is
// no "latest", no ranges, no branch names — so the same content tree
// and the same pin always reach for the same release archive.
type Version string

// ParseVersion validates a pinned version string. A leading "v" is
// accepted and stripped (release tags carry it, config files usually
// do not). Floating refs are rejected explicitly so the error tells
// the operator what the pinning contract is.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")

	switch strings.ToLower(trimmed) {
	case "latest", "master", "main", "head":
		return "", fmt.Errorf("engine version %q is a floating ref: pin an exact release like 0.147.2", s)
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("engine version %q: want MAJOR.MINOR.PATCH", s)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("engine version %q: empty component", s)
		}
		if _, err := strconv.Atoi(part); err != nil {
			return "", fmt.Errorf("engine version %q: %q is not a number", s, part)
		}
	}
	return Version(trimmed), nil
}

func (v Version) String() string {
	return string(v)
}

// Tag returns the release tag form ("v0.147.2") used in download URLs.
func (v Version) Tag() string {
	return "v" + string(v)
}
