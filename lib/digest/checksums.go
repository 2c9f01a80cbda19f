// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Checksums maps a release file name to its hex-encoded SHA-256
// digest, as published in a release checksums file.
type Checksums map[string]string

// ParseChecksums reads a release checksums file: one "<digest>
// <filename>" entry per line, whitespace separated, as produced by
// sha256sum. Blank lines are ignored. Filenames containing spaces are
// not supported — release archives never have them.
func ParseChecksums(r io.Reader) (Checksums, error) {
	sums := make(Checksums)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("checksums line %d: want \"<digest> <filename>\", got %q", lineNumber, line)
		}
		if _, err := Parse(fields[0]); err != nil {
			return nil, fmt.Errorf("checksums line %d: %w", lineNumber, err)
		}
		// sha256sum marks binary mode with a leading asterisk on
		// the filename.
		name := strings.TrimPrefix(fields[1], "*")
		sums[name] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading checksums: %w", err)
	}
	return sums, nil
}

// Lookup returns the digest recorded for name. The second return is
// false when the checksums file has no entry for that file.
func (c Checksums) Lookup(name string) (string, bool) {
	sum, ok := c[name]
	return sum, ok
}
