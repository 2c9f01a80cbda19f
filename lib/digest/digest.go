// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashFile computes the SHA-256 digest of the file at path. The file
// is streamed through the hash function (via io.Copy) so memory usage
// stays constant regardless of file size.
func HashFile(path string) ([32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return [32]byte{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum, nil
}

// Format returns the hex-encoded string representation of a SHA-256
// digest. This is the canonical format used in release manifests,
// sidecar files, and log output.
func Format(sum [32]byte) string {
	return hex.EncodeToString(sum[:])
}

// Parse parses a hex-encoded SHA-256 digest string into a 32-byte
// array. Returns an error if the string is not a valid 64-character
// hex encoding of 32 bytes.
func Parse(hexString string) ([32]byte, error) {
	var sum [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return sum, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return sum, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(sum[:], decoded)
	return sum, nil
}

// VerifyFile hashes the file at path and compares it against the
// expected hex-encoded digest. A mismatch is an error carrying both
// digests so the operator can see what was actually downloaded.
func VerifyFile(path, expected string) error {
	want, err := Parse(expected)
	if err != nil {
		return fmt.Errorf("expected digest for %s: %w", path, err)
	}
	got, err := HashFile(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("digest mismatch for %s: got %s, want %s",
			path, Format(got), Format(want))
	}
	return nil
}
