// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"
)

// treeDomainKey is the BLAKE3 key for bundle tree digests. Domain
// separation keeps a bundle digest from colliding with any other hash
// of the same bytes. The key is the ASCII domain name zero-padded to
// 32 bytes, readable in hex dumps.
var treeDomainKey = [32]byte{
	'h', 'u', 'g', 'o', '-', 'b', 'l', 'o', 'g', '.',
	'b', 'u', 'n', 'd', 'l', 'e', '.', 't', 'r', 'e', 'e',
}

// Digest is the BLAKE3 tree digest of an asset bundle: a single value
// over every file path and file content, in sorted path order. Two
// builds from the same pinned engine and unchanged content produce
// the same digest — that is the pipeline's reproducibility check.
type Digest [32]byte

// String returns the hex form used in logs.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// TreeDigest walks the bundle and computes its digest. Each file
// contributes its slash-separated relative path, the path length, the
// content length, and the content bytes, so renames and content moves
// change the digest even when the concatenated bytes would not.
func TreeDigest(bundleDir string) (Digest, error) {
	var paths []string
	err := filepath.WalkDir(bundleDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		relative, err := filepath.Rel(bundleDir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return Digest{}, fmt.Errorf("walking bundle: %w", err)
	}
	sort.Strings(paths)

	hasher, err := blake3.NewKeyed(treeDomainKey[:])
	if err != nil {
		return Digest{}, fmt.Errorf("initializing bundle hasher: %w", err)
	}

	var length [8]byte
	for _, relative := range paths {
		binary.LittleEndian.PutUint64(length[:], uint64(len(relative)))
		hasher.Write(length[:])
		hasher.Write([]byte(relative))

		file, err := os.Open(filepath.Join(bundleDir, filepath.FromSlash(relative)))
		if err != nil {
			return Digest{}, fmt.Errorf("opening %s: %w", relative, err)
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return Digest{}, fmt.Errorf("stat %s: %w", relative, err)
		}
		binary.LittleEndian.PutUint64(length[:], uint64(info.Size()))
		hasher.Write(length[:])
		if _, err := io.Copy(hasher, file); err != nil {
			file.Close()
			return Digest{}, fmt.Errorf("hashing %s: %w", relative, err)
		}
		file.Close()
	}

	var result Digest
	hasher.Digest().Read(result[:])
	return result, nil
}
