// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides SHA-256 file hashing and checksum-manifest
// verification for downloaded engine release archives. Release
// publishers ship a checksums file ("<digest>  <filename>" per line);
// this package parses that format and verifies local files against it.
package digest
