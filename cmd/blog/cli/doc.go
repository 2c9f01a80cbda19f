// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the blog command-tree framework: a Command
// struct with pflag-based flag parsing, structured help output, and
// typo suggestions. Commands are assembled into a tree in
// cmd/blog/commands and dispatched from the binary's main.
package cli
