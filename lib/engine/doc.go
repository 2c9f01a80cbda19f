// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine acquires and invokes the pinned rendering engine.
//
// The engine (Hugo) is an external collaborator used as an opaque
// binary with a command-line contract: exit 0 means the asset bundle
// was rendered, anything else is a fatal build failure. This package
// never reimplements rendering — it downloads a pinned release,
// verifies it against the release's published checksums, installs it
// into a local cache, and runs it exactly once per build.
//
// Acquisition is idempotent: a cached binary whose recorded digest
// still matches is used without touching the network, so repeated
// builds of the same pinned version work offline.
package engine
