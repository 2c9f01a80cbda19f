// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package serve publishes a completed asset bundle over HTTP.
//
// The publisher is deliberately dumb: copy the bundle into a document
// root, bind one socket, map URL paths to files. No routing, no
// authentication, no dynamic responses, no fallback port. TLS and
// public exposure belong to an upstream reverse proxy; by convention
// the bind address is loopback and non-privileged.
//
// Once serving, the only way out is context cancellation (external
// process termination). There is no health check and no restart
// logic — supervision is external.
package serve
