// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/tomasfarias/hugo-blog/lib/bundle"
)

// Publisher serves an asset bundle over HTTP from a document root.
// Follows a bind-early lifecycle: the listener is bound and Ready()
// closed before the serve loop starts, so callers (and tests using
// port 0) can learn the resolved address, and a bind failure surfaces
// immediately instead of after the first request.
type Publisher struct {
	address string
	docRoot string
	logger  *slog.Logger

	// shutdownTimeout bounds the wait for in-flight requests after
	// the context is cancelled. Short: the contract only requires
	// releasing the socket promptly, not draining.
	shutdownTimeout time.Duration

	// ready is closed after the listener is bound.
	ready chan struct{}

	// addr is the resolved listen address, valid once ready closes.
	addr net.Addr
}

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	// Address is the TCP bind address (e.g., "127.0.0.1:1313").
	// Required.
	Address string

	// DocRoot is the directory served. Required.
	DocRoot string

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown. Defaults to 2
	// seconds if zero.
	ShutdownTimeout time.Duration
}

// NewPublisher creates a publisher for the given document root. Call
// Stage to fill the root from a bundle, then Serve to start.
func NewPublisher(config PublisherConfig) *Publisher {
	if config.Address == "" {
		panic("serve.Publisher: Address is required")
	}
	if config.DocRoot == "" {
		panic("serve.Publisher: DocRoot is required")
	}
	if config.Logger == nil {
		panic("serve.Publisher: Logger is required")
	}

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}

	return &Publisher{
		address:         config.Address,
		docRoot:         config.DocRoot,
		logger:          config.Logger,
		shutdownTimeout: timeout,
		ready:           make(chan struct{}),
	}
}

// Stage copies the asset bundle into the document root, replacing any
// previous snapshot. The copy decouples the served files from the
// build tree: the bundle directory can be rebuilt or deleted without
// affecting what is being served.
func (p *Publisher) Stage(bundleDir string) error {
	if _, err := os.Stat(bundleDir); err != nil {
		return fmt.Errorf("asset bundle: %w", err)
	}
	if err := bundle.CopyTo(bundleDir, p.docRoot); err != nil {
		return err
	}
	p.logger.Info("asset bundle staged", "bundle", bundleDir, "docroot", p.docRoot)
	return nil
}

// Ready returns a channel closed once the listener is bound and the
// server is accepting connections.
func (p *Publisher) Ready() <-chan struct{} {
	return p.ready
}

// Addr returns the resolved listen address. Only valid after Ready()
// is closed.
func (p *Publisher) Addr() net.Addr {
	return p.addr
}

// Serve binds the address and serves the document root until ctx is
// cancelled. A bind failure (port in use, permission denied) is
// returned immediately — there is no fallback port and no retry.
// Serve blocks; it is the terminal state of the pipeline.
func (p *Publisher) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", p.address)
	if err != nil {
		return fmt.Errorf("binding %s: %w", p.address, err)
	}
	p.addr = listener.Addr()
	close(p.ready)

	server := &http.Server{
		Handler: requestLogger(p.logger, http.FileServer(http.Dir(p.docRoot))),

		// Static files to local clients: generous is still small.
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	p.logger.Info("serving asset bundle",
		"address", p.addr.String(), "docroot", p.docRoot)

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
		p.logger.Info("publisher shutting down")
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), p.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		// Timeout waiting for stragglers: close the socket anyway.
		server.Close()
		return fmt.Errorf("publisher shutdown: %w", err)
	}

	p.logger.Info("publisher stopped")
	return nil
}
