// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the blog pipeline.
//
// Configuration is loaded from a single file specified by:
//   - BLOG_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable builds with no hidden overrides.
//
// The config file may contain environment-specific sections
// (development, production) that override base values when the
// environment matches.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local authoring machines.
	Development Environment = "development"
	// Production is for published deployments.
	Production Environment = "production"
)

// Config is the master configuration for the blog pipeline.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Site configures the content tree and build output locations.
	Site SiteConfig `yaml:"site"`

	// Engine configures the pinned rendering engine.
	Engine EngineConfig `yaml:"engine"`

	// Serve configures the static file server.
	Serve ServeConfig `yaml:"serve"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Site   *SiteConfig      `yaml:"site,omitempty"`
	Engine *EngineOverrides `yaml:"engine,omitempty"`
	Serve  *ServeConfig     `yaml:"serve,omitempty"`
}

// EngineOverrides mirrors EngineConfig for per-environment override
// sections. Extended is a pointer so "extended: false" is
// distinguishable from the field being absent.
type EngineOverrides struct {
	Version      string `yaml:"version"`
	Extended     *bool  `yaml:"extended"`
	CacheDir     string `yaml:"cache_dir"`
	DownloadBase string `yaml:"download_base"`
}

// SiteConfig configures the content tree and build output.
type SiteConfig struct {
	// Root is the content-tree root: the directory holding the
	// engine's own site configuration, content/, and themes/.
	// Read-only to the build; owned by the authoring process.
	Root string `yaml:"root"`

	// Output is the asset-bundle directory the engine produces,
	// relative to Root. This is the well-known handoff path between
	// the builder and the publisher.
	// Default: public
	Output string `yaml:"output"`
}

// EngineConfig configures acquisition of the rendering engine binary.
type EngineConfig struct {
	// Version is the pinned engine release, e.g. "0.147.2". Exactly
	// one version per build; floating refs like "latest" are
	// rejected so rebuilds are reproducible.
	Version string `yaml:"version"`

	// Extended selects the extended engine build (SCSS support).
	// Default: true
	Extended bool `yaml:"extended"`

	// CacheDir is where verified engine binaries are installed.
	// Binaries are keyed by version; a cached verified binary for
	// the pinned version means no network access on rebuild.
	// Default: ~/.cache/hugo-blog/engines
	CacheDir string `yaml:"cache_dir"`

	// DownloadBase is the base URL for release archive downloads.
	// Default: the engine project's GitHub release downloads.
	DownloadBase string `yaml:"download_base"`
}

// ServeConfig configures the static file server.
type ServeConfig struct {
	// Host is the bind interface. Loopback by convention — TLS and
	// public exposure are an upstream reverse proxy's concern.
	// Default: 127.0.0.1
	Host string `yaml:"host"`

	// Port is the bind port. Non-privileged by convention.
	// Default: 1313
	Port int `yaml:"port"`

	// DocRoot is the document root the asset bundle is copied into
	// before serving. Kept separate from the build output so the
	// served snapshot's lifetime is independent of the build tree.
	// Default: ~/.cache/hugo-blog/docroot
	DocRoot string `yaml:"docroot"`
}

// Address returns the host:port bind address.
func (s ServeConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the default configuration. These defaults are a
// base merged under the loaded file, not a substitute for it — the
// config file is required and must at minimum pin the engine version.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	cacheRoot := filepath.Join(homeDir, ".cache", "hugo-blog")

	return &Config{
		Environment: Development,
		Site: SiteConfig{
			Root:   ".",
			Output: "public",
		},
		Engine: EngineConfig{
			Extended:     true,
			CacheDir:     filepath.Join(cacheRoot, "engines"),
			DownloadBase: "https://github.com/gohugoio/hugo/releases/download",
		},
		Serve: ServeConfig{
			Host:    "127.0.0.1",
			Port:    1313,
			DocRoot: filepath.Join(cacheRoot, "docroot"),
		},
	}
}

// Load loads configuration from the BLOG_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit
// path. If BLOG_CONFIG is not set, this fails — there is no search
// path and no implicit current-directory lookup.
func Load() (*Config, error) {
	configPath := os.Getenv("BLOG_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("BLOG_CONFIG environment variable not set; " +
			"set it to the path of your blog.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth: environment variables do not
// override values. Relative site paths are resolved against the
// config file's directory so the file can live in the content tree.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	absDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.resolvePaths(absDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies the matching per-environment
// override section onto the base config.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Site != nil {
		if overrides.Site.Root != "" {
			c.Site.Root = overrides.Site.Root
		}
		if overrides.Site.Output != "" {
			c.Site.Output = overrides.Site.Output
		}
	}

	if overrides.Engine != nil {
		if overrides.Engine.Version != "" {
			c.Engine.Version = overrides.Engine.Version
		}
		if overrides.Engine.Extended != nil {
			c.Engine.Extended = *overrides.Engine.Extended
		}
		if overrides.Engine.CacheDir != "" {
			c.Engine.CacheDir = overrides.Engine.CacheDir
		}
		if overrides.Engine.DownloadBase != "" {
			c.Engine.DownloadBase = overrides.Engine.DownloadBase
		}
	}

	if overrides.Serve != nil {
		if overrides.Serve.Host != "" {
			c.Serve.Host = overrides.Serve.Host
		}
		if overrides.Serve.Port != 0 {
			c.Serve.Port = overrides.Serve.Port
		}
		if overrides.Serve.DocRoot != "" {
			c.Serve.DocRoot = overrides.Serve.DocRoot
		}
	}
}

// resolvePaths makes relative filesystem paths absolute relative to
// baseDir (the config file's directory).
func (c *Config) resolvePaths(baseDir string) {
	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(baseDir, path)
	}
	c.Site.Root = resolve(c.Site.Root)
	c.Engine.CacheDir = resolve(c.Engine.CacheDir)
	c.Serve.DocRoot = resolve(c.Serve.DocRoot)
}

// Validate checks invariants that hold for every environment.
func (c *Config) Validate() error {
	if c.Environment != Development && c.Environment != Production {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Engine.Version == "" {
		return fmt.Errorf("engine.version is required: pin exactly one engine release")
	}
	if c.Site.Output == "" {
		return fmt.Errorf("site.output must not be empty")
	}
	if filepath.IsAbs(c.Site.Output) || strings.Contains(c.Site.Output, "..") {
		return fmt.Errorf("site.output %q must be a plain directory name under the site root", c.Site.Output)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	return nil
}

// OutputDir returns the absolute asset-bundle output path: the
// well-known directory the engine renders into and the publisher
// copies from.
func (c *Config) OutputDir() string {
	return filepath.Join(c.Site.Root, c.Site.Output)
}
