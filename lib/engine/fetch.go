// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tomasfarias/hugo-blog/lib/digest"
)

// maxDiagnosticBody bounds how much of an HTTP error response is
// folded into an error message.
const maxDiagnosticBody int64 = 8 << 10

// Fetcher acquires a pinned engine release: download, checksum
// verification, extraction, and installation into the binary cache.
type Fetcher struct {
	// Version is the pinned release to acquire.
	Version Version

	// Extended selects the extended engine build.
	Extended bool

	// CacheDir is where verified binaries are installed. Created on
	// demand.
	CacheDir string

	// BaseURL is the release download base; archive and checksum
	// URLs are <BaseURL>/<tag>/<name>.
	BaseURL string

	// Client is the HTTP client for downloads. Defaults to
	// http.DefaultClient.
	Client *http.Client

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// platformSuffix overrides the host platform lookup in tests.
	platformSuffix string
}

// BinaryPath returns the cache path the engine binary for this pin is
// (or will be) installed at.
func (f *Fetcher) BinaryPath() string {
	name := "hugo-" + f.Version.String()
	if f.Extended {
		name = "hugo-extended-" + f.Version.String()
	}
	return filepath.Join(f.CacheDir, name)
}

// sidecarPath is the recorded digest of the installed binary, written
// at install time and checked on later builds to decide whether the
// network can be skipped.
func (f *Fetcher) sidecarPath() string {
	return f.BinaryPath() + ".sha256"
}

// archiveName returns the release archive file name for this pin on
// the given platform.
func (f *Fetcher) archiveName(suffix string) string {
	base := "hugo"
	if f.Extended {
		base = "hugo_extended"
	}
	return fmt.Sprintf("%s_%s_%s.tar.gz", base, f.Version, suffix)
}

// checksumsName returns the published checksums file name for this
// release. One file covers all archives of the release.
func (f *Fetcher) checksumsName() string {
	return fmt.Sprintf("hugo_%s_checksums.txt", f.Version)
}

// Fetch returns the path of a verified engine binary for the pinned
// version, downloading and installing it if the cache has no verified
// copy. Network failures are returned to the operator as-is: the
// pipeline never retries internally.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	binaryPath := f.BinaryPath()

	ok, err := f.cachedAndVerified()
	if err != nil {
		return "", err
	}
	if ok {
		f.Logger.Info("engine binary cached, skipping download",
			"version", f.Version.String(), "path", binaryPath)
		return binaryPath, nil
	}

	manifest, err := LoadManifest()
	if err != nil {
		return "", err
	}
	if !manifest.Known(f.Version) {
		f.Logger.Warn("pinned engine version is not in the tested release list",
			"version", f.Version.String())
	}

	suffix := f.platformSuffix
	if suffix == "" {
		suffix, err = manifest.HostPlatformSuffix()
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating engine cache dir: %w", err)
	}

	sums, err := f.fetchChecksums(ctx)
	if err != nil {
		return "", err
	}

	name := f.archiveName(suffix)
	expected, found := sums.Lookup(name)
	if !found {
		return "", fmt.Errorf("release %s publishes no checksum for %s", f.Version, name)
	}

	archivePath, err := f.downloadArchive(ctx, name, expected)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	if err := f.installBinary(archivePath); err != nil {
		return "", err
	}

	f.Logger.Info("engine binary installed",
		"version", f.Version.String(), "path", binaryPath)
	return binaryPath, nil
}

// cachedAndVerified reports whether the cache already holds a binary
// for this pin whose digest matches the recorded install digest.
// A missing binary or sidecar means "not cached"; a digest mismatch
// (truncated download, disk corruption, manual tampering) also means
// "not cached" so the binary is re-fetched rather than trusted.
func (f *Fetcher) cachedAndVerified() (bool, error) {
	recorded, err := os.ReadFile(f.sidecarPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading engine digest sidecar: %w", err)
	}

	if _, err := os.Stat(f.BinaryPath()); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("checking cached engine binary: %w", err)
	}

	if err := digest.VerifyFile(f.BinaryPath(), strings.TrimSpace(string(recorded))); err != nil {
		f.Logger.Warn("cached engine binary failed verification, re-fetching",
			"version", f.Version.String(), "error", err)
		return false, nil
	}
	return true, nil
}

// fetchChecksums downloads and parses the release's published
// checksums file.
func (f *Fetcher) fetchChecksums(ctx context.Context) (digest.Checksums, error) {
	body, err := f.get(ctx, f.checksumsName())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	sums, err := digest.ParseChecksums(body)
	if err != nil {
		return nil, fmt.Errorf("release %s: %w", f.Version, err)
	}
	return sums, nil
}

// downloadArchive streams the release archive to a temporary file,
// hashing it on the way down, and verifies the digest against the
// published checksum before returning the path.
func (f *Fetcher) downloadArchive(ctx context.Context, name, expected string) (string, error) {
	body, err := f.get(ctx, name)
	if err != nil {
		return "", err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(f.CacheDir, name+".download-*")
	if err != nil {
		return "", fmt.Errorf("creating download temp file: %w", err)
	}
	defer tmp.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	if digest.Format(sum) != expected {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("digest mismatch for %s: got %s, want %s",
			name, digest.Format(sum), expected)
	}
	return tmp.Name(), nil
}

// installBinary extracts the engine executable from the archive and
// installs it atomically: extract to a temp file, record the digest
// sidecar, then rename into the cache path.
func (f *Fetcher) installBinary(archivePath string) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer archive.Close()

	gz, err := gzip.NewReader(archive)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return fmt.Errorf("archive %s contains no hugo executable", filepath.Base(archivePath))
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != "hugo" {
			continue
		}

		tmp, err := os.CreateTemp(f.CacheDir, "hugo-install-*")
		if err != nil {
			return fmt.Errorf("creating install temp file: %w", err)
		}
		if _, err := io.Copy(tmp, reader); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("extracting engine binary: %w", err)
		}
		if err := tmp.Chmod(0755); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("marking engine binary executable: %w", err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("writing engine binary: %w", err)
		}

		sum, err := digest.HashFile(tmp.Name())
		if err != nil {
			os.Remove(tmp.Name())
			return err
		}
		if err := os.WriteFile(f.sidecarPath(), []byte(digest.Format(sum)+"\n"), 0644); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("recording engine digest: %w", err)
		}
		if err := os.Rename(tmp.Name(), f.BinaryPath()); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("installing engine binary: %w", err)
		}
		return nil
	}
}

// get issues a GET for a release file and returns the response body.
// Non-200 responses are an error with the beginning of the body folded
// in for diagnostics.
func (f *Fetcher) get(ctx context.Context, name string) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(f.BaseURL, "/"), f.Version.Tag(), name)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	f.Logger.Info("downloading release file", "url", url)
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxDiagnosticBody))
		response.Body.Close()
		return nil, fmt.Errorf("downloading %s: %s: %s",
			url, response.Status, strings.TrimSpace(string(body)))
	}
	return response.Body, nil
}
