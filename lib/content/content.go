// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

// Package content scans the content tree before a build. The scan is
// a preflight, not a renderer: it parses every document's front
// matter and markdown body so that malformed content fails the build
// with a file-level diagnostic before the engine is ever invoked, and
// it collects the per-document metadata (title, draft status,
// taxonomy tags) that commands like "blog content list" report.
//
// The content tree is read-only to this package.
package content

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Page is one authored document with its front matter metadata.
type Page struct {
	// Path is the document path relative to the content directory.
	Path string

	// Title from the front matter. May be empty — the engine derives
	// a title from the filename in that case.
	Title string

	// Draft documents are excluded from production renders.
	Draft bool

	// Tags is the document's taxonomy tag list.
	Tags []string
}

// frontMatter is the subset of document metadata this pipeline reads.
// The engine understands far more; everything else passes through
// untouched.
type frontMatter struct {
	Title string   `yaml:"title"`
	Draft bool     `yaml:"draft"`
	Tags  []string `yaml:"tags"`
}

// markdownParser is shared across scans. The configuration never
// changes and goldmark parsers are safe for concurrent use.
var (
	markdownParser goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// Scan walks the content directory under siteRoot and parses every
// markdown document. Any unreadable file, broken front matter, or
// unparsable body aborts the scan with an error naming the document.
// Pages are returned sorted by path.
func Scan(siteRoot string) ([]Page, error) {
	contentDir := filepath.Join(siteRoot, "content")
	if _, err := os.Stat(contentDir); err != nil {
		return nil, fmt.Errorf("content tree at %s has no content directory: %w", siteRoot, err)
	}

	var pages []Page
	err := filepath.WalkDir(contentDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		relative, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		page, err := parsePage(path, relative)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// parsePage reads one document: split front matter from body, decode
// the YAML metadata, and run the body through the markdown parser.
func parsePage(path, relative string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("reading %s: %w", relative, err)
	}

	meta, body, err := splitFrontMatter(data)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", relative, err)
	}

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return Page{}, fmt.Errorf("%s: front matter: %w", relative, err)
		}
	}

	if err := parser().Convert(body, io.Discard); err != nil {
		return Page{}, fmt.Errorf("%s: markdown: %w", relative, err)
	}

	return Page{
		Path:  relative,
		Title: fm.Title,
		Draft: fm.Draft,
		Tags:  fm.Tags,
	}, nil
}

var frontMatterDelimiter = []byte("---")

// splitFrontMatter separates a leading YAML front matter block
// (delimited by "---" lines) from the markdown body. A document
// without front matter is returned whole as body.
func splitFrontMatter(data []byte) (meta, body []byte, err error) {
	trimmed := bytes.TrimLeft(data, "\n")
	if !bytes.HasPrefix(trimmed, frontMatterDelimiter) {
		return nil, data, nil
	}

	rest := trimmed[len(frontMatterDelimiter):]
	if len(rest) > 0 && rest[0] != '\n' && rest[0] != '\r' {
		// "---something" is a horizontal rule or text, not a front
		// matter fence.
		return nil, data, nil
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter block")
	}
	meta = rest[:end]
	body = rest[end+len("\n---"):]
	if index := bytes.IndexByte(body, '\n'); index >= 0 {
		body = body[index+1:]
	} else {
		body = nil
	}
	return meta, body, nil
}

// Drafts filters pages down to those marked draft.
func Drafts(pages []Page) []Page {
	var drafts []Page
	for _, page := range pages {
		if page.Draft {
			drafts = append(drafts, page)
		}
	}
	return drafts
}

// Tags collects the distinct taxonomy tags across pages, sorted.
func Tags(pages []Page) []string {
	seen := make(map[string]bool)
	for _, page := range pages {
		for _, tag := range page.Tags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
