// Package storage defines the read-only file access boundary between the FAQ
// engine and whatever holds the DAK repository content (local checkout, remote
// adapter, test fixture). Question executors receive a Storage and must never
// write through it.
package storage

import (
	"context"
	"path"
	"strings"
)

// ListOptions tunes ListFiles behavior.
type ListOptions struct {
	// Limit caps the number of returned paths. 0 means unlimited.
	Limit int
}

// Storage provides read-only access to repository files.
//
// Paths are forward-slash separated and relative to the repository root.
// ListFiles accepts a glob pattern; "*" matches within one path segment and
// "**" matches any number of segments. Results are sorted lexicographically.
type Storage interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	FileExists(ctx context.Context, path string) (bool, error)
	ListFiles(ctx context.Context, pattern string, opts ListOptions) ([]string, error)
}

// globMatch reports whether a slash-separated relative path matches a glob
// pattern. Each non-"**" pattern segment is matched with path.Match against
// the corresponding path segment.
func globMatch(pattern, p string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := path.Match(pat[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], segs[1:])
}

// normalizeRel cleans a repository-relative path and rejects escapes.
func normalizeRel(p string) (string, bool) {
	p = path.Clean(strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/"))
	if p == "." {
		return "", false
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
