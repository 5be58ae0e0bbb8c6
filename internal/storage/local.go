package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local serves files from a DAK checkout on the local filesystem.
type Local struct {
	root string
}

// NewLocal creates a Local storage rooted at dir. The directory must exist.
func NewLocal(dir string) (*Local, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage: repository path is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: %s is not a directory", dir)
	}
	return &Local{root: dir}, nil
}

// Root returns the repository root directory.
func (l *Local) Root() string {
	if l == nil {
		return ""
	}
	return l.root
}

func (l *Local) resolve(p string) (string, error) {
	rel, ok := normalizeRel(p)
	if !ok {
		return "", fmt.Errorf("storage: invalid path %q", p)
	}
	return filepath.Join(l.root, filepath.FromSlash(rel)), nil
}

func (l *Local) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", p, err)
	}
	return data, nil
}

func (l *Local) FileExists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

func (l *Local) ListFiles(ctx context.Context, pattern string, opts ListOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("storage: list pattern is required")
	}

	var matches []string
	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip dotted trees like .git; there is nothing a question
			// should read in them.
			if p != l.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if globMatch(pattern, rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", pattern, err)
	}

	sort.Strings(matches)
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches, nil
}
