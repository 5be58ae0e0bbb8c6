package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Memory is an in-memory Storage used by tests and as a fixture backend.
// The file map is treated as read-only after construction.
type Memory struct {
	files map[string][]byte
}

// NewMemory builds an in-memory storage from a path -> content map.
// Paths are normalized to forward-slash relative form.
func NewMemory(files map[string][]byte) *Memory {
	m := &Memory{files: make(map[string][]byte, len(files))}
	for p, data := range files {
		rel, ok := normalizeRel(p)
		if !ok {
			continue
		}
		m.files[rel] = data
	}
	return m
}

// NewMemoryText is a convenience constructor for string content.
func NewMemoryText(files map[string]string) *Memory {
	raw := make(map[string][]byte, len(files))
	for p, s := range files {
		raw[p] = []byte(s)
	}
	return NewMemory(raw)
}

func (m *Memory) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, ok := normalizeRel(p)
	if !ok {
		return nil, fmt.Errorf("storage: invalid path %q", p)
	}
	data, found := m.files[rel]
	if !found {
		return nil, fmt.Errorf("storage: read %s: file does not exist", p)
	}
	return data, nil
}

func (m *Memory) FileExists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rel, ok := normalizeRel(p)
	if !ok {
		return false, fmt.Errorf("storage: invalid path %q", p)
	}
	_, found := m.files[rel]
	return found, nil
}

func (m *Memory) ListFiles(ctx context.Context, pattern string, opts ListOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("storage: list pattern is required")
	}
	var matches []string
	for p := range m.files {
		if globMatch(pattern, p) {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches, nil
}
