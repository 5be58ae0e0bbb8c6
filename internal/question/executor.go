package question

import (
	"context"
	"fmt"

	"dakfaq/internal/i18n"
	"dakfaq/internal/storage"
)

// Input carries everything an executor may read during one invocation. It is
// constructed fresh per invocation and must not be retained.
type Input struct {
	Storage    storage.Storage
	Parameters map[string]any
	AssetFile  string
	AssetFiles []string
	Locale     string
	T          i18n.TranslateFunc
	Context    map[string]any
}

// Translate resolves a message key through the request's translator, falling
// back to plain interpolation of the key when no translator was supplied.
func (in *Input) Translate(key string, vars map[string]any) string {
	if in != nil && in.T != nil {
		return in.T(key, vars)
	}
	return i18n.Interpolate(key, vars)
}

// StringParam returns a string parameter value, or "" if absent or not a string.
func (in *Input) StringParam(name string) string {
	if in == nil || in.Parameters == nil {
		return ""
	}
	s, _ := in.Parameters[name].(string)
	return s
}

// CacheScope tells an external cache how broadly a result may be shared.
type CacheScope string

const (
	CacheScopeFile       CacheScope = "file"
	CacheScopeRepository CacheScope = "repository"
)

// CacheHint describes how an external cache should key and expire a result.
// The engine itself never caches.
type CacheHint struct {
	Scope        CacheScope `json:"scope"`
	Key          string     `json:"key"`
	TTLSeconds   int        `json:"ttl"`
	Dependencies []string   `json:"dependencies,omitempty"`
}

// Meta holds result metadata that is not part of the answer itself.
type Meta struct {
	CacheHint *CacheHint `json:"cacheHint,omitempty"`
}

// Result is the answer to one question: a machine-readable payload plus a
// human-readable narrative. A non-empty Errors list marks the result failed
// even when Structured and Narrative are partially populated.
type Result struct {
	Structured any      `json:"structured"`
	Narrative  string   `json:"narrative"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
	Meta       Meta     `json:"meta"`
}

// NewResult returns an empty result with non-nil error and warning lists so
// they serialize as [] rather than null.
func NewResult() *Result {
	return &Result{Errors: []string{}, Warnings: []string{}}
}

func (r *Result) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Failed reports whether the result carries at least one error.
func (r *Result) Failed() bool {
	return r != nil && len(r.Errors) > 0
}

// Executor runs a question against the provided input. Executors may only
// perform read operations through the Storage collaborator.
type Executor interface {
	Execute(ctx context.Context, in *Input) (*Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, in *Input) (*Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, in *Input) (*Result, error) {
	return f(ctx, in)
}
