package question

import (
	"fmt"
	"sync"
)

// Registration pairs a raw definition artifact with its executor. Question
// packages register themselves from init(); nothing is validated until a
// Registry loads the registration, so one malformed module can be isolated
// instead of failing the process.
type Registration struct {
	// Source names the registering package/file for load warnings.
	Source     string
	Definition []byte
	Executor   Executor
}

var (
	registrationsMu sync.Mutex
	registrations   []Registration
)

// Register adds a question module registration to the process-wide list.
func Register(r Registration) {
	registrationsMu.Lock()
	defer registrationsMu.Unlock()
	registrations = append(registrations, r)
}

// Registrations returns a snapshot of all registered question modules.
func Registrations() []Registration {
	registrationsMu.Lock()
	defer registrationsMu.Unlock()
	out := make([]Registration, len(registrations))
	copy(out, registrations)
	return out
}

// LoadError describes one question module that could not be loaded. Load
// errors are isolated per question: the module is skipped and the rest of the
// catalog loads normally.
type LoadError struct {
	Source string
	Reason string
}

func (e LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load question: %s", e.Reason)
	}
	return fmt.Sprintf("load question (%s): %s", e.Source, e.Reason)
}

// Module is a loaded question: validated definition plus executor. Modules
// are owned exclusively by their Registry.
type Module struct {
	Definition Definition
	Executor   Executor
}

// Registry holds the loaded question catalog. The module map is written once
// by LoadAll and read-only afterwards, so a single Registry instance is safe
// for concurrent readers.
type Registry struct {
	mu       sync.Mutex
	loaded   bool
	modules  map[string]*Module
	order    []string
	warnings []LoadError
	source   func() []Registration
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithSource overrides where the registry pulls registrations from. Tests use
// this to build hermetic catalogs.
func WithSource(fn func() []Registration) RegistryOption {
	return func(r *Registry) { r.source = fn }
}

// NewRegistry creates an empty registry backed by the process-wide
// registration list unless WithSource overrides it.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{source: Registrations}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadAll validates every registration and builds the catalog. It is
// idempotent: after the first call it returns the recorded warnings without
// rescanning.
func (r *Registry) LoadAll() []LoadError {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.warningsLocked()
	}

	r.modules = make(map[string]*Module)
	for _, reg := range r.source() {
		if reg.Executor == nil {
			r.warnings = append(r.warnings, LoadError{Source: reg.Source, Reason: "definition has no executor"})
			continue
		}
		if len(reg.Definition) == 0 {
			r.warnings = append(r.warnings, LoadError{Source: reg.Source, Reason: "executor has no definition artifact"})
			continue
		}
		def, err := ParseDefinition(reg.Definition)
		if err != nil {
			r.warnings = append(r.warnings, LoadError{Source: reg.Source, Reason: err.Error()})
			continue
		}
		if _, exists := r.modules[def.ID]; exists {
			r.warnings = append(r.warnings, LoadError{Source: reg.Source, Reason: fmt.Sprintf("duplicate question id %q", def.ID)})
			continue
		}
		r.modules[def.ID] = &Module{Definition: def, Executor: reg.Executor}
		r.order = append(r.order, def.ID)
	}

	r.loaded = true
	return r.warningsLocked()
}

func (r *Registry) warningsLocked() []LoadError {
	out := make([]LoadError, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Warnings returns the load warnings recorded by LoadAll.
func (r *Registry) Warnings() []LoadError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warningsLocked()
}

// Get returns the loaded module for id, O(1).
func (r *Registry) Get(id string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[id]
	return m, ok
}

// All returns the loaded modules as a snapshot in load order. Callers must
// not assume semantic ordering.
func (r *Registry) All() []*Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Module, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.modules[id])
	}
	return out
}

// Schemas maps question id to declared schema for every question that has one.
func (r *Registry) Schemas() map[string]*Schema {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*Schema)
	for id, m := range r.modules {
		if m.Definition.Schema != nil {
			out[id] = m.Definition.Schema
		}
	}
	return out
}
