package model

import (
	"sort"
	"sync"
)

// Registry stores the artifacts of installed models.
type Registry struct {
	models map[string]*Artifacts
	mu     sync.RWMutex
}

// NewRegistry creates a new model registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]*Artifacts),
	}
}

// Set records the artifacts found for a named model.
func (r *Registry) Set(name string, artifacts *Artifacts) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models[name] = artifacts
}

// Get returns the artifacts for the named model.
func (r *Registry) Get(name string) (*Artifacts, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifacts, ok := r.models[name]
	return artifacts, ok
}

// List returns the installed model names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Delete removes the named model from the registry.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.models, name)
}
