package schema

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/simon-lentz/yasdl/location"
)

// LookupStatus indicates the result of a registry lookup.
type LookupStatus uint8

const (
	LookupNotFound LookupStatus = iota
	LookupFound
)

// Found reports whether the lookup succeeded.
func (s LookupStatus) Found() bool { return s == LookupFound }

// Registry is the Phase-0 Schema Registry (spec §2, §4.1): it holds every
// loaded schema keyed both by canonical source identity and by canonical
// package name, enforcing invariant 1 ("package names are globally unique
// across loaded schemas") at registration time.
//
// The registry is append-only: once registered, a schema is never removed,
// which keeps DefinitionID lookups stable for the compiler's lifetime. It is
// safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	bySource    map[location.SourceID]*Schema
	byName      map[string]*Schema
	byDefID     map[DefinitionID]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bySource: make(map[location.SourceID]*Schema),
		byName:   make(map[string]*Schema),
		byDefID:  make(map[DefinitionID]*Definition),
	}
}

// Register adds a schema to the registry, indexing every definition reached
// by walking its outermost definitions and their static bodies so that
// LookupDefinition is O(1) in later phases. Returns an error if the schema
// has a zero SourceID, empty name, or collides with an already-registered
// schema's source or name (invariant 1).
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return nil
	}
	if s.sourceID.IsZero() {
		return &RegistryError{Kind: InvalidSourceID, Message: "cannot register schema with zero SourceID"}
	}
	if s.name == "" {
		return &RegistryError{Kind: InvalidName, Message: "cannot register schema with empty name"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySource[s.sourceID]; ok {
		return &RegistryError{Kind: DuplicateSourceID, Message: "schema already registered with source ID: " + s.sourceID.String()}
	}
	if _, ok := r.byName[s.name]; ok {
		return &RegistryError{Kind: DuplicateName, Message: "schema already registered with name: " + s.name}
	}

	r.bySource[s.sourceID] = s
	r.byName[s.name] = s

	var index func(d *Definition)
	index = func(d *Definition) {
		if !d.id.IsZero() {
			r.byDefID[d.id] = d
		}
		for _, c := range d.body {
			index(c)
		}
	}
	for _, d := range s.outermost {
		index(d)
	}

	return nil
}

// LookupBySourceID returns the schema with the given canonical source
// identity.
func (r *Registry) LookupBySourceID(id location.SourceID) (*Schema, LookupStatus) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.bySource[id]
	if !ok {
		return nil, LookupNotFound
	}
	return s, LookupFound
}

// LookupByName returns the schema with the given canonical package name.
func (r *Registry) LookupByName(name string) (*Schema, LookupStatus) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	if !ok {
		return nil, LookupNotFound
	}
	return s, LookupFound
}

// LookupDefinition returns the definition with the given DefinitionID,
// usable for O(1) cross-schema resolution once registered.
func (r *Registry) LookupDefinition(id DefinitionID) (*Definition, LookupStatus) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byDefID[id]
	if !ok {
		return nil, LookupNotFound
	}
	return d, LookupFound
}

// Contains reports whether a schema with the given source ID is registered.
func (r *Registry) Contains(id location.SourceID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySource[id]
	return ok
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySource)
}

// All returns every registered schema, sorted by source identity string for
// determinism.
func (r *Registry) All() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Schema, 0, len(r.bySource))
	for _, s := range r.bySource {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b *Schema) int {
		return cmp.Compare(a.sourceID.String(), b.sourceID.String())
	})
	return result
}

// Clone creates a shallow copy of the registry: an independent set of maps
// sharing the same *Schema/*Definition pointers.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Registry{
		bySource: make(map[location.SourceID]*Schema, len(r.bySource)),
		byName:   make(map[string]*Schema, len(r.byName)),
		byDefID:  make(map[DefinitionID]*Definition, len(r.byDefID)),
	}
	maps.Copy(clone.bySource, r.bySource)
	maps.Copy(clone.byName, r.byName)
	maps.Copy(clone.byDefID, r.byDefID)
	return clone
}

// RegistryErrorKind identifies the type of registry error.
type RegistryErrorKind uint8

const (
	DuplicateSourceID RegistryErrorKind = iota
	DuplicateName
	InvalidSourceID
	InvalidName
)

// String returns a human-readable name for the error kind.
func (k RegistryErrorKind) String() string {
	switch k {
	case DuplicateSourceID:
		return "duplicate source ID"
	case DuplicateName:
		return "duplicate name"
	case InvalidSourceID:
		return "invalid source ID"
	case InvalidName:
		return "invalid name"
	default:
		return "unknown"
	}
}

// RegistryError represents an error from registry operations.
type RegistryError struct {
	Kind    RegistryErrorKind
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string { return e.Message }
