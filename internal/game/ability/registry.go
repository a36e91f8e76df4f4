package ability

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownID is returned by Registry.New for an unregistered ID.
var ErrUnknownID = errors.New("unknown ability id")

// Registry holds all known Definitions keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register validates def and adds a copy of it to the registry.
//
// Precondition: def must not be nil.
// Postcondition: Get(def.ID) returns a copy of def, or an error is returned
// and the registry is unchanged. An ID already present yields ErrDuplicateID.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return errors.New("Register: def must not be nil")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if _, ok := r.defs[def.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, def.ID)
	}
	r.defs[def.ID] = def.clone()
	return nil
}

// Get returns a copy of the Definition for id, or (nil, false) if not found.
// Changing the copy does not affect the registry.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// All returns copies of every registered Definition sorted by ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// New builds a Scripted ability from the definition registered under id.
// hooks may be nil when no definition uses a Lua modifier.
//
// Postcondition: Returns an Ability whose Name is id, or an error wrapping ErrUnknownID.
func (r *Registry) New(id string, hooks Hooks) (Ability, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return NewScripted(d, hooks), nil
}
