package schema

import (
	"context"
	"sync"

	pkgerrors "nexus-backend/pkg/errors"
)

// Store persists the schema collections wholesale. The registry is small and
// edited interactively, so a diff-free replace is simpler to reason about
// than incremental patching.
type Store interface {
	ReplaceSchema(ctx context.Context, archetypes []NodeArchetype, taxonomies []EdgeTaxonomy) error
	LoadSchema(ctx context.Context) ([]NodeArchetype, []EdgeTaxonomy, error)
}

// Registry is the in-memory schema of a project: node archetypes keyed by
// type and edge taxonomies resolved by direction label. All mutations happen
// through its methods; Commit replaces the persisted collections.
type Registry struct {
	mu         sync.RWMutex
	archetypes map[string]*NodeArchetype
	taxonomies []*EdgeTaxonomy
}

// NewRegistry creates an empty schema registry
func NewRegistry() *Registry {
	return &Registry{
		archetypes: make(map[string]*NodeArchetype),
	}
}

// NewDefaultRegistry creates a registry seeded with the default archetypes
// and taxonomies
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for i := range DefaultArchetypes {
		a := DefaultArchetypes[i]
		r.archetypes[a.Type] = &a
	}
	for i := range DefaultTaxonomies {
		t := DefaultTaxonomies[i]
		r.taxonomies = append(r.taxonomies, &t)
	}
	return r
}

// ValidateNodeType resolves an archetype by type, failing with an
// UnknownNodeType error when no archetype carries the type
func (r *Registry) ValidateNodeType(nodeType string) (*NodeArchetype, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arch, ok := r.archetypes[nodeType]
	if !ok {
		return nil, pkgerrors.NewUnknownNodeTypeError(nodeType)
	}
	return arch, nil
}

// ValidateEdge resolves the taxonomy for an edge type and checks that the
// connection is legal between the two archetypes. A child edge requires the
// target's type among the source's allowed children, a sub edge among its
// allowed subnodes. Link edges are unconstrained associative edges and are
// always legal.
func (r *Registry) ValidateEdge(edgeType string, source, target *NodeArchetype) (*EdgeTaxonomy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tax := r.resolveTaxonomy(edgeType)
	if tax == nil {
		return nil, pkgerrors.NewUnknownEdgeTypeError(edgeType)
	}

	switch tax.Nature {
	case EdgeNatureChild:
		if !source.AllowsChild(target.Type) {
			return nil, pkgerrors.NewIllegalConnectionError(edgeType, source.Type, target.Type)
		}
	case EdgeNatureSub:
		if !source.AllowsSubNode(target.Type) {
			return nil, pkgerrors.NewIllegalConnectionError(edgeType, source.Type, target.Type)
		}
	case EdgeNatureLink:
		// associative edges carry no structural constraint
	}
	return tax, nil
}

// TaxonomyFor resolves the taxonomy claiming the given direction label
func (r *Registry) TaxonomyFor(edgeType string) (*EdgeTaxonomy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tax := r.resolveTaxonomy(edgeType)
	if tax == nil {
		return nil, pkgerrors.NewUnknownEdgeTypeError(edgeType)
	}
	snapshot := *tax
	return &snapshot, nil
}

// DefaultEdgeFor returns the edge type used when a mutation does not choose one
func (r *Registry) DefaultEdgeFor(arch *NodeArchetype) string {
	return arch.DefaultEdge
}

// Archetypes returns a snapshot of all archetypes
func (r *Registry) Archetypes() []NodeArchetype {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]NodeArchetype, 0, len(r.archetypes))
	for _, a := range r.archetypes {
		out = append(out, *a)
	}
	return out
}

// Taxonomies returns a snapshot of all taxonomies
func (r *Registry) Taxonomies() []EdgeTaxonomy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EdgeTaxonomy, 0, len(r.taxonomies))
	for _, t := range r.taxonomies {
		out = append(out, *t)
	}
	return out
}

// AddArchetype registers a new archetype, failing on duplicate types
func (r *Registry) AddArchetype(arch NodeArchetype) error {
	if err := arch.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.archetypes[arch.Type]; exists {
		return pkgerrors.NewConflictError("archetype already exists: " + arch.Type)
	}
	r.archetypes[arch.Type] = &arch
	return nil
}

// UpdateArchetype replaces an existing archetype
func (r *Registry) UpdateArchetype(arch NodeArchetype) error {
	if err := arch.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.archetypes[arch.Type]; !exists {
		return pkgerrors.NewUnknownNodeTypeError(arch.Type)
	}
	r.archetypes[arch.Type] = &arch
	return nil
}

// RemoveArchetype deletes an archetype from the registry
func (r *Registry) RemoveArchetype(nodeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.archetypes[nodeType]; !exists {
		return pkgerrors.NewUnknownNodeTypeError(nodeType)
	}
	delete(r.archetypes, nodeType)
	return nil
}

// AddTaxonomy registers a new taxonomy, failing when either direction label
// is already claimed
func (r *Registry) AddTaxonomy(tax EdgeTaxonomy) error {
	if err := tax.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolveTaxonomy(tax.SourceType) != nil || r.resolveTaxonomy(tax.DestinationType) != nil {
		return pkgerrors.NewConflictError("taxonomy direction label already in use")
	}
	r.taxonomies = append(r.taxonomies, &tax)
	return nil
}

// UpdateTaxonomy replaces the taxonomy matching the given direction label
func (r *Registry) UpdateTaxonomy(edgeType string, tax EdgeTaxonomy) error {
	if err := tax.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.taxonomies {
		if t.Matches(edgeType) {
			r.taxonomies[i] = &tax
			return nil
		}
	}
	return pkgerrors.NewUnknownEdgeTypeError(edgeType)
}

// RemoveTaxonomy deletes the taxonomy matching the given direction label
func (r *Registry) RemoveTaxonomy(edgeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.taxonomies {
		if t.Matches(edgeType) {
			r.taxonomies = append(r.taxonomies[:i], r.taxonomies[i+1:]...)
			return nil
		}
	}
	return pkgerrors.NewUnknownEdgeTypeError(edgeType)
}

// Commit replaces the persisted schema collections with the registry's
// current contents
func (r *Registry) Commit(ctx context.Context, store Store) error {
	return store.ReplaceSchema(ctx, r.Archetypes(), r.Taxonomies())
}

// Load replaces the registry's contents with the persisted schema collections
func (r *Registry) Load(ctx context.Context, store Store) error {
	archetypes, taxonomies, err := store.LoadSchema(ctx)
	if err != nil {
		return err
	}

	// Validate everything before touching registry state so a bad persisted
	// entry cannot leave a half-loaded registry behind.
	loadedArchetypes := make(map[string]*NodeArchetype, len(archetypes))
	for i := range archetypes {
		a := archetypes[i]
		if err := a.Validate(); err != nil {
			return err
		}
		loadedArchetypes[a.Type] = &a
	}
	loadedTaxonomies := make([]*EdgeTaxonomy, 0, len(taxonomies))
	for i := range taxonomies {
		t := taxonomies[i]
		if err := t.Validate(); err != nil {
			return err
		}
		loadedTaxonomies = append(loadedTaxonomies, &t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.archetypes = loadedArchetypes
	r.taxonomies = loadedTaxonomies
	return nil
}

// resolveTaxonomy finds the taxonomy claiming the given direction label.
// Caller must hold at least a read lock.
func (r *Registry) resolveTaxonomy(edgeType string) *EdgeTaxonomy {
	for _, t := range r.taxonomies {
		if t.Matches(edgeType) {
			return t
		}
	}
	return nil
}
