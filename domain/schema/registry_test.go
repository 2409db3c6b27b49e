package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "nexus-backend/pkg/errors"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.AddArchetype(NodeArchetype{
		Type:            "topic",
		Nature:          NatureChild,
		Color:           "#334155",
		DefaultEdge:     "CHILD_OF",
		AllowedChildren: []string{"topic"},
		AllowedSubNodes: []string{"concept"},
		FlowX:           AxisPositive,
		FlowY:           AxisNegative,
		FlowZ:           AxisNeutral,
	}))
	require.NoError(t, r.AddArchetype(NodeArchetype{
		Type:        "concept",
		Nature:      NatureSub,
		Color:       "#d8b4fe",
		DefaultEdge: "RELATED_TO",
		FlowX:       AxisFree,
		FlowY:       AxisFree,
		FlowZ:       AxisNegative,
	}))
	require.NoError(t, r.AddTaxonomy(EdgeTaxonomy{
		Type:            "RELATIONAL",
		Nature:          EdgeNatureChild,
		SourceType:      "PARENT_OF",
		DestinationType: "CHILD_OF",
	}))
	require.NoError(t, r.AddTaxonomy(EdgeTaxonomy{
		Type:            "DESCRIPTIVE",
		Nature:          EdgeNatureSub,
		SourceType:      "DESCRIBES",
		DestinationType: "DESCRIBED_BY",
	}))
	require.NoError(t, r.AddTaxonomy(EdgeTaxonomy{
		Type:            "LINK",
		Nature:          EdgeNatureLink,
		SourceType:      "RELATED_TO",
		DestinationType: "RELATED_TO",
	}))
	return r
}

func TestRegistry_ValidateNodeType(t *testing.T) {
	r := testRegistry(t)

	arch, err := r.ValidateNodeType("topic")
	require.NoError(t, err)
	assert.Equal(t, "topic", arch.Type)
	assert.Equal(t, NatureChild, arch.Nature)

	_, err = r.ValidateNodeType("nonexistent")
	require.Error(t, err)
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnknownNodeType, appErr.Code)
}

func TestRegistry_ValidateEdge(t *testing.T) {
	r := testRegistry(t)
	topic, err := r.ValidateNodeType("topic")
	require.NoError(t, err)
	concept, err := r.ValidateNodeType("concept")
	require.NoError(t, err)

	tests := []struct {
		name     string
		edgeType string
		source   *NodeArchetype
		target   *NodeArchetype
		wantCode string
	}{
		{
			name:     "child edge to allowed child",
			edgeType: "CHILD_OF",
			source:   topic,
			target:   topic,
		},
		{
			name:     "child edge resolved via source label",
			edgeType: "PARENT_OF",
			source:   topic,
			target:   topic,
		},
		{
			name:     "child edge to disallowed child",
			edgeType: "CHILD_OF",
			source:   topic,
			target:   concept,
			wantCode: pkgerrors.CodeIllegalConnection,
		},
		{
			name:     "sub edge to allowed subnode",
			edgeType: "DESCRIBES",
			source:   topic,
			target:   concept,
		},
		{
			name:     "sub edge to disallowed subnode",
			edgeType: "DESCRIBES",
			source:   concept,
			target:   topic,
			wantCode: pkgerrors.CodeIllegalConnection,
		},
		{
			name:     "link edge is always legal",
			edgeType: "RELATED_TO",
			source:   concept,
			target:   topic,
		},
		{
			name:     "unknown edge type",
			edgeType: "OWNS",
			source:   topic,
			target:   topic,
			wantCode: pkgerrors.CodeUnknownEdgeType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := r.ValidateEdge(tt.edgeType, tt.source, tt.target)
			if tt.wantCode != "" {
				require.Error(t, err)
				appErr := pkgerrors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.True(t, tax.Matches(tt.edgeType))
		})
	}
}

func TestRegistry_DefaultEdgeFor(t *testing.T) {
	r := testRegistry(t)
	topic, err := r.ValidateNodeType("topic")
	require.NoError(t, err)
	assert.Equal(t, "CHILD_OF", r.DefaultEdgeFor(topic))
}

func TestRegistry_ArchetypeMutations(t *testing.T) {
	r := testRegistry(t)

	t.Run("duplicate add rejected", func(t *testing.T) {
		err := r.AddArchetype(NodeArchetype{
			Type: "topic", Nature: NatureChild,
			FlowX: AxisFree, FlowY: AxisFree, FlowZ: AxisFree,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
	})

	t.Run("invalid nature rejected", func(t *testing.T) {
		err := r.AddArchetype(NodeArchetype{
			Type: "widget", Nature: "container",
			FlowX: AxisFree, FlowY: AxisFree, FlowZ: AxisFree,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("invalid axis preference rejected", func(t *testing.T) {
		err := r.AddArchetype(NodeArchetype{
			Type: "widget", Nature: NatureSub,
			FlowX: "sideways", FlowY: AxisFree, FlowZ: AxisFree,
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("update then remove", func(t *testing.T) {
		require.NoError(t, r.UpdateArchetype(NodeArchetype{
			Type: "concept", Nature: NatureSub, Color: "#ffffff",
			DefaultEdge: "RELATED_TO",
			FlowX:       AxisFree, FlowY: AxisFree, FlowZ: AxisNegative,
		}))
		arch, err := r.ValidateNodeType("concept")
		require.NoError(t, err)
		assert.Equal(t, "#ffffff", arch.Color)

		require.NoError(t, r.RemoveArchetype("concept"))
		_, err = r.ValidateNodeType("concept")
		assert.Error(t, err)
	})

	t.Run("update unknown fails", func(t *testing.T) {
		err := r.UpdateArchetype(NodeArchetype{
			Type: "ghost", Nature: NatureSub,
			FlowX: AxisFree, FlowY: AxisFree, FlowZ: AxisFree,
		})
		assert.Error(t, err)
	})
}

func TestRegistry_TaxonomyMutations(t *testing.T) {
	r := testRegistry(t)

	t.Run("claimed direction label rejected", func(t *testing.T) {
		err := r.AddTaxonomy(EdgeTaxonomy{
			Type: "LINK", Nature: EdgeNatureLink,
			SourceType: "OWNS", DestinationType: "CHILD_OF",
		})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
	})

	t.Run("update resolved by either label", func(t *testing.T) {
		require.NoError(t, r.UpdateTaxonomy("DESCRIBED_BY", EdgeTaxonomy{
			Type: "DESCRIPTIVE", Nature: EdgeNatureSub,
			SourceType: "DESCRIBES", DestinationType: "DESCRIBED_BY",
			Color: "#000000",
		}))
	})

	t.Run("remove then unresolvable", func(t *testing.T) {
		require.NoError(t, r.RemoveTaxonomy("RELATED_TO"))
		topic, err := r.ValidateNodeType("topic")
		require.NoError(t, err)
		_, err = r.ValidateEdge("RELATED_TO", topic, topic)
		assert.Error(t, err)
	})
}

type fakeSchemaStore struct {
	archetypes []NodeArchetype
	taxonomies []EdgeTaxonomy
	replaces   int
}

func (s *fakeSchemaStore) ReplaceSchema(_ context.Context, archetypes []NodeArchetype, taxonomies []EdgeTaxonomy) error {
	s.archetypes = archetypes
	s.taxonomies = taxonomies
	s.replaces++
	return nil
}

func (s *fakeSchemaStore) LoadSchema(_ context.Context) ([]NodeArchetype, []EdgeTaxonomy, error) {
	return s.archetypes, s.taxonomies, nil
}

func TestRegistry_CommitAndLoad(t *testing.T) {
	r := testRegistry(t)
	store := &fakeSchemaStore{}

	require.NoError(t, r.Commit(context.Background(), store))
	assert.Equal(t, 1, store.replaces)
	assert.Len(t, store.archetypes, 2)
	assert.Len(t, store.taxonomies, 3)

	fresh := NewRegistry()
	require.NoError(t, fresh.Load(context.Background(), store))
	_, err := fresh.ValidateNodeType("topic")
	require.NoError(t, err)
	topic, _ := fresh.ValidateNodeType("topic")
	_, err = fresh.ValidateEdge("CHILD_OF", topic, topic)
	assert.NoError(t, err)
}

func TestRegistry_LoadKeepsRegistryOnInvalidSchema(t *testing.T) {
	r := testRegistry(t)
	before := len(r.Archetypes())
	taxonomiesBefore := len(r.Taxonomies())

	store := &fakeSchemaStore{
		archetypes: []NodeArchetype{{Type: "ghost"}},
	}

	require.Error(t, r.Load(context.Background(), store))

	// a bad persisted entry must not leave a half-loaded registry
	assert.Len(t, r.Archetypes(), before)
	assert.Len(t, r.Taxonomies(), taxonomiesBefore)
	topic, err := r.ValidateNodeType("topic")
	require.NoError(t, err)
	_, err = r.ValidateEdge("CHILD_OF", topic, topic)
	assert.NoError(t, err)
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	topic, err := r.ValidateNodeType("topic")
	require.NoError(t, err)
	assert.Equal(t, "CHILD_OF", topic.DefaultEdge)

	concept, err := r.ValidateNodeType("concept")
	require.NoError(t, err)
	assert.Equal(t, NatureSub, concept.Nature)

	for _, a := range r.Archetypes() {
		assert.NoError(t, a.Validate(), "archetype %s", a.Type)
	}
	for _, tx := range r.Taxonomies() {
		assert.NoError(t, tx.Validate(), "taxonomy %s/%s", tx.Type, tx.SourceType)
	}

	// a topic may nest topics but not concepts
	_, err = r.ValidateEdge("CHILD_OF", topic, topic)
	assert.NoError(t, err)
	_, err = r.ValidateEdge("CHILD_OF", topic, concept)
	assert.Error(t, err)

	// symmetric link resolves from its single label
	_, err = r.ValidateEdge("RELATED_TO", concept, topic)
	assert.NoError(t, err)
}
