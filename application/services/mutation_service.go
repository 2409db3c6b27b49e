// Package services coordinates schema validation, positioning, persistence
// and embedding reconciliation for graph mutations.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nexus-backend/application/embedding"
	"nexus-backend/application/ports"
	"nexus-backend/domain/core/entities"
	"nexus-backend/domain/core/valueobjects"
	"nexus-backend/domain/layout"
	"nexus-backend/domain/schema"
	pkgerrors "nexus-backend/pkg/errors"
)

// Visual weight by archetype nature, matching the renderer's sizing.
const (
	valChild = 18
	valSub   = 12
)

const reconcileTimeout = 2 * time.Minute

// MutationService is the façade for graph mutations. Validation failures
// surface before any persistence attempt; persistence failures propagate to
// the caller; embedding reconciliation runs in the background and never
// fails a mutation.
type MutationService struct {
	registry     *schema.Registry
	positioner   *layout.Positioner
	store        ports.GraphStore
	schemaStore  schema.Store
	orchestrator *embedding.Orchestrator
	publisher    ports.EventPublisher
	link         *LinkSession
	logger       *zap.Logger
}

// NewMutationService wires a mutation service. publisher may be nil.
func NewMutationService(
	registry *schema.Registry,
	positioner *layout.Positioner,
	store ports.GraphStore,
	schemaStore schema.Store,
	orchestrator *embedding.Orchestrator,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *MutationService {
	return &MutationService{
		registry:     registry,
		positioner:   positioner,
		store:        store,
		schemaStore:  schemaStore,
		orchestrator: orchestrator,
		publisher:    publisher,
		link:         NewLinkSession(),
		logger:       logger,
	}
}

// CreateNodeInput describes a node creation request.
type CreateNodeInput struct {
	Type     string `json:"type" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	ParentID string `json:"parentId" validate:"required"`
	EdgeType string `json:"edgeType"`
}

// CreateNode validates the requested archetype and edge, derives a position
// under the parent, persists the node and its structural edge, and schedules
// embedding reconciliation. An edge persistence failure after node creation
// leaves an orphan node; it is reported, not silently repaired.
func (s *MutationService) CreateNode(ctx context.Context, input CreateNodeInput) (*entities.Node, *entities.Edge, error) {
	arch, err := s.registry.ValidateNodeType(input.Type)
	if err != nil {
		return nil, nil, err
	}

	parent, err := s.GetNode(ctx, input.ParentID)
	if err != nil {
		return nil, nil, err
	}
	parentArch, err := s.registry.ValidateNodeType(parent.Type)
	if err != nil {
		return nil, nil, err
	}

	edgeType := input.EdgeType
	if edgeType == "" {
		edgeType = s.registry.DefaultEdgeFor(arch)
	}
	// legality is checked parent-to-child no matter which direction label
	// the edge instance carries
	tax, err := s.registry.ValidateEdge(edgeType, parentArch, arch)
	if err != nil {
		return nil, nil, err
	}

	node, err := entities.NewNode(input.Type, input.Title)
	if err != nil {
		return nil, nil, err
	}
	node.Summary = input.Summary
	node.Content = input.Content
	node.Color = arch.Color
	node.Val = valSub
	if arch.Nature == schema.NatureChild {
		node.Val = valChild
	}
	node.SetPosition(s.positioner.Position(parent.Position(), arch))

	if _, err := s.store.CreateRecord(ctx, entities.TableNode, node.Fields()); err != nil {
		return nil, nil, err
	}

	edge, err := entities.NewEdge(node.ID, parent.ID, edgeType, tax)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.store.Relate(ctx, edge.Source, edge.Target, edge.Fields()); err != nil {
		s.logger.Error("edge creation failed after node creation, orphan node left",
			zap.String("node_id", node.ID),
			zap.Error(err))
		return nil, nil, err
	}

	s.scheduleReconcile(node)
	s.publish(ctx,
		ports.Event{Type: ports.EventNodeCreated, EntityID: node.ID, Timestamp: time.Now()},
		ports.Event{Type: ports.EventEdgeCreated, EntityID: edge.ID, Timestamp: time.Now()},
	)
	return node, edge, nil
}

// EditNodeInput describes a partial node edit. Nil pointers leave the field
// unchanged.
type EditNodeInput struct {
	ID      string               `json:"id" validate:"required"`
	Title   *string              `json:"title,omitempty"`
	Summary *string              `json:"summary,omitempty"`
	Content *string              `json:"content,omitempty"`
	Media   []entities.MediaItem `json:"media,omitempty"`
}

// EditNode applies field changes and persists only what changed. Content
// changes are picked up by the background reconcile.
func (s *MutationService) EditNode(ctx context.Context, input EditNodeInput) (*entities.Node, error) {
	node, err := s.GetNode(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	fields := ports.Record{}
	if input.Title != nil {
		node.Title = *input.Title
		fields["title"] = node.Title
	}
	if input.Summary != nil {
		node.Summary = *input.Summary
		fields["summary"] = node.Summary
	}
	if input.Content != nil {
		node.Content = *input.Content
		fields["content"] = node.Content
	}
	if input.Media != nil {
		node.Media = input.Media
		media := make([]map[string]interface{}, 0, len(node.Media))
		for _, m := range node.Media {
			media = append(media, map[string]interface{}{
				"id": m.ID, "name": m.Name, "type": m.Type,
				"url": m.URL, "mime_type": m.MimeType,
			})
		}
		fields["media"] = media
	}
	if len(fields) == 0 {
		return node, nil
	}

	node.UpdatedAt = time.Now()
	fields["updated_at"] = node.UpdatedAt.UTC().Format(time.RFC3339)

	if err := s.store.MergeRecord(ctx, node.ID, fields); err != nil {
		return nil, err
	}

	s.scheduleReconcile(node)
	s.publish(ctx, ports.Event{Type: ports.EventNodeUpdated, EntityID: node.ID, Timestamp: time.Now()})
	return node, nil
}

// DeleteNode removes a node. The root node is protected and always refuses
// deletion. Cascading edge removal is the storage layer's job.
func (s *MutationService) DeleteNode(ctx context.Context, id string) error {
	if id == valueobjects.RootNodeID {
		return pkgerrors.NewProtectedNodeError(id)
	}

	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return err
	}

	// a pending link from or to the deleted node can never complete
	if s.link.Source() == id {
		s.link.Cancel()
	}

	s.publish(ctx, ports.Event{Type: ports.EventNodeDeleted, EntityID: id, Timestamp: time.Now()})
	return nil
}

// StartLink enters the linking state with a source node and edge type
func (s *MutationService) StartLink(sourceID, edgeType string) error {
	return s.link.Start(sourceID, edgeType)
}

// CancelLink abandons a pending link without side effects
func (s *MutationService) CancelLink() {
	s.link.Cancel()
}

// IsLinking reports whether a link is pending, in which case node clicks
// complete the link instead of selecting
func (s *MutationService) IsLinking() bool {
	return s.link.IsLinking()
}

// CompleteLink finishes a pending link against the clicked target. The
// session returns to idle whether or not the link succeeds.
func (s *MutationService) CompleteLink(ctx context.Context, targetID string) (*entities.Edge, error) {
	sourceID, edgeType, err := s.link.Take()
	if err != nil {
		return nil, err
	}

	source, err := s.GetNode(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := s.GetNode(ctx, targetID)
	if err != nil {
		return nil, err
	}
	sourceArch, err := s.registry.ValidateNodeType(source.Type)
	if err != nil {
		return nil, err
	}
	targetArch, err := s.registry.ValidateNodeType(target.Type)
	if err != nil {
		return nil, err
	}

	tax, err := s.registry.TaxonomyFor(edgeType)
	if err != nil {
		return nil, err
	}

	// Hierarchy legality is always checked against the parent archetype's
	// allowed lists. A destination-style label (CHILD_OF) makes the session
	// source the subordinate; a source-style label (PARENT_OF) makes the
	// clicked target the subordinate, and the edge is stored
	// subordinate-first under the destination label so adjacency derivation
	// stays uniform.
	label := edgeType
	edgeSource, edgeTarget := source.ID, target.ID
	parentArch, childArch := targetArch, sourceArch
	if tax.Nature != schema.EdgeNatureLink && edgeType == tax.SourceType && !tax.IsSymmetric() {
		label = tax.DestinationType
		edgeSource, edgeTarget = target.ID, source.ID
		parentArch, childArch = sourceArch, targetArch
	}
	if _, err := s.registry.ValidateEdge(label, parentArch, childArch); err != nil {
		return nil, err
	}

	edge, err := entities.NewEdge(edgeSource, edgeTarget, label, tax)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Relate(ctx, edge.Source, edge.Target, edge.Fields()); err != nil {
		return nil, err
	}

	s.publish(ctx, ports.Event{Type: ports.EventEdgeCreated, EntityID: edge.ID, Timestamp: time.Now()})
	return edge, nil
}

// BootstrapProject seeds a fresh project: the default schema committed to
// storage and the protected root node at the origin.
func (s *MutationService) BootstrapProject(ctx context.Context, title string) (*entities.Node, error) {
	if title == "" {
		return nil, pkgerrors.NewValidationError("project title cannot be empty")
	}

	if err := s.registry.Commit(ctx, s.schemaStore); err != nil {
		return nil, err
	}

	arch, err := s.registry.ValidateNodeType("topic")
	if err != nil {
		return nil, err
	}

	root := &entities.Node{
		ID:        valueobjects.RootNodeID,
		Type:      arch.Type,
		Title:     title,
		Color:     arch.Color,
		Val:       valChild,
		Metadata:  make(map[string]interface{}),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := s.store.CreateRecord(ctx, entities.TableNode, root.Fields()); err != nil {
		return nil, err
	}

	s.publish(ctx, ports.Event{Type: ports.EventNodeCreated, EntityID: root.ID, Timestamp: time.Now()})
	return root, nil
}

// GetNode loads one node by id
func (s *MutationService) GetNode(ctx context.Context, id string) (*entities.Node, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("node id cannot be empty")
	}
	records, err := s.store.Query(ctx, ports.Filter{
		Table:      entities.TableNode,
		Conditions: map[string]interface{}{"id": id},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, pkgerrors.NewNotFoundError("node " + id)
	}
	return entities.NodeFromFields(records[0]), nil
}

// Reconcile runs an embedding reconcile synchronously. Used by the backfill
// command; mutations use the background path instead.
func (s *MutationService) Reconcile(ctx context.Context, node *entities.Node) (embedding.Result, error) {
	return s.orchestrator.Reconcile(ctx, node)
}

// scheduleReconcile triggers embedding reconciliation detached from the
// request. The goroutine works on a deep copy: the caller's node is still
// being serialized for the response while the reconcile mutates metadata
// and vectors. A reconcile landing after the node was deleted merges
// against a missing id, which the storage layer treats as a no-op.
func (s *MutationService) scheduleReconcile(node *entities.Node) {
	node = node.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		if _, err := s.orchestrator.Reconcile(ctx, node); err != nil {
			s.logger.Warn("background embedding reconcile failed",
				zap.String("node_id", node.ID),
				zap.Error(err))
		}
	}()
}

func (s *MutationService) publish(ctx context.Context, events ...ports.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("event publish failed", zap.Error(err))
	}
}
