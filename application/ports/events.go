package ports

import (
	"context"
	"time"
)

// Mutation event types published after a commit.
const (
	EventNodeCreated = "graph.node.created"
	EventNodeUpdated = "graph.node.updated"
	EventNodeDeleted = "graph.node.deleted"
	EventEdgeCreated = "graph.edge.created"
)

// Event describes one committed graph mutation.
type Event struct {
	Type      string                 `json:"type"`
	EntityID  string                 `json:"entityId"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// EventPublisher fans mutation events out to interested consumers. Publish
// failures are logged by callers, never surfaced as mutation failures.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}
