package entities

import (
	"time"

	"nexus-backend/domain/core/valueobjects"
	pkgerrors "nexus-backend/pkg/errors"
)

// Reserved metadata keys maintained by the embedding pipeline. Unrelated
// edits must never clobber them.
const (
	MetaContentHash  = "contentHash"
	MetaLastEmbedded = "lastEmbedded"
)

// MediaItem is a reference to a media binary held in object storage.
type MediaItem struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	Type     string `json:"type" dynamodbav:"type"`
	URL      string `json:"url" dynamodbav:"url"`
	MimeType string `json:"mimeType" dynamodbav:"mime_type"`
}

// Node is a graph entity. Parents, Children and SubNodes are the
// authoritative adjacency lists for structural traversal; the storage layer
// maintains them on relate and delete, the domain never recomputes them.
// Embeddings holds one vector per provider name.
type Node struct {
	ID       string                 `json:"id" dynamodbav:"id"`
	Type     string                 `json:"type" dynamodbav:"type"`
	Title    string                 `json:"title" dynamodbav:"title"`
	Summary  string                 `json:"summary" dynamodbav:"summary"`
	Content  string                 `json:"content" dynamodbav:"content"`
	Color    string                 `json:"color" dynamodbav:"color"`
	Val      float64                `json:"val" dynamodbav:"val"`
	X        float64                `json:"x" dynamodbav:"x"`
	Y        float64                `json:"y" dynamodbav:"y"`
	Z        float64                `json:"z" dynamodbav:"z"`
	Parents  []string               `json:"parents,omitempty" dynamodbav:"parents"`
	Children []string               `json:"children,omitempty" dynamodbav:"children"`
	SubNodes []string               `json:"subnodes,omitempty" dynamodbav:"subnodes"`
	Media    []MediaItem            `json:"media,omitempty" dynamodbav:"media"`
	Data     map[string]interface{} `json:"data,omitempty" dynamodbav:"data"`
	Metadata map[string]interface{} `json:"metadata,omitempty" dynamodbav:"metadata"`

	// Embeddings is keyed by provider name and persisted as one
	// embedding_<provider> field per entry.
	Embeddings map[string][]float32 `json:"-" dynamodbav:"-"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// NewNode creates a node of the given archetype type with a generated id
func NewNode(nodeType, title string) (*Node, error) {
	if nodeType == "" {
		return nil, pkgerrors.NewValidationError("node type cannot be empty")
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("node title cannot be empty")
	}
	now := time.Now()
	return &Node{
		ID:        valueobjects.NewNodeID().String(),
		Type:      nodeType,
		Title:     title,
		Val:       1,
		Metadata:  make(map[string]interface{}),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsRoot reports whether this is the protected project root node
func (n *Node) IsRoot() bool {
	return n.ID == valueobjects.RootNodeID
}

// Clone returns a deep copy. Background workers mutate their copy while the
// original is still being serialized for a response, so shared maps and
// slices are not acceptable.
func (n *Node) Clone() *Node {
	clone := *n
	clone.Parents = append([]string(nil), n.Parents...)
	clone.Children = append([]string(nil), n.Children...)
	clone.SubNodes = append([]string(nil), n.SubNodes...)
	clone.Media = append([]MediaItem(nil), n.Media...)
	if n.Data != nil {
		clone.Data = make(map[string]interface{}, len(n.Data))
		for k, v := range n.Data {
			clone.Data[k] = v
		}
	}
	if n.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(n.Metadata))
		for k, v := range n.Metadata {
			clone.Metadata[k] = v
		}
	}
	if n.Embeddings != nil {
		clone.Embeddings = make(map[string][]float32, len(n.Embeddings))
		for k, v := range n.Embeddings {
			clone.Embeddings[k] = append([]float32(nil), v...)
		}
	}
	return &clone
}

// Position returns the node's spatial coordinates
func (n *Node) Position() valueobjects.Position {
	pos, err := valueobjects.NewPosition(n.X, n.Y, n.Z)
	if err != nil {
		return valueobjects.Origin()
	}
	return pos
}

// SetPosition updates the node's spatial coordinates
func (n *Node) SetPosition(pos valueobjects.Position) {
	n.X = pos.X()
	n.Y = pos.Y()
	n.Z = pos.Z()
}

// MediaURLs returns the node's media URLs in insertion order. Order matters
// for content fingerprinting.
func (n *Node) MediaURLs() []string {
	urls := make([]string, 0, len(n.Media))
	for _, m := range n.Media {
		urls = append(urls, m.URL)
	}
	return urls
}

// ContentHash returns the fingerprint stored at the last successful embed,
// or "" when the node has never been embedded
func (n *Node) ContentHash() string {
	if n.Metadata == nil {
		return ""
	}
	if h, ok := n.Metadata[MetaContentHash].(string); ok {
		return h
	}
	return ""
}

// LastEmbedded returns the timestamp of the last successful embed
func (n *Node) LastEmbedded() (time.Time, bool) {
	if n.Metadata == nil {
		return time.Time{}, false
	}
	raw, ok := n.Metadata[MetaLastEmbedded].(string)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// HasEmbedding reports whether a vector is stored for the provider
func (n *Node) HasEmbedding(provider string) bool {
	return len(n.Embeddings[provider]) > 0
}
