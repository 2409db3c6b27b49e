package entities

import (
	"time"

	"nexus-backend/domain/schema"
)

// Field names shared with the storage layer.
const (
	TableNode = "node"
	TableEdge = "edge"
)

// Fields flattens the node into the loosely-typed shape the storage layer
// persists. Embedding vectors become one embedding_<provider> field each.
func (n *Node) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"id":         n.ID,
		"type":       n.Type,
		"title":      n.Title,
		"summary":    n.Summary,
		"content":    n.Content,
		"color":      n.Color,
		"val":        n.Val,
		"x":          n.X,
		"y":          n.Y,
		"z":          n.Z,
		"created_at": n.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": n.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if len(n.Parents) > 0 {
		fields["parents"] = n.Parents
	}
	if len(n.Children) > 0 {
		fields["children"] = n.Children
	}
	if len(n.SubNodes) > 0 {
		fields["subnodes"] = n.SubNodes
	}
	if len(n.Media) > 0 {
		media := make([]map[string]interface{}, 0, len(n.Media))
		for _, m := range n.Media {
			media = append(media, map[string]interface{}{
				"id":        m.ID,
				"name":      m.Name,
				"type":      m.Type,
				"url":       m.URL,
				"mime_type": m.MimeType,
			})
		}
		fields["media"] = media
	}
	if len(n.Data) > 0 {
		fields["data"] = n.Data
	}
	if len(n.Metadata) > 0 {
		fields["metadata"] = n.Metadata
	}
	for provider, vector := range n.Embeddings {
		fields["embedding_"+provider] = vector
	}
	return fields
}

// NodeFromFields rebuilds a node from its stored shape. Unknown fields are
// ignored, missing ones default.
func NodeFromFields(fields map[string]interface{}) *Node {
	n := &Node{
		ID:       asString(fields["id"]),
		Type:     asString(fields["type"]),
		Title:    asString(fields["title"]),
		Summary:  asString(fields["summary"]),
		Content:  asString(fields["content"]),
		Color:    asString(fields["color"]),
		Val:      asFloat(fields["val"]),
		X:        asFloat(fields["x"]),
		Y:        asFloat(fields["y"]),
		Z:        asFloat(fields["z"]),
		Parents:  asStrings(fields["parents"]),
		Children: asStrings(fields["children"]),
		SubNodes: asStrings(fields["subnodes"]),
		Data:     asMap(fields["data"]),
		Metadata: asMap(fields["metadata"]),
	}
	if n.Metadata == nil {
		n.Metadata = make(map[string]interface{})
	}
	for _, m := range asMaps(fields["media"]) {
		n.Media = append(n.Media, MediaItem{
			ID:       asString(m["id"]),
			Name:     asString(m["name"]),
			Type:     asString(m["type"]),
			URL:      asString(m["url"]),
			MimeType: asString(m["mime_type"]),
		})
	}
	for key, value := range fields {
		if len(key) > len("embedding_") && key[:len("embedding_")] == "embedding_" {
			if vector := asVector(value); vector != nil {
				if n.Embeddings == nil {
					n.Embeddings = make(map[string][]float32)
				}
				n.Embeddings[key[len("embedding_"):]] = vector
			}
		}
	}
	if ts, err := time.Parse(time.RFC3339, asString(fields["created_at"])); err == nil {
		n.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, asString(fields["updated_at"])); err == nil {
		n.UpdatedAt = ts
	}
	return n
}

// Fields flattens the edge into its stored shape.
func (e *Edge) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"id":         e.ID,
		"source":     e.Source,
		"target":     e.Target,
		"type":       e.Type,
		"nature":     string(e.Nature),
		"strength":   e.Strength,
		"weight":     e.Weight,
		"created_at": e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(e.Data) > 0 {
		fields["data"] = e.Data
	}
	if len(e.Metadata) > 0 {
		fields["metadata"] = e.Metadata
	}
	return fields
}

// EdgeFromFields rebuilds an edge from its stored shape.
func EdgeFromFields(fields map[string]interface{}) *Edge {
	e := &Edge{
		ID:       asString(fields["id"]),
		Source:   asString(fields["source"]),
		Target:   asString(fields["target"]),
		Type:     asString(fields["type"]),
		Strength: asFloat(fields["strength"]),
		Weight:   asFloat(fields["weight"]),
		Data:     asMap(fields["data"]),
		Metadata: asMap(fields["metadata"]),
	}
	e.Nature = edgeNatureFrom(asString(fields["nature"]))
	if ts, err := time.Parse(time.RFC3339, asString(fields["created_at"])); err == nil {
		e.CreatedAt = ts
	}
	return e
}

func edgeNatureFrom(s string) schema.EdgeNature {
	n := schema.EdgeNature(s)
	if n.IsValid() {
		return n
	}
	return schema.EdgeNatureLink
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asMaps normalizes a stored list of objects. DynamoDB unmarshals lists as
// []interface{}, the in-memory store keeps the typed slice.
func asMaps(v interface{}) []map[string]interface{} {
	switch ms := v.(type) {
	case []map[string]interface{}:
		return ms
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(ms))
		for _, item := range ms {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asStrings(v interface{}) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asVector(v interface{}) []float32 {
	switch vec := v.(type) {
	case []float32:
		return vec
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out
	case []interface{}:
		out := make([]float32, 0, len(vec))
		for _, item := range vec {
			out = append(out, float32(asFloat(item)))
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
