// Package embedding implements the provider adapters behind the Embedder
// port: Gemini and OpenAI through eino, Voyage through its HTTP API.
package embedding

import (
	"strings"

	"nexus-backend/domain/core/entities"
)

// embeddableText flattens a node into the text the providers embed
func embeddableText(node *entities.Node) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{node.Title, node.Summary, node.Content} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// visualMedia filters the node's media down to embeddable visuals
func visualMedia(node *entities.Node) []entities.MediaItem {
	items := make([]entities.MediaItem, 0, len(node.Media))
	for _, m := range node.Media {
		if m.URL != "" && (m.Type == "image" || m.Type == "video") {
			items = append(items, m)
		}
	}
	return items
}

func toFloat32(vector []float64) []float32 {
	out := make([]float32, len(vector))
	for i, f := range vector {
		out[i] = float32(f)
	}
	return out
}
