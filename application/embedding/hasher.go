// Package embedding tracks whether node embeddings are stale and drives
// their recomputation across the configured providers.
package embedding

import (
	"strconv"
	"strings"

	"nexus-backend/domain/core/entities"
)

// HashContent computes a stable fingerprint of a node's embeddable content:
// title, summary, body and the ordered media URLs. It is a change detector,
// not a security boundary, so a simple djb2 reduction is enough.
func HashContent(node *entities.Node) string {
	content := strings.Join([]string{
		node.Title,
		node.Summary,
		node.Content,
		strings.Join(node.MediaURLs(), "|"),
	}, "::")

	var hash uint32 = 5381
	for i := 0; i < len(content); i++ {
		hash = hash*33 + uint32(content[i])
	}
	return strconv.FormatUint(uint64(hash), 16)
}
