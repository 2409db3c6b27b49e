package ports

import "context"

// MediaRef identifies an uploaded media binary.
type MediaRef struct {
	ID  string
	URL string
}

// MediaStore is the object storage capability for media binaries.
type MediaStore interface {
	// Upload stores a binary and returns its id and public URL.
	Upload(ctx context.Context, data []byte, name, mimeType string) (MediaRef, error)

	// Download fetches a binary by URL. A nil slice with a nil error means
	// the binary was not retrievable, which embedders treat as a skip.
	Download(ctx context.Context, url string) ([]byte, error)

	// Delete removes a stored binary.
	Delete(ctx context.Context, id, name string) error
}
