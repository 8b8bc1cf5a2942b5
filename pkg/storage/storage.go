package storage

import (
	"context"
	"time"
)

// Service stores certificate documents and hands out short-lived links to them.
type Service interface {
	// Upload stores the file at localFilePath under folder and returns the
	// permanent document key.
	Upload(ctx context.Context, localFilePath, folder string) (string, error)

	// SignedURL returns a link to the document that expires after the given
	// duration.
	SignedURL(ctx context.Context, documentKey string, expires time.Duration) (string, error)

	// Delete removes a stored document.
	Delete(ctx context.Context, documentKey string) error
}
