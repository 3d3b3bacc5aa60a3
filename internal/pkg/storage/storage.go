package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where snapshots live. The local implementation
// serves development; an S3-style store can slot in behind the same
// interface.
type FileStorage interface {
	// Upload stores the file and returns the storage path/key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the stored file can be fetched from. expiry is
	// ignored by stores that serve static URLs.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
