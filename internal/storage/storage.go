package storage

import (
	"context"
	"io"
)

// Storage abstracts saving and deleting uploaded image files. The local
// filesystem implementation can be swapped for S3 / Cloudflare R2 without
// touching the handlers.
type Storage interface {
	// Save stores the file under key and returns its public URL.
	// key is a unique path inside the store, e.g. "campaigns/<id>/<uuid>.jpg".
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete removes the file stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
