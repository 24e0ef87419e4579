package repository

import "context"

type Uploader interface {
	// Upload the local file to the remote storage under the given key.
	Upload(ctx context.Context, key, path string) error
	// Get the public URL of the object stored under the given key.
	URL(key string) string
}
