package repository

import "context"

type Downloader interface {
	// Download the best combined audio and video stream of the source URL to the given path.
	Download(ctx context.Context, url, path string) error
}
