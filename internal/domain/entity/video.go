package entity

import "fmt"

// Prefix of the storage keys the relayed videos are uploaded under.
const StorageKeyPrefix = "videos"

// The descriptive fields of a video listed by the catalog.
type VideoMetadata struct {
	Title        string
	ThumbnailURL string
}

// The location a relayed video was copied to in the remote storage.
type StorageObject struct {
	Key string // Object key in the bucket.
	URL string // Public, non-expiring URL of the object.
}

// Get the storage key of the video file with the given ID and extension.
func StorageKey(id, ext string) string {
	return fmt.Sprintf("%s/%s.%s", StorageKeyPrefix, id, ext)
}
