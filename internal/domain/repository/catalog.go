package repository

import (
	"context"

	"github.com/molpadia/molparelay/internal/domain/entity"
)

type Catalog interface {
	// Get the metadata of the video by the video ID.
	// A nil metadata without error means the catalog does not list the video.
	GetById(ctx context.Context, id string) (*entity.VideoMetadata, error)
}
