package app

import (
	"context"

	"github.com/molpadia/molparelay/internal/domain/entity"
	"github.com/molpadia/molparelay/internal/domain/repository"
)

// Look up video metadata in the catalog.
type MetadataService struct {
	catalog repository.Catalog
}

func NewMetadataService(catalog repository.Catalog) *MetadataService {
	return &MetadataService{catalog}
}

// Get the metadata of the video by the video ID.
// Fails with ErrNotFound when the catalog does not list the video and with
// ErrUpstream on any catalog failure. The catalog is asked exactly once.
func (s *MetadataService) Lookup(ctx context.Context, id string) (*entity.VideoMetadata, error) {
	md, err := s.catalog.GetById(ctx, id)
	if err != nil {
		return nil, wrap(ErrUpstream, err)
	}
	if md == nil {
		return nil, ErrNotFound
	}
	return md, nil
}
