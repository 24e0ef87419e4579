// Package catalog looks up video metadata in the YouTube Data API.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/molpadia/molparelay/internal/domain/entity"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	errMissingSnippet   = errors.New("response has no snippet")
	errMissingThumbnail = errors.New("response has no high resolution thumbnail")
)

type YouTube struct {
	svc *youtube.Service
}

// Create a client of the YouTube Data API authenticated by the API key.
// Extra options are applied after the key, e.g. to override the endpoint.
func NewYouTube(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTube, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTube{svc}, nil
}

// Get the title and the high resolution thumbnail of the video by the video ID.
func (c *YouTube) GetById(ctx context.Context, id string) (*entity.VideoMetadata, error) {
	resp, err := c.svc.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list video %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, nil
	}
	return metadata(resp.Items[0])
}

func metadata(v *youtube.Video) (*entity.VideoMetadata, error) {
	if v.Snippet == nil {
		return nil, errMissingSnippet
	}
	// Only the high resolution variant is accepted.
	th := v.Snippet.Thumbnails
	if th == nil || th.High == nil || th.High.Url == "" {
		return nil, errMissingThumbnail
	}
	return &entity.VideoMetadata{
		Title:        v.Snippet.Title,
		ThumbnailURL: th.High.Url,
	}, nil
}
