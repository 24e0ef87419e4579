package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/molpadia/molparelay/internal/domain/entity"
	"github.com/molpadia/molparelay/internal/domain/repository"
	"github.com/molpadia/molparelay/internal/videoid"
)

type RelayOptions struct {
	TempDir   string // Directory the videos are downloaded to.
	Extension string // Extension of the downloaded and stored files.
	// Zero leaves the step unbounded.
	DownloadTimeout time.Duration
	UploadTimeout   time.Duration
}

// Download videos to a local file and relay them to the remote storage.
type Relay struct {
	downloader repository.Downloader
	uploader   repository.Uploader
	opts       RelayOptions
	remove     func(string) error
}

func NewRelay(downloader repository.Downloader, uploader repository.Uploader, opts RelayOptions) *Relay {
	return &Relay{downloader, uploader, opts, os.RemoveAll}
}

// Relay the video behind the URL to the remote storage and return where it was stored.
//
// The local files only live for the duration of the call: the work directory is
// removed on every return path, and a failed removal is logged without replacing the result.
func (s *Relay) Relay(ctx context.Context, rawURL string) (obj *entity.StorageObject, err error) {
	id, ok := videoid.Extract(rawURL)
	if !ok || !videoid.Valid(id) {
		return nil, ErrInvalidURL
	}
	if err := os.MkdirAll(s.opts.TempDir, 0o755); err != nil {
		return nil, wrap(ErrInternal, fmt.Errorf("cannot create temp directory: %v", err))
	}
	// Each call works in its own directory, so concurrent relays of the same video
	// never share a file and the tool's partial files go away with it.
	dir := filepath.Join(s.opts.TempDir, id+"-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, wrap(ErrInternal, fmt.Errorf("cannot create work directory: %v", err))
	}
	defer s.cleanup(dir)
	defer func() {
		if v := recover(); v != nil {
			obj, err = nil, wrap(ErrInternal, fmt.Errorf("%v", v))
		}
	}()

	path := filepath.Join(dir, id+"."+s.opts.Extension)
	if err := s.download(ctx, rawURL, path); err != nil {
		return nil, wrap(ErrDownloadFailed, err)
	}
	// The tool's own success is not trusted without the file it was asked to write.
	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		return nil, ErrArtifactNotFound
	}

	key := entity.StorageKey(id, s.opts.Extension)
	if err := s.upload(ctx, key, path); err != nil {
		return nil, wrap(ErrUploadFailed, err)
	}
	return &entity.StorageObject{Key: key, URL: s.uploader.URL(key)}, nil
}

func (s *Relay) download(ctx context.Context, url, path string) error {
	ctx, cancel := withTimeout(ctx, s.opts.DownloadTimeout)
	defer cancel()
	return s.downloader.Download(ctx, url, path)
}

func (s *Relay) upload(ctx context.Context, key, path string) error {
	ctx, cancel := withTimeout(ctx, s.opts.UploadTimeout)
	defer cancel()
	return s.uploader.Upload(ctx, key, path)
}

func (s *Relay) cleanup(dir string) {
	if err := s.remove(dir); err != nil {
		log.Printf("failed to clean up directory: %s, error: %v", dir, err)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
