package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/molpadia/molparelay/internal/app"
	"github.com/molpadia/molparelay/internal/config"
	"github.com/molpadia/molparelay/internal/infrastructure/catalog"
	"github.com/molpadia/molparelay/internal/infrastructure/extractor"
	"github.com/molpadia/molparelay/internal/infrastructure/persistence"
	"google.golang.org/api/option"
)

// Build the services from the configuration and register API endpoints to a new router.
func newRouter(ctx context.Context, cfg *config.Config) (*mux.Router, error) {
	var opts []option.ClientOption
	if cfg.YouTube.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.YouTube.Endpoint))
	}
	yt, err := catalog.NewYouTube(ctx, cfg.YouTube.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	sess, err := persistence.NewSession(cfg.Storage)
	if err != nil {
		return nil, err
	}
	uploader := persistence.NewUploader(sess, cfg.Storage.Bucket, cfg.Storage.Domain)
	downloader := extractor.NewYtDlp(cfg.Media.Format, cfg.Media.YtDlpPath)

	r := mux.NewRouter()
	app.SetupRoutes(r, app.NewMetadataService(yt), app.NewRelay(downloader, uploader, app.RelayOptions{
		TempDir:         cfg.Media.TempDir,
		Extension:       cfg.Media.Extension,
		DownloadTimeout: cfg.Media.DownloadTimeout,
		UploadTimeout:   cfg.Media.UploadTimeout,
	}))
	return r, nil
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Handler:      h,
		Addr:         cfg.Addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
