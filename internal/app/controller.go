package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/molpadia/molparelay/internal/videoid"
)

const MaxRequestSize = 1 << 20

type controller struct {
	metadata *MetadataService
	relay    *Relay
}

// Get the title and the thumbnail of a video.
func (c *controller) fetchVideo(w http.ResponseWriter, r *http.Request) error {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		return &AppError{http.StatusBadRequest, "No URL provided"}
	}
	id, ok := videoid.Extract(rawURL)
	if !ok {
		return &AppError{http.StatusBadRequest, "Invalid YouTube URL"}
	}
	md, err := c.metadata.Lookup(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		return &AppError{http.StatusNotFound, "Video not found"}
	case errors.Is(err, ErrUpstream):
		return &AppError{http.StatusInternalServerError, fmt.Sprintf("Error fetching video metadata: %s", cause(err))}
	case err != nil:
		return err
	}
	return replyJSON(w, VideoResponse{md.Title, md.ThumbnailURL}, http.StatusOK)
}

// Download a video and upload it to the remote storage.
func (c *controller) downloadVideo(w http.ResponseWriter, r *http.Request) error {
	rawURL := requestURL(w, r)
	if rawURL == "" {
		return &AppError{http.StatusBadRequest, "No URL provided"}
	}
	obj, err := c.relay.Relay(r.Context(), rawURL)
	switch {
	case errors.Is(err, ErrInvalidURL):
		return &AppError{http.StatusBadRequest, "Invalid YouTube URL"}
	case errors.Is(err, ErrArtifactNotFound):
		return &AppError{http.StatusInternalServerError, "Downloaded file not found."}
	case errors.Is(err, ErrDownloadFailed):
		return &AppError{http.StatusInternalServerError, fmt.Sprintf("Download error: %s", cause(err))}
	case errors.Is(err, ErrUploadFailed):
		return &AppError{http.StatusInternalServerError, fmt.Sprintf("S3 upload failed: %s", cause(err))}
	case err != nil:
		return &AppError{http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %s", cause(err))}
	}
	return replyJSON(w, DownloadResponse{"Video uploaded successfully.", obj.URL}, http.StatusOK)
}

// Get the video URL from the form body of a submission, or from the query string.
func requestURL(w http.ResponseWriter, r *http.Request) string {
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, MaxRequestSize)
		if v := r.PostFormValue("url"); v != "" {
			return v
		}
	}
	return r.URL.Query().Get("url")
}

// Respond the output with JSON format to the client.
func replyJSON(w http.ResponseWriter, data interface{}, code int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return err
	}
	return nil
}
