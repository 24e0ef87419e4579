package persistence

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/molpadia/molparelay/internal/config"
)

type s3Request struct {
	method, path, contentType string
	body                      []byte
}

// Start a fake S3 endpoint replying with the given status code.
func newS3Server(t *testing.T, status int, requests *[]s3Request) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*requests = append(*requests, s3Request{r.Method, r.URL.Path, r.Header.Get("Content-Type"), body})
		if status != http.StatusOK {
			w.WriteHeader(status)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"b54357faf0632cce46e942fa68356b38"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestUploader(t *testing.T, endpoint string) *Uploader {
	sess, err := NewSession(config.Storage{
		AccessKeyID:     "AKID",
		SecretAccessKey: "SECRET",
		Region:          "us-east-1",
		Endpoint:        endpoint,
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewUploader(sess, "molpa-videos", "s3.amazonaws.com")
}

func writeVideo(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "abc123.mp4")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpload(t *testing.T) {
	var requests []s3Request
	srv := newS3Server(t, http.StatusOK, &requests)
	u := newTestUploader(t, srv.URL)

	if err := u.Upload(context.Background(), "videos/abc123.mp4", writeVideo(t, "video bytes")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	req := requests[0]
	if req.method != http.MethodPut {
		t.Errorf("expected method (PUT), got (%s)", req.method)
	}
	if req.path != "/molpa-videos/videos/abc123.mp4" {
		t.Errorf("expected path (/molpa-videos/videos/abc123.mp4), got (%s)", req.path)
	}
	if req.contentType != "video/mp4" {
		t.Errorf("expected content type (video/mp4), got (%s)", req.contentType)
	}
	if string(req.body) != "video bytes" {
		t.Errorf("expected body (video bytes), got (%s)", req.body)
	}
}

func TestUploadFailure(t *testing.T) {
	var requests []s3Request
	srv := newS3Server(t, http.StatusForbidden, &requests)
	u := newTestUploader(t, srv.URL)

	if err := u.Upload(context.Background(), "videos/abc123.mp4", writeVideo(t, "video bytes")); err == nil {
		t.Fatal("expected upload error, got nil")
	}
	if len(requests) != 1 {
		t.Errorf("expected a single attempt, got %d", len(requests))
	}
}

func TestUploadMissingFile(t *testing.T) {
	u := newTestUploader(t, "http://127.0.0.1:1")
	if err := u.Upload(context.Background(), "videos/abc123.mp4", filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected error for a missing file, got nil")
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		key, contentType string
	}{
		{"videos/abc123.mp4", "video/mp4"},
		{"videos/abc123.webm", "video/webm"},
		{"videos/abc123.mkv", "video/x-matroska"},
		{"videos/abc123", ""},
	}
	for _, tt := range tests {
		if ct := contentType(tt.key); ct != tt.contentType {
			t.Errorf("expected content type (%s) for %s, got (%s)", tt.contentType, tt.key, ct)
		}
	}
}

func TestURL(t *testing.T) {
	u := newTestUploader(t, "")
	expected := "https://molpa-videos.s3.amazonaws.com/videos/abc123.mp4"
	if url := u.URL("videos/abc123.mp4"); url != expected {
		t.Errorf("expected url (%s), got (%s)", expected, url)
	}
}
