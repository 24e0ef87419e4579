package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Clear the environment overrides the host may carry.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ADDR", "CERT_FILE", "CERT_KEY", "YOUTUBE_API_KEY", "YOUTUBE_API_ENDPOINT",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_STORAGE_BUCKET_NAME", "AWS_REGION",
		"AWS_S3_ENDPOINT", "AWS_S3_DOMAIN", "MEDIA_TEMP_DIR", "MEDIA_EXT", "MEDIA_FORMAT", "YTDLP_PATH",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "DOWNLOAD_TIMEOUT", "UPLOAD_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Media.Extension != "mp4" {
		t.Errorf("expected extension (mp4), got (%s)", cfg.Media.Extension)
	}
	if cfg.Media.Format != "best" {
		t.Errorf("expected format (best), got (%s)", cfg.Media.Format)
	}
	if cfg.Storage.Domain != "s3.amazonaws.com" {
		t.Errorf("expected domain (s3.amazonaws.com), got (%s)", cfg.Storage.Domain)
	}
	if cfg.WriteTimeout != 0 {
		t.Errorf("expected unbounded write timeout, got (%v)", cfg.WriteTimeout)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
addr = ":9000"

[youtube]
api_key = "file-key"

[storage]
bucket = "file-bucket"
region = "eu-west-1"

[media]
download_timeout = "5m"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	clearEnv(t)
	t.Setenv("AWS_STORAGE_BUCKET_NAME", "env-bucket")
	t.Setenv("UPLOAD_TIMEOUT", "90s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("expected addr (:9000), got (%s)", cfg.Addr)
	}
	if cfg.YouTube.APIKey != "file-key" {
		t.Errorf("expected api key (file-key), got (%s)", cfg.YouTube.APIKey)
	}
	if cfg.Storage.Bucket != "env-bucket" {
		t.Errorf("expected bucket (env-bucket), got (%s)", cfg.Storage.Bucket)
	}
	if cfg.Storage.Region != "eu-west-1" {
		t.Errorf("expected region (eu-west-1), got (%s)", cfg.Storage.Region)
	}
	if cfg.Media.DownloadTimeout != 5*time.Minute {
		t.Errorf("expected download timeout (5m), got (%v)", cfg.Media.DownloadTimeout)
	}
	if cfg.Media.UploadTimeout != 90*time.Second {
		t.Errorf("expected upload timeout (90s), got (%v)", cfg.Media.UploadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for a missing config file")
	}
	t.Setenv("DOWNLOAD_TIMEOUT", "soon")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "DOWNLOAD_TIMEOUT") {
		t.Errorf("expected DOWNLOAD_TIMEOUT parse error, got (%v)", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.YouTube.APIKey = "key"
		cfg.Storage.Bucket = "bucket"
		return cfg
	}
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing api key", func(c *Config) { c.YouTube.APIKey = "" }, "YOUTUBE_API_KEY"},
		{"missing bucket", func(c *Config) { c.Storage.Bucket = "" }, "AWS_STORAGE_BUCKET_NAME"},
		{"half credentials", func(c *Config) { c.Storage.AccessKeyID = "id" }, "must be set together"},
		{"static credentials", func(c *Config) { c.Storage.AccessKeyID, c.Storage.SecretAccessKey = "id", "secret" }, ""},
		{"empty extension", func(c *Config) { c.Media.Extension = "" }, "extension"},
		{"negative timeout", func(c *Config) { c.Media.UploadTimeout = -time.Second }, "negative"},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.modify(cfg)
		err := cfg.Validate()
		if tt.errMsg == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
			t.Errorf("%s: expected error containing (%s), got (%v)", tt.name, tt.errMsg, err)
		}
	}
}
