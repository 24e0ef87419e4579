// Package config loads the process configuration.
// Values are merged as: defaults < TOML file < environment variables; the
// command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Addr     string `toml:"addr"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`

	// Server timeouts. Zero disables the write timeout so long relays are not cut short.
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`

	YouTube YouTube `toml:"youtube"`
	Storage Storage `toml:"storage"`
	Media   Media   `toml:"media"`
}

type YouTube struct {
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
}

type Storage struct {
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"` // S3-compatible endpoint; path-style addressing is used when set.
	Domain          string `toml:"domain"`   // Domain of the public object URLs.
}

type Media struct {
	TempDir   string `toml:"temp_dir"`
	Extension string `toml:"extension"`
	Format    string `toml:"format"`
	YtDlpPath string `toml:"ytdlp_path"`
	// Zero means the step is not bounded.
	DownloadTimeout time.Duration `toml:"download_timeout"`
	UploadTimeout   time.Duration `toml:"upload_timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Addr:        ":8000",
		ReadTimeout: 15 * time.Second,
		Storage: Storage{
			Region: "us-east-1",
			Domain: "s3.amazonaws.com",
		},
		Media: Media{
			TempDir:         os.TempDir(),
			Extension:       "mp4",
			Format:          "best",
			DownloadTimeout: 30 * time.Minute,
			UploadTimeout:   10 * time.Minute,
		},
	}
}

// Load reads the configuration file at path, if any, and applies the
// environment overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file %s: %v", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Addr = env("ADDR", c.Addr)
	c.CertFile = env("CERT_FILE", c.CertFile)
	c.KeyFile = env("CERT_KEY", c.KeyFile)
	c.YouTube.APIKey = env("YOUTUBE_API_KEY", c.YouTube.APIKey)
	c.YouTube.Endpoint = env("YOUTUBE_API_ENDPOINT", c.YouTube.Endpoint)
	c.Storage.AccessKeyID = env("AWS_ACCESS_KEY_ID", c.Storage.AccessKeyID)
	c.Storage.SecretAccessKey = env("AWS_SECRET_ACCESS_KEY", c.Storage.SecretAccessKey)
	c.Storage.Bucket = env("AWS_STORAGE_BUCKET_NAME", c.Storage.Bucket)
	c.Storage.Region = env("AWS_REGION", c.Storage.Region)
	c.Storage.Endpoint = env("AWS_S3_ENDPOINT", c.Storage.Endpoint)
	c.Storage.Domain = env("AWS_S3_DOMAIN", c.Storage.Domain)
	c.Media.TempDir = env("MEDIA_TEMP_DIR", c.Media.TempDir)
	c.Media.Extension = env("MEDIA_EXT", c.Media.Extension)
	c.Media.Format = env("MEDIA_FORMAT", c.Media.Format)
	c.Media.YtDlpPath = env("YTDLP_PATH", c.Media.YtDlpPath)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &c.ReadTimeout},
		{"WRITE_TIMEOUT", &c.WriteTimeout},
		{"DOWNLOAD_TIMEOUT", &c.Media.DownloadTimeout},
		{"UPLOAD_TIMEOUT", &c.Media.UploadTimeout},
	}
	for _, d := range durations {
		val := os.Getenv(d.key)
		if val == "" {
			continue
		}
		v, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("cannot parse %s: %v", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

// Validate reports the first setting the process cannot start without.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return errors.New("YouTube API key not set, please configure YOUTUBE_API_KEY")
	}
	if c.Storage.Bucket == "" {
		return errors.New("storage bucket not set, please configure AWS_STORAGE_BUCKET_NAME")
	}
	if (c.Storage.AccessKeyID == "") != (c.Storage.SecretAccessKey == "") {
		return errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}
	if c.Media.Extension == "" {
		return errors.New("media extension must not be empty")
	}
	if c.Media.DownloadTimeout < 0 || c.Media.UploadTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Get the value of environment variables.
func env(key string, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
