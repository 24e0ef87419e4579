package persistence

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/molpadia/molparelay/internal/config"
)

type Uploader struct {
	s3Uploader *s3manager.Uploader
	bucket     string
	domain     string
}

// Create an AWS session from the storage settings.
// Static credentials are used when given, otherwise the default AWS credential chain applies.
// Every request is attempted once.
func NewSession(cfg config.Storage) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region:     aws.String(cfg.Region),
		MaxRetries: aws.Int(0),
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	return session.NewSession(awsCfg)
}

func NewUploader(sess *session.Session, bucket, domain string) *Uploader {
	return &Uploader{s3manager.NewUploader(sess), bucket, domain}
}

// Upload the local file to remote AWS S3 storage.
func (u *Uploader) Upload(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()

	input := &s3manager.UploadInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := contentType(key); ct != "" {
		input.ContentType = aws.String(ct)
	}
	log.Printf("uploading to S3 bucket: %s, key: %s", u.bucket, key)
	out, err := u.s3Uploader.UploadWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	log.Printf("uploaded video to %s", out.Location)
	return nil
}

// Get the content type of the object by the extension of its key.
func contentType(key string) string {
	switch ext := filepath.Ext(key); ext {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	default:
		return mime.TypeByExtension(ext)
	}
}

// Get the public URL of the object in the bucket.
func (u *Uploader) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", u.bucket, u.domain, key)
}
