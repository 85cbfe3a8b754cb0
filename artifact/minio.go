package artifact

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ridoystarlord/schemato/errs"
)

// StorageConfig holds the settings needed to reach a MinIO or S3 endpoint.
type StorageConfig struct {
	// Endpoint is host:port, e.g. "localhost:9000".
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	// Region is only needed by region-aware backends.
	Region string `yaml:"region"`
}

// MinioWriter uploads artifacts as bucket objects. Paths have the form
// s3://bucket/key. It is safe for concurrent use.
type MinioWriter struct {
	client *miniogo.Client
}

// NewMinioWriter builds a client for cfg. It does not contact the server.
func NewMinioWriter(cfg StorageConfig) (*MinioWriter, error) {
	if cfg.Endpoint == "" {
		return nil, errs.New(errs.KindConfig, "storage endpoint is not configured")
	}
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "failed to create minio client", err)
	}
	return &MinioWriter{client: client}, nil
}

func (w *MinioWriter) Write(ctx context.Context, p string, data []byte) error {
	bucket, key, err := ParseObjectPath(p)
	if err != nil {
		return err
	}

	_, err = w.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType: contentType(key),
	})
	if err != nil {
		return mapError(err, "failed to upload "+p)
	}
	return nil
}

// contentType avoids the platform mime table, which maps .ts to MPEG video.
func contentType(key string) string {
	if path.Ext(key) == ".json" {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func mapError(err error, msg string) *errs.Error {
	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchBucket" {
			return errs.Wrap(errs.KindNotFound, msg, err)
		}
		switch resp.Code {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errs.Wrap(errs.KindConfig, msg, err)
		}
	}
	return errs.Wrap(errs.KindUnknown, msg, err)
}
