// Package artifact persists generated text (SQL scripts, type definitions,
// diagrams) to its destination.
//
// A destination is either a local path or an object in a bucket, written as
// s3://bucket/key:
//
//	w, err := artifact.ForPath("s3://schemas/build.sql", cfg.Storage)
//	if err != nil { ... }
//	err = w.Write(ctx, "s3://schemas/build.sql", []byte(script))
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ridoystarlord/schemato/errs"
)

// Writer stores data at path.
type Writer interface {
	Write(ctx context.Context, path string, data []byte) error
}

// FileWriter writes to the local file system, creating parent directories.
type FileWriter struct{}

func (FileWriter) Write(_ context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.Wrap(errs.KindUnknown, "creating directory "+dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Wrap(errs.KindUnknown, "writing "+path, err)
	}
	return nil
}

const s3Scheme = "s3://"

// IsRemote reports whether path names a bucket object.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// ParseObjectPath splits s3://bucket/key into its bucket and key.
func ParseObjectPath(path string) (bucket, key string, err error) {
	if !IsRemote(path) {
		return "", "", errs.Newf(errs.KindConfig, "%q is not an s3:// path", path)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(path, s3Scheme), "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", errs.Newf(errs.KindConfig, "%q must name a bucket and an object key", path)
	}
	return bucket, key, nil
}

// ForPath picks the writer for path. Bucket paths need a storage endpoint.
func ForPath(path string, storage StorageConfig) (Writer, error) {
	if !IsRemote(path) {
		return FileWriter{}, nil
	}
	return NewMinioWriter(storage)
}
