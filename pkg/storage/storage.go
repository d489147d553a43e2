// Package storage publishes generated artifacts.
//
// A [Store] writes bytes under a key and reports where they ended up. The
// CLI writes to the local filesystem by default and to S3 (or any
// S3-compatible server) when the output is an s3:// URL.
package storage

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/observability"
)

// Store writes artifacts.
type Store interface {
	// Put stores data under key and returns its location (a path or URL).
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Target is a parsed s3:// destination.
type Target struct {
	Bucket string
	Key    string
}

// IsS3 reports whether dest is an s3:// URL.
func IsS3(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}

// ParseTarget splits "s3://bucket/key" into bucket and key. The key may be
// empty (bucket root) or a prefix ending in "/".
func ParseTarget(dest string) (Target, error) {
	if !IsS3(dest) {
		return Target{}, errors.New(errors.ErrCodeInvalidPath, "not an s3 url: %q", dest)
	}
	u, err := url.Parse(dest)
	if err != nil {
		return Target{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "parse %q", dest)
	}
	if u.Host == "" {
		return Target{}, errors.New(errors.ErrCodeInvalidPath, "missing bucket in %q", dest)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key != "" && !strings.HasSuffix(key, "/") {
		if err := errors.ValidateObjectKey(key); err != nil {
			return Target{}, err
		}
	}
	return Target{Bucket: u.Host, Key: key}, nil
}

// JoinKey appends name to a key prefix.
func JoinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if strings.HasSuffix(prefix, "/") {
		return prefix + name
	}
	return prefix + "/" + name
}

// Publish writes data through s and reports the upload to the storage hooks.
func Publish(ctx context.Context, s Store, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	loc, err := s.Put(ctx, key, contentType, data)
	where := loc
	if where == "" {
		where = key
	}
	observability.Storage().OnUpload(ctx, where, len(data), time.Since(start), err)
	return loc, err
}
