// Package storage holds the object store behind dataset distributions.
// All access is streaming: distribution bytes never land on local disk and
// are never buffered whole in memory.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions are optional upload parameters. Size should be the exact
// byte count when known; -1 lets the backend chunk as it supports.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored distribution object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object store for distribution content.
type Storage interface {
	// Put uploads an object under the given key from the reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns an object's content as a streaming reader plus its info.
	// The caller owns the reader and must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for credential-less download.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
