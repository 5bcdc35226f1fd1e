// Package storage keeps movie renditions and subtitle tracks in an object store.
package storage

import (
	"context"
	"time"
)

// Object is one stored file. LastModified is nil when the store omits it.
type Object struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

type UploadOptions struct {
	Bucket    string
	KeyPrefix string
	// Progress, when set, receives uploaded and total bytes.
	Progress func(done, total int64)
}

// Reader is the read side used to build player sources.
type Reader interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// Writer publishes and removes a movie's media.
type Writer interface {
	UploadDirectory(ctx context.Context, localPath string, opts UploadOptions) (string, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
}

type Service interface {
	Reader
	Writer
}
