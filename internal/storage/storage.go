package storage

import "context"

// ObjectInfo represents metadata for a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the
// export flow needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	PresignedURL(ctx context.Context, key string) (string, error)
}
