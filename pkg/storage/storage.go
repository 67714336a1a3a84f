package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// AssetStore abstracts the screenshot bucket. Results store either a bare
// object key resolved through GetPublicURL, or a full URL left as-is.
type AssetStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
