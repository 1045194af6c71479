// Package objectstore defines the remote binary-blob storage contract
// consumed by the upload and mutation services, plus its S3 adapter.
package objectstore

import (
	"context"
	"io"
	"time"
)

// PutResult describes a stored object as reported by the store.
type PutResult struct {
	BucketID     string
	ObjectID     string
	SizeOriginal int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ObjectInfo is one entry of a bucket listing.
type ObjectInfo struct {
	ID           string
	Size         int64
	LastModified time.Time
}

// Store is the object-store collaborator. Buckets hold opaque objects
// addressed by client-generated ids.
type Store interface {
	// Put uploads the binary under the given id.
	Put(ctx context.Context, bucket, id string, body io.Reader, size int64) (*PutResult, error)

	// ViewURL returns a URL serving the object for direct viewing.
	ViewURL(ctx context.Context, bucket, id string) (string, error)

	// PreviewURL returns a URL serving an inline preview of the object.
	PreviewURL(ctx context.Context, bucket, id string) (string, error)

	// Delete removes the object. Deleting an absent object is not an error.
	Delete(ctx context.Context, bucket, id string) error

	// List returns the bucket's objects, bounded by the store's page size.
	List(ctx context.Context, bucket string) ([]ObjectInfo, error)
}
