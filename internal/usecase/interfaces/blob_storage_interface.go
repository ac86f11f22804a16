package interfaces

import (
	"context"
	"io"
)

// Bucket is the logical bucket name; the adapter maps it to the configured one.
type Bucket string

const (
	BucketDocuments  Bucket = "documents"
	BucketSignatures Bucket = "signatures"
)

// IBlobStorage abstracts the object storage holding uploaded files.
type IBlobStorage interface {
	Upload(ctx context.Context, bucket Bucket, objectKey string, r io.Reader, size int64, contentType string) error
	PublicURL(ctx context.Context, bucket Bucket, objectKey string) (string, error)
}
