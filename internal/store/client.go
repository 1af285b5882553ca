// Package store abstracts the S3-compatible object store behind the
// small operation set the drive core needs. The concrete client wraps
// aws-sdk-go-v2 and works against AWS S3 as well as MinIO-style
// endpoints.
package store

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

// MaxDeleteBatch is the store's limit on keys per multi-delete request.
const MaxDeleteBatch = 1000

// Object is one entry of a listing page.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListRequest describes one page request of a delimiter listing.
// An empty ContinuationToken requests the first page.
type ListRequest struct {
	Bucket            string
	Prefix            string
	Delimiter         string
	ContinuationToken string
}

// ListResult is one page of a delimiter listing. When IsTruncated is
// true, NextContinuationToken fetches the following page.
type ListResult struct {
	Objects               []Object
	CommonPrefixes        []string
	IsTruncated           bool
	NextContinuationToken string
}

// CompletedPart identifies one successfully uploaded part of a
// multipart upload.
type CompletedPart struct {
	PartNumber int32
	ETag       string
}

// Client is the operation set the drive core uses against the store.
// Implementations must be safe for concurrent use.
type Client interface {
	// SignedGetURL mints a time-limited read URL for an object.
	SignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)

	// ListObjects fetches a single listing page.
	ListObjects(ctx context.Context, req ListRequest) (*ListResult, error)

	// DeleteObject removes one object.
	DeleteObject(ctx context.Context, bucket, key string) error

	// DeleteObjects removes up to MaxDeleteBatch objects in one call.
	DeleteObjects(ctx context.Context, bucket string, objKeys []string) error

	// SupportsTagging reports whether the store variant implements
	// object tagging. When false, tag reads return empty sets and tag
	// writes are rejected.
	SupportsTagging() bool

	// GetObjectTagging fetches the full tag set of an object.
	GetObjectTagging(ctx context.Context, bucket, key string) ([]models.Tag, error)

	// PutObjectTagging replaces the full tag set of an object.
	PutObjectTagging(ctx context.Context, bucket, key string, tags []models.Tag) error

	// CreateMultipartUpload starts a multipart upload and returns its id.
	CreateMultipartUpload(ctx context.Context, bucket, key, contentType string) (string, error)

	// UploadPart sends one part and returns the store's ETag for it.
	UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body io.Reader) (string, error)

	// CompleteMultipartUpload assembles the uploaded parts into the
	// final object.
	CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error

	// AbortMultipartUpload discards an in-progress multipart upload
	// and any parts stored so far.
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error
}
