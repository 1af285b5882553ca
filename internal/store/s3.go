package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/bucketdrive/internal/common"
	"github.com/dmitrijs2005/bucketdrive/internal/drive/models"
)

// test seams, replaced in unit tests
var loadDefaultAWSConfig = config.LoadDefaultConfig

// Options configures the S3 client. BaseEndpoint is optional and
// points at MinIO-style deployments; when set, path-style addressing
// is used. DisableTagging turns tagging support off for store
// variants that lack the API.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BaseEndpoint    string
	DisableTagging  bool
}

// S3Client implements Client on top of aws-sdk-go-v2.
type S3Client struct {
	api     *s3.Client
	presign *s3.PresignClient
	tagging bool
}

var _ Client = (*S3Client)(nil)

// NewS3Client builds an S3Client from Options. Static credentials are
// used when provided; otherwise the default credential chain applies.
func NewS3Client(ctx context.Context, opts Options) (*S3Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		api:     api,
		presign: s3.NewPresignClient(api),
		tagging: !opts.DisableTagging,
	}, nil
}

func (c *S3Client) SignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("%w: presign get %s: %w", common.ErrStoreRequest, key, err)
	}
	return req.URL, nil
}

func (c *S3Client) ListObjects(ctx context.Context, req ListRequest) (*ListResult, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: &req.Bucket,
		Prefix: &req.Prefix,
	}
	if req.Delimiter != "" {
		in.Delimiter = &req.Delimiter
	}
	if req.ContinuationToken != "" {
		in.ContinuationToken = &req.ContinuationToken
	}

	out, err := c.api.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %w", common.ErrStoreRequest, req.Prefix, err)
	}

	res := &ListResult{
		IsTruncated: aws.ToBool(out.IsTruncated),
	}
	if res.IsTruncated {
		res.NextContinuationToken = aws.ToString(out.NextContinuationToken)
	}
	for _, obj := range out.Contents {
		res.Objects = append(res.Objects, Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	for _, cp := range out.CommonPrefixes {
		res.CommonPrefixes = append(res.CommonPrefixes, aws.ToString(cp.Prefix))
	}
	return res, nil
}

func (c *S3Client) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", common.ErrStoreRequest, key, err)
	}
	return nil
}

func (c *S3Client) DeleteObjects(ctx context.Context, bucket string, objKeys []string) error {
	if len(objKeys) == 0 {
		return nil
	}
	ids := make([]types.ObjectIdentifier, 0, len(objKeys))
	for i := range objKeys {
		ids = append(ids, types.ObjectIdentifier{Key: &objKeys[i]})
	}

	out, err := c.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &bucket,
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("%w: batch delete of %d keys: %w", common.ErrStoreRequest, len(objKeys), err)
	}
	if len(out.Errors) > 0 {
		e := out.Errors[0]
		return fmt.Errorf("%w: batch delete: %d keys failed, first %s: %s",
			common.ErrStoreRequest, len(out.Errors), aws.ToString(e.Key), aws.ToString(e.Message))
	}
	return nil
}

func (c *S3Client) SupportsTagging() bool {
	return c.tagging
}

func (c *S3Client) GetObjectTagging(ctx context.Context, bucket, key string) ([]models.Tag, error) {
	if !c.tagging {
		return nil, nil
	}
	out, err := c.api.GetObjectTagging(ctx, &s3.GetObjectTaggingInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get tagging %s: %w", common.ErrStoreRequest, key, err)
	}
	tags := make([]models.Tag, 0, len(out.TagSet))
	for _, t := range out.TagSet {
		tags = append(tags, models.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return tags, nil
}

func (c *S3Client) PutObjectTagging(ctx context.Context, bucket, key string, tags []models.Tag) error {
	set := make([]types.Tag, 0, len(tags))
	for i := range tags {
		set = append(set, types.Tag{Key: &tags[i].Key, Value: &tags[i].Value})
	}
	_, err := c.api.PutObjectTagging(ctx, &s3.PutObjectTaggingInput{
		Bucket:  &bucket,
		Key:     &key,
		Tagging: &types.Tagging{TagSet: set},
	})
	if err != nil {
		return fmt.Errorf("%w: put tagging %s: %w", common.ErrStoreRequest, key, err)
	}
	return nil
}

func (c *S3Client) CreateMultipartUpload(ctx context.Context, bucket, key, contentType string) (string, error) {
	out, err := c.api.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: create multipart upload %s: %w", common.ErrStoreRequest, key, err)
	}
	return aws.ToString(out.UploadId), nil
}

func (c *S3Client) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body io.Reader) (string, error) {
	out, err := c.api.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:     &bucket,
		Key:        &key,
		UploadId:   &uploadID,
		PartNumber: aws.Int32(partNumber),
		Body:       body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: upload part %d of %s: %w", common.ErrStoreRequest, partNumber, key, err)
	}
	return aws.ToString(out.ETag), nil
}

func (c *S3Client) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for i := range parts {
		completed = append(completed, types.CompletedPart{
			PartNumber: aws.Int32(parts[i].PartNumber),
			ETag:       &parts[i].ETag,
		})
	}
	_, err := c.api.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          &bucket,
		Key:             &key,
		UploadId:        &uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return fmt.Errorf("%w: complete multipart upload %s: %w", common.ErrStoreRequest, key, err)
	}
	return nil
}

func (c *S3Client) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	_, err := c.api.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   &bucket,
		Key:      &key,
		UploadId: &uploadID,
	})
	if err != nil {
		return fmt.Errorf("%w: abort multipart upload %s: %w", common.ErrStoreRequest, key, err)
	}
	return nil
}
