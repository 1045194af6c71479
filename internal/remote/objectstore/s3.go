package objectstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/logging"
)

// URL lifetime for view/preview links. The remote store owns expiry; the
// core hands the links out as-is.
const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
	listObjects = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Store implements Store over an S3-compatible backend (MinIO in
// development) using static credentials and a base endpoint.
type S3Store struct {
	config *sc.Config
	log    logging.Logger
}

func NewS3Store(config *sc.Config, log logging.Logger) *S3Store {
	return &S3Store{config: config, log: log.With("component", "objectstore")}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

func (s *S3Store) Put(ctx context.Context, bucket, id string, body io.Reader, size int64) (*PutResult, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &id,
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.log.Error(ctx, "put object failed", "bucket", bucket, "id", id, "error", err)
		return nil, fmt.Errorf("put object %s/%s: %w", bucket, id, err)
	}

	now := time.Now().UTC()
	return &PutResult{
		BucketID:     bucket,
		ObjectID:     id,
		SizeOriginal: size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *S3Store) ViewURL(ctx context.Context, bucket, id string) (string, error) {
	return s.presignGet(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &id})
}

func (s *S3Store) PreviewURL(ctx context.Context, bucket, id string) (string, error) {
	disposition := "inline"
	return s.presignGet(ctx, &s3.GetObjectInput{
		Bucket:                     &bucket,
		Key:                        &id,
		ResponseContentDisposition: &disposition,
	})
}

func (s *S3Store) presignGet(ctx context.Context, in *s3.GetObjectInput) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, in, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign get %s/%s: %w", aws.ToString(in.Bucket), aws.ToString(in.Key), err)
	}
	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, bucket, id string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{Bucket: &bucket, Key: &id}); err != nil {
		s.log.Error(ctx, "delete object failed", "bucket", bucket, "id", id, "error", err)
		return fmt.Errorf("delete object %s/%s: %w", bucket, id, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, bucket string) ([]ObjectInfo, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := listObjects(client, ctx, &s3.ListObjectsV2Input{Bucket: &bucket})
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}

	result := make([]ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		info := ObjectInfo{ID: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		result = append(result, info)
	}
	return result, nil
}
