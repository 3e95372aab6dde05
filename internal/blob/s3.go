package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"triptic/internal/triptic"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3BlobStore stores blobs as {prefix}/{uuid}.{ext} objects in an S3 bucket.
// Signage images are small, so plain single-call PutObject is used.
type S3BlobStore struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Options configures an S3BlobStore. AccessKeyID/SecretAccessKey are
// optional; when empty the default AWS credential chain is used.
type S3Options struct {
	Bucket          string
	Prefix          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3BlobStore creates a blob store backed by an S3 bucket.
func NewS3BlobStore(ctx context.Context, opts S3Options) (*S3BlobStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3BlobStore{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
	}, nil
}

func (s *S3BlobStore) key(id, ext string) string {
	return path.Join(s.prefix, id+ext)
}

// Store writes data under a fresh random UUID and returns the UUID.
func (s *S3BlobStore) Store(data []byte, ext string) (string, error) {
	id := uuid.New().String()
	if err := s.StoreAs(id, data, ext); err != nil {
		return "", err
	}
	return id, nil
}

// StoreAs writes data under a caller-chosen UUID.
func (s *S3BlobStore) StoreAs(id string, data []byte, ext string) error {
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id, normalizeExt(ext))),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("uploading blob %s: %w", id, err)
	}
	return nil
}

// Fetch returns the stored bytes for the UUID, probing the known extensions
// in order.
func (s *S3BlobStore) Fetch(id string) ([]byte, error) {
	ctx := context.Background()
	for _, ext := range knownExtensions {
		resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(id, ext)),
		})
		if err != nil {
			var nsk *s3types.NoSuchKey
			if errors.As(err, &nsk) {
				continue
			}
			return nil, fmt.Errorf("fetching blob %s: %w", id, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading blob %s: %w", id, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("blob %s: %w", id, triptic.ErrNotFound)
}

// Delete removes the blob if present. Idempotent.
func (s *S3BlobStore) Delete(id string) (bool, error) {
	ctx := context.Background()
	removed := false
	for _, ext := range knownExtensions {
		key := s.key(id, ext)
		if !s.keyExists(ctx, key) {
			continue
		}
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return removed, fmt.Errorf("deleting blob %s: %w", id, err)
		}
		removed = true
	}
	return removed, nil
}

// Exists reports whether a blob is stored under the UUID.
func (s *S3BlobStore) Exists(id string) (bool, error) {
	ctx := context.Background()
	for _, ext := range knownExtensions {
		if s.keyExists(ctx, s.key(id, ext)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *S3BlobStore) keyExists(ctx context.Context, key string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// Compile-time check that S3BlobStore implements the BlobStore interface.
var _ triptic.BlobStore = (*S3BlobStore)(nil)
