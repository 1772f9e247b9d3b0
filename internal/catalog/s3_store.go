package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"datamapper/internal/config"
)

const s3Prefix = "catalogs/"

// S3Store keeps catalogs as objects under catalogs/<name>.adm in one bucket.
type S3Store struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

// NewS3Store validates cfg and creates the client. No request is made
// until the first operation.
func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)

	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}

	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{client: client, bucket: bucket, region: region}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err

			return
		}

		if !exists {
			s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
		}
	})

	return s.initErr
}

func objectKey(name string) string {
	return s3Prefix + name + archiveExt
}

// Put uploads the archive.
func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/zip"})
	if err != nil {
		return fmt.Errorf("uploading catalog %s: %w", name, err)
	}

	return nil
}

// Get downloads the archive.
func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, err
	}

	return data, nil
}

// List returns the stored catalog names in order.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	var names []string

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s3Prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		name, ok := strings.CutSuffix(strings.TrimPrefix(obj.Key, s3Prefix), archiveExt)
		if ok && name != "" {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names, nil
}
