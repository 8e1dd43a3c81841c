package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage keeps item photos in an S3-compatible bucket that allows
// anonymous reads, so the URL saved on an item never expires.
type S3Storage struct {
	client     *minio.Client
	bucketName string
	region     string
	publicBase string
}

// NewS3Storage builds the store. publicURL, when set, replaces
// <scheme>://<endpoint>/<bucket> in returned URLs (for a CDN or proxy).
func NewS3Storage(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool, publicURL string) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	publicBase := strings.TrimRight(publicURL, "/")
	if publicBase == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucketName)
	}

	return &S3Storage{
		client:     client,
		bucketName: bucketName,
		region:     region,
		publicBase: publicBase,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist and opens it for
// anonymous GetObject.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := s.client.SetBucketPolicy(ctx, s.bucketName, PublicReadPolicy(s.bucketName)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

// Put uploads data under path and returns its public URL.
func (s *S3Storage) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *S3Storage) PublicURL(path string) string {
	return s.publicBase + "/" + path
}

// PublicReadPolicy allows anyone to read objects in bucket, nothing else.
func PublicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}
