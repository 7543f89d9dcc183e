package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage keeps uploads in a public bucket under the same
// uploads/images/<namespace> layout the disk backend uses.
type S3Storage struct {
	uploader *manager.Uploader
	client   *s3.Client
	bucket   string
}

func NewS3Storage(ctx context.Context, bucket string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Storage{
		uploader: manager.NewUploader(client),
		client:   client,
		bucket:   bucket,
	}, nil
}

func (s *S3Storage) key(namespace, stored string) string {
	return "uploads/images/" + namespace + "/" + stored
}

func (s *S3Storage) Store(namespace, filename string, r io.Reader, contentType string) (string, error) {
	stored := storedName(filename)
	_, err := s.uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(namespace, stored)),
		Body:        r,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return stored, nil
}

func (s *S3Storage) Delete(namespace, stored string) error {
	if stored == "" {
		return nil
	}
	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(namespace, stored)),
	})
	return err
}
