// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStore saves candidate photos and returns a URL clients can render.
type PhotoStore interface {
	Upload(ctx context.Context, candidateID, contentType string, body io.Reader) (string, error)
}

// S3Config holds the object-storage settings. BaseEndpoint supports
// S3-compatible backends such as MinIO; PublicBaseURL is the prefix under
// which stored objects are reachable by browsers.
type S3Config struct {
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	BaseEndpoint  string
	PublicBaseURL string
}

// S3PhotoStore stores photos under candidate-photos/<candidateID>.
// Re-uploading for the same candidate overwrites the previous photo.
type S3PhotoStore struct {
	cfg    S3Config
	client *s3.Client
}

func NewS3PhotoStore(ctx context.Context, cfg S3Config) (*S3PhotoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3PhotoStore{cfg: cfg, client: client}, nil
}

func (s *S3PhotoStore) Upload(ctx context.Context, candidateID, contentType string, body io.Reader) (string, error) {
	key := "candidate-photos/" + candidateID

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key, nil
}
