package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaService serves listing photos out of an S3-compatible bucket.
type MediaService struct {
	client    *s3.Client
	bucket    string
	region    string
	PhotoRoot string
}

func NewMediaService(key, secret, region, bucket, photoRoot string) (*MediaService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load media storage config: %w", err)
	}

	return &MediaService{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		PhotoRoot: strings.TrimPrefix(photoRoot, "/"),
	}, nil
}

// PhotoURL returns the public URL for a stored photo key.
func (s *MediaService) PhotoURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s%s", s.bucket, s.region, s.PhotoRoot, key)
}

// PhotoURLs maps every stored key of a listing to its public URL.
func (s *MediaService) PhotoURLs(keys []string) []string {
	urls := make([]string, len(keys))
	for i, key := range keys {
		urls[i] = s.PhotoURL(key)
	}
	return urls
}

// DeleteListingPhotos removes all photos of a listing from the bucket.
// Partial failures are collected; an error is returned only when no
// object could be deleted.
func (s *MediaService) DeleteListingPhotos(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	var failures []string
	deleted := false

	for _, key := range keys {
		path := s.PhotoRoot + key
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.bucket,
			Key:    &path,
		})
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		deleted = true
	}

	if !deleted {
		return fmt.Errorf("failed to delete photos: %s", strings.Join(failures, "; "))
	}
	return nil
}

func (s *MediaService) GetBucket() string {
	return s.bucket
}

func (s *MediaService) GetRegion() string {
	return s.region
}
