package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPresigner is the part of s3.PresignClient the avatar service needs
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AvatarService turns profile photo keys into short-lived read URLs.
// Presigning is computed locally and performs no network call.
type AvatarService struct {
	Presigner ObjectPresigner
	Bucket    string
	TTL       time.Duration
}

// NewAvatarService builds an AvatarService on an S3 presign client
func NewAvatarService(cfg aws.Config, bucket string, ttl time.Duration) *AvatarService {
	return &AvatarService{
		Presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		Bucket:    bucket,
		TTL:       ttl,
	}
}

// AvatarURL returns a presigned GET URL for key. An empty key or an unconfigured bucket yields "".
func (a *AvatarService) AvatarURL(ctx context.Context, key string) (string, error) {
	if a == nil || key == "" || a.Bucket == "" {
		return "", nil
	}

	params := &s3.GetObjectInput{
		Bucket: aws.String(a.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := a.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(a.TTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign avatar %s: %w", key, err)
	}
	return presigned.URL, nil
}
