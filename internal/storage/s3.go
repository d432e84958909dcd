package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/config"
)

// Asset describes a stored media object. Kind is derived from the upload's
// content type and decides the key prefix the object lives under.
type Asset struct {
	URL  string
	Key  string
	Kind string
}

const (
	KindImage = "image"
	KindVideo = "video"
)

// MediaStore is the media host surface the services depend on.
type MediaStore interface {
	Store(ctx context.Context, name, contentType string, r io.Reader) (*Asset, error)
	Remove(ctx context.Context, key string) error
}

// S3Storage implements MediaStore against an S3-compatible object store.
type S3Storage struct {
	uploader *manager.Uploader
	client   *s3.Client
	bucket   string
	baseURL  string
}

// NewS3Storage configures an uploader targeting the provided object store.
func NewS3Storage(ctx context.Context, cfg *config.Config) (*S3Storage, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}

	if strings.TrimSpace(cfg.S3Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.S3Endpoint,
					SigningRegion: cfg.S3Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Storage{
		uploader: uploader,
		client:   client,
		bucket:   cfg.S3Bucket,
		baseURL:  strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// KindOf maps an upload's content type onto a media kind.
func KindOf(contentType string) (string, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	default:
		return "", apperr.Validationf("unsupported media type %q", contentType)
	}
}

// Store uploads the content under a fresh key and returns its public location.
func (s *S3Storage) Store(ctx context.Context, name, contentType string, r io.Reader) (*Asset, error) {
	kind, err := KindOf(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%ss/%s%s", kind, uuid.New().String(), path.Ext(name))

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        manager.ReadSeekCloser(r),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, apperr.Dependency("media upload failed", err)
	}

	url := key
	if s.baseURL != "" {
		url = fmt.Sprintf("%s/%s", s.baseURL, key)
	}

	return &Asset{URL: url, Key: key, Kind: kind}, nil
}

// Remove deletes a stored object. A blank key is a no-op so callers can pass
// through whatever the database handed back.
func (s *S3Storage) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.Dependency("media delete failed", err)
	}
	return nil
}
