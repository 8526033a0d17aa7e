// Package s3 loads workbook grids stored in S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/de-tools/sheet-atlas/pkg/store/workbook"
	"github.com/rs/zerolog"
)

const (
	DefaultRegion = "us-east-1"
	Scheme        = "s3"
)

// GetObjectAPI is the subset of the S3 client used to fetch a workbook.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

type Settings struct {
	Profile  string
	Region   string
	Endpoint string
}

// NewClient builds an S3 client from the shared AWS configuration. A custom
// endpoint switches to path-style addressing for MinIO and friends.
func NewClient(ctx context.Context, settings Settings) (*awss3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Location is a parsed s3://bucket/key reference.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return fmt.Sprintf("%s://%s/%s", Scheme, l.Bucket, l.Key)
}

func IsLocation(raw string) bool {
	return strings.HasPrefix(strings.ToLower(raw), Scheme+"://")
}

func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse %q: %w", raw, err)
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return Location{}, fmt.Errorf("location %q is not an s3:// url", raw)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("location %q must name a bucket and a key", raw)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

type Source struct {
	client   GetObjectAPI
	location Location
	registry workbook.Registry
}

func NewSource(client GetObjectAPI, location Location, registry workbook.Registry) *Source {
	return &Source{client: client, location: location, registry: registry}
}

func (s *Source) Location() Location {
	return s.location
}

func (s *Source) Load(ctx context.Context) (domain.Grid, string, error) {
	logger := zerolog.Ctx(ctx)
	location := s.location.String()

	decoder, err := s.registry.Lookup(s.location.Key)
	if err != nil {
		return nil, location, err
	}

	result, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.location.Bucket),
		Key:    aws.String(s.location.Key),
	})
	if err != nil {
		return nil, location, fmt.Errorf("failed to get workbook object: %w", err)
	}
	defer result.Body.Close()

	grid, err := decoder.Decode(ctx, result.Body)
	if err != nil {
		return nil, location, fmt.Errorf("decode %s: %w", location, err)
	}

	logger.Info().Str("location", location).Int("rows", len(grid)).Msg("workbook loaded")
	return grid, location, nil
}
