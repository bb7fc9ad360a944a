package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"salon/config"
	"salon/infras/otel"
	"salon/shared/constant"
	"salon/shared/failure"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// Storage keeps public objects such as staff photos in an S3 compatible bucket.
type Storage interface {
	Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, url string) error
	ObjectKey(url string) string
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader, size int64) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".s3.Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.config.External.S3.BucketName
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return PublicURL(svc.config.External.S3.PublicDomain, objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".s3.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.ObjectKey(url)
	if objectKey == constant.Empty {
		return nil
	}

	bucket := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// ObjectKey returns the key of an object this bucket published, or empty for foreign URLs.
func (svc *s3Impl) ObjectKey(url string) string {
	return ObjectKeyFromURL(svc.config.External.S3.PublicDomain, url)
}

func PublicURL(publicDomain, objectKey string) string {
	return strings.TrimSuffix(publicDomain, "/") + "/" + objectKey
}

func ObjectKeyFromURL(publicDomain, url string) string {
	if publicDomain == constant.Empty {
		return constant.Empty
	}

	prefix := strings.TrimSuffix(publicDomain, "/") + "/"

	key, found := strings.CutPrefix(url, prefix)
	if !found {
		return constant.Empty
	}

	return key
}

type disabled struct{}

func (disabled) Upload(context.Context, string, string, string, io.Reader, int64) (string, error) {
	return constant.Empty, failure.Unimplemented("photo storage is not configured") //nolint:wrapcheck
}

func (disabled) Delete(context.Context, string) error {
	return nil
}

func (disabled) ObjectKey(string) string {
	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) Storage {
	if !config.External.S3.Enable {
		log.Info().Msg("S3 storage disabled, photo uploads are unavailable")

		return disabled{}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = config.External.S3.Region
	})

	return &s3Impl{
		client: client,
		config: config,
		otel:   otel,
	}
}
