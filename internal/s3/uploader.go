// Package s3 предоставляет функционал для хранения медиафайлов в S3-совместимом хранилище
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/hazadus/go-playlister/internal/config"
)

// Uploader обертка для работы с бакетом S3
type Uploader struct {
	s3Uploader *s3manager.Uploader
	s3Client   *s3.S3
	bucket     string
	endpoint   string
}

// NewUploader создает новый S3 uploader по настройкам приложения
func NewUploader(cfg *config.Config) (*Uploader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AwsRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AwsAccessKey,
			cfg.AwsSecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if cfg.AwsEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AwsEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Uploader{
		s3Uploader: s3manager.NewUploader(sess),
		s3Client:   s3.New(sess),
		bucket:     cfg.AwsBucketName,
		endpoint:   cfg.AwsEndpoint,
	}, nil
}

// UploadFile загружает файл в бакет и возвращает его публичный URL
func (u *Uploader) UploadFile(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := u.s3Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   reader,
	})

	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key)
	return url, nil
}

// DeleteFile удаляет файл из бакета
func (u *Uploader) DeleteFile(ctx context.Context, key string) error {
	_, err := u.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	return nil
}
