package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"

	"business-trips-backend/config"
)

var Client *minio.Client

// MakeBucket создает бакет для документов, если его еще нет.
func MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	location := "us-east-1"
	exists, err := Client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
