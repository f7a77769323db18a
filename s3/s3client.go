package s3client

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	// PresignedGet ссылка на скачивание, fileName подставляется в Content-Disposition
	PresignedGet(ctx context.Context, key, fileName string, expire time.Duration) (string, error)
}

type Params struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient(params Params) (Provider, error) {
	minioClient, err := minio.New(params.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(params.AccessKeyID, params.SecretAccessKey, ""),
		Secure: params.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{
		minioClient: minioClient,
		bucketName:  params.BucketName,
	}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.minioClient.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s s3client) PresignedGet(ctx context.Context, key, fileName string, expire time.Duration) (string, error) {
	reqParams := make(url.Values)
	if fileName != "" {
		reqParams.Set("response-content-disposition", "attachment; filename=\""+fileName+"\"")
	}
	link, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, key, expire, reqParams)
	if err != nil {
		return "", err
	}
	return link.String(), nil
}
