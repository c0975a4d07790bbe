// Package storage 提供了与对象存储服务（MinIO）交互的功能。
package storage

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/pkg/log"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore 封装了一个存储桶内的对象读写。
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore 初始化 MinIO 客户端并确保指定的存储桶存在。
func NewObjectStore(ctx context.Context, cfg config.MinIOConfig) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}
	log.Info("MinIO 客户端初始化成功")

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 存储桶失败: %w", err)
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 MinIO 存储桶失败: %w", err)
		}
	}
	return &ObjectStore{client: client, bucket: cfg.BucketName}, nil
}

// GetObject 返回对象内容，调用方负责关闭。
func (s *ObjectStore) GetObject(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	// GetObject 是惰性的，Stat 才会暴露对象不存在等错误
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("failed to stat object %s: %w", name, err)
	}
	return obj, nil
}

// PutObject 上传一个 JSON 对象。
func (s *ObjectStore) PutObject(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", name, err)
	}
	log.Infof("对象已上传: %s/%s (%d bytes)", s.bucket, name, len(data))
	return nil
}
