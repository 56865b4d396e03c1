package minio

import (
	"context"
	"io"
)

// BlobStore 帖子服务依赖的对象存储边界
type BlobStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}

type blobStoreImpl struct{}

func NewBlobStore() BlobStore {
	return &blobStoreImpl{}
}

func (s *blobStoreImpl) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return UploadFile(ctx, objectName, reader, size, contentType)
}

func (s *blobStoreImpl) Remove(ctx context.Context, objectName string) error {
	return DeleteFile(ctx, objectName)
}

func (s *blobStoreImpl) PublicURL(objectName string) string {
	return GetPublicURL(objectName)
}
