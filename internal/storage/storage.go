package storage

import (
	"context"
	"errors"
	"fmt"
	"payroll/internal/config"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

// ErrNotExist is returned by Read when no document is stored under the key.
var ErrNotExist = errors.New("storage: document does not exist")

// Backend 持久化整份文档，按 key 整体读取或整体覆盖。
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

// LocalBaseDirProvider 由将文档保存在本地目录的存储驱动实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// IsBlobType reports whether the store type is served by this package.
func IsBlobType(storeType string) bool {
	switch strings.ToLower(strings.TrimSpace(storeType)) {
	case "", TypeLocal, TypeS3, TypeR2:
		return true
	default:
		return false
	}
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Backend, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StoreType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.DataDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StoreType)
	}
}
