package storage

import (
	"Vidhub/config"
	"context"
	"errors"
	"io"
	"path/filepath"
)

// Kind 媒体类别, 对应存储目录 / 对象前缀
type Kind string

const (
	KindVideo     Kind = "videos"
	KindThumbnail Kind = "thumbnails"
	KindAvatar    Kind = "avatars"
)

var ErrNotExist = errors.New("storage: blob not exist")

// Store 媒体文件存储
type Store interface {
	// Import 把本地暂存文件转入存储, 成功后暂存文件不再存在
	Import(ctx context.Context, kind Kind, name, localPath string) error
	// Stat 返回文件大小, 不存在时返回 ErrNotExist
	Stat(ctx context.Context, kind Kind, name string) (int64, error)
	// Open 读取 [offset, offset+length) 区间
	Open(ctx context.Context, kind Kind, name string, offset, length int64) (io.ReadCloser, error)
	// Remove 删除文件, 不存在不算错误
	Remove(ctx context.Context, kind Kind, name string) error
}

// Blob 待删除的文件
type Blob struct {
	Kind Kind
	Name string
}

// NewStore 按配置选择存储后端
func NewStore(conf *config.Config) (Store, error) {
	switch conf.Storage.Backend {
	case config.StorageBackendOss:
		return NewOssStore(conf.Oss)
	case config.StorageBackendLocal, "":
		return NewLocalStore(conf.Storage.Root), nil
	default:
		return nil, errors.New("unknown storage backend: " + conf.Storage.Backend)
	}
}

// StagingPath 上传暂存路径, 放在类别目录下并保留扩展名
func StagingPath(root string, kind Kind, name string) string {
	return filepath.Join(root, string(kind), ".staging-"+filepath.Base(name))
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}
