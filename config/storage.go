package config

const (
	StorageBackendLocal = "local"
	StorageBackendOss   = "oss"
)

// Storage 媒体文件存储
type Storage struct {
	Backend string `json:"backend" yaml:"backend"`
	// Root 本地存储根目录, 上传暂存文件也写在这里
	Root             string `json:"root" yaml:"root"`
	DefaultThumbnail string `json:"default_thumbnail" yaml:"default_thumbnail"`
	DefaultAvatar    string `json:"default_avatar" yaml:"default_avatar"`

	MaxVideoSize     int64 `json:"max_video_size" yaml:"max_video_size"`
	MaxThumbnailSize int64 `json:"max_thumbnail_size" yaml:"max_thumbnail_size"`
	MaxAvatarSize    int64 `json:"max_avatar_size" yaml:"max_avatar_size"`
}

func (s *Storage) withDefaults() {
	if s.Backend == "" {
		s.Backend = StorageBackendLocal
	}
	if s.Root == "" {
		s.Root = "uploads"
	}
	if s.DefaultThumbnail == "" {
		s.DefaultThumbnail = s.Root + "/default-thumbnail.jpg"
	}
	if s.DefaultAvatar == "" {
		s.DefaultAvatar = s.Root + "/default-avatar.png"
	}
	if s.MaxVideoSize == 0 {
		s.MaxVideoSize = 500 << 20
	}
	if s.MaxThumbnailSize == 0 {
		s.MaxThumbnailSize = 5 << 20
	}
	if s.MaxAvatarSize == 0 {
		s.MaxAvatarSize = 2 << 20
	}
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
