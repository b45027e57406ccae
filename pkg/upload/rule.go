package upload

import (
	"Vidhub/config"
	"Vidhub/pkg/storage"
)

var (
	VideoTypes = []string{"video/mp4", "video/webm", "video/ogg", "video/quicktime"}
	ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

const (
	FieldVideo     = "video"
	FieldThumbnail = "thumbnail"
	FieldAvatar    = "avatar"
)

// Rule 单个文件字段的校验规则
type Rule struct {
	Field   string
	Kind    storage.Kind
	Types   []string
	MaxSize int64
	// TypeMessage 类型不在白名单时的提示
	TypeMessage string
	// Image 额外解码图片头校验内容
	Image bool
}

func (r Rule) allow(contentType string) bool {
	for _, t := range r.Types {
		if t == contentType {
			return true
		}
	}
	return false
}

func VideoRule(conf *config.Storage) Rule {
	return Rule{
		Field:       FieldVideo,
		Kind:        storage.KindVideo,
		Types:       VideoTypes,
		MaxSize:     conf.MaxVideoSize,
		TypeMessage: "Invalid file type. Only video files are allowed.",
	}
}

func ThumbnailRule(conf *config.Storage) Rule {
	return Rule{
		Field:       FieldThumbnail,
		Kind:        storage.KindThumbnail,
		Types:       ImageTypes,
		MaxSize:     conf.MaxThumbnailSize,
		TypeMessage: "Invalid file type. Only image files are allowed.",
		Image:       true,
	}
}

func AvatarRule(conf *config.Storage) Rule {
	return Rule{
		Field:       FieldAvatar,
		Kind:        storage.KindAvatar,
		Types:       ImageTypes,
		MaxSize:     conf.MaxAvatarSize,
		TypeMessage: "Invalid file type. Only image files are allowed.",
		Image:       true,
	}
}
