package models

import "time"

var Categories = []string{"Music", "Gaming", "Sports", "News", "Comedy", "Education", "Science", "Technology"}

// ValidCategory 空分类合法
func ValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type Video struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Title       string    `gorm:"column:title;size:100;not null" json:"title"`
	Description string    `gorm:"column:description;size:5000;not null;default:''" json:"description"`
	FileName    string    `gorm:"column:file_name;size:255;not null" json:"file_name"`
	Thumbnail   string    `gorm:"column:thumbnail;size:255;not null;default:''" json:"thumbnail"`
	Duration    int64     `gorm:"column:duration;not null;default:0" json:"duration"` // 秒
	Views       int64     `gorm:"column:views;not null;default:0" json:"views"`
	Likes       int64     `gorm:"column:likes;not null;default:0" json:"likes"`
	Dislikes    int64     `gorm:"column:dislikes;not null;default:0" json:"dislikes"`
	Category    string    `gorm:"column:category;size:32;not null;default:'';index" json:"category"`
	CreatorID   uint64    `gorm:"column:creator_id;not null;index" json:"creator_id"`
	IsPrivate   bool      `gorm:"column:is_private;not null;default:false" json:"is_private"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}
