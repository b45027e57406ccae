package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	VideoID   uint64    `gorm:"column:video_id;not null;index" json:"video_id"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	Content   string    `gorm:"column:content;size:1000;not null" json:"content"`
	Likes     int64     `gorm:"column:likes;not null;default:0" json:"likes"`
	Edited    bool      `gorm:"column:edited;not null;default:false" json:"edited"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
