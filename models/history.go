package models

import "time"

type History struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_histories_user_video,priority:1" json:"user_id"`
	VideoID   uint64    `gorm:"column:video_id;not null;uniqueIndex:uk_histories_user_video,priority:2;index" json:"video_id"`
	WatchedAt time.Time `gorm:"column:watched_at;not null;index" json:"watched_at"`
}

func (History) TableName() string {
	return "histories"
}
