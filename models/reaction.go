package models

import "time"

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction 点赞/点踩记录, VideoID 与 CommentID 二选一
type Reaction struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_reactions_user_video,priority:1;uniqueIndex:uk_reactions_user_comment,priority:1" json:"user_id"`
	VideoID   *uint64   `gorm:"column:video_id;uniqueIndex:uk_reactions_user_video,priority:2;index" json:"video_id,omitempty"`
	CommentID *uint64   `gorm:"column:comment_id;uniqueIndex:uk_reactions_user_comment,priority:2;index" json:"comment_id,omitempty"`
	Kind      string    `gorm:"column:kind;size:16;not null" json:"kind"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}
