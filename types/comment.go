package types

import "time"

type CommentUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Comment struct {
	ID        uint64       `json:"id"`
	VideoID   uint64       `json:"video"`
	User      *CommentUser `json:"user"`
	Content   string       `json:"content"`
	Likes     int64        `json:"likes"`
	Edited    bool         `json:"edited"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	IsLiked   *bool        `json:"isLiked,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content"`
}
