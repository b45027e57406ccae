package types

import "time"

// Creator 视频作者摘要
type Creator struct {
	ID               uint64 `json:"id"`
	Username         string `json:"username"`
	SubscribersCount int64  `json:"subscribersCount"`
	Avatar           string `json:"avatar"`
}

type Video struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    int64     `json:"duration"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Dislikes    int64     `json:"dislikes"`
	Category    string    `json:"category"`
	Creator     *Creator  `json:"creator"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// 仅在携带有效 token 且存在点赞/点踩记录时返回
	IsLiked    *bool `json:"isLiked,omitempty"`
	IsDisliked *bool `json:"isDisliked,omitempty"`
}

type ListVideosRequest struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Category string `form:"category"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// UploadVideoForm 上传表单中的文本字段
type UploadVideoForm struct {
	Title       string
	Description string
	Category    string
	IsPrivate   bool
}

type ReconcileResponse struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
