package types

// ReactionRequest status 为 null 或缺省表示取消
type ReactionRequest struct {
	Status *string `json:"status"`
}

type ReactionResponse struct {
	Likes    int64   `json:"likes"`
	Dislikes int64   `json:"dislikes"`
	Status   *string `json:"status"`
}

type ReactionStatusResponse struct {
	Status *string `json:"status"`
}

type CommentLikeRequest struct {
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

type CommentLikeResponse struct {
	Likes int64 `json:"likes"`
}
