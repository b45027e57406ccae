package handler

import (
	"Vidhub/config"
	"Vidhub/middleware"
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/service"
	"Vidhub/types"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	Config          *config.Config
	CommentService  service.ICommentService
	ReactionService service.IReactionService
}

func (h *Comment) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	comments := r.Group("/comments", authorize)
	comments.PUT("/:id", context.Wrap(h.Update))
	comments.DELETE("/:id", context.Wrap(h.Delete))
	comments.POST("/:id/like", context.Wrap(h.Like))
}

func (h *Comment) Update(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Comment not found")
	if err != nil {
		return err
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Comment content is required")
	}

	comment, err := h.CommentService.Update(c.Request.Context(), uid, id, req.Content)
	if err != nil {
		return err
	}
	response.Success(c, comment)
	return nil
}

func (h *Comment) Delete(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Comment not found")
	if err != nil {
		return err
	}
	if err := h.CommentService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.OK(c, "Comment deleted successfully")
	return nil
}

// Like action: like / unlike
func (h *Comment) Like(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Comment not found")
	if err != nil {
		return err
	}
	var req types.CommentLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid action")
	}

	resp, err := h.ReactionService.SetCommentLike(c.Request.Context(), uid, id, req.Action == "like")
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
