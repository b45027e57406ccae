package handler

import (
	"Vidhub/config"
	"Vidhub/middleware"
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/stream"
	"Vidhub/pkg/upload"
	"Vidhub/pkg/utils"
	"Vidhub/service"
	"Vidhub/types"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type Video struct {
	Config          *config.Config
	VideoService    service.IVideoService
	ReactionService service.IReactionService
	CommentService  service.ICommentService
	Intake          *upload.Intake
	Responder       *stream.Responder
}

func (h *Video) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)
	optional := middleware.OptionalAuth(secret)

	videos := r.Group("/videos")
	videos.POST("/upload", authorize, context.Wrap(h.Upload))
	videos.GET("", context.Wrap(h.List))
	videos.GET("/subscriptions", authorize, context.Wrap(h.SubscriptionFeed))
	videos.GET("/user/:userId", context.Wrap(h.ListByUser))
	videos.GET("/related/:id", optional, context.Wrap(h.Related))

	videos.GET("/:id", optional, context.Wrap(h.Detail))
	videos.PUT("/:id", authorize, context.Wrap(h.Update))
	videos.DELETE("/:id", authorize, context.Wrap(h.Delete))
	videos.GET("/:id/stream", optional, context.Wrap(h.Stream))
	videos.HEAD("/:id/stream", optional, context.Wrap(h.Stream))
	videos.GET("/:id/thumbnail", optional, context.Wrap(h.Thumbnail))
	videos.POST("/:id/like", authorize, context.Wrap(h.React))
	videos.GET("/:id/like/status", authorize, context.Wrap(h.ReactionStatus))
	videos.POST("/:id/reconcile", authorize, context.Wrap(h.Reconcile))
	videos.GET("/:id/comments", optional, context.Wrap(h.Comments))
	videos.POST("/:id/comments", authorize, context.Wrap(h.CreateComment))
}

// Upload multipart: video 必填, thumbnail 可选
func (h *Video) Upload(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	form, err := h.Intake.Parse(c.Request,
		upload.VideoRule(h.Config.Storage),
		upload.ThumbnailRule(h.Config.Storage),
	)
	if err != nil {
		return err
	}

	video, err := h.VideoService.Upload(c.Request.Context(), uid, form)
	if err != nil {
		return err
	}
	response.Created(c, video)
	return nil
}

func (h *Video) List(c *gin.Context) error {
	var req types.ListVideosRequest
	// page/limit 按字符串绑定, 非数字由 utils.Page 回落到默认值
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.BadRequest("Invalid query")
	}
	page, limit := utils.Page(req.Page, req.Limit, service.DefaultPageSize, service.MaxPageSize)

	videos, err := h.VideoService.List(c.Request.Context(), req.Category, page, limit)
	if err != nil {
		return err
	}
	response.Success(c, videos)
	return nil
}

func (h *Video) Detail(c *gin.Context) error {
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	video, err := h.VideoService.Detail(c.Request.Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	response.Success(c, video)
	return nil
}

// Stream 支持 Range 拖动播放, 不计浏览数
func (h *Video) Stream(c *gin.Context) error {
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	video, err := h.VideoService.Visible(c.Request.Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	return h.Responder.ServeVideo(c, video.FileName)
}

func (h *Video) Thumbnail(c *gin.Context) error {
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	video, err := h.VideoService.Visible(c.Request.Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	return h.Responder.ServeBlob(c, storage.KindThumbnail, video.Thumbnail, h.Config.Storage.DefaultThumbnail)
}

func (h *Video) React(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	var req types.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return response.BadRequest("Invalid request body")
	}

	resp, err := h.ReactionService.SetVideoReaction(c.Request.Context(), uid, id, req.Status)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Video) ReactionStatus(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	status, err := h.ReactionService.VideoReactionStatus(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, types.ReactionStatusResponse{Status: status})
	return nil
}

// Reconcile 作者手动按流水修复计数
func (h *Video) Reconcile(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	if err := h.VideoService.CheckOwner(c.Request.Context(), uid, id); err != nil {
		return err
	}
	resp, err := h.ReactionService.Reconcile(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Video) ListByUser(c *gin.Context) error {
	id, err := pathID(c, "userId", "User not found")
	if err != nil {
		return err
	}
	videos, err := h.VideoService.ListByUser(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, videos)
	return nil
}

func (h *Video) Related(c *gin.Context) error {
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	videos, err := h.VideoService.Related(c.Request.Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	response.Success(c, videos)
	return nil
}

func (h *Video) SubscriptionFeed(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	videos, err := h.VideoService.SubscriptionFeed(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, videos)
	return nil
}

func (h *Video) Update(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	var req types.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Invalid request body")
	}

	video, err := h.VideoService.Update(c.Request.Context(), uid, id, &req)
	if err != nil {
		return err
	}
	response.Success(c, video)
	return nil
}

func (h *Video) Delete(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	if err := h.VideoService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.OK(c, "Video deleted successfully")
	return nil
}

func (h *Video) Comments(c *gin.Context) error {
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	comments, err := h.CommentService.List(c.Request.Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	response.Success(c, comments)
	return nil
}

func (h *Video) CreateComment(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "Video not found")
	if err != nil {
		return err
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Comment content is required")
	}

	comment, err := h.CommentService.Create(c.Request.Context(), uid, id, req.Content)
	if err != nil {
		return err
	}
	response.Created(c, comment)
	return nil
}
