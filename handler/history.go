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

type History struct {
	Config         *config.Config
	HistoryService service.IHistoryService
}

func (h *History) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	history := r.Group("/history", authorize)
	history.POST("", context.Wrap(h.Record))
	history.GET("", context.Wrap(h.List))
	history.DELETE("", context.Wrap(h.Clear))
	history.DELETE("/:videoId", context.Wrap(h.Remove))
}

// Record 已有记录只刷新观看时间, 返回 200; 新记录返回 201
func (h *History) Record(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	var req types.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VideoID == 0 {
		return response.BadRequest("Video ID is required")
	}

	item, created, err := h.HistoryService.RecordView(c.Request.Context(), uid, req.VideoID)
	if err != nil {
		return err
	}
	if created {
		response.Created(c, item)
	} else {
		response.Success(c, item)
	}
	return nil
}

func (h *History) List(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	items, err := h.HistoryService.List(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *History) Clear(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	if err := h.HistoryService.Clear(c.Request.Context(), uid); err != nil {
		return err
	}
	response.OK(c, "Watch history cleared successfully")
	return nil
}

func (h *History) Remove(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	videoID, err := pathID(c, "videoId", "History item not found")
	if err != nil {
		return err
	}
	if err := h.HistoryService.Remove(c.Request.Context(), uid, videoID); err != nil {
		return err
	}
	response.OK(c, "Video removed from history")
	return nil
}
