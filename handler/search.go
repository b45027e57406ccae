package handler

import (
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/service"

	"github.com/gin-gonic/gin"
)

type Search struct {
	SearchService service.ISearchService
}

func (h *Search) RegisterRouter(r gin.IRouter) {
	search := r.Group("/search")
	search.GET("", context.Wrap(h.Videos))
	search.GET("/channels", context.Wrap(h.Channels))
}

func (h *Search) Videos(c *gin.Context) error {
	videos, err := h.SearchService.Videos(c.Request.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	response.Success(c, videos)
	return nil
}

func (h *Search) Channels(c *gin.Context) error {
	channels, err := h.SearchService.Channels(c.Request.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	response.Success(c, channels)
	return nil
}
