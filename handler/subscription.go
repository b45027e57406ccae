package handler

import (
	"Vidhub/config"
	"Vidhub/middleware"
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/pkg/utils"
	"Vidhub/service"
	"Vidhub/types"

	"github.com/gin-gonic/gin"
)

type Subscription struct {
	Config              *config.Config
	SubscriptionService service.ISubscriptionService
}

func (h *Subscription) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	subs := r.Group("/subscriptions", authorize)
	subs.POST("", context.Wrap(h.Subscribe))
	subs.GET("", context.Wrap(h.List))
	subs.DELETE("", context.Wrap(h.UnsubscribeBody))
	subs.DELETE("/:creatorId", context.Wrap(h.Unsubscribe))
	subs.GET("/check/:creatorId", context.Wrap(h.Check))
}

func (h *Subscription) Subscribe(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	var req types.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Creator ID is required")
	}

	sub, err := h.SubscriptionService.Subscribe(c.Request.Context(), uid, req.CreatorID)
	if err != nil {
		return err
	}
	response.Created(c, types.SubscribeResponse{
		Message:      "Subscribed successfully",
		Subscription: sub,
	})
	return nil
}

func (h *Subscription) List(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	subs, err := h.SubscriptionService.List(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, subs)
	return nil
}

func (h *Subscription) Unsubscribe(c *gin.Context) error {
	creatorID, ok := utils.ParseID(c.Param("creatorId"))
	if !ok {
		return response.NotFound("Subscription not found")
	}
	return h.unsubscribe(c, creatorID)
}

// UnsubscribeBody 兼容 body 里传 creatorId 的旧客户端
func (h *Subscription) UnsubscribeBody(c *gin.Context) error {
	var req types.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CreatorID == 0 {
		return response.BadRequest("Creator ID is required")
	}
	return h.unsubscribe(c, req.CreatorID)
}

func (h *Subscription) unsubscribe(c *gin.Context, creatorID uint64) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	if err := h.SubscriptionService.Unsubscribe(c.Request.Context(), uid, creatorID); err != nil {
		return err
	}
	response.OK(c, "Unsubscribed successfully")
	return nil
}

func (h *Subscription) Check(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	creatorID, _ := utils.ParseID(c.Param("creatorId"))
	subscribed, err := h.SubscriptionService.IsSubscribed(c.Request.Context(), uid, creatorID)
	if err != nil {
		return err
	}
	response.Success(c, types.CheckSubscriptionResponse{IsSubscribed: subscribed})
	return nil
}
