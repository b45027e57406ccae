package handler

import (
	"Vidhub/config"
	"Vidhub/middleware"
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/stream"
	"Vidhub/pkg/upload"
	"Vidhub/service"
	"Vidhub/types"
	"strings"

	"github.com/gin-gonic/gin"
)

type User struct {
	Config      *config.Config
	UserService service.IUserService
	Intake      *upload.Intake
	Responder   *stream.Responder
}

func (h *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	users := r.Group("/users")
	users.GET("/profile", authorize, context.Wrap(h.Profile))
	users.PUT("/profile", authorize, context.Wrap(h.UpdateProfile))
	users.PUT("/password", authorize, context.Wrap(h.UpdatePassword))
	users.DELETE("/account", authorize, context.Wrap(h.DeleteAccount))
	users.GET("/:id", context.Wrap(h.PublicProfile))
	users.GET("/:id/avatar", context.Wrap(h.Avatar))
}

func (h *User) Profile(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.UserService.Profile(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

// UpdateProfile 带头像时为 multipart, 否则按 JSON 解析
func (h *User) UpdateProfile(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}

	var (
		form   types.UpdateProfileForm
		avatar *upload.File
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		parsed, err := h.Intake.Parse(c.Request, upload.AvatarRule(h.Config.Storage))
		if err != nil {
			return err
		}
		defer parsed.Cleanup()

		if v, ok := parsed.Value("username"); ok {
			form.Username = &v
		}
		if v, ok := parsed.Value("bio"); ok {
			form.Bio = &v
		}
		avatar = parsed.File(upload.FieldAvatar)
	} else {
		var req struct {
			Username *string `json:"username"`
			Bio      *string `json:"bio"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return response.BadRequest("Invalid request body")
		}
		form.Username, form.Bio = req.Username, req.Bio
	}

	profile, err := h.UserService.UpdateProfile(c.Request.Context(), uid, &form, avatar)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

func (h *User) UpdatePassword(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	var req types.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest("Current and new passwords are required")
	}
	if err := h.UserService.UpdatePassword(c.Request.Context(), uid, &req); err != nil {
		return err
	}
	response.OK(c, "Password updated successfully")
	return nil
}

func (h *User) DeleteAccount(c *gin.Context) error {
	uid, err := context.MustUserID(c)
	if err != nil {
		return err
	}
	if err := h.UserService.DeleteAccount(c.Request.Context(), uid); err != nil {
		return err
	}
	response.OK(c, "Account deleted successfully")
	return nil
}

func (h *User) PublicProfile(c *gin.Context) error {
	id, err := pathID(c, "id", "User not found")
	if err != nil {
		return err
	}
	profile, err := h.UserService.PublicProfile(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, profile)
	return nil
}

func (h *User) Avatar(c *gin.Context) error {
	id, err := pathID(c, "id", "User not found")
	if err != nil {
		return err
	}
	user, err := h.UserService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	return h.Responder.ServeBlob(c, storage.KindAvatar, user.Avatar, h.Config.Storage.DefaultAvatar)
}
