package context

import (
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
)

// HandlerFunc 返回 error 的 handler, 由 Wrap 统一转成 JSON 错误响应
type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				log.L.Warn("handler error after response written",
					zap.String("path", c.FullPath()), zap.Error(err))
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("handler error",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, "Server error")
		}
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

// MustUserID 鉴权路由内使用, 取不到即 401
func MustUserID(c *gin.Context) (uint64, error) {
	uid, err := GetUserID(c)
	if err != nil || uid == 0 {
		return 0, response.Unauthorized("Authentication required")
	}
	return uid, nil
}
