package middleware

import (
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 handler panic, 调用栈写入日志, 客户端只拿到 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.L.Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("trace", utils.PanicTrace(err, 1)),
				)
				if !c.Writer.Written() {
					response.Fail(c, http.StatusInternalServerError, "Server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
