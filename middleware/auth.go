package middleware

import (
	"Vidhub/pkg/context"
	"Vidhub/pkg/jwt"
	"Vidhub/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth 必须携带有效 token
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Abort(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		token, ok := bearer(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Token is not valid")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Token is not valid")
			return
		}
		c.Set(context.CtxUserID, claims.UserID)

		c.Next()
	}
}

// OptionalAuth 公开接口使用, token 缺失或无效时按未登录处理
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearer(c); ok {
			if claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token); err == nil {
				c.Set(context.CtxUserID, claims.UserID)
			}
		}
		c.Next()
	}
}
