package handler

import (
	"Vidhub/pkg/context"
	"Vidhub/pkg/response"
	"Vidhub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// pathID 路径参数不是合法 ID 时按资源不存在处理
func pathID(c *gin.Context, name, notFound string) (uint64, error) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		return 0, response.NotFound(notFound)
	}
	return id, nil
}

// viewerID 可选登录接口中的当前用户, 未登录为 0
func viewerID(c *gin.Context) uint64 {
	v, ok := c.Get(context.CtxUserID)
	if !ok {
		return 0
	}
	uid, _ := v.(uint64)
	return uid
}
