package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BizError 业务错误, Code 即 HTTP 状态码
type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func BadRequest(msg string) *BizError {
	return NewError(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *BizError {
	return NewError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *BizError {
	return NewError(http.StatusForbidden, msg)
}

func NotFound(msg string) *BizError {
	return NewError(http.StatusNotFound, msg)
}

// Conflict 重复状态(重复订阅等), 按 400 返回
func Conflict(msg string) *BizError {
	return NewError(http.StatusBadRequest, msg)
}

func RangeNotSatisfiable(msg string) *BizError {
	return NewError(http.StatusRequestedRangeNotSatisfiable, msg)
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Message{Message: msg})
}
