package context

import (
	"Vidhub/pkg/response"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		h    HandlerFunc
		code int
		body string
	}{
		{"biz error", func(*gin.Context) error { return response.NotFound("Video not found") }, http.StatusNotFound, `{"message":"Video not found"}`},
		{"internal error", func(*gin.Context) error { return errors.New("db down") }, http.StatusInternalServerError, `{"message":"Server error"}`},
		{"success", func(c *gin.Context) error { response.OK(c, "done"); return nil }, http.StatusOK, `{"message":"done"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", Wrap(tc.h))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
