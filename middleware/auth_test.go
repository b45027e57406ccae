package middleware

import (
	"Vidhub/pkg/context"
	"Vidhub/pkg/jwt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoami := func(c *gin.Context) {
		uid, _ := context.GetUserID(c)
		c.String(http.StatusOK, strconv.FormatUint(uid, 10))
	}
	r.GET("/private", Auth(secret), whoami)
	r.GET("/public", OptionalAuth(secret), whoami)
	return r
}

func get(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newEngine()
	token, err := jwt.GenerateToken(secret, 42, jwt.TypeAccess, time.Hour)
	require.NoError(t, err)

	w := get(r, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = get(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"No token, authorization denied"}`, w.Body.String())

	w = get(r, "/private", "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Expired(t *testing.T) {
	r := newEngine()
	token, err := jwt.GenerateToken(secret, 42, jwt.TypeAccess, -time.Minute)
	require.NoError(t, err)

	w := get(r, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine()
	token, err := jwt.GenerateToken(secret, 7, jwt.TypeAccess, time.Hour)
	require.NoError(t, err)

	w := get(r, "/public", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())

	// 无效 token 不影响访问
	w = get(r, "/public", "Bearer broken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())

	w = get(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())
}
