package stream

import (
	"Vidhub/pkg/context"
	"Vidhub/pkg/storage"
	stdctx "context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, size int) (*gin.Engine, []byte) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "videos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "videos", "v.mp4"), data, 0o644))

	fallback := filepath.Join(root, "default.png")
	require.NoError(t, os.WriteFile(fallback, []byte("default"), 0o644))

	r := NewResponder(storage.NewLocalStore(root))
	e := gin.New()
	e.GET("/stream/:name", context.Wrap(func(c *gin.Context) error {
		return r.ServeVideo(c, c.Param("name"))
	}))
	e.HEAD("/stream/:name", context.Wrap(func(c *gin.Context) error {
		return r.ServeVideo(c, c.Param("name"))
	}))
	e.GET("/thumb/:name", context.Wrap(func(c *gin.Context) error {
		return r.ServeBlob(c, storage.KindThumbnail, c.Param("name"), fallback)
	}))
	return e, data
}

func do(e *gin.Engine, method, path, rangeHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestServeVideo_PartialContent(t *testing.T) {
	e, data := setup(t, 1000)

	w := do(e, http.MethodGet, "/stream/v.mp4", "bytes=0-99")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 0-99/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "100", w.Header().Get("Content-Length"))
	assert.Equal(t, data[:100], w.Body.Bytes())
}

func TestServeVideo_Full(t *testing.T) {
	e, data := setup(t, 1000)

	w := do(e, http.MethodGet, "/stream/v.mp4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Equal(t, VideoContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, data, w.Body.Bytes())
}

func TestServeVideo_Unsatisfiable(t *testing.T) {
	e, _ := setup(t, 1000)

	for _, h := range []string{"bytes=1000-", "bytes=abc", "bytes=50-10", "bytes=0-1,5-9"} {
		w := do(e, http.MethodGet, "/stream/v.mp4", h)
		assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code, h)
		assert.Equal(t, "bytes */1000", w.Header().Get("Content-Range"), h)
		assert.JSONEq(t, `{"message":"Requested range not satisfiable"}`, w.Body.String(), h)
	}
}

func TestServeVideo_NotFound(t *testing.T) {
	e, _ := setup(t, 10)

	w := do(e, http.MethodGet, "/stream/missing.mp4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeVideo_Head(t *testing.T) {
	e, _ := setup(t, 1000)

	w := do(e, http.MethodHead, "/stream/v.mp4", "bytes=10-19")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "10", w.Header().Get("Content-Length"))
	assert.Equal(t, 0, w.Body.Len())
}

// 任意合法区间返回的字节数与内容都和源文件一致
func TestServeVideo_RandomRanges(t *testing.T) {
	const size = 1000
	e, data := setup(t, size)
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		start := rnd.Int63n(size)
		end := start + rnd.Int63n(size-start)
		w := do(e, http.MethodGet, "/stream/v.mp4", fmt.Sprintf("bytes=%d-%d", start, end))

		require.Equal(t, http.StatusPartialContent, w.Code)
		require.Equal(t, int(end-start+1), w.Body.Len())
		require.Equal(t, data[start:end+1], w.Body.Bytes())
	}
}

func TestServeBlob_Fallback(t *testing.T) {
	e, _ := setup(t, 10)

	w := do(e, http.MethodGet, "/thumb/none.jpg", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default", w.Body.String())
}

// brokenStore Stat 成功但 Open 失败, 模拟文件在两次调用之间被删或磁盘出错
type brokenStore struct {
	size    int64
	openErr error
}

func (s brokenStore) Import(stdctx.Context, storage.Kind, string, string) error { return nil }

func (s brokenStore) Stat(stdctx.Context, storage.Kind, string) (int64, error) {
	return s.size, nil
}

func (s brokenStore) Open(stdctx.Context, storage.Kind, string, int64, int64) (io.ReadCloser, error) {
	return nil, s.openErr
}

func (s brokenStore) Remove(stdctx.Context, storage.Kind, string) error { return nil }

func TestServeVideo_OpenFailureAnswersJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		openErr error
		code    int
		body    string
	}{
		{"disk error", errors.New("read failed"), http.StatusInternalServerError, `{"message":"Server error"}`},
		{"removed after stat", storage.ErrNotExist, http.StatusNotFound, `{"message":"File not found"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResponder(brokenStore{size: 1000, openErr: tc.openErr})
			e := gin.New()
			e.GET("/stream/:name", context.Wrap(func(c *gin.Context) error {
				return r.ServeVideo(c, c.Param("name"))
			}))

			w := do(e, http.MethodGet, "/stream/v.mp4", "bytes=0-99")
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			assert.Empty(t, w.Header().Get("Content-Range"))
			assert.Empty(t, w.Header().Get("Content-Length"))
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
