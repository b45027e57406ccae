package stream

import (
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/storage"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	VideoContentType = "video/mp4"
	bufSize          = 64 << 10
)

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufSize)
		return &b
	},
}

type Responder struct {
	Store storage.Store
}

func NewResponder(store storage.Store) *Responder {
	return &Responder{Store: store}
}

// ServeVideo 按 Range 头返回视频内容
func (r *Responder) ServeVideo(c *gin.Context, name string) error {
	size, err := r.Store.Stat(c.Request.Context(), storage.KindVideo, name)
	if errors.Is(err, storage.ErrNotExist) {
		return response.NotFound("Video file not found")
	}
	if err != nil {
		return err
	}

	h := c.Writer.Header()
	h.Set("Accept-Ranges", "bytes")

	span := Span{Start: 0, End: size - 1}
	status := http.StatusOK
	if header := c.GetHeader("Range"); header != "" {
		span, err = ParseRange(header, size)
		if err != nil {
			h.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			return response.RangeNotSatisfiable("Requested range not satisfiable")
		}
		status = http.StatusPartialContent
	}

	length := span.Length()
	if size == 0 {
		length = 0
	}
	rc, err := r.open(c, storage.KindVideo, name, span.Start, length)
	if err != nil {
		return err
	}

	// 文件已打开, 之后不会再走错误响应
	h.Set("Content-Type", VideoContentType)
	if status == http.StatusPartialContent {
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", span.Start, span.End, size))
	}
	h.Set("Content-Length", strconv.FormatInt(length, 10))
	r.send(c, status, name, rc)
	return nil
}

// ServeBlob 返回图片类文件, 不存在时回落到本地默认文件
func (r *Responder) ServeBlob(c *gin.Context, kind storage.Kind, name, fallback string) error {
	size, err := r.Store.Stat(c.Request.Context(), kind, name)
	if errors.Is(err, storage.ErrNotExist) {
		c.File(fallback)
		return nil
	}
	if err != nil {
		return err
	}

	rc, err := r.open(c, kind, name, 0, size)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := c.Writer.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.FormatInt(size, 10))
	r.send(c, http.StatusOK, name, rc)
	return nil
}

// open HEAD 请求或空区间不读文件, 返回 nil
func (r *Responder) open(c *gin.Context, kind storage.Kind, name string, offset, length int64) (io.ReadCloser, error) {
	if c.Request.Method == http.MethodHead || length == 0 {
		return nil, nil
	}
	rc, err := r.Store.Open(c.Request.Context(), kind, name, offset, length)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, response.NotFound("File not found")
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *Responder) send(c *gin.Context, status int, name string, rc io.ReadCloser) {
	c.Status(status)
	if rc == nil {
		c.Writer.WriteHeaderNow()
		return
	}
	defer rc.Close()

	buf := bufPool.Get().(*[]byte)
	defer bufPool.Put(buf)
	if _, err := io.CopyBuffer(c.Writer, rc, *buf); err != nil {
		// 客户端拖动进度条时会主动断开
		log.L.Debug("stream aborted", zap.String("name", name), zap.Error(err))
	}
}
