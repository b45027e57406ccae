package upload

import (
	"Vidhub/config"
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/storage"
	"errors"
	"fmt"
	"image"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const (
	maxValueBytes = 1 << 20
	maxParts      = 32
)

var (
	ErrUnexpectedField = response.BadRequest("Unexpected field")
	ErrTooLarge        = response.BadRequest("File is too large")
	ErrInvalidImage    = response.BadRequest("Invalid image file")
)

// File 已落到暂存区的上传文件
type File struct {
	Field       string
	Kind        storage.Kind
	Name        string
	Original    string
	ContentType string
	Path        string
	Size        int64
}

// Form 一次 multipart 请求的解析结果
type Form struct {
	Values map[string]string
	Files  map[string]*File
}

func (f *Form) Value(key string) (string, bool) {
	v, ok := f.Values[key]
	return v, ok
}

func (f *Form) File(field string) *File {
	return f.Files[field]
}

// Cleanup 删除仍留在暂存区的文件, 已导入存储的文件不受影响
func (f *Form) Cleanup() {
	for _, file := range f.Files {
		if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
			log.L.Warn("remove staged file", zap.String("path", file.Path), zap.Error(err))
		}
	}
}

type Intake struct {
	Root string
}

func NewIntake(conf *config.Config) *Intake {
	return &Intake{Root: conf.Storage.Root}
}

// Parse 逐个读取 part 写入暂存文件, 任一 part 失败则清理本次请求的全部暂存文件
func (in *Intake) Parse(r *http.Request, rules ...Rule) (*Form, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, response.BadRequest("Invalid multipart form")
	}

	byField := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		byField[rule.Field] = rule
	}

	form := &Form{
		Values: make(map[string]string),
		Files:  make(map[string]*File),
	}
	for parts := 0; ; parts++ {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			form.Cleanup()
			return nil, response.BadRequest("Invalid multipart form")
		}
		if parts >= maxParts {
			part.Close()
			form.Cleanup()
			return nil, response.BadRequest("Too many parts")
		}

		if part.FileName() == "" {
			err = in.readValue(form, part)
		} else {
			err = in.readFile(form, part, byField)
		}
		part.Close()
		if err != nil {
			form.Cleanup()
			return nil, err
		}
	}
	return form, nil
}

func (in *Intake) readValue(form *Form, part *multipart.Part) error {
	b, err := io.ReadAll(io.LimitReader(part, maxValueBytes+1))
	if err != nil {
		return response.BadRequest("Invalid multipart form")
	}
	if len(b) > maxValueBytes {
		return response.BadRequest("Field value too long")
	}
	form.Values[part.FormName()] = string(b)
	return nil
}

func (in *Intake) readFile(form *Form, part *multipart.Part, rules map[string]Rule) error {
	field := part.FormName()
	rule, ok := rules[field]
	if !ok {
		return ErrUnexpectedField
	}
	// 每个字段只接收一个文件
	if _, dup := form.Files[field]; dup {
		return ErrUnexpectedField
	}

	contentType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
	if !rule.allow(contentType) {
		return response.BadRequest(rule.TypeMessage)
	}

	original := filepath.Base(part.FileName())
	name := NewName(original)
	path := storage.StagingPath(in.Root, rule.Kind, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	size, err := writeLimited(path, part, rule.MaxSize)
	if err != nil {
		os.Remove(path)
		return err
	}
	if rule.Image {
		if err := checkImage(path); err != nil {
			os.Remove(path)
			return err
		}
	}

	form.Files[field] = &File{
		Field:       field,
		Kind:        rule.Kind,
		Name:        name,
		Original:    original,
		ContentType: contentType,
		Path:        path,
		Size:        size,
	}
	return nil
}

func writeLimited(path string, r io.Reader, max int64) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, io.LimitReader(r, max+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, response.BadRequest("Upload interrupted")
	}
	if n > max {
		return 0, ErrTooLarge
	}
	return n, nil
}

func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		return ErrInvalidImage
	}
	return nil
}

// NewName <毫秒时间戳>-<随机后缀><原扩展名>
func NewName(original string) string {
	ext := filepath.Ext(filepath.Base(original))
	if strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
