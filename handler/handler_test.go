package handler

import (
	"Vidhub/config"
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/database"
	"Vidhub/pkg/jwt"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/rocketmq"
	"Vidhub/pkg/snowflake"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/stream"
	"Vidhub/pkg/upload"
	"Vidhub/service"
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-secret"

type stubProber struct{}

func (stubProber) Duration(string) (int64, error) { return 3, nil }

func (stubProber) Thumbnail(_, out string) error {
	return os.WriteFile(out, []byte("jpeg"), 0o644)
}

type env struct {
	engine *gin.Engine
	db     *gorm.DB
	root   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:h_%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	root := t.TempDir()
	cfg := &config.Config{
		Jwt: &config.Jwt{Secret: testSecret},
		Storage: &config.Storage{
			Backend:          config.StorageBackendLocal,
			Root:             root,
			DefaultThumbnail: root + "/default-thumbnail.jpg",
			DefaultAvatar:    root + "/default-avatar.png",
			MaxVideoSize:     1 << 20,
			MaxThumbnailSize: 1 << 20,
			MaxAvatarSize:    1 << 20,
		},
	}
	store := storage.NewLocalStore(root)
	locker := lock.NewLocalLocker(time.Second)
	publisher := rocketmq.NoopPublisher{}

	videoDAO := dao.NewVideoDAO(db)
	userDAO := dao.NewUserDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	reactionDAO := dao.NewReactionDAO(db)
	subDAO := dao.NewSubscriptionDAO(db)
	historyDAO := dao.NewHistoryDAO(db)

	reactions := &service.ReactionService{VideoDAO: videoDAO, CommentDAO: commentDAO, ReactionDAO: reactionDAO, Locker: locker}
	comments := &service.CommentService{CommentDAO: commentDAO, ReactionDAO: reactionDAO, VideoDAO: videoDAO, UserDAO: userDAO}

	video := &Video{
		Config: cfg,
		VideoService: &service.VideoService{
			VideoDAO:        videoDAO,
			UserDAO:         userDAO,
			ReactionDAO:     reactionDAO,
			SubscriptionDAO: subDAO,
			Store:           store,
			Prober:          stubProber{},
			Publisher:       publisher,
			StorageConf:     cfg.Storage,
		},
		ReactionService: reactions,
		CommentService:  comments,
		Intake:          upload.NewIntake(cfg),
		Responder:       stream.NewResponder(store),
	}
	history := &History{
		Config:         cfg,
		HistoryService: &service.HistoryService{HistoryDAO: historyDAO, VideoDAO: videoDAO, UserDAO: userDAO, Locker: locker},
	}
	subscription := &Subscription{
		Config:              cfg,
		SubscriptionService: &service.SubscriptionService{SubscriptionDAO: subDAO, UserDAO: userDAO, Locker: locker},
	}

	r := gin.New()
	api := r.Group("/api")
	video.RegisterRouter(api)
	history.RegisterRouter(api)
	subscription.RegisterRouter(api)
	return &env{engine: r, db: db, root: root}
}

func (e *env) user(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	u := &models.User{ID: snowflake.GenID(), Username: username, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	token, err := jwt.GenerateToken([]byte(testSecret), u.ID, jwt.TypeAccess, time.Hour)
	require.NoError(t, err)
	return u, token
}

func (e *env) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

type part struct {
	field, filename, contentType string
	data                         []byte
}

func multipartRequest(t *testing.T, path string, values map[string]string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, p.field, p.filename))
		h.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
