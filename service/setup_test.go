package service

import (
	"Vidhub/config"
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/database"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/response"
	"Vidhub/pkg/rocketmq"
	"Vidhub/pkg/snowflake"
	"Vidhub/pkg/storage"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubProber struct {
	duration int64
	thumbErr error
}

func (p stubProber) Duration(string) (int64, error) {
	return p.duration, nil
}

func (p stubProber) Thumbnail(_, out string) error {
	if p.thumbErr != nil {
		return p.thumbErr
	}
	return os.WriteFile(out, []byte("jpeg"), 0o644)
}

// recorder 记录发布的事件
type recorder struct {
	mu     sync.Mutex
	events []rocketmq.Event
}

func (r *recorder) Publish(_ context.Context, ev rocketmq.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	root      string
	store     *storage.LocalStore
	events    *recorder
	videos    *VideoService
	reactions *ReactionService
	comments  *CommentService
	subs      *SubscriptionService
	history   *HistoryService
	search    *SearchService
	users     *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	root := t.TempDir()
	store := storage.NewLocalStore(root)
	locker := lock.NewLocalLocker(2 * time.Second)
	events := &recorder{}

	videoDAO := dao.NewVideoDAO(db)
	userDAO := dao.NewUserDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	reactionDAO := dao.NewReactionDAO(db)
	subDAO := dao.NewSubscriptionDAO(db)
	historyDAO := dao.NewHistoryDAO(db)

	return &fixture{
		db:     db,
		root:   root,
		store:  store,
		events: events,
		videos: &VideoService{
			VideoDAO:        videoDAO,
			UserDAO:         userDAO,
			ReactionDAO:     reactionDAO,
			SubscriptionDAO: subDAO,
			Store:           store,
			Prober:          stubProber{duration: 42},
			Publisher:       events,
			StorageConf:     &config.Storage{Root: root},
		},
		reactions: &ReactionService{
			VideoDAO:    videoDAO,
			CommentDAO:  commentDAO,
			ReactionDAO: reactionDAO,
			Locker:      locker,
		},
		comments: &CommentService{
			CommentDAO:  commentDAO,
			ReactionDAO: reactionDAO,
			VideoDAO:    videoDAO,
			UserDAO:     userDAO,
		},
		subs: &SubscriptionService{
			SubscriptionDAO: subDAO,
			UserDAO:         userDAO,
			Locker:          locker,
		},
		history: &HistoryService{
			HistoryDAO: historyDAO,
			VideoDAO:   videoDAO,
			UserDAO:    userDAO,
			Locker:     locker,
		},
		search: &SearchService{
			VideoDAO: videoDAO,
			UserDAO:  userDAO,
		},
		users: &UserService{
			UserDAO:         userDAO,
			VideoDAO:        videoDAO,
			CommentDAO:      commentDAO,
			ReactionDAO:     reactionDAO,
			SubscriptionDAO: subDAO,
			HistoryDAO:      historyDAO,
			Store:           store,
			Publisher:       events,
		},
	}
}

const testPassword = "secret123"

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{ID: snowflake.GenID(), Username: username, Password: string(hash)}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) video(t *testing.T, creatorID uint64, opts ...func(*models.Video)) *models.Video {
	t.Helper()
	v := &models.Video{
		ID:        snowflake.GenID(),
		Title:     "video",
		FileName:  fmt.Sprintf("%d.mp4", snowflake.GenID()),
		CreatorID: creatorID,
	}
	for _, opt := range opts {
		opt(v)
	}
	require.NoError(t, f.db.Create(v).Error)
	return v
}

// blob 在存储目录下放一个文件
func (f *fixture) blob(t *testing.T, kind storage.Kind, name string) string {
	t.Helper()
	path := filepath.Join(f.root, string(kind), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	return path
}

func (f *fixture) reload(t *testing.T, out any, id uint64) {
	t.Helper()
	require.NoError(t, f.db.Where("id = ?", id).Take(out).Error)
}

func (f *fixture) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}

func requireBizError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var be *response.BizError
	require.True(t, errors.As(err, &be), "expected BizError, got %v", err)
	require.Equal(t, code, be.Code)
	if msg != "" {
		require.Equal(t, msg, be.Msg)
	}
}
