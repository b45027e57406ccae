package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/storage"
	"Vidhub/types"
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// acquire 拿不到锁时返回业务错误
func acquire(ctx context.Context, locker lock.Locker, key string) (func(), error) {
	unlock, err := locker.Lock(ctx, key)
	if errors.Is(err, lock.ErrLockTimeout) {
		return nil, response.BadRequest("Operation too frequent, please retry later")
	}
	return unlock, err
}

// removeBlobs 数据库提交后清理文件, 失败只记录日志
func removeBlobs(ctx context.Context, store storage.Store, blobs []storage.Blob) {
	if len(blobs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	p := pool.New().WithMaxGoroutines(4)
	for _, b := range blobs {
		if b.Name == "" {
			continue
		}
		p.Go(func() {
			if err := store.Remove(ctx, b.Kind, b.Name); err != nil {
				log.L.Warn("remove blob", zap.String("kind", string(b.Kind)), zap.String("name", b.Name), zap.Error(err))
			}
		})
	}
	p.Wait()
}

func toCreator(u *models.User) *types.Creator {
	if u == nil {
		return nil
	}
	return &types.Creator{
		ID:               u.ID,
		Username:         u.Username,
		SubscribersCount: u.SubscribersCount,
		Avatar:           u.Avatar,
	}
}

func toVideo(v *models.Video, creator *models.User) *types.Video {
	return &types.Video{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		FileName:    v.FileName,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		Likes:       v.Likes,
		Dislikes:    v.Dislikes,
		Category:    v.Category,
		Creator:     toCreator(creator),
		IsPrivate:   v.IsPrivate,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// buildVideos 批量补充作者信息
func buildVideos(ctx context.Context, users *dao.UserDAO, videos []*models.Video) ([]*types.Video, error) {
	result := make([]*types.Video, 0, len(videos))
	if len(videos) == 0 {
		return result, nil
	}

	ids := make([]uint64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.CreatorID)
	}
	userMap, err := users.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, v := range videos {
		result = append(result, toVideo(v, userMap[v.CreatorID]))
	}
	return result, nil
}

func counterColumn(kind string) string {
	if kind == models.ReactionDislike {
		return dao.ColumnDislikes
	}
	return dao.ColumnLikes
}

func ptr[T any](v T) *T {
	return &v
}
