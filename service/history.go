package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/response"
	"Vidhub/pkg/snowflake"
	"Vidhub/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var _ IHistoryService = (*HistoryService)(nil)

type IHistoryService interface {
	// RecordView created 为 true 表示新增记录
	RecordView(ctx context.Context, userID, videoID uint64) (item *types.History, created bool, err error)
	List(ctx context.Context, userID uint64) ([]*types.History, error)
	Clear(ctx context.Context, userID uint64) error
	Remove(ctx context.Context, userID, videoID uint64) error
}

type HistoryService struct {
	HistoryDAO *dao.HistoryDAO
	VideoDAO   *dao.VideoDAO
	UserDAO    *dao.UserDAO
	Locker     lock.Locker
}

func (s *HistoryService) RecordView(ctx context.Context, userID, videoID uint64) (*types.History, bool, error) {
	if videoID == 0 {
		return nil, false, response.BadRequest("Video ID is required")
	}
	exist, err := s.VideoDAO.IsExist(ctx, "id = ?", videoID)
	if err != nil {
		return nil, false, err
	}
	if !exist {
		return nil, false, response.NotFound("Video not found")
	}

	unlock, err := acquire(ctx, s.Locker, lock.HistoryKey(userID, videoID))
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	var (
		row     *models.History
		created bool
	)
	err = s.HistoryDAO.Transaction(ctx, func(tx *gorm.DB) error {
		histories := s.HistoryDAO.WithTx(tx)
		now := time.Now()

		existing, err := histories.Find(ctx, userID, videoID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := histories.Touch(ctx, existing.ID, now); err != nil {
				return err
			}
			existing.WatchedAt = now
			row = existing
			return nil
		}

		// 其他实例并发写入时退化为更新时间
		id := snowflake.GenID()
		if err := histories.Upsert(ctx, &models.History{
			ID:        id,
			UserID:    userID,
			VideoID:   videoID,
			WatchedAt: now,
		}); err != nil {
			return err
		}
		row, err = histories.Find(ctx, userID, videoID)
		if err != nil {
			return err
		}
		if row == nil {
			return errors.New("history row missing after upsert")
		}
		created = row.ID == id
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return toHistory(row, nil), created, nil
}

func (s *HistoryService) List(ctx context.Context, userID uint64) ([]*types.History, error) {
	items, err := s.HistoryDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(items))
	for _, h := range items {
		ids = append(ids, h.VideoID)
	}
	videos, err := s.VideoDAO.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	built, err := buildVideos(ctx, s.UserDAO, videos)
	if err != nil {
		return nil, err
	}
	videoMap := make(map[uint64]*types.Video, len(built))
	for _, v := range built {
		videoMap[v.ID] = v
	}

	result := make([]*types.History, 0, len(items))
	for _, h := range items {
		result = append(result, toHistory(h, videoMap[h.VideoID]))
	}
	return result, nil
}

func (s *HistoryService) Clear(ctx context.Context, userID uint64) error {
	return s.HistoryDAO.DeleteByUser(ctx, userID)
}

func (s *HistoryService) Remove(ctx context.Context, userID, videoID uint64) error {
	return s.HistoryDAO.DeleteOne(ctx, userID, videoID)
}

func toHistory(h *models.History, video *types.Video) *types.History {
	return &types.History{
		ID:        h.ID,
		UserID:    h.UserID,
		VideoID:   h.VideoID,
		Video:     video,
		WatchedAt: h.WatchedAt,
	}
}
