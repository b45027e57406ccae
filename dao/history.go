package dao

import (
	"Vidhub/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryDAO struct {
	Repo[models.History]
}

func NewHistoryDAO(db *gorm.DB) *HistoryDAO {
	return &HistoryDAO{
		Repo: NewRepo[models.History](db),
	}
}

func (d *HistoryDAO) WithTx(tx *gorm.DB) *HistoryDAO {
	return &HistoryDAO{Repo: d.Repo.WithDB(tx)}
}

func (d *HistoryDAO) Find(ctx context.Context, userID, videoID uint64) (*models.History, error) {
	return d.FindByWhere(ctx, "user_id = ? AND video_id = ?", userID, videoID)
}

func (d *HistoryDAO) Touch(ctx context.Context, id uint64, at time.Time) error {
	return d.Model(ctx).Where("id = ?", id).UpdateColumn("watched_at", at).Error
}

// Upsert (user_id, video_id) 冲突时只更新观看时间
func (d *HistoryDAO) Upsert(ctx context.Context, h *models.History) error {
	return d.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(h).Error
}

func (d *HistoryDAO) ListByUser(ctx context.Context, userID uint64) ([]*models.History, error) {
	var items []*models.History
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at DESC").Order("id DESC").
		Find(&items).Error
	return items, err
}

func (d *HistoryDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	return d.Db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.History{}).Error
}

func (d *HistoryDAO) DeleteOne(ctx context.Context, userID, videoID uint64) error {
	return d.Db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&models.History{}).Error
}

func (d *HistoryDAO) DeleteByVideoIds(ctx context.Context, videoIDs []uint64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("video_id IN ?", videoIDs).Delete(&models.History{}).Error
}
