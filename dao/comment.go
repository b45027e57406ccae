package dao

import (
	"Vidhub/models"
	"context"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		Repo: NewRepo[models.Comment](db),
	}
}

func (d *CommentDAO) WithTx(tx *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: d.Repo.WithDB(tx)}
}

// ListByVideo 按时间倒序
func (d *CommentDAO) ListByVideo(ctx context.Context, videoID uint64) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (d *CommentDAO) UpdateContent(ctx context.Context, id uint64, content string) error {
	return d.Model(ctx).Where("id = ?", id).
		Updates(map[string]any{"content": content, "edited": true}).Error
}

func (d *CommentDAO) IncrLikes(ctx context.Context, id uint64, delta int64) error {
	return d.Model(ctx).Where("id = ?", id).
		UpdateColumn("likes", incr("likes", delta)).Error
}

func (d *CommentDAO) SetLikes(ctx context.Context, id uint64, likes int64) error {
	return d.Model(ctx).Where("id = ?", id).UpdateColumn("likes", likes).Error
}

func (d *CommentDAO) Likes(ctx context.Context, id uint64) (int64, error) {
	var c models.Comment
	err := d.Db.WithContext(ctx).Select("likes").Where("id = ?", id).Take(&c).Error
	return c.Likes, err
}

func (d *CommentDAO) IDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// IdsByVideos 视频下的全部评论
func (d *CommentDAO) IdsByVideos(ctx context.Context, videoIDs []uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	if len(videoIDs) == 0 {
		return ids, nil
	}
	err := d.Model(ctx).Where("video_id IN ?", videoIDs).Pluck("id", &ids).Error
	return ids, err
}

func (d *CommentDAO) IdsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := d.Model(ctx).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (d *CommentDAO) DeleteByIds(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Comment{}).Error
}
