package dao

import (
	"Vidhub/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

const (
	ColumnLikes    = "likes"
	ColumnDislikes = "dislikes"
)

type VideoDAO struct {
	Repo[models.Video]
}

func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{
		Repo: NewRepo[models.Video](db),
	}
}

func (d *VideoDAO) WithTx(tx *gorm.DB) *VideoDAO {
	return &VideoDAO{Repo: d.Repo.WithDB(tx)}
}

// ListPublic 公开视频, 按发布时间倒序
func (d *VideoDAO) ListPublic(ctx context.Context, category string, offset, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	q := d.Db.WithContext(ctx).Where("is_private = ?", false)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (d *VideoDAO) ListByCreator(ctx context.Context, creatorID uint64, includePrivate bool) ([]*models.Video, error) {
	var videos []*models.Video
	q := d.Db.WithContext(ctx).Where("creator_id = ?", creatorID)
	if !includePrivate {
		q = q.Where("is_private = ?", false)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&videos).Error
	return videos, err
}

// ListByCreators 订阅动态
func (d *VideoDAO) ListByCreators(ctx context.Context, creatorIDs []uint64, limit int) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)
	if len(creatorIDs) == 0 {
		return videos, nil
	}
	err := d.Db.WithContext(ctx).
		Where("creator_id IN ? AND is_private = ?", creatorIDs, false).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

// Related 同分类或同作者, 分类为空时分类条件匹配全部公开视频
func (d *VideoDAO) Related(ctx context.Context, v *models.Video, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	q := d.Db.WithContext(ctx).Where("id <> ? AND is_private = ?", v.ID, false)
	if v.Category != "" {
		q = q.Where("(category = ? OR creator_id = ?)", v.Category, v.CreatorID)
	}
	err := q.Order("views DESC").Order("id DESC").Limit(limit).Find(&videos).Error
	return videos, err
}

// Search 标题或简介包含关键字, 不区分大小写
func (d *VideoDAO) Search(ctx context.Context, keyword string, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	pattern := likePattern(strings.ToLower(keyword))
	err := d.Db.WithContext(ctx).
		Where("is_private = ?", false).
		Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("views DESC").Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (d *VideoDAO) IncrViews(ctx context.Context, id uint64) error {
	return d.Model(ctx).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrCounter column 只能是 ColumnLikes / ColumnDislikes
func (d *VideoDAO) IncrCounter(ctx context.Context, id uint64, column string, delta int64) error {
	return d.Model(ctx).Where("id = ?", id).
		UpdateColumn(column, incr(column, delta)).Error
}

func (d *VideoDAO) SetCounters(ctx context.Context, id uint64, likes, dislikes int64) error {
	return d.Model(ctx).Where("id = ?", id).
		UpdateColumns(map[string]any{"likes": likes, "dislikes": dislikes}).Error
}

// Counters 只读取计数字段
func (d *VideoDAO) Counters(ctx context.Context, id uint64) (likes, dislikes int64, err error) {
	var v models.Video
	err = d.Db.WithContext(ctx).Select("likes", "dislikes").Where("id = ?", id).Take(&v).Error
	return v.Likes, v.Dislikes, err
}

func (d *VideoDAO) IDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (d *VideoDAO) DeleteByIds(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Video{}).Error
}
