package dao

import (
	"Vidhub/models"
	"context"
	"strings"

	"gorm.io/gorm"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		Repo: NewRepo[models.User](db),
	}
}

func (d *UserDAO) WithTx(tx *gorm.DB) *UserDAO {
	return &UserDAO{Repo: d.Repo.WithDB(tx)}
}

// UsernameTaken 用户名是否被其他用户占用
func (d *UserDAO) UsernameTaken(ctx context.Context, username string, exceptID uint64) (bool, error) {
	return d.IsExist(ctx, "username = ? AND id <> ?", username, exceptID)
}

func (d *UserDAO) IncrSubscribers(ctx context.Context, id uint64, delta int64) error {
	return d.Model(ctx).Where("id = ?", id).
		UpdateColumn("subscribers_count", incr("subscribers_count", delta)).Error
}

// DecrSubscribersBatch 每个频道订阅数减一
func (d *UserDAO) DecrSubscribersBatch(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.Model(ctx).Where("id IN ?", ids).
		UpdateColumn("subscribers_count", incr("subscribers_count", -1)).Error
}

// BatchGet id -> user
func (d *UserDAO) BatchGet(ctx context.Context, ids []uint64) (map[uint64]*models.User, error) {
	result := make(map[uint64]*models.User, len(ids))
	users, err := d.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// Search 按用户名模糊匹配, 订阅数高的在前
func (d *UserDAO) Search(ctx context.Context, keyword string, limit int) ([]*models.User, error) {
	var users []*models.User
	err := d.Db.WithContext(ctx).
		Where("LOWER(username) LIKE ? ESCAPE '!'", likePattern(strings.ToLower(keyword))).
		Order("subscribers_count DESC").Order("id").
		Limit(limit).
		Find(&users).Error
	return users, err
}
