package dao

import (
	"Vidhub/models"
	"context"

	"gorm.io/gorm"
)

type SubscriptionDAO struct {
	Repo[models.Subscription]
}

func NewSubscriptionDAO(db *gorm.DB) *SubscriptionDAO {
	return &SubscriptionDAO{
		Repo: NewRepo[models.Subscription](db),
	}
}

func (d *SubscriptionDAO) WithTx(tx *gorm.DB) *SubscriptionDAO {
	return &SubscriptionDAO{Repo: d.Repo.WithDB(tx)}
}

func (d *SubscriptionDAO) Find(ctx context.Context, subscriberID, creatorID uint64) (*models.Subscription, error) {
	return d.FindByWhere(ctx, "subscriber_id = ? AND creator_id = ?", subscriberID, creatorID)
}

func (d *SubscriptionDAO) IsSubscribed(ctx context.Context, subscriberID, creatorID uint64) (bool, error) {
	return d.IsExist(ctx, "subscriber_id = ? AND creator_id = ?", subscriberID, creatorID)
}

func (d *SubscriptionDAO) ListBySubscriber(ctx context.Context, subscriberID uint64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	err := d.Db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").Order("id DESC").
		Find(&subs).Error
	return subs, err
}

// CreatorIds 用户关注的全部频道
func (d *SubscriptionDAO) CreatorIds(ctx context.Context, subscriberID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := d.Model(ctx).Where("subscriber_id = ?", subscriberID).Pluck("creator_id", &ids).Error
	return ids, err
}

// DeleteByUser 删除双向订阅关系
func (d *SubscriptionDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	return d.Db.WithContext(ctx).
		Where("subscriber_id = ? OR creator_id = ?", userID, userID).
		Delete(&models.Subscription{}).Error
}
