package models

import "time"

type Subscription struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	SubscriberID uint64    `gorm:"column:subscriber_id;not null;uniqueIndex:uk_subscriptions_pair,priority:1" json:"subscriber_id"` // 订阅者
	CreatorID    uint64    `gorm:"column:creator_id;not null;uniqueIndex:uk_subscriptions_pair,priority:2;index" json:"creator_id"`  // 频道主
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
