package models

import "time"

type User struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Username         string    `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	Password         string    `gorm:"column:password;size:255;not null" json:"-"` // bcrypt
	Avatar           string    `gorm:"column:avatar;size:255;not null;default:''" json:"avatar"`
	Bio              string    `gorm:"column:bio;size:500;not null;default:''" json:"bio"`
	SubscribersCount int64     `gorm:"column:subscribers_count;not null;default:0" json:"subscribers_count"`
	CreatedAt        time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
