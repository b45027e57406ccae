package types

import "time"

// Profile 当前用户资料, 不含密码
type Profile struct {
	ID               uint64    `json:"id"`
	Username         string    `json:"username"`
	Avatar           string    `json:"avatar"`
	Bio              string    `json:"bio"`
	SubscribersCount int64     `json:"subscribersCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type PublicProfile struct {
	ID               uint64    `json:"id"`
	Username         string    `json:"username"`
	Avatar           string    `json:"avatar"`
	Bio              string    `json:"bio"`
	SubscribersCount int64     `json:"subscribersCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UpdateProfileForm username/bio 为 nil 表示不修改
type UpdateProfileForm struct {
	Username *string
	Bio      *string
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Channel struct {
	ID               uint64 `json:"id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int64  `json:"subscribersCount"`
}
