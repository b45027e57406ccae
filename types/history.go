package types

import "time"

type HistoryRequest struct {
	VideoID uint64 `json:"videoId"`
}

type History struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user"`
	VideoID   uint64    `json:"videoId"`
	Video     *Video    `json:"video,omitempty"`
	WatchedAt time.Time `json:"watchedAt"`
}
