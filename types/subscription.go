package types

import "time"

type SubscribeRequest struct {
	CreatorID uint64 `json:"creatorId"`
}

type Subscription struct {
	ID           uint64    `json:"id"`
	SubscriberID uint64    `json:"subscriber"`
	Creator      *Creator  `json:"creator"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SubscribeResponse struct {
	Message      string        `json:"message"`
	Subscription *Subscription `json:"subscription"`
}

type CheckSubscriptionResponse struct {
	IsSubscribed bool `json:"isSubscribed"`
}
