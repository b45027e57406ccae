package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/response"
	"Vidhub/pkg/snowflake"
	"Vidhub/types"
	"context"
	"time"

	"gorm.io/gorm"
)

var _ ISubscriptionService = (*SubscriptionService)(nil)

type ISubscriptionService interface {
	Subscribe(ctx context.Context, subscriberID, creatorID uint64) (*types.Subscription, error)
	Unsubscribe(ctx context.Context, subscriberID, creatorID uint64) error
	IsSubscribed(ctx context.Context, subscriberID, creatorID uint64) (bool, error)
	List(ctx context.Context, subscriberID uint64) ([]*types.Subscription, error)
}

type SubscriptionService struct {
	SubscriptionDAO *dao.SubscriptionDAO
	UserDAO         *dao.UserDAO
	Locker          lock.Locker
}

func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, creatorID uint64) (*types.Subscription, error) {
	if creatorID == 0 {
		return nil, response.BadRequest("Creator ID is required")
	}
	exist, err := s.UserDAO.IsExist(ctx, "id = ?", creatorID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NotFound("Creator not found")
	}
	if subscriberID == creatorID {
		return nil, response.BadRequest("You cannot subscribe to yourself")
	}

	unlock, err := acquire(ctx, s.Locker, lock.SubscriptionKey(subscriberID, creatorID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	sub := &models.Subscription{
		ID:           snowflake.GenID(),
		SubscriberID: subscriberID,
		CreatorID:    creatorID,
		CreatedAt:    time.Now(),
	}
	var creator *models.User
	err = s.SubscriptionDAO.Transaction(ctx, func(tx *gorm.DB) error {
		subs := s.SubscriptionDAO.WithTx(tx)
		users := s.UserDAO.WithTx(tx)

		subscribed, err := subs.IsSubscribed(ctx, subscriberID, creatorID)
		if err != nil {
			return err
		}
		if subscribed {
			return response.Conflict("Already subscribed to this channel")
		}
		if err := subs.Create(ctx, sub); err != nil {
			return err
		}
		if err := users.IncrSubscribers(ctx, creatorID, 1); err != nil {
			return err
		}
		creator, err = users.FindById(ctx, creatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &types.Subscription{
		ID:           sub.ID,
		SubscriberID: sub.SubscriberID,
		Creator:      toCreator(creator),
		CreatedAt:    sub.CreatedAt,
	}, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, creatorID uint64) error {
	unlock, err := acquire(ctx, s.Locker, lock.SubscriptionKey(subscriberID, creatorID))
	if err != nil {
		return err
	}
	defer unlock()

	return s.SubscriptionDAO.Transaction(ctx, func(tx *gorm.DB) error {
		subs := s.SubscriptionDAO.WithTx(tx)

		sub, err := subs.Find(ctx, subscriberID, creatorID)
		if err != nil {
			return err
		}
		if sub == nil {
			return response.NotFound("Subscription not found")
		}
		if _, err := subs.DeleteById(ctx, sub.ID); err != nil {
			return err
		}
		return s.UserDAO.WithTx(tx).IncrSubscribers(ctx, creatorID, -1)
	})
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID, creatorID uint64) (bool, error) {
	return s.SubscriptionDAO.IsSubscribed(ctx, subscriberID, creatorID)
}

func (s *SubscriptionService) List(ctx context.Context, subscriberID uint64) ([]*types.Subscription, error) {
	subs, err := s.SubscriptionDAO.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.CreatorID)
	}
	creators, err := s.UserDAO.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*types.Subscription, 0, len(subs))
	for _, sub := range subs {
		result = append(result, &types.Subscription{
			ID:           sub.ID,
			SubscriberID: sub.SubscriberID,
			Creator:      toCreator(creators[sub.CreatorID]),
			CreatedAt:    sub.CreatedAt,
		})
	}
	return result, nil
}
