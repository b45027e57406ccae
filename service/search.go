package service

import (
	"Vidhub/dao"
	"Vidhub/types"
	"context"
	"strings"
)

const (
	SearchVideoLimit   = 20
	SearchChannelLimit = 5
)

var _ ISearchService = (*SearchService)(nil)

type ISearchService interface {
	Videos(ctx context.Context, q string) ([]*types.Video, error)
	Channels(ctx context.Context, q string) ([]*types.Channel, error)
}

type SearchService struct {
	VideoDAO *dao.VideoDAO
	UserDAO  *dao.UserDAO
}

func (s *SearchService) Videos(ctx context.Context, q string) ([]*types.Video, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return make([]*types.Video, 0), nil
	}
	videos, err := s.VideoDAO.Search(ctx, q, SearchVideoLimit)
	if err != nil {
		return nil, err
	}
	return buildVideos(ctx, s.UserDAO, videos)
}

func (s *SearchService) Channels(ctx context.Context, q string) ([]*types.Channel, error) {
	result := make([]*types.Channel, 0)
	q = strings.TrimSpace(q)
	if q == "" {
		return result, nil
	}
	users, err := s.UserDAO.Search(ctx, q, SearchChannelLimit)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result = append(result, &types.Channel{
			ID:               u.ID,
			Username:         u.Username,
			Avatar:           u.Avatar,
			SubscribersCount: u.SubscribersCount,
		})
	}
	return result, nil
}
