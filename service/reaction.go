package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/lock"
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/snowflake"
	"Vidhub/types"
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IReactionService = (*ReactionService)(nil)

type IReactionService interface {
	// SetVideoReaction status 为 nil 表示取消
	SetVideoReaction(ctx context.Context, userID, videoID uint64, status *string) (*types.ReactionResponse, error)
	VideoReactionStatus(ctx context.Context, userID, videoID uint64) (*string, error)
	SetCommentLike(ctx context.Context, userID, commentID uint64, like bool) (*types.CommentLikeResponse, error)
	// Reconcile 按流水重算视频计数
	Reconcile(ctx context.Context, videoID uint64) (*types.ReconcileResponse, error)
	ReconcileComment(ctx context.Context, commentID uint64) (int64, error)
	ReconcileAll(ctx context.Context) (videos, comments int64, err error)
}

type ReactionService struct {
	VideoDAO    *dao.VideoDAO
	CommentDAO  *dao.CommentDAO
	ReactionDAO *dao.ReactionDAO
	Locker      lock.Locker
}

func (s *ReactionService) SetVideoReaction(ctx context.Context, userID, videoID uint64, status *string) (*types.ReactionResponse, error) {
	kind := ""
	if status != nil {
		kind = *status
	}
	if kind != "" && kind != models.ReactionLike && kind != models.ReactionDislike {
		return nil, response.BadRequest("Invalid reaction status")
	}

	exist, err := s.VideoDAO.IsExist(ctx, "id = ?", videoID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NotFound("Video not found")
	}

	unlock, err := acquire(ctx, s.Locker, lock.ReactionKey(userID, videoID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	resp := &types.ReactionResponse{}
	if kind != "" {
		resp.Status = ptr(kind)
	}
	err = s.VideoDAO.Transaction(ctx, func(tx *gorm.DB) error {
		videos := s.VideoDAO.WithTx(tx)
		reactions := s.ReactionDAO.WithTx(tx)

		existing, err := reactions.FindVideoReaction(ctx, userID, videoID)
		if err != nil {
			return err
		}

		switch {
		case existing == nil && kind == "":
			// 没有记录也不需要记录
		case existing == nil:
			if err := reactions.Create(ctx, &models.Reaction{
				ID:      snowflake.GenID(),
				UserID:  userID,
				VideoID: ptr(videoID),
				Kind:    kind,
			}); err != nil {
				return err
			}
			if err := videos.IncrCounter(ctx, videoID, counterColumn(kind), 1); err != nil {
				return err
			}
		case kind == "":
			if _, err := reactions.DeleteById(ctx, existing.ID); err != nil {
				return err
			}
			if err := videos.IncrCounter(ctx, videoID, counterColumn(existing.Kind), -1); err != nil {
				return err
			}
		case existing.Kind != kind:
			// 原地改类型, 唯一索引不会出现空档
			if err := reactions.UpdateKind(ctx, existing.ID, kind); err != nil {
				return err
			}
			if err := videos.IncrCounter(ctx, videoID, counterColumn(existing.Kind), -1); err != nil {
				return err
			}
			if err := videos.IncrCounter(ctx, videoID, counterColumn(kind), 1); err != nil {
				return err
			}
		}

		resp.Likes, resp.Dislikes, err = videos.Counters(ctx, videoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ReactionService) VideoReactionStatus(ctx context.Context, userID, videoID uint64) (*string, error) {
	r, err := s.ReactionDAO.FindVideoReaction(ctx, userID, videoID)
	if err != nil || r == nil {
		return nil, err
	}
	return ptr(r.Kind), nil
}

func (s *ReactionService) SetCommentLike(ctx context.Context, userID, commentID uint64, like bool) (*types.CommentLikeResponse, error) {
	exist, err := s.CommentDAO.IsExist(ctx, "id = ?", commentID)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, response.NotFound("Comment not found")
	}

	unlock, err := acquire(ctx, s.Locker, lock.ReactionKey(userID, commentID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	resp := &types.CommentLikeResponse{}
	err = s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		comments := s.CommentDAO.WithTx(tx)
		reactions := s.ReactionDAO.WithTx(tx)

		existing, err := reactions.FindCommentReaction(ctx, userID, commentID)
		if err != nil {
			return err
		}
		if like && existing == nil {
			if err := reactions.Create(ctx, &models.Reaction{
				ID:        snowflake.GenID(),
				UserID:    userID,
				CommentID: ptr(commentID),
				Kind:      models.ReactionLike,
			}); err != nil {
				return err
			}
			if err := comments.IncrLikes(ctx, commentID, 1); err != nil {
				return err
			}
		}
		if !like && existing != nil {
			if _, err := reactions.DeleteById(ctx, existing.ID); err != nil {
				return err
			}
			if err := comments.IncrLikes(ctx, commentID, -1); err != nil {
				return err
			}
		}

		resp.Likes, err = comments.Likes(ctx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ReactionService) Reconcile(ctx context.Context, videoID uint64) (*types.ReconcileResponse, error) {
	resp := &types.ReconcileResponse{}
	err := s.VideoDAO.Transaction(ctx, func(tx *gorm.DB) error {
		videos := s.VideoDAO.WithTx(tx)
		exist, err := videos.IsExist(ctx, "id = ?", videoID)
		if err != nil {
			return err
		}
		if !exist {
			return response.NotFound("Video not found")
		}

		resp.Likes, resp.Dislikes, err = s.ReactionDAO.WithTx(tx).CountVideo(ctx, videoID)
		if err != nil {
			return err
		}
		return videos.SetCounters(ctx, videoID, resp.Likes, resp.Dislikes)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ReactionService) ReconcileComment(ctx context.Context, commentID uint64) (int64, error) {
	var likes int64
	err := s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		comments := s.CommentDAO.WithTx(tx)
		exist, err := comments.IsExist(ctx, "id = ?", commentID)
		if err != nil {
			return err
		}
		if !exist {
			return response.NotFound("Comment not found")
		}

		likes, err = s.ReactionDAO.WithTx(tx).CountComment(ctx, commentID)
		if err != nil {
			return err
		}
		return comments.SetLikes(ctx, commentID, likes)
	})
	return likes, err
}

// ReconcileAll 全量修复, 供运维命令使用
func (s *ReactionService) ReconcileAll(ctx context.Context) (int64, int64, error) {
	videoIDs, err := s.VideoDAO.IDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	commentIDs, err := s.CommentDAO.IDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	var videos, comments atomic.Int64
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for _, id := range videoIDs {
		p.Go(func(ctx context.Context) error {
			if _, err := s.Reconcile(ctx, id); err != nil {
				return skipNotFound(err)
			}
			videos.Add(1)
			return nil
		})
	}
	for _, id := range commentIDs {
		p.Go(func(ctx context.Context) error {
			if _, err := s.ReconcileComment(ctx, id); err != nil {
				return skipNotFound(err)
			}
			comments.Add(1)
			return nil
		})
	}
	err = p.Wait()
	log.L.Info("reconcile finished",
		zap.Int64("videos", videos.Load()),
		zap.Int64("comments", comments.Load()),
		zap.Error(err),
	)
	return videos.Load(), comments.Load(), err
}

// 统计期间被删除的记录直接跳过
func skipNotFound(err error) error {
	var be *response.BizError
	if errors.As(err, &be) && be.Code == http.StatusNotFound {
		return nil
	}
	return err
}
