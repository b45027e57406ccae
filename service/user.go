package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/log"
	"Vidhub/pkg/response"
	"Vidhub/pkg/rocketmq"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/upload"
	"Vidhub/types"
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 6
	maxUsernameLen = 50
	maxBioLen      = 500
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Profile(ctx context.Context, userID uint64) (*types.Profile, error)
	// UpdateProfile avatar 可为 nil, 旧头像在提交后删除
	UpdateProfile(ctx context.Context, userID uint64, form *types.UpdateProfileForm, avatar *upload.File) (*types.Profile, error)
	UpdatePassword(ctx context.Context, userID uint64, req *types.UpdatePasswordRequest) error
	// DeleteAccount 级联删除用户的全部数据
	DeleteAccount(ctx context.Context, userID uint64) error
	PublicProfile(ctx context.Context, userID uint64) (*types.PublicProfile, error)
	Get(ctx context.Context, userID uint64) (*models.User, error)
}

type UserService struct {
	UserDAO         *dao.UserDAO
	VideoDAO        *dao.VideoDAO
	CommentDAO      *dao.CommentDAO
	ReactionDAO     *dao.ReactionDAO
	SubscriptionDAO *dao.SubscriptionDAO
	HistoryDAO      *dao.HistoryDAO
	Store           storage.Store
	Publisher       rocketmq.Publisher
}

func (s *UserService) Get(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, userID uint64) (*types.Profile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *UserService) PublicProfile(ctx context.Context, userID uint64) (*types.PublicProfile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.PublicProfile{
		ID:               user.ID,
		Username:         user.Username,
		Avatar:           user.Avatar,
		Bio:              user.Bio,
		SubscribersCount: user.SubscribersCount,
		CreatedAt:        user.CreatedAt,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, form *types.UpdateProfileForm, avatar *upload.File) (*types.Profile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if form.Username != nil {
		if username := strings.TrimSpace(*form.Username); username != "" {
			if utf8.RuneCountInString(username) > maxUsernameLen {
				return nil, response.BadRequest("Username cannot be more than 50 characters")
			}
			taken, err := s.UserDAO.UsernameTaken(ctx, username, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, response.BadRequest("Username already taken")
			}
			data["username"] = username
		}
	}
	if form.Bio != nil {
		bio := strings.TrimSpace(*form.Bio)
		if utf8.RuneCountInString(bio) > maxBioLen {
			return nil, response.BadRequest("Bio cannot be more than 500 characters")
		}
		data["bio"] = bio
	}

	oldAvatar := user.Avatar
	if avatar != nil {
		if err := s.Store.Import(ctx, storage.KindAvatar, avatar.Name, avatar.Path); err != nil {
			return nil, err
		}
		data["avatar"] = avatar.Name
	}

	if len(data) > 0 {
		if _, err := s.UserDAO.UpdateById(ctx, userID, data); err != nil {
			if avatar != nil {
				removeBlobs(ctx, s.Store, []storage.Blob{{Kind: storage.KindAvatar, Name: avatar.Name}})
			}
			return nil, err
		}
	}
	if avatar != nil && oldAvatar != "" && oldAvatar != avatar.Name {
		removeBlobs(ctx, s.Store, []storage.Blob{{Kind: storage.KindAvatar, Name: oldAvatar}})
	}

	return s.Profile(ctx, userID)
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uint64, req *types.UpdatePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return response.BadRequest("Current and new passwords are required")
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return response.Unauthorized("Current password is incorrect")
	}
	if len(req.NewPassword) < minPasswordLen {
		return response.BadRequest("New password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.UserDAO.UpdateById(ctx, userID, map[string]any{"password": string(hash)})
	return err
}

func (s *UserService) DeleteAccount(ctx context.Context, userID uint64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	var blobs []storage.Blob
	err = s.UserDAO.Transaction(ctx, func(tx *gorm.DB) error {
		reactions := s.ReactionDAO.WithTx(tx)
		comments := s.CommentDAO.WithTx(tx)
		videos := s.VideoDAO.WithTx(tx)
		users := s.UserDAO.WithTx(tx)
		subs := s.SubscriptionDAO.WithTx(tx)

		// 1. 撤销点赞/点踩并回退计数
		marks, err := reactions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, r := range marks {
			switch {
			case r.VideoID != nil:
				err = videos.IncrCounter(ctx, *r.VideoID, counterColumn(r.Kind), -1)
			case r.CommentID != nil:
				err = comments.IncrLikes(ctx, *r.CommentID, -1)
			}
			if err != nil {
				return err
			}
		}
		if err := reactions.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		// 2. 用户的评论及评论上的点赞
		commentIDs, err := comments.IdsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := reactions.DeleteByCommentIds(ctx, commentIDs); err != nil {
			return err
		}
		if err := comments.DeleteByIds(ctx, commentIDs); err != nil {
			return err
		}

		// 3. 观看记录
		if err := s.HistoryDAO.WithTx(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}

		// 4. 订阅关系, 关注过的频道订阅数减一
		creatorIDs, err := subs.CreatorIds(ctx, userID)
		if err != nil {
			return err
		}
		if err := users.DecrSubscribersBatch(ctx, creatorIDs); err != nil {
			return err
		}
		if err := subs.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		// 5. 用户发布的视频
		owned, err := videos.ListByCreator(ctx, userID, true)
		if err != nil {
			return err
		}
		if blobs, err = deleteVideosTx(ctx, tx, owned); err != nil {
			return err
		}

		_, err = users.DeleteById(ctx, userID)
		return err
	})
	if err != nil {
		return err
	}

	blobs = append(blobs, storage.Blob{Kind: storage.KindAvatar, Name: user.Avatar})
	removeBlobs(ctx, s.Store, blobs)
	s.Publisher.Publish(ctx, rocketmq.Event{Type: rocketmq.TagAccountDeleted, UserID: userID})
	log.L.Info("account deleted", zap.Uint64("user_id", userID), zap.Int("blobs", len(blobs)))
	return nil
}

func toProfile(u *models.User) *types.Profile {
	return &types.Profile{
		ID:               u.ID,
		Username:         u.Username,
		Avatar:           u.Avatar,
		Bio:              u.Bio,
		SubscribersCount: u.SubscribersCount,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
