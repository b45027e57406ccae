package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/response"
	"Vidhub/pkg/snowflake"
	"Vidhub/types"
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const maxCommentLen = 1000

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	// List viewerID 不为 0 时附带点赞状态
	List(ctx context.Context, videoID, viewerID uint64) ([]*types.Comment, error)
	Create(ctx context.Context, userID, videoID uint64, content string) (*types.Comment, error)
	Update(ctx context.Context, userID, commentID uint64, content string) (*types.Comment, error)
	Delete(ctx context.Context, userID, commentID uint64) error
}

type CommentService struct {
	CommentDAO  *dao.CommentDAO
	ReactionDAO *dao.ReactionDAO
	VideoDAO    *dao.VideoDAO
	UserDAO     *dao.UserDAO
}

func (s *CommentService) List(ctx context.Context, videoID, viewerID uint64) ([]*types.Comment, error) {
	if _, err := visibleVideo(ctx, s.VideoDAO, videoID, viewerID); err != nil {
		return nil, err
	}
	comments, err := s.CommentDAO.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	result := make([]*types.Comment, 0, len(comments))
	if len(comments) == 0 {
		return result, nil
	}

	commentIDs := make([]uint64, 0, len(comments))
	userIDs := make([]uint64, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.UserDAO.BatchGet(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	var liked map[uint64]bool
	if viewerID != 0 {
		if liked, err = s.ReactionDAO.BatchCommentLiked(ctx, viewerID, commentIDs); err != nil {
			return nil, err
		}
	}

	for _, c := range comments {
		item := toComment(c, users[c.UserID])
		if liked != nil {
			item.IsLiked = ptr(liked[c.ID])
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *CommentService) Create(ctx context.Context, userID, videoID uint64, content string) (*types.Comment, error) {
	if _, err := visibleVideo(ctx, s.VideoDAO, videoID, userID); err != nil {
		return nil, err
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:      snowflake.GenID(),
		VideoID: videoID,
		UserID:  userID,
		Content: content,
	}
	if err := s.CommentDAO.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.build(ctx, comment)
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uint64, content string) (*types.Comment, error) {
	comment, err := s.owned(ctx, userID, commentID, "Not authorized to update this comment")
	if err != nil {
		return nil, err
	}
	content, err = validateContent(content)
	if err != nil {
		return nil, err
	}

	if err := s.CommentDAO.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	comment, err = s.CommentDAO.FindById(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, response.NotFound("Comment not found")
	}
	return s.build(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint64) error {
	if _, err := s.owned(ctx, userID, commentID, "Not authorized to delete this comment"); err != nil {
		return err
	}
	return s.CommentDAO.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.ReactionDAO.WithTx(tx).DeleteByCommentIds(ctx, []uint64{commentID}); err != nil {
			return err
		}
		_, err := s.CommentDAO.WithTx(tx).DeleteById(ctx, commentID)
		return err
	})
}

func (s *CommentService) owned(ctx context.Context, userID, commentID uint64, msg string) (*models.Comment, error) {
	comment, err := s.CommentDAO.FindById(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, response.NotFound("Comment not found")
	}
	if comment.UserID != userID {
		return nil, response.Forbidden(msg)
	}
	return comment, nil
}

func (s *CommentService) build(ctx context.Context, c *models.Comment) (*types.Comment, error) {
	user, err := s.UserDAO.FindById(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	return toComment(c, user), nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", response.BadRequest("Comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "", response.BadRequest("Comment cannot be more than 1000 characters")
	}
	return content, nil
}

func toComment(c *models.Comment, u *models.User) *types.Comment {
	item := &types.Comment{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		Likes:     c.Likes,
		Edited:    c.Edited,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if u != nil {
		item.User = &types.CommentUser{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
	}
	return item
}
