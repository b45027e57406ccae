package dao

import (
	"Vidhub/models"
	"context"

	"gorm.io/gorm"
)

type ReactionDAO struct {
	Repo[models.Reaction]
}

func NewReactionDAO(db *gorm.DB) *ReactionDAO {
	return &ReactionDAO{
		Repo: NewRepo[models.Reaction](db),
	}
}

func (d *ReactionDAO) WithTx(tx *gorm.DB) *ReactionDAO {
	return &ReactionDAO{Repo: d.Repo.WithDB(tx)}
}

func (d *ReactionDAO) FindVideoReaction(ctx context.Context, userID, videoID uint64) (*models.Reaction, error) {
	return d.FindByWhere(ctx, "user_id = ? AND video_id = ?", userID, videoID)
}

func (d *ReactionDAO) FindCommentReaction(ctx context.Context, userID, commentID uint64) (*models.Reaction, error) {
	return d.FindByWhere(ctx, "user_id = ? AND comment_id = ?", userID, commentID)
}

func (d *ReactionDAO) UpdateKind(ctx context.Context, id uint64, kind string) error {
	return d.Model(ctx).Where("id = ?", id).Update("kind", kind).Error
}

// BatchCommentLiked 批量查询用户对评论的点赞状态
func (d *ReactionDAO) BatchCommentLiked(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool)
	if len(commentIDs) == 0 {
		return result, nil
	}

	var reactions []*models.Reaction
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND comment_id IN ? AND kind = ?", userID, commentIDs, models.ReactionLike).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, r := range reactions {
		if r.CommentID != nil {
			result[*r.CommentID] = true
		}
	}
	return result, nil
}

type kindCount struct {
	Kind  string
	Count int64
}

// CountVideo 从流水重新统计视频的赞/踩
func (d *ReactionDAO) CountVideo(ctx context.Context, videoID uint64) (likes, dislikes int64, err error) {
	var rows []kindCount
	err = d.Model(ctx).
		Select("kind, COUNT(*) AS count").
		Where("video_id = ?", videoID).
		Group("kind").
		Scan(&rows).Error
	for _, r := range rows {
		switch r.Kind {
		case models.ReactionLike:
			likes = r.Count
		case models.ReactionDislike:
			dislikes = r.Count
		}
	}
	return likes, dislikes, err
}

func (d *ReactionDAO) CountComment(ctx context.Context, commentID uint64) (int64, error) {
	return d.FindCount(ctx, "comment_id = ? AND kind = ?", commentID, models.ReactionLike)
}

func (d *ReactionDAO) ListByUser(ctx context.Context, userID uint64) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	err := d.Db.WithContext(ctx).Where("user_id = ?", userID).Find(&reactions).Error
	return reactions, err
}

func (d *ReactionDAO) DeleteByUser(ctx context.Context, userID uint64) error {
	return d.Db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Reaction{}).Error
}

func (d *ReactionDAO) DeleteByVideoIds(ctx context.Context, videoIDs []uint64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("video_id IN ?", videoIDs).Delete(&models.Reaction{}).Error
}

func (d *ReactionDAO) DeleteByCommentIds(ctx context.Context, commentIDs []uint64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&models.Reaction{}).Error
}
