package service

import (
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/storage"
	"context"

	"gorm.io/gorm"
)

// deleteVideosTx 删除视频及其评论、点赞、观看记录, 返回需要清理的文件
func deleteVideosTx(ctx context.Context, tx *gorm.DB, videos []*models.Video) ([]storage.Blob, error) {
	if len(videos) == 0 {
		return nil, nil
	}
	ids := make([]uint64, 0, len(videos))
	blobs := make([]storage.Blob, 0, len(videos)*2)
	for _, v := range videos {
		ids = append(ids, v.ID)
		blobs = append(blobs,
			storage.Blob{Kind: storage.KindVideo, Name: v.FileName},
			storage.Blob{Kind: storage.KindThumbnail, Name: v.Thumbnail},
		)
	}

	comments := dao.NewCommentDAO(tx)
	reactions := dao.NewReactionDAO(tx)

	commentIDs, err := comments.IdsByVideos(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := reactions.DeleteByCommentIds(ctx, commentIDs); err != nil {
		return nil, err
	}
	if err := reactions.DeleteByVideoIds(ctx, ids); err != nil {
		return nil, err
	}
	if err := comments.DeleteByIds(ctx, commentIDs); err != nil {
		return nil, err
	}
	if err := dao.NewHistoryDAO(tx).DeleteByVideoIds(ctx, ids); err != nil {
		return nil, err
	}
	if err := dao.NewVideoDAO(tx).DeleteByIds(ctx, ids); err != nil {
		return nil, err
	}
	return blobs, nil
}
