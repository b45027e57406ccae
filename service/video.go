package service

import (
	"Vidhub/config"
	"Vidhub/dao"
	"Vidhub/models"
	"Vidhub/pkg/log"
	"Vidhub/pkg/media"
	"Vidhub/pkg/response"
	"Vidhub/pkg/rocketmq"
	"Vidhub/pkg/snowflake"
	"Vidhub/pkg/storage"
	"Vidhub/pkg/upload"
	"Vidhub/types"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	RelatedLimit    = 10
	FeedLimit       = 50

	maxTitleLen       = 100
	maxDescriptionLen = 5000
)

var _ IVideoService = (*VideoService)(nil)

type IVideoService interface {
	// Upload 处理已暂存的上传文件, 返回新建视频
	Upload(ctx context.Context, userID uint64, form *upload.Form) (*types.Video, error)
	List(ctx context.Context, category string, page, limit int) ([]*types.Video, error)
	// Detail 浏览数 +1, viewerID 为 0 表示未登录
	Detail(ctx context.Context, videoID, viewerID uint64) (*types.Video, error)
	// Visible 私有视频只对作者可见
	Visible(ctx context.Context, videoID, viewerID uint64) (*models.Video, error)
	ListByUser(ctx context.Context, creatorID uint64) ([]*types.Video, error)
	Related(ctx context.Context, videoID, viewerID uint64) ([]*types.Video, error)
	SubscriptionFeed(ctx context.Context, userID uint64) ([]*types.Video, error)
	Update(ctx context.Context, userID, videoID uint64, req *types.UpdateVideoRequest) (*types.Video, error)
	Delete(ctx context.Context, userID, videoID uint64) error
	// CheckOwner 非作者返回 403
	CheckOwner(ctx context.Context, userID, videoID uint64) error
}

type VideoService struct {
	VideoDAO        *dao.VideoDAO
	UserDAO         *dao.UserDAO
	ReactionDAO     *dao.ReactionDAO
	SubscriptionDAO *dao.SubscriptionDAO
	Store           storage.Store
	Prober          media.Prober
	Publisher       rocketmq.Publisher
	StorageConf     *config.Storage
}

func (s *VideoService) Upload(ctx context.Context, userID uint64, form *upload.Form) (*types.Video, error) {
	defer form.Cleanup()

	file := form.File(upload.FieldVideo)
	if file == nil {
		return nil, response.BadRequest("Video file is required")
	}
	meta, err := parseUploadForm(form)
	if err != nil {
		return nil, err
	}

	duration, err := s.Prober.Duration(file.Path)
	if err != nil {
		return nil, err
	}
	thumbnail, thumbPath := s.prepareThumbnail(form, file)

	if err := s.Store.Import(ctx, storage.KindVideo, file.Name, file.Path); err != nil {
		return nil, err
	}
	blobs := []storage.Blob{{Kind: storage.KindVideo, Name: file.Name}}
	if thumbnail != "" {
		if err := s.Store.Import(ctx, storage.KindThumbnail, thumbnail, thumbPath); err != nil {
			log.L.Warn("import thumbnail", zap.String("name", thumbnail), zap.Error(err))
			os.Remove(thumbPath)
			thumbnail = ""
		} else {
			blobs = append(blobs, storage.Blob{Kind: storage.KindThumbnail, Name: thumbnail})
		}
	}

	video := &models.Video{
		ID:          snowflake.GenID(),
		Title:       meta.Title,
		Description: meta.Description,
		FileName:    file.Name,
		Thumbnail:   thumbnail,
		Duration:    duration,
		Category:    meta.Category,
		CreatorID:   userID,
		IsPrivate:   meta.IsPrivate,
	}
	if err := s.VideoDAO.Create(ctx, video); err != nil {
		removeBlobs(ctx, s.Store, blobs)
		return nil, err
	}
	s.Publisher.Publish(ctx, rocketmq.Event{Type: rocketmq.TagVideoCreated, UserID: userID, VideoID: video.ID})

	creator, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toVideo(video, creator), nil
}

// prepareThumbnail 优先使用上传的封面, 否则从视频截帧, 截帧失败不影响上传
func (s *VideoService) prepareThumbnail(form *upload.Form, video *upload.File) (name, path string) {
	if thumb := form.File(upload.FieldThumbnail); thumb != nil {
		return thumb.Name, thumb.Path
	}

	name = upload.NewName("thumbnail.jpg")
	path = storage.StagingPath(s.StorageConf.Root, storage.KindThumbnail, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.L.Warn("thumbnail staging dir", zap.Error(err))
		return "", ""
	}
	if err := s.Prober.Thumbnail(video.Path, path); err != nil {
		log.L.Warn("generate thumbnail", zap.String("video", video.Name), zap.Error(err))
		os.Remove(path)
		return "", ""
	}
	return name, path
}

func parseUploadForm(form *upload.Form) (*types.UploadVideoForm, error) {
	title, _ := form.Value("title")
	description, _ := form.Value("description")
	category, _ := form.Value("category")
	isPrivate, _ := form.Value("isPrivate")

	meta := &types.UploadVideoForm{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		IsPrivate:   isPrivate == "true",
	}
	if err := validateVideoFields(&meta.Title, &meta.Description, &meta.Category); err != nil {
		return nil, err
	}
	return meta, nil
}

func validateVideoFields(title, description, category *string) error {
	if title != nil {
		if *title == "" {
			return response.BadRequest("Title is required")
		}
		if utf8.RuneCountInString(*title) > maxTitleLen {
			return response.BadRequest("Title cannot be more than 100 characters")
		}
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLen {
		return response.BadRequest("Description cannot be more than 5000 characters")
	}
	if category != nil && !models.ValidCategory(*category) {
		return response.BadRequest("Invalid category")
	}
	return nil
}

func (s *VideoService) List(ctx context.Context, category string, page, limit int) ([]*types.Video, error) {
	if category == "All" {
		category = ""
	}
	videos, err := s.VideoDAO.ListPublic(ctx, category, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return buildVideos(ctx, s.UserDAO, videos)
}

func (s *VideoService) Visible(ctx context.Context, videoID, viewerID uint64) (*models.Video, error) {
	return visibleVideo(ctx, s.VideoDAO, videoID, viewerID)
}

// visibleVideo 私密视频只对作者可见, 其他人按不存在处理
func visibleVideo(ctx context.Context, videos *dao.VideoDAO, videoID, viewerID uint64) (*models.Video, error) {
	video, err := videos.FindById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || (video.IsPrivate && video.CreatorID != viewerID) {
		return nil, response.NotFound("Video not found")
	}
	return video, nil
}

func (s *VideoService) Detail(ctx context.Context, videoID, viewerID uint64) (*types.Video, error) {
	video, err := s.Visible(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.VideoDAO.IncrViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++

	creator, err := s.UserDAO.FindById(ctx, video.CreatorID)
	if err != nil {
		return nil, err
	}
	resp := toVideo(video, creator)

	if viewerID != 0 {
		reaction, err := s.ReactionDAO.FindVideoReaction(ctx, viewerID, videoID)
		if err != nil {
			return nil, err
		}
		if reaction != nil {
			resp.IsLiked = ptr(reaction.Kind == models.ReactionLike)
			resp.IsDisliked = ptr(reaction.Kind == models.ReactionDislike)
		}
	}
	return resp, nil
}

func (s *VideoService) ListByUser(ctx context.Context, creatorID uint64) ([]*types.Video, error) {
	videos, err := s.VideoDAO.ListByCreator(ctx, creatorID, false)
	if err != nil {
		return nil, err
	}
	return buildVideos(ctx, s.UserDAO, videos)
}

func (s *VideoService) Related(ctx context.Context, videoID, viewerID uint64) ([]*types.Video, error) {
	video, err := s.Visible(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	videos, err := s.VideoDAO.Related(ctx, video, RelatedLimit)
	if err != nil {
		return nil, err
	}
	return buildVideos(ctx, s.UserDAO, videos)
}

func (s *VideoService) SubscriptionFeed(ctx context.Context, userID uint64) ([]*types.Video, error) {
	creatorIDs, err := s.SubscriptionDAO.CreatorIds(ctx, userID)
	if err != nil {
		return nil, err
	}
	videos, err := s.VideoDAO.ListByCreators(ctx, creatorIDs, FeedLimit)
	if err != nil {
		return nil, err
	}
	return buildVideos(ctx, s.UserDAO, videos)
}

func (s *VideoService) CheckOwner(ctx context.Context, userID, videoID uint64) error {
	_, err := s.owned(ctx, userID, videoID, "Not authorized to manage this video")
	return err
}

func (s *VideoService) owned(ctx context.Context, userID, videoID uint64, msg string) (*models.Video, error) {
	video, err := s.VideoDAO.FindById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, response.NotFound("Video not found")
	}
	if video.CreatorID != userID {
		return nil, response.Forbidden(msg)
	}
	return video, nil
}

func (s *VideoService) Update(ctx context.Context, userID, videoID uint64, req *types.UpdateVideoRequest) (*types.Video, error) {
	if _, err := s.owned(ctx, userID, videoID, "Not authorized to update this video"); err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
		data["title"] = *req.Title
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
		data["description"] = *req.Description
	}
	if req.Category != nil {
		data["category"] = *req.Category
	}
	if req.IsPrivate != nil {
		data["is_private"] = *req.IsPrivate
	}
	if err := validateVideoFields(req.Title, req.Description, req.Category); err != nil {
		return nil, err
	}

	if len(data) > 0 {
		if _, err := s.VideoDAO.UpdateById(ctx, videoID, data); err != nil {
			return nil, err
		}
	}

	video, err := s.VideoDAO.FindById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, response.NotFound("Video not found")
	}
	creator, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toVideo(video, creator), nil
}

func (s *VideoService) Delete(ctx context.Context, userID, videoID uint64) error {
	video, err := s.owned(ctx, userID, videoID, "Not authorized to delete this video")
	if err != nil {
		return err
	}

	var blobs []storage.Blob
	err = s.VideoDAO.Transaction(ctx, func(tx *gorm.DB) error {
		blobs, err = deleteVideosTx(ctx, tx, []*models.Video{video})
		return err
	})
	if err != nil {
		return err
	}

	removeBlobs(ctx, s.Store, blobs)
	s.Publisher.Publish(ctx, rocketmq.Event{Type: rocketmq.TagVideoDeleted, UserID: userID, VideoID: videoID})
	return nil
}
