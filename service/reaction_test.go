package service

import (
	"Vidhub/models"
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVideoReaction_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v := f.video(t, creator.ID)

	for i := 0; i < 2; i++ {
		resp, err := f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, ptr(models.ReactionLike))
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Likes)
		assert.Equal(t, int64(0), resp.Dislikes)
		require.NotNil(t, resp.Status)
		assert.Equal(t, models.ReactionLike, *resp.Status)
	}
	assert.Equal(t, int64(1), f.count(t, &models.Reaction{}, "video_id = ?", v.ID))
}

func TestSetVideoReaction_Flip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v := f.video(t, creator.ID)

	_, err := f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, ptr(models.ReactionLike))
	require.NoError(t, err)

	resp, err := f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, ptr(models.ReactionDislike))
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Likes)
	assert.Equal(t, int64(1), resp.Dislikes)

	status, err := f.reactions.VideoReactionStatus(ctx, viewer.ID, v.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.ReactionDislike, *status)

	resp, err = f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Likes)
	assert.Equal(t, int64(0), resp.Dislikes)
	assert.Nil(t, resp.Status)
	assert.Equal(t, int64(0), f.count(t, &models.Reaction{}, "video_id = ?", v.ID))

	// 没有记录时取消不改变计数
	resp, err = f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Likes)
}

func TestSetVideoReaction_ManyUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	a := f.user(t, "a")
	b := f.user(t, "b")
	v := f.video(t, creator.ID)

	_, err := f.reactions.SetVideoReaction(ctx, a.ID, v.ID, ptr(models.ReactionLike))
	require.NoError(t, err)
	resp, err := f.reactions.SetVideoReaction(ctx, b.ID, v.ID, ptr(models.ReactionDislike))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Likes)
	assert.Equal(t, int64(1), resp.Dislikes)
}

func TestSetVideoReaction_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v := f.video(t, creator.ID)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.reactions.SetVideoReaction(ctx, viewer.ID, v.ID, ptr(models.ReactionLike))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var got models.Video
	f.reload(t, &got, v.ID)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(0), got.Dislikes)
}

func TestSetVideoReaction_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	v := f.video(t, creator.ID)

	_, err := f.reactions.SetVideoReaction(ctx, creator.ID, v.ID, ptr("love"))
	requireBizError(t, err, http.StatusBadRequest, "Invalid reaction status")

	_, err = f.reactions.SetVideoReaction(ctx, creator.ID, v.ID+1, ptr(models.ReactionLike))
	requireBizError(t, err, http.StatusNotFound, "Video not found")
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	a := f.user(t, "a")
	b := f.user(t, "b")
	v := f.video(t, creator.ID)

	_, err := f.reactions.SetVideoReaction(ctx, a.ID, v.ID, ptr(models.ReactionLike))
	require.NoError(t, err)
	_, err = f.reactions.SetVideoReaction(ctx, b.ID, v.ID, ptr(models.ReactionDislike))
	require.NoError(t, err)

	// 人为写坏计数
	require.NoError(t, f.db.Model(&models.Video{}).Where("id = ?", v.ID).
		Updates(map[string]any{"likes": 10, "dislikes": 7}).Error)

	resp, err := f.reactions.Reconcile(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Likes)
	assert.Equal(t, int64(1), resp.Dislikes)

	var got models.Video
	f.reload(t, &got, v.ID)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(1), got.Dislikes)

	_, err = f.reactions.Reconcile(ctx, v.ID+1)
	requireBizError(t, err, http.StatusNotFound, "")
}

func TestReconcileAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v1 := f.video(t, creator.ID)
	v2 := f.video(t, creator.ID)

	c, err := f.comments.Create(ctx, viewer.ID, v1.ID, "nice")
	require.NoError(t, err)
	_, err = f.reactions.SetCommentLike(ctx, creator.ID, c.ID, true)
	require.NoError(t, err)
	_, err = f.reactions.SetVideoReaction(ctx, viewer.ID, v2.ID, ptr(models.ReactionLike))
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Video{}).Where("id = ?", v2.ID).Update("likes", 5).Error)
	require.NoError(t, f.db.Model(&models.Comment{}).Where("id = ?", c.ID).Update("likes", 0).Error)

	videos, comments, err := f.reactions.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), videos)
	assert.Equal(t, int64(1), comments)

	var gotVideo models.Video
	f.reload(t, &gotVideo, v2.ID)
	assert.Equal(t, int64(1), gotVideo.Likes)

	var gotComment models.Comment
	f.reload(t, &gotComment, c.ID)
	assert.Equal(t, int64(1), gotComment.Likes)
}

func TestSetCommentLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v := f.video(t, creator.ID)
	c, err := f.comments.Create(ctx, creator.ID, v.ID, "first")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := f.reactions.SetCommentLike(ctx, viewer.ID, c.ID, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Likes)
	}

	resp, err := f.reactions.SetCommentLike(ctx, viewer.ID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Likes)

	resp, err = f.reactions.SetCommentLike(ctx, viewer.ID, c.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Likes)

	_, err = f.reactions.SetCommentLike(ctx, viewer.ID, c.ID+1, true)
	requireBizError(t, err, http.StatusNotFound, "Comment not found")
}
