package service

import (
	"Vidhub/models"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordView_Dedup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	v := f.video(t, creator.ID)

	first, created, err := f.history.RecordView(ctx, viewer.ID, v.ID)
	require.NoError(t, err)
	assert.True(t, created)

	time.Sleep(10 * time.Millisecond)

	second, created, err := f.history.RecordView(ctx, viewer.ID, v.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.WatchedAt.After(first.WatchedAt))

	assert.Equal(t, int64(1), f.count(t, &models.History{}, "user_id = ? AND video_id = ?", viewer.ID, v.ID))

	var row models.History
	f.reload(t, &row, first.ID)
	assert.True(t, row.WatchedAt.After(first.WatchedAt))
}

func TestRecordView_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := f.user(t, "viewer")

	_, _, err := f.history.RecordView(ctx, viewer.ID, 0)
	requireBizError(t, err, http.StatusBadRequest, "Video ID is required")

	_, _, err = f.history.RecordView(ctx, viewer.ID, 12345)
	requireBizError(t, err, http.StatusNotFound, "Video not found")
}

func TestHistory_ListRemoveClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	viewer := f.user(t, "viewer")
	older := f.video(t, creator.ID, func(v *models.Video) { v.Title = "older" })
	newer := f.video(t, creator.ID, func(v *models.Video) { v.Title = "newer" })

	_, _, err := f.history.RecordView(ctx, viewer.ID, older.ID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, _, err = f.history.RecordView(ctx, viewer.ID, newer.ID)
	require.NoError(t, err)

	items, err := f.history.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Video)
	assert.Equal(t, "newer", items[0].Video.Title)
	assert.Equal(t, "creator", items[0].Video.Creator.Username)
	assert.Equal(t, "older", items[1].Video.Title)

	require.NoError(t, f.history.Remove(ctx, viewer.ID, newer.ID))
	items, err = f.history.List(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, older.ID, items[0].VideoID)

	require.NoError(t, f.history.Clear(ctx, viewer.ID))
	items, err = f.history.List(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
