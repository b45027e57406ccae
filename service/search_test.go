package service

import (
	"Vidhub/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchVideos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator")
	f.video(t, creator.ID, func(v *models.Video) { v.Title = "Go Concurrency"; v.Views = 3 })
	f.video(t, creator.ID, func(v *models.Video) { v.Title = "cooking"; v.Description = "learn go fast"; v.Views = 10 })
	f.video(t, creator.ID, func(v *models.Video) { v.Title = "private go"; v.IsPrivate = true })
	f.video(t, creator.ID, func(v *models.Video) { v.Title = "100% done" })

	empty, err := f.search.Videos(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got, err := f.search.Videos(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cooking", got[0].Title)
	assert.Equal(t, "Go Concurrency", got[1].Title)
	assert.Equal(t, "creator", got[0].Creator.Username)

	// 通配符按字面匹配
	got, err = f.search.Videos(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% done", got[0].Title)
}

func TestSearchChannels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	small := f.user(t, "gopher_small")
	big := f.user(t, "GopherBig")
	f.user(t, "someone")
	require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", big.ID).Update("subscribers_count", 10).Error)

	got, err := f.search.Channels(ctx, "gopher")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, big.ID, got[0].ID)
	assert.Equal(t, small.ID, got[1].ID)
	assert.Equal(t, int64(10), got[0].SubscribersCount)
}
