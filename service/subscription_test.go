package service

import (
	"Vidhub/models"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fan := f.user(t, "fan")
	creator := f.user(t, "creator")

	sub, err := f.subs.Subscribe(ctx, fan.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.ID, sub.SubscriberID)
	require.NotNil(t, sub.Creator)
	assert.Equal(t, creator.ID, sub.Creator.ID)
	assert.Equal(t, int64(1), sub.Creator.SubscribersCount)

	ok, err := f.subs.IsSubscribed(ctx, fan.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := f.subs.List(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "creator", list[0].Creator.Username)

	_, err = f.subs.Subscribe(ctx, fan.ID, creator.ID)
	requireBizError(t, err, http.StatusBadRequest, "Already subscribed to this channel")

	require.NoError(t, f.subs.Unsubscribe(ctx, fan.ID, creator.ID))

	var got models.User
	f.reload(t, &got, creator.ID)
	assert.Equal(t, int64(0), got.SubscribersCount)

	ok, err = f.subs.IsSubscribed(ctx, fan.ID, creator.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.subs.Unsubscribe(ctx, fan.ID, creator.ID)
	requireBizError(t, err, http.StatusNotFound, "Subscription not found")
}

func TestSubscribe_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fan := f.user(t, "fan")

	_, err := f.subs.Subscribe(ctx, fan.ID, 0)
	requireBizError(t, err, http.StatusBadRequest, "Creator ID is required")

	_, err = f.subs.Subscribe(ctx, fan.ID, fan.ID+1)
	requireBizError(t, err, http.StatusNotFound, "Creator not found")

	_, err = f.subs.Subscribe(ctx, fan.ID, fan.ID)
	requireBizError(t, err, http.StatusBadRequest, "You cannot subscribe to yourself")
}

func TestSubscriptionFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fan := f.user(t, "fan")
	followed := f.user(t, "followed")
	other := f.user(t, "other")

	f.video(t, followed.ID, func(v *models.Video) { v.Title = "public" })
	f.video(t, followed.ID, func(v *models.Video) { v.Title = "hidden"; v.IsPrivate = true })
	f.video(t, other.ID)

	feed, err := f.videos.SubscriptionFeed(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = f.subs.Subscribe(ctx, fan.ID, followed.ID)
	require.NoError(t, err)

	feed, err = f.videos.SubscriptionFeed(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "public", feed[0].Title)
}
