package service

import (
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsPageAndSeen(t *testing.T) {
	f := newFixture(t)
	authorID := f.signUp(t, "Jordan Lee", "jordan@example.com")
	readerID := f.signUp(t, "Robin Roe", "robin@example.com")
	post := f.publish(t, authorID, "Noticed")

	hasNew, err := f.svc.Notification.HasNew(f.ctx, authorID)
	require.NoError(t, err)
	assert.False(t, hasNew)

	// own activity never notifies
	_, err = f.svc.Like.Like(f.ctx, authorID, post.ID, false)
	require.NoError(t, err)
	hasNew, err = f.svc.Notification.HasNew(f.ctx, authorID)
	require.NoError(t, err)
	assert.False(t, hasNew)

	_, err = f.svc.Like.Like(f.ctx, readerID, post.ID, false)
	require.NoError(t, err)
	for i := 0; i < NOTIFICATION_PAGE_SIZE; i++ {
		_, err := f.svc.Comment.Create(f.ctx, readerID, dto.CreateCommentRequest{PostID: post.ID, Comment: "ping"})
		require.NoError(t, err)
	}

	hasNew, err = f.svc.Notification.HasNew(f.ctx, authorID)
	require.NoError(t, err)
	assert.True(t, hasNew)

	total, err := f.svc.Notification.Count(f.ctx, authorID, ALL_NOTIFICATIONS)
	require.NoError(t, err)
	assert.Equal(t, int64(NOTIFICATION_PAGE_SIZE+1), total)

	comments, err := f.svc.Notification.Count(f.ctx, authorID, "comment")
	require.NoError(t, err)
	assert.Equal(t, int64(NOTIFICATION_PAGE_SIZE), comments)

	_, err = f.svc.Notification.Count(f.ctx, authorID, "follow")
	assert.ErrorIs(t, err, ErrUnknownNotificationType)

	page1, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, page1, NOTIFICATION_PAGE_SIZE)
	for _, n := range page1 {
		assert.False(t, n.Seen)
		assert.Equal(t, post.BlogID, n.Blog.BlogID)
		assert.Equal(t, "robin", n.User.PersonalInfo.Username)
	}

	hasNew, err = f.svc.Notification.HasNew(f.ctx, authorID)
	require.NoError(t, err)
	assert.True(t, hasNew)

	page2, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)

	hasNew, err = f.svc.Notification.HasNew(f.ctx, authorID)
	require.NoError(t, err)
	assert.False(t, hasNew)

	again, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 1})
	require.NoError(t, err)
	assert.True(t, again[0].Seen)

	likes, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 1, Filter: "like"})
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, model.NotificationLike, likes[0].Type)
	assert.Nil(t, likes[0].Comment)
}

func TestNotificationsDeletedDocCount(t *testing.T) {
	f := newFixture(t)
	authorID := f.signUp(t, "Jordan Lee", "jordan@example.com")
	readerID := f.signUp(t, "Robin Roe", "robin@example.com")
	post := f.publish(t, authorID, "Busy")

	for i := 0; i < NOTIFICATION_PAGE_SIZE+3; i++ {
		_, err := f.svc.Comment.Create(f.ctx, readerID, dto.CreateCommentRequest{PostID: post.ID, Comment: "ping"})
		require.NoError(t, err)
	}

	page1, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, page1, NOTIFICATION_PAGE_SIZE)

	require.NoError(t, f.svc.Comment.Delete(f.ctx, authorID, page1[0].Comment.ID))

	page2, err := f.svc.Notification.Find(f.ctx, authorID, dto.NotificationsRequest{Page: 2, DeletedDocCount: 1})
	require.NoError(t, err)
	assert.Len(t, page2, 3)
}
