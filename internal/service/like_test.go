package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	authorID := f.signUp(t, "Jordan Lee", "jordan@example.com")
	readerID := f.signUp(t, "Robin Roe", "robin@example.com")
	post := f.publish(t, authorID, "Likeable")
	require.NoError(t, f.repo.Store.Post.IncrLikes(f.ctx, post.ID, 3))

	liked, err := f.svc.Like.Like(f.ctx, readerID, post.ID, false)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(4), f.post(t, post.BlogID).Activity.TotalLikes)

	isLiked, err := f.svc.Like.IsLiked(f.ctx, readerID, post.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)

	count, err := f.svc.Notification.Count(f.ctx, authorID, "like")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []string{"like"}, f.publisher.types())

	// a replayed like changes nothing
	liked, err = f.svc.Like.Like(f.ctx, readerID, post.ID, false)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(4), f.post(t, post.BlogID).Activity.TotalLikes)
	assert.Len(t, f.publisher.types(), 1)

	liked, err = f.svc.Like.Like(f.ctx, readerID, post.ID, true)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(3), f.post(t, post.BlogID).Activity.TotalLikes)

	count, err = f.svc.Notification.Count(f.ctx, authorID, "like")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	liked, err = f.svc.Like.Like(f.ctx, readerID, post.ID, true)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(3), f.post(t, post.BlogID).Activity.TotalLikes)

	isLiked, err = f.svc.Like.IsLiked(f.ctx, readerID, post.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)
}

func TestLikeUnknownPost(t *testing.T) {
	f := newFixture(t)
	readerID := f.signUp(t, "Robin Roe", "robin@example.com")

	_, err := f.svc.Like.Like(f.ctx, readerID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
