package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(t *testing.T, store *repository.Store, authorID uuid.UUID, title string, publishedAt time.Time) model.Post {
	post := model.Post{
		ID:          uuid.New(),
		BlogID:      title + "-" + uuid.NewString()[:5],
		Title:       title,
		Tags:        []string{"go"},
		AuthorID:    authorID,
		PublishedAt: publishedAt,
	}
	require.NoError(t, store.Post.Create(context.Background(), post))
	return post
}

func TestStore_UserDuplicates(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := model.User{ID: uuid.New(), PersonalInfo: model.PersonalInfo{Email: "ann@example.com", Username: "ann"}}
	require.NoError(t, store.User.Create(ctx, user))

	err := store.User.Create(ctx, model.User{ID: uuid.New(), PersonalInfo: model.PersonalInfo{Email: "ANN@example.com", Username: "other"}})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = store.User.Create(ctx, model.User{ID: uuid.New(), PersonalInfo: model.PersonalInfo{Email: "x@example.com", Username: "ann"}})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	exists, err := store.User.ExistsByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_PostListingOrder(t *testing.T) {
	store := New()
	ctx := context.Background()
	authorID := uuid.New()
	now := time.Now()

	older := newTestPost(t, store, authorID, "older", now.Add(-time.Hour))
	newer := newTestPost(t, store, authorID, "newer", now)
	require.NoError(t, store.Post.IncrReads(ctx, older.ID, 3))

	published := false
	latest, err := store.Post.Find(ctx, repository.PostFilter{Draft: &published}, repository.SortLatest, 0, 5)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, newer.ID, latest[0].ID)

	trending, err := store.Post.Find(ctx, repository.PostFilter{Draft: &published}, repository.SortTrending, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, older.ID, trending[0].ID)

	page2, err := store.Post.Find(ctx, repository.PostFilter{}, repository.SortLatest, 1, 5)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, older.ID, page2[0].ID)

	count, err := store.Post.Count(ctx, repository.PostFilter{TitleQuery: "NEW"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_LikeGuard(t *testing.T) {
	store := New()
	ctx := context.Background()
	postID, actorID := uuid.New(), uuid.New()

	like := model.Notification{ID: uuid.New(), Type: model.NotificationLike, PostID: postID, ActorID: actorID, RecipientID: uuid.New()}
	inserted, err := store.Notification.CreateLikeIfAbsent(ctx, like)
	require.NoError(t, err)
	assert.True(t, inserted)

	like.ID = uuid.New()
	inserted, err = store.Notification.CreateLikeIfAbsent(ctx, like)
	require.NoError(t, err)
	assert.False(t, inserted)

	deleted, err := store.Notification.DeleteLike(ctx, postID, actorID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Notification.DeleteLike(ctx, postID, actorID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	store := New()
	ctx := context.Background()
	post := newTestPost(t, store, uuid.New(), "tx", time.Now())

	errBoom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Post.IncrComments(ctx, post.ID, 1, 1))
		require.NoError(t, store.Post.PushComment(ctx, post.ID, uuid.New()))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	stored, err := store.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.Activity.TotalComments)
	assert.Empty(t, stored.Comments)
}

func TestStore_NotificationsExcludeSelf(t *testing.T) {
	store := New()
	ctx := context.Background()
	me, other := uuid.New(), uuid.New()

	require.NoError(t, store.Notification.Create(ctx, model.Notification{ID: uuid.New(), Type: model.NotificationComment, RecipientID: me, ActorID: me}))
	require.NoError(t, store.Notification.Create(ctx, model.Notification{ID: uuid.New(), Type: model.NotificationComment, RecipientID: me, ActorID: other}))

	count, err := store.Notification.Count(ctx, repository.NotificationFilter{RecipientID: me})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	unseen, err := store.Notification.ExistsUnseen(ctx, me)
	require.NoError(t, err)
	assert.True(t, unseen)

	found, err := store.Notification.Find(ctx, repository.NotificationFilter{RecipientID: me}, 0, 10)
	require.NoError(t, err)
	require.NoError(t, store.Notification.MarkSeen(ctx, []uuid.UUID{found[0].ID}))

	unseen, err = store.Notification.ExistsUnseen(ctx, me)
	require.NoError(t, err)
	assert.False(t, unseen)
}
