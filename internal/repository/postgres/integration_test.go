//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: POSTGRES_TEST_DSN=postgres://... go test -tags integration ./internal/repository/postgres
func newIntegrationStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN is not set")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Ping(ctx))
	require.NoError(t, Migrate(ctx, db))
	return New(db)
}

func seedPost(t *testing.T, store *repository.Store) (*model.User, *model.Post) {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	user := model.User{
		ID: id,
		PersonalInfo: model.PersonalInfo{
			Fullname: "Jordan Lee",
			Email:    id.String() + "@example.com",
			Username: "u" + id.String()[:8],
		},
		JoinedAt: time.Now(),
	}
	require.NoError(t, store.User.Create(ctx, user))

	now := time.Now()
	post := model.Post{
		ID:          uuid.New(),
		BlogID:      "post-" + uuid.NewString(),
		Title:       "Post",
		Content:     model.Content{Blocks: []model.Block{{Type: "paragraph"}}},
		Tags:        []string{"go"},
		AuthorID:    user.ID,
		PublishedAt: now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.Post.Create(ctx, post))
	return &user, &post
}

func TestIntegrationPullComments(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	_, post := seedPost(t, store)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.NoError(t, store.Post.PushComment(ctx, post.ID, id))
	}

	require.NoError(t, store.Post.PullComments(ctx, post.ID, []uuid.UUID{ids[0], ids[2], uuid.New()}))

	got, err := store.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ids[1]}, got.Comments)

	require.NoError(t, store.Post.PullComments(ctx, post.ID, []uuid.UUID{ids[1]}))
	got, err = store.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)

	assert.ErrorIs(t, store.Post.PullComments(ctx, uuid.New(), ids), repository.ErrNotFound)
}

func TestIntegrationLikeNotificationIsUnique(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	author, post := seedPost(t, store)
	actorID := uuid.New()

	like := func() model.Notification {
		return model.Notification{
			ID:          uuid.New(),
			Type:        model.NotificationLike,
			PostID:      post.ID,
			RecipientID: author.ID,
			ActorID:     actorID,
			CreatedAt:   time.Now(),
		}
	}

	inserted, err := store.Notification.CreateLikeIfAbsent(ctx, like())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.Notification.CreateLikeIfAbsent(ctx, like())
	require.NoError(t, err)
	assert.False(t, inserted)

	// the partial index only covers likes
	comment := like()
	comment.Type = model.NotificationComment
	commentID := uuid.New()
	comment.CommentID = &commentID
	require.NoError(t, store.Notification.Create(ctx, comment))

	exists, err := store.Notification.LikeExists(ctx, post.ID, actorID)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := store.Notification.DeleteLike(ctx, post.ID, actorID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Notification.DeleteLike(ctx, post.ID, actorID)
	require.NoError(t, err)
	assert.False(t, deleted)

	inserted, err = store.Notification.CreateLikeIfAbsent(ctx, like())
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestIntegrationDeleteManyCountsRows(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	author, post := seedPost(t, store)

	top := model.Comment{
		ID:           uuid.New(),
		PostID:       post.ID,
		PostAuthorID: author.ID,
		Comment:      "first",
		AuthorID:     author.ID,
		CommentedAt:  time.Now(),
	}
	require.NoError(t, store.Comment.Create(ctx, top))

	deleted, err := store.Comment.DeleteMany(ctx, []uuid.UUID{top.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.Comment.DeleteMany(ctx, []uuid.UUID{top.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestIntegrationWithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	_, post := seedPost(t, store)

	errAbort := errors.New("abort")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if err := store.Post.IncrComments(ctx, post.ID, 1, 1); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := store.Post.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Activity.TotalComments)
	assert.Equal(t, int64(0), got.Activity.TotalParentComments)
}
