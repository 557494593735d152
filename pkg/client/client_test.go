package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/handler"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/BloggingApp/blog-service/pkg/pagination"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	services := service.New(zap.NewNop(), repository.New(memory.New(), rdb), nil, service.Options{
		Auth: config.AuthConfig{AccessSecret: []byte("test-secret")},
	})
	srv := httptest.NewServer(handler.New(services).InitRoutes())
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	t.Cleanup(func() { c.Close() })
	return c
}

func blogInput(title string) BlogInput {
	return BlogInput{
		Title:   title,
		Des:     "about " + title,
		Banner:  "https://bucket.example.com/" + title + ".jpeg",
		Tags:    []string{"Go"},
		Content: json.RawMessage(`{"blocks":[{"type":"paragraph","data":{"text":"hello"}}]}`),
	}
}

func TestAuthErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	s, err := c.SignUp(ctx, "Jordan Lee", "jordan@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jordan", s.Auth.Username)

	_, err = c.SignUp(ctx, "Jordan Lee", "jordan@example.com", "secret1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Email already exists", apiErr.Message)

	_, err = c.SignIn(ctx, "nobody@example.com", "secret1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	signedIn, err := c.SignIn(ctx, "jordan@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, signedIn.ChangePassword(ctx, "secret1", "secret2"))

	_, err = c.SignIn(ctx, "jordan@example.com", "secret1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Incorrect password", apiErr.Message)
}

func TestLatestBlogsFeed(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	author, err := c.SignUp(ctx, "Jordan Lee", "jordan@example.com", "secret1")
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err := author.SaveBlog(ctx, blogInput(fmt.Sprintf("Post %d", i)))
		require.NoError(t, err)
	}

	feed, err := c.LatestBlogs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, feed.Results, 5)
	assert.Equal(t, int64(7), feed.TotalDocs)
	assert.True(t, feed.HasMore())

	feed, err = c.LatestBlogs(ctx, feed)
	require.NoError(t, err)
	assert.Len(t, feed.Results, 7)
	assert.Equal(t, 2, feed.Page)
	assert.False(t, feed.HasMore())

	seen := map[string]bool{}
	for _, blog := range feed.Results {
		assert.False(t, seen[blog.BlogID])
		seen[blog.BlogID] = true
		assert.Equal(t, "jordan", blog.Author.PersonalInfo.Username)
	}

	tagged, err := c.SearchBlogs(ctx, SearchQuery{Tag: "go"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), tagged.TotalDocs)
}

func TestConversation(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	author, err := c.SignUp(ctx, "Jordan Lee", "jordan@example.com", "secret1")
	require.NoError(t, err)
	reader, err := c.SignUp(ctx, "Robin Roe", "robin@example.com", "secret1")
	require.NoError(t, err)

	blogID, err := author.SaveBlog(ctx, blogInput("Threads"))
	require.NoError(t, err)
	blog, err := c.Blog(ctx, blogID)
	require.NoError(t, err)

	liked, err := reader.Like(ctx, blog.ID, false)
	require.NoError(t, err)
	assert.True(t, liked)

	// a replayed click must not count twice
	liked, err = reader.Like(ctx, blog.ID, false)
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := reader.IsLiked(ctx, blog.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)

	comment, err := reader.AddComment(ctx, CommentInput{PostID: blog.ID, Comment: "first!"})
	require.NoError(t, err)

	hasNew, err := author.HasNewNotifications(ctx)
	require.NoError(t, err)
	assert.True(t, hasNew)

	inbox, err := author.Notifications(ctx, "comment", nil)
	require.NoError(t, err)
	require.Len(t, inbox.Results, 1)
	assert.Equal(t, int64(1), inbox.TotalDocs)
	assert.Equal(t, "first!", inbox.Results[0].Comment.Comment)
	assert.Equal(t, "robin", inbox.Results[0].User.PersonalInfo.Username)

	_, err = author.AddComment(ctx, CommentInput{
		PostID:         blog.ID,
		Comment:        "welcome",
		ReplyingTo:     comment.ID,
		NotificationID: inbox.Results[0].ID,
	})
	require.NoError(t, err)

	replies, err := c.Replies(ctx, comment.ID, 0)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "jordan", replies[0].CommentedBy.PersonalInfo.Username)

	blog, err = c.Blog(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.Activity.TotalLikes)
	assert.Equal(t, int64(2), blog.Activity.TotalComments)
	assert.Equal(t, int64(1), blog.Activity.TotalParentComments)

	require.NoError(t, reader.DeleteComment(ctx, comment.ID))

	comments, err := c.Comments(ctx, blog.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)

	blog, err = c.Blog(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), blog.Activity.TotalComments)
}

func TestDraftsAndProfile(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	author, err := c.SignUp(ctx, "Jordan Lee", "jordan@example.com", "secret1")
	require.NoError(t, err)

	draftID, err := author.SaveBlog(ctx, BlogInput{Title: "Unfinished", Draft: true})
	require.NoError(t, err)

	_, err = c.Blog(ctx, draftID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	draft, err := author.EditBlog(ctx, draftID, true)
	require.NoError(t, err)
	assert.True(t, draft.Draft)

	var drafts *pagination.State[Blog]
	drafts, err = author.WrittenBlogs(ctx, true, "", drafts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), drafts.TotalDocs)
	require.Len(t, drafts.Results, 1)

	require.NoError(t, author.DeleteBlog(ctx, draftID))
	assert.False(t, drafts.Remove(0))

	username, err := author.UpdateProfile(ctx, "jordan_writes", "Writes Go.", SocialLinks{Github: "https://github.com/jordan"})
	require.NoError(t, err)
	assert.Equal(t, "jordan_writes", username)
	assert.Equal(t, "jordan_writes", author.Auth.Username)

	profile, err := c.Profile(ctx, "jordan_writes")
	require.NoError(t, err)
	assert.Equal(t, "Writes Go.", profile.PersonalInfo.Bio)
	assert.Equal(t, "https://github.com/jordan", profile.SocialLinks.Github)

	users, err := c.SearchUsers(ctx, "jordan")
	require.NoError(t, err)
	require.Len(t, users, 1)
}
