package mongodb

import (
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPostFilter(t *testing.T) {
	published := false
	authorID := uuid.New()

	filter := postFilter(repository.PostFilter{
		Draft:         &published,
		AuthorID:      &authorID,
		TitleQuery:    "c++",
		ExcludeBlogID: "intro-abc",
	})

	assert.Equal(t, false, filter["draft"])
	assert.Equal(t, authorID.String(), filter["author"])
	assert.Equal(t, bson.M{"$regex": `c\+\+`, "$options": "i"}, filter["title"])
	assert.Equal(t, bson.M{"$ne": "intro-abc"}, filter["blog_id"])
	assert.NotContains(t, filter, "tags")
}

func TestNotificationFilterExcludesOwnActions(t *testing.T) {
	recipient := uuid.New()

	filter := notificationFilter(repository.NotificationFilter{RecipientID: recipient, Type: model.NotificationLike})
	assert.Equal(t, recipient.String(), filter["notification_for"])
	assert.Equal(t, bson.M{"$ne": recipient.String()}, filter["user"])
	assert.Equal(t, "like", filter["type"])
}

func TestCommentDocumentKeepsThreadLinks(t *testing.T) {
	parentID := uuid.New()
	comment := model.Comment{
		ID:           uuid.New(),
		PostID:       uuid.New(),
		PostAuthorID: uuid.New(),
		Comment:      "nice",
		Children:     []uuid.UUID{uuid.New()},
		AuthorID:     uuid.New(),
		IsReply:      true,
		ParentID:     &parentID,
		CommentedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}

	doc := toCommentDocument(comment)
	require.NotNil(t, doc.Parent)
	assert.Equal(t, parentID.String(), *doc.Parent)

	back, err := doc.toModel()
	require.NoError(t, err)
	assert.Equal(t, comment, *back)
}
