package postgres

import (
	"testing"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% go\_lang \\o/`, escapeLike(`100% go_lang \o/`))
}

func TestPostWhere(t *testing.T) {
	where, args := postWhere(repository.PostFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	published := false
	authorID := uuid.New()
	where, args = postWhere(repository.PostFilter{
		Draft:         &published,
		AuthorID:      &authorID,
		Tag:           "go",
		TitleQuery:    "50%",
		ExcludeBlogID: "intro-abc",
	})
	assert.Equal(t, " WHERE draft = $1 AND author_id = $2 AND $3 = ANY(tags) AND title ILIKE $4 AND blog_id <> $5", where)
	assert.Equal(t, []any{false, authorID, "go", `%50\%%`, "intro-abc"}, args)
}

func TestNotificationWhere(t *testing.T) {
	recipient := uuid.New()

	where, args := notificationWhere(repository.NotificationFilter{RecipientID: recipient})
	assert.Equal(t, " WHERE recipient_id = $1 AND actor_id <> $1", where)
	assert.Equal(t, []any{recipient}, args)

	where, args = notificationWhere(repository.NotificationFilter{RecipientID: recipient, Type: model.NotificationReply})
	assert.Equal(t, " WHERE recipient_id = $1 AND actor_id <> $1 AND type = $2", where)
	assert.Equal(t, []any{recipient, "reply"}, args)
}
