package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationReply:
		return true
	}
	return false
}

// Notification is addressed to RecipientID and caused by ActorID.
type Notification struct {
	ID                 uuid.UUID
	Type               NotificationType
	PostID             uuid.UUID
	RecipientID        uuid.UUID
	ActorID            uuid.UUID
	CommentID          *uuid.UUID
	ReplyID            *uuid.UUID
	RepliedOnCommentID *uuid.UUID
	Seen               bool
	CreatedAt          time.Time
}

type NotificationBlog struct {
	ID     uuid.UUID `json:"_id"`
	BlogID string    `json:"blog_id"`
	Title  string    `json:"title"`
}

type CommentRef struct {
	ID      uuid.UUID `json:"_id"`
	Comment string    `json:"comment"`
}

type FullNotification struct {
	ID               uuid.UUID        `json:"_id"`
	Type             NotificationType `json:"type"`
	Seen             bool             `json:"seen"`
	CreatedAt        time.Time        `json:"createdAt"`
	Blog             NotificationBlog `json:"blog"`
	User             UserAuthor       `json:"user"`
	Comment          *CommentRef      `json:"comment,omitempty"`
	RepliedOnComment *CommentRef      `json:"replied_on_comment,omitempty"`
	Reply            *CommentRef      `json:"reply,omitempty"`
}
