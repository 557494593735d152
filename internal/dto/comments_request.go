package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	PostID uuid.UUID `json:"_id" binding:"required"`
	// BlogAuthor is accepted for compatibility; the stored post author is authoritative.
	BlogAuthor     *uuid.UUID `json:"blog_author"`
	Comment        string     `json:"comment"`
	ReplyingTo     *uuid.UUID `json:"replying_to"`
	NotificationID *uuid.UUID `json:"notification_id"`
}

type GetCommentsRequest struct {
	PostID uuid.UUID `json:"blog_id" binding:"required"`
	Skip   int       `json:"skip"`
}

type GetRepliesRequest struct {
	ID   uuid.UUID `json:"_id" binding:"required"`
	Skip int       `json:"skip"`
}

type CommentIDRequest struct {
	ID uuid.UUID `json:"_id" binding:"required"`
}
