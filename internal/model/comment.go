package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID           uuid.UUID   `json:"_id"`
	PostID       uuid.UUID   `json:"blog_id"`
	PostAuthorID uuid.UUID   `json:"blog_author"`
	Comment      string      `json:"comment"`
	Children     []uuid.UUID `json:"children"`
	AuthorID     uuid.UUID   `json:"-"`
	IsReply      bool        `json:"isReply"`
	ParentID     *uuid.UUID  `json:"parent,omitempty"`
	CommentedAt  time.Time   `json:"commentedAt"`
}

type FullComment struct {
	Comment
	CommentedBy UserAuthor `json:"commented_by"`
}
