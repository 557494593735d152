package dto

import (
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

type CreateCommentResponse struct {
	ID          uuid.UUID   `json:"_id"`
	Comment     string      `json:"comment"`
	CommentedAt time.Time   `json:"commentedAt"`
	UserID      uuid.UUID   `json:"user_id"`
	Children    []uuid.UUID `json:"children"`
}

type RepliesResponse struct {
	Replies []*model.FullComment `json:"replies"`
}
