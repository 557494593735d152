package dto

import (
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

// CreatePostRequest creates a blog, or updates the one whose blog_id is ID.
type CreatePostRequest struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Des     string        `json:"des"`
	Banner  string        `json:"banner"`
	Tags    []string      `json:"tags"`
	Content model.Content `json:"content"`
	Draft   bool          `json:"draft"`
}

type GetPostRequest struct {
	BlogID string `json:"blog_id" binding:"required"`
	Draft  bool   `json:"draft"`
	Mode   string `json:"mode"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type SearchPostsRequest struct {
	Tag           string     `json:"tag"`
	Query         string     `json:"query"`
	Author        *uuid.UUID `json:"author"`
	Page          int        `json:"page"`
	Limit         int        `json:"limit"`
	EliminateBlog string     `json:"eliminate_blog"`
}

type UserPostsRequest struct {
	Page            int    `json:"page"`
	Draft           bool   `json:"draft"`
	Query           string `json:"query"`
	DeletedDocCount int    `json:"deletedDocCount"`
}

type DeletePostRequest struct {
	BlogID string `json:"blog_id" binding:"required"`
}

// LikePostRequest carries the client's state before the click.
type LikePostRequest struct {
	ID            uuid.UUID `json:"_id" binding:"required"`
	IsLikedByUser bool      `json:"isLikedByUser"`
}

type PostIDRequest struct {
	ID uuid.UUID `json:"_id" binding:"required"`
}
