package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Block struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type Content struct {
	Time    int64   `json:"time,omitempty"`
	Blocks  []Block `json:"blocks"`
	Version string  `json:"version,omitempty"`
}

type Activity struct {
	TotalLikes          int64 `json:"total_likes"`
	TotalComments       int64 `json:"total_comments"`
	TotalReads          int64 `json:"total_reads"`
	TotalParentComments int64 `json:"total_parent_comments"`
}

type Post struct {
	ID          uuid.UUID   `json:"_id"`
	BlogID      string      `json:"blog_id"`
	Title       string      `json:"title"`
	Banner      string      `json:"banner"`
	Des         string      `json:"des"`
	Content     Content     `json:"content"`
	Tags        []string    `json:"tags"`
	AuthorID    uuid.UUID   `json:"author_id"`
	Activity    Activity    `json:"activity"`
	Comments    []uuid.UUID `json:"comments"`
	Draft       bool        `json:"draft"`
	PublishedAt time.Time   `json:"publishedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type FullPost struct {
	Post
	Author UserAuthor `json:"author"`
}
