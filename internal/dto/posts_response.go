package dto

import "github.com/BloggingApp/blog-service/internal/model"

type CreatePostResponse struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Blog *model.FullPost `json:"blog"`
}

type PostsResponse struct {
	Blogs []*model.FullPost `json:"blogs"`
}

type LikeResponse struct {
	LikedByUser bool `json:"liked_by_user"`
}

type IsLikedResponse struct {
	Result bool `json:"result"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadURL"`
}
