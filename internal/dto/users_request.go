package dto

import "github.com/BloggingApp/blog-service/internal/model"

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type GetProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

type UpdateProfileImgRequest struct {
	URL string `json:"url" binding:"required"`
}

type UpdateProfileRequest struct {
	Username    string            `json:"username"`
	Bio         string            `json:"bio"`
	SocialLinks model.SocialLinks `json:"social_links"`
}
