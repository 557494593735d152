package dto

import "github.com/BloggingApp/blog-service/internal/model"

type UsersResponse struct {
	Users []model.UserAuthor `json:"users"`
}

type UpdateProfileImgResponse struct {
	ProfileImg string `json:"profile_img"`
}

type UpdateProfileResponse struct {
	Username string `json:"username"`
}
