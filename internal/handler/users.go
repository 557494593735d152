package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersSearch(c *gin.Context) {
	var input dto.SearchUsersRequest
	if !bindJSON(c, &input) {
		return
	}

	users, err := h.services.User.Search(c.Request.Context(), input.Query)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsersResponse{Users: users})
}

func (h *Handler) usersGetProfile(c *gin.Context) {
	var input dto.GetProfileRequest
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.services.User.FindProfile(c.Request.Context(), input.Username)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) usersUpdateProfileImg(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.UpdateProfileImgRequest
	if !bindJSON(c, &input) {
		return
	}

	url, err := h.services.User.UpdateProfileImg(c.Request.Context(), userID, input.URL)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateProfileImgResponse{ProfileImg: url})
}

func (h *Handler) usersUpdateProfile(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.UpdateProfileRequest
	if !bindJSON(c, &input) {
		return
	}

	username, err := h.services.User.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateProfileResponse{Username: username})
}
