package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.SignUpRequest
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.services.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInRequest
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) authGoogle(c *gin.Context) {
	var input dto.GoogleAuthRequest
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.services.Auth.GoogleAuth(c.Request.Context(), input.AccessToken)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) authChangePassword(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.ChangePasswordRequest
	if !bindJSON(c, &input) {
		return
	}

	if err := h.services.Auth.ChangePassword(c.Request.Context(), userID, input); err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "password changed"})
}
