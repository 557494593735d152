package handler

import (
	"strings"

	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		newErrorResponse(c, service.ErrNoAccessToken)
		return
	}

	userID, err := h.services.Auth.VerifyAccessToken(accessToken)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.Set(userIDKey, userID)

	c.Next()
}
