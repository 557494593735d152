package handler

import (
	"github.com/gin-gonic/gin"
)

// notRequiredAuthMiddleware identifies the caller when a valid token is sent
// and lets anonymous requests through otherwise.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.Next()
		return
	}

	userID, err := h.services.Auth.VerifyAccessToken(accessToken)
	if err != nil {
		c.Next()
		return
	}

	c.Set(userIDKey, userID)

	c.Next()
}
