package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) notificationsHasNew(c *gin.Context) {
	userID := h.getUserID(c)

	available, err := h.services.Notification.HasNew(c.Request.Context(), userID)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNotificationResponse{NewNotificationAvailable: available})
}

func (h *Handler) notificationsGet(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.NotificationsRequest
	if !bindJSON(c, &input) {
		return
	}

	notifications, err := h.services.Notification.Find(c.Request.Context(), userID, input)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NotificationsResponse{Notifications: notifications})
}

func (h *Handler) notificationsCount(c *gin.Context) {
	userID := h.getUserID(c)

	var input dto.NotificationsCountRequest
	if !bindJSON(c, &input) {
		return
	}

	count, err := h.services.Notification.Count(c.Request.Context(), userID, input.Filter)
	if err != nil {
		newErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{TotalDocs: count})
}
