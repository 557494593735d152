package dto

import "github.com/BloggingApp/blog-service/internal/model"

type NotificationsRequest struct {
	Page            int    `json:"page"`
	Filter          string `json:"filter"`
	DeletedDocCount int    `json:"deletedDocCount"`
}

type NotificationsCountRequest struct {
	Filter string `json:"filter"`
}

type NotificationsResponse struct {
	Notifications []*model.FullNotification `json:"notifications"`
}

type NewNotificationResponse struct {
	NewNotificationAvailable bool `json:"new_notification_available"`
}
