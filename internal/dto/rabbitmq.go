package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQNotificationCreatedMsg struct {
	NotificationID uuid.UUID `json:"notification_id"`
	Type           string    `json:"type"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	ActorID        uuid.UUID `json:"actor_id"`
	PostID         uuid.UUID `json:"blog_id"`
	CreatedAt      time.Time `json:"created_at"`
}
