package service

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/metrics"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"go.uber.org/zap"
)

// notifier announces committed notifications. Delivery is best effort.
type notifier struct {
	logger    *zap.Logger
	publisher rabbitmq.Publisher
}

func newNotifier(logger *zap.Logger, publisher rabbitmq.Publisher) *notifier {
	return &notifier{
		logger:    logger,
		publisher: publisher,
	}
}

func (n *notifier) created(ctx context.Context, notification model.Notification) {
	metrics.NotificationCreated(string(notification.Type))

	msg := dto.MQNotificationCreatedMsg{
		NotificationID: notification.ID,
		Type:           string(notification.Type),
		RecipientID:    notification.RecipientID,
		ActorID:        notification.ActorID,
		PostID:         notification.PostID,
		CreatedAt:      notification.CreatedAt,
	}
	if err := n.publisher.PublishJSON(ctx, rabbitmq.NOTIFICATION_CREATED_QUEUE, msg); err != nil {
		n.logger.Sugar().Errorf("failed to publish notification(%s) to queue(%s): %s", notification.ID.String(), rabbitmq.NOTIFICATION_CREATED_QUEUE, err.Error())
	}
}
