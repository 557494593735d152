package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type notificationRepo struct {
	d *db
}

func cloneNotification(n model.Notification) *model.Notification {
	n.CommentID = cloneIDPtr(n.CommentID)
	n.ReplyID = cloneIDPtr(n.ReplyID)
	n.RepliedOnCommentID = cloneIDPtr(n.RepliedOnCommentID)
	return &n
}

func cloneIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func isLikeOf(n model.Notification, postID uuid.UUID, actorID uuid.UUID) bool {
	return n.Type == model.NotificationLike && n.PostID == postID && n.ActorID == actorID
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	if notification.Type == model.NotificationLike {
		for _, n := range r.d.notifications {
			if isLikeOf(n, notification.PostID, notification.ActorID) {
				return repository.ErrDuplicate
			}
		}
	}

	r.d.notifications[notification.ID] = *cloneNotification(notification)
	return nil
}

func (r *notificationRepo) CreateLikeIfAbsent(ctx context.Context, notification model.Notification) (bool, error) {
	err := r.Create(ctx, notification)
	if err == repository.ErrDuplicate {
		return false, nil
	}
	return err == nil, err
}

func (r *notificationRepo) DeleteLike(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	unlock := r.d.lock(ctx)
	defer unlock()

	for id, n := range r.d.notifications {
		if isLikeOf(n, postID, actorID) {
			delete(r.d.notifications, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) LikeExists(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, n := range r.d.notifications {
		if isLikeOf(n, postID, actorID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) SetReply(ctx context.Context, id uuid.UUID, recipientID uuid.UUID, replyID uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	n, ok := r.d.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return repository.ErrNotFound
	}
	n.ReplyID = &replyID
	r.d.notifications[id] = n
	return nil
}

func (r *notificationRepo) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	set := idSet(commentIDs)
	for id, n := range r.d.notifications {
		if n.CommentID == nil {
			continue
		}
		if _, ok := set[*n.CommentID]; ok {
			delete(r.d.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepo) UnsetReplies(ctx context.Context, replyIDs []uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	set := idSet(replyIDs)
	for id, n := range r.d.notifications {
		if n.ReplyID == nil {
			continue
		}
		if _, ok := set[*n.ReplyID]; ok {
			n.ReplyID = nil
			r.d.notifications[id] = n
		}
	}
	return nil
}

func (r *notificationRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	for id, n := range r.d.notifications {
		if n.PostID == postID {
			delete(r.d.notifications, id)
		}
	}
	return nil
}

func matchNotification(n model.Notification, f repository.NotificationFilter) bool {
	if n.RecipientID != f.RecipientID || n.ActorID == f.RecipientID {
		return false
	}
	return f.Type == "" || n.Type == f.Type
}

func (r *notificationRepo) Find(ctx context.Context, filter repository.NotificationFilter, skip int, limit int) ([]*model.Notification, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var notifications []*model.Notification
	for _, n := range r.d.notifications {
		if matchNotification(n, filter) {
			notifications = append(notifications, cloneNotification(n))
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID.String() < notifications[j].ID.String()
	})

	return window(notifications, skip, limit), nil
}

func (r *notificationRepo) Count(ctx context.Context, filter repository.NotificationFilter) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var count int64
	for _, n := range r.d.notifications {
		if matchNotification(n, filter) {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) ExistsUnseen(ctx context.Context, recipientID uuid.UUID) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, n := range r.d.notifications {
		if !n.Seen && matchNotification(n, repository.NotificationFilter{RecipientID: recipientID}) {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) MarkSeen(ctx context.Context, ids []uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	for _, id := range ids {
		if n, ok := r.d.notifications[id]; ok {
			n.Seen = true
			r.d.notifications[id] = n
		}
	}
	return nil
}
