package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

const notificationColumns = "id, type, post_id, recipient_id, actor_id, comment_id, reply_id, replied_on_comment_id, seen, created_at"

type notificationRepo struct {
	conn
}

func newNotificationRepo(c conn) *notificationRepo {
	return &notificationRepo{conn: c}
}

func scanNotification(row scanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(
		&n.ID,
		&n.Type,
		&n.PostID,
		&n.RecipientID,
		&n.ActorID,
		&n.CommentID,
		&n.ReplyID,
		&n.RepliedOnCommentID,
		&n.Seen,
		&n.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func notificationArgs(n model.Notification) []any {
	return []any{
		n.ID,
		string(n.Type),
		n.PostID,
		n.RecipientID,
		n.ActorID,
		n.CommentID,
		n.ReplyID,
		n.RepliedOnCommentID,
		n.Seen,
		n.CreatedAt,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) error {
	_, err := r.q(ctx).Exec(
		ctx,
		"INSERT INTO notifications("+notificationColumns+") VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		notificationArgs(notification)...,
	)
	return mapErr(err)
}

func (r *notificationRepo) CreateLikeIfAbsent(ctx context.Context, notification model.Notification) (bool, error) {
	tag, err := r.q(ctx).Exec(
		ctx,
		`INSERT INTO notifications(`+notificationColumns+`) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (post_id, actor_id) WHERE type = 'like' DO NOTHING`,
		notificationArgs(notification)...,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *notificationRepo) DeleteLike(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	tag, err := r.q(ctx).Exec(ctx, "DELETE FROM notifications WHERE type = 'like' AND post_id = $1 AND actor_id = $2", postID, actorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *notificationRepo) LikeExists(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM notifications WHERE type = 'like' AND post_id = $1 AND actor_id = $2)",
		postID,
		actorID,
	).Scan(&exists)
	return exists, err
}

func (r *notificationRepo) SetReply(ctx context.Context, id uuid.UUID, recipientID uuid.UUID, replyID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE notifications SET reply_id = $3 WHERE id = $1 AND recipient_id = $2", id, recipientID, replyID)
}

func (r *notificationRepo) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, "DELETE FROM notifications WHERE comment_id = ANY($1)", commentIDs)
	return err
}

func (r *notificationRepo) UnsetReplies(ctx context.Context, replyIDs []uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, "UPDATE notifications SET reply_id = NULL WHERE reply_id = ANY($1)", replyIDs)
	return err
}

func (r *notificationRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, "DELETE FROM notifications WHERE post_id = $1", postID)
	return err
}

func notificationWhere(f repository.NotificationFilter) (string, []any) {
	where := " WHERE recipient_id = $1 AND actor_id <> $1"
	args := []any{f.RecipientID}
	if f.Type != "" {
		args = append(args, string(f.Type))
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	return where, args
}

func (r *notificationRepo) Find(ctx context.Context, filter repository.NotificationFilter, skip int, limit int) ([]*model.Notification, error) {
	where, args := notificationWhere(filter)
	args = append(args, limit, skip)
	query := fmt.Sprintf(
		"SELECT %s FROM notifications%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		notificationColumns,
		where,
		len(args)-1,
		len(args),
	)

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) Count(ctx context.Context, filter repository.NotificationFilter) (int64, error) {
	where, args := notificationWhere(filter)

	var count int64
	err := r.q(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM notifications"+where, args...).Scan(&count)
	return count, err
}

func (r *notificationRepo) ExistsUnseen(ctx context.Context, recipientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM notifications WHERE recipient_id = $1 AND actor_id <> $1 AND NOT seen)",
		recipientID,
	).Scan(&exists)
	return exists, err
}

func (r *notificationRepo) MarkSeen(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, "UPDATE notifications SET seen = TRUE WHERE id = ANY($1)", ids)
	return err
}
