package mongodb

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationDocument is the MongoDB schema for a notification.
type NotificationDocument struct {
	ID               string    `bson:"_id"`
	Type             string    `bson:"type"`
	Blog             string    `bson:"blog"`
	NotificationFor  string    `bson:"notification_for"`
	User             string    `bson:"user"`
	Comment          *string   `bson:"comment,omitempty"`
	Reply            *string   `bson:"reply,omitempty"`
	RepliedOnComment *string   `bson:"replied_on_comment,omitempty"`
	Seen             bool      `bson:"seen"`
	CreatedAt        time.Time `bson:"createdAt"`
}

func toNotificationDocument(n model.Notification) NotificationDocument {
	return NotificationDocument{
		ID:               n.ID.String(),
		Type:             string(n.Type),
		Blog:             n.PostID.String(),
		NotificationFor:  n.RecipientID.String(),
		User:             n.ActorID.String(),
		Comment:          idPtrString(n.CommentID),
		Reply:            idPtrString(n.ReplyID),
		RepliedOnComment: idPtrString(n.RepliedOnCommentID),
		Seen:             n.Seen,
		CreatedAt:        n.CreatedAt,
	}
}

func (d NotificationDocument) toModel() (*model.Notification, error) {
	ids, err := parseIDs([]string{d.ID, d.Blog, d.NotificationFor, d.User})
	if err != nil {
		return nil, err
	}
	comment, err := parseIDPtr(d.Comment)
	if err != nil {
		return nil, err
	}
	reply, err := parseIDPtr(d.Reply)
	if err != nil {
		return nil, err
	}
	repliedOn, err := parseIDPtr(d.RepliedOnComment)
	if err != nil {
		return nil, err
	}

	return &model.Notification{
		ID:                 ids[0],
		Type:               model.NotificationType(d.Type),
		PostID:             ids[1],
		RecipientID:        ids[2],
		ActorID:            ids[3],
		CommentID:          comment,
		ReplyID:            reply,
		RepliedOnCommentID: repliedOn,
		Seen:               d.Seen,
		CreatedAt:          d.CreatedAt,
	}, nil
}

func likeFilter(postID uuid.UUID, actorID uuid.UUID) bson.M {
	return bson.M{"type": string(model.NotificationLike), "blog": postID.String(), "user": actorID.String()}
}

func notificationFilter(f repository.NotificationFilter) bson.M {
	recipient := f.RecipientID.String()
	filter := bson.M{"notification_for": recipient, "user": bson.M{"$ne": recipient}}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	return filter
}

type notificationRepo struct {
	coll *mongo.Collection
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) error {
	_, err := r.coll.InsertOne(ctx, toNotificationDocument(notification))
	return mapErr(err)
}

func (r *notificationRepo) CreateLikeIfAbsent(ctx context.Context, notification model.Notification) (bool, error) {
	opts := options.Update().SetUpsert(true)
	filter := likeFilter(notification.PostID, notification.ActorID)
	update := bson.M{"$setOnInsert": toNotificationDocument(notification)}

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (r *notificationRepo) DeleteLike(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, likeFilter(postID, actorID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *notificationRepo) LikeExists(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, likeFilter(postID, actorID), options.Count().SetLimit(1))
	return count > 0, err
}

func (r *notificationRepo) SetReply(ctx context.Context, id uuid.UUID, recipientID uuid.UUID, replyID uuid.UUID) error {
	filter := bson.M{"_id": id.String(), "notification_for": recipientID.String()}
	return matchedOne(r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"reply": replyID.String()}}))
}

func (r *notificationRepo) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"comment": bson.M{"$in": idStrings(commentIDs)}})
	return err
}

func (r *notificationRepo) UnsetReplies(ctx context.Context, replyIDs []uuid.UUID) error {
	_, err := r.coll.UpdateMany(ctx, bson.M{"reply": bson.M{"$in": idStrings(replyIDs)}}, bson.M{"$unset": bson.M{"reply": ""}})
	return err
}

func (r *notificationRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"blog": postID.String()})
	return err
}

func (r *notificationRepo) Find(ctx context.Context, filter repository.NotificationFilter, skip int, limit int) ([]*model.Notification, error) {
	order := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
	cursor, err := r.coll.Find(ctx, notificationFilter(filter), findOpts(order, skip, limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []NotificationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	notifications := make([]*model.Notification, 0, len(docs))
	for _, doc := range docs {
		notification, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

func (r *notificationRepo) Count(ctx context.Context, filter repository.NotificationFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, notificationFilter(filter))
}

func (r *notificationRepo) ExistsUnseen(ctx context.Context, recipientID uuid.UUID) (bool, error) {
	filter := notificationFilter(repository.NotificationFilter{RecipientID: recipientID})
	filter["seen"] = false
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return count > 0, err
}

func (r *notificationRepo) MarkSeen(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}}, bson.M{"$set": bson.M{"seen": true}})
	return err
}
