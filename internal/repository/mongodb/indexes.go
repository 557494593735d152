package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migrate creates the indexes the repositories rely on, including the
// partial unique index that keeps one like per (user, blog).
func (m *MongoDB) Migrate(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		m.Users: {
			{Keys: bson.D{{Key: "personal_info.email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "personal_info.username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		m.Posts: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "draft", Value: 1}, {Key: "publishedAt", Value: -1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
		m.Comments: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "commentedAt", Value: -1}}},
			{Keys: bson.D{{Key: "parent", Value: 1}, {Key: "commentedAt", Value: -1}}},
		},
		m.Notifications: {
			{
				Keys: bson.D{{Key: "blog", Value: 1}, {Key: "user", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"type": "like"}),
			},
			{Keys: bson.D{{Key: "notification_for", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
