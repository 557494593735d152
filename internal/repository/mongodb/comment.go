package mongodb

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentDocument is the MongoDB schema for a comment or reply.
type CommentDocument struct {
	ID          string    `bson:"_id"`
	BlogID      string    `bson:"blog_id"`
	BlogAuthor  string    `bson:"blog_author"`
	Comment     string    `bson:"comment"`
	Children    []string  `bson:"children"`
	CommentedBy string    `bson:"commented_by"`
	IsReply     bool      `bson:"isReply"`
	Parent      *string   `bson:"parent,omitempty"`
	CommentedAt time.Time `bson:"commentedAt"`
}

func toCommentDocument(c model.Comment) CommentDocument {
	return CommentDocument{
		ID:          c.ID.String(),
		BlogID:      c.PostID.String(),
		BlogAuthor:  c.PostAuthorID.String(),
		Comment:     c.Comment,
		Children:    idStrings(c.Children),
		CommentedBy: c.AuthorID.String(),
		IsReply:     c.IsReply,
		Parent:      idPtrString(c.ParentID),
		CommentedAt: c.CommentedAt,
	}
}

func (d CommentDocument) toModel() (*model.Comment, error) {
	ids, err := parseIDs([]string{d.ID, d.BlogID, d.BlogAuthor, d.CommentedBy})
	if err != nil {
		return nil, err
	}
	children, err := parseIDs(d.Children)
	if err != nil {
		return nil, err
	}
	parent, err := parseIDPtr(d.Parent)
	if err != nil {
		return nil, err
	}

	return &model.Comment{
		ID:           ids[0],
		PostID:       ids[1],
		PostAuthorID: ids[2],
		Comment:      d.Comment,
		Children:     children,
		AuthorID:     ids[3],
		IsReply:      d.IsReply,
		ParentID:     parent,
		CommentedAt:  d.CommentedAt,
	}, nil
}

var newestComments = bson.D{{Key: "commentedAt", Value: -1}, {Key: "_id", Value: 1}}

type commentRepo struct {
	coll *mongo.Collection
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) error {
	_, err := r.coll.InsertOne(ctx, toCommentDocument(comment))
	return mapErr(err)
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var doc CommentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toModel()
}

func (r *commentRepo) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*model.Comment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []CommentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(docs))
	for _, doc := range docs {
		comment, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *commentRepo) FindByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	return r.findMany(ctx, bson.M{"blog_id": postID.String()}, findOpts(newestComments, 0, 0))
}

func (r *commentRepo) FindTopLevel(ctx context.Context, postID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	return r.findMany(ctx, bson.M{"blog_id": postID.String(), "isReply": false}, findOpts(newestComments, skip, limit))
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	return r.findMany(ctx, bson.M{"parent": parentID.String()}, findOpts(newestComments, skip, limit))
}

func (r *commentRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Comment, error) {
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
}

func (r *commentRepo) PushChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return matchedOne(r.coll.UpdateOne(ctx, bson.M{"_id": parentID.String()}, bson.M{"$push": bson.M{"children": childID.String()}}))
}

func (r *commentRepo) PullChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return matchedOne(r.coll.UpdateOne(ctx, bson.M{"_id": parentID.String()}, bson.M{"$pull": bson.M{"children": childID.String()}}))
}

func (r *commentRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *commentRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"blog_id": postID.String()})
	return err
}
