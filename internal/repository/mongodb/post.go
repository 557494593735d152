package mongodb

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ActivityDocument struct {
	TotalLikes          int64 `bson:"total_likes"`
	TotalComments       int64 `bson:"total_comments"`
	TotalReads          int64 `bson:"total_reads"`
	TotalParentComments int64 `bson:"total_parent_comments"`
}

// PostDocument is the MongoDB schema for a blog. Content keeps the editor
// JSON verbatim.
type PostDocument struct {
	ID          string           `bson:"_id"`
	BlogID      string           `bson:"blog_id"`
	Title       string           `bson:"title"`
	Banner      string           `bson:"banner"`
	Des         string           `bson:"des"`
	Content     string           `bson:"content"`
	Tags        []string         `bson:"tags"`
	Author      string           `bson:"author"`
	Activity    ActivityDocument `bson:"activity"`
	Comments    []string         `bson:"comments"`
	Draft       bool             `bson:"draft"`
	PublishedAt time.Time        `bson:"publishedAt"`
	UpdatedAt   time.Time        `bson:"updatedAt"`
}

func toPostDocument(p model.Post) (PostDocument, error) {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return PostDocument{}, err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return PostDocument{
		ID:      p.ID.String(),
		BlogID:  p.BlogID,
		Title:   p.Title,
		Banner:  p.Banner,
		Des:     p.Des,
		Content: string(content),
		Tags:    tags,
		Author:  p.AuthorID.String(),
		Activity: ActivityDocument{
			TotalLikes:          p.Activity.TotalLikes,
			TotalComments:       p.Activity.TotalComments,
			TotalReads:          p.Activity.TotalReads,
			TotalParentComments: p.Activity.TotalParentComments,
		},
		Comments:    idStrings(p.Comments),
		Draft:       p.Draft,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d PostDocument) toModel() (*model.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	authorID, err := uuid.Parse(d.Author)
	if err != nil {
		return nil, err
	}
	comments, err := parseIDs(d.Comments)
	if err != nil {
		return nil, err
	}

	var content model.Content
	if d.Content != "" {
		if err := json.Unmarshal([]byte(d.Content), &content); err != nil {
			return nil, err
		}
	}

	return &model.Post{
		ID:       id,
		BlogID:   d.BlogID,
		Title:    d.Title,
		Banner:   d.Banner,
		Des:      d.Des,
		Content:  content,
		Tags:     d.Tags,
		AuthorID: authorID,
		Activity: model.Activity{
			TotalLikes:          d.Activity.TotalLikes,
			TotalComments:       d.Activity.TotalComments,
			TotalReads:          d.Activity.TotalReads,
			TotalParentComments: d.Activity.TotalParentComments,
		},
		Comments:    comments,
		Draft:       d.Draft,
		PublishedAt: d.PublishedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func postFilter(f repository.PostFilter) bson.M {
	filter := bson.M{}
	if f.Draft != nil {
		filter["draft"] = *f.Draft
	}
	if f.AuthorID != nil {
		filter["author"] = f.AuthorID.String()
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.TitleQuery != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.TitleQuery), "$options": "i"}
	}
	if f.ExcludeBlogID != "" {
		filter["blog_id"] = bson.M{"$ne": f.ExcludeBlogID}
	}
	return filter
}

type postRepo struct {
	coll *mongo.Collection
}

func (r *postRepo) Create(ctx context.Context, post model.Post) error {
	doc, err := toPostDocument(post)
	if err != nil {
		return err
	}

	_, err = r.coll.InsertOne(ctx, doc)
	return mapErr(err)
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	doc, err := toPostDocument(post)
	if err != nil {
		return err
	}

	return r.updateOne(ctx, post.ID, bson.M{"$set": bson.M{
		"title":       doc.Title,
		"banner":      doc.Banner,
		"des":         doc.Des,
		"content":     doc.Content,
		"tags":        doc.Tags,
		"draft":       doc.Draft,
		"publishedAt": doc.PublishedAt,
		"updatedAt":   doc.UpdatedAt,
	}})
}

func (r *postRepo) findOne(ctx context.Context, filter bson.M) (*model.Post, error) {
	var doc PostDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toModel()
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *postRepo) FindByBlogID(ctx context.Context, blogID string) (*model.Post, error) {
	return r.findOne(ctx, bson.M{"blog_id": blogID})
}

func (r *postRepo) Find(ctx context.Context, filter repository.PostFilter, sort repository.PostSort, skip int, limit int) ([]*model.Post, error) {
	order := bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: 1}}
	if sort == repository.SortTrending {
		order = bson.D{
			{Key: "activity.total_reads", Value: -1},
			{Key: "activity.total_likes", Value: -1},
			{Key: "publishedAt", Value: -1},
			{Key: "_id", Value: 1},
		}
	}

	cursor, err := r.coll.Find(ctx, postFilter(filter), findOpts(order, skip, limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []PostDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*model.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, postFilter(filter))
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postRepo) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	return matchedOne(r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, update))
}

func (r *postRepo) IncrReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"activity.total_reads": delta}})
}

func (r *postRepo) IncrLikes(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"activity.total_likes": delta}})
}

func (r *postRepo) IncrComments(ctx context.Context, id uuid.UUID, total int64, parents int64) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{
		"activity.total_comments":        total,
		"activity.total_parent_comments": parents,
	}})
}

func (r *postRepo) PushComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID) error {
	return r.updateOne(ctx, id, bson.M{"$push": bson.M{"comments": commentID.String()}})
}

func (r *postRepo) PullComments(ctx context.Context, id uuid.UUID, commentIDs []uuid.UUID) error {
	return r.updateOne(ctx, id, bson.M{"$pull": bson.M{"comments": bson.M{"$in": idStrings(commentIDs)}}})
}
