package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonalInfoDocument struct {
	Fullname   string `bson:"fullname"`
	Email      string `bson:"email"`
	Password   string `bson:"password,omitempty"`
	Username   string `bson:"username"`
	Bio        string `bson:"bio"`
	ProfileImg string `bson:"profile_img"`
}

type AccountInfoDocument struct {
	TotalPosts int64 `bson:"total_posts"`
	TotalReads int64 `bson:"total_reads"`
}

// UserDocument is the MongoDB schema for a user.
type UserDocument struct {
	ID           string               `bson:"_id"`
	PersonalInfo PersonalInfoDocument `bson:"personal_info"`
	SocialLinks  model.SocialLinks    `bson:"social_links"`
	AccountInfo  AccountInfoDocument  `bson:"account_info"`
	GoogleAuth   bool                 `bson:"google_auth"`
	Blogs        []string             `bson:"blogs"`
	JoinedAt     time.Time            `bson:"joinedAt"`
}

func toUserDocument(u model.User) UserDocument {
	return UserDocument{
		ID: u.ID.String(),
		PersonalInfo: PersonalInfoDocument{
			Fullname:   u.PersonalInfo.Fullname,
			Email:      u.PersonalInfo.Email,
			Password:   u.PersonalInfo.Password,
			Username:   u.PersonalInfo.Username,
			Bio:        u.PersonalInfo.Bio,
			ProfileImg: u.PersonalInfo.ProfileImg,
		},
		SocialLinks: u.SocialLinks,
		AccountInfo: AccountInfoDocument{
			TotalPosts: u.AccountInfo.TotalPosts,
			TotalReads: u.AccountInfo.TotalReads,
		},
		GoogleAuth: u.GoogleAuth,
		Blogs:      idStrings(u.Blogs),
		JoinedAt:   u.JoinedAt,
	}
}

func (d UserDocument) toModel() (*model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	blogs, err := parseIDs(d.Blogs)
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID: id,
		PersonalInfo: model.PersonalInfo{
			Fullname:   d.PersonalInfo.Fullname,
			Email:      d.PersonalInfo.Email,
			Password:   d.PersonalInfo.Password,
			Username:   d.PersonalInfo.Username,
			Bio:        d.PersonalInfo.Bio,
			ProfileImg: d.PersonalInfo.ProfileImg,
		},
		SocialLinks: d.SocialLinks,
		AccountInfo: model.AccountInfo{
			TotalPosts: d.AccountInfo.TotalPosts,
			TotalReads: d.AccountInfo.TotalReads,
		},
		GoogleAuth: d.GoogleAuth,
		Blogs:      blogs,
		JoinedAt:   d.JoinedAt,
	}, nil
}

type userRepo struct {
	coll *mongo.Collection
}

func (r *userRepo) Create(ctx context.Context, user model.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDocument(user))
	return mapErr(err)
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc UserDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toModel()
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"personal_info.email": email})
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"personal_info.username": username})
}

func (r *userRepo) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*model.User, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []UserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(docs))
	for _, doc := range docs {
		user, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"personal_info.username": username}, options.Count().SetLimit(1))
	return count > 0, err
}

func (r *userRepo) SearchByUsername(ctx context.Context, query string, limit int) ([]*model.User, error) {
	filter := bson.M{"personal_info.username": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	return r.findMany(ctx, filter, findOpts(bson.D{{Key: "personal_info.username", Value: 1}}, 0, limit))
}

func (r *userRepo) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	return matchedOne(r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, update))
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"personal_info.password": hash}})
}

func (r *userRepo) UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"personal_info.profile_img": url}})
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username string, bio string, links model.SocialLinks) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"personal_info.username": username,
		"personal_info.bio":      bio,
		"social_links":           links,
	}})
}

func (r *userRepo) PushPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.updateOne(ctx, id, bson.M{"$push": bson.M{"blogs": postID.String()}})
}

func (r *userRepo) PullPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.updateOne(ctx, id, bson.M{"$pull": bson.M{"blogs": postID.String()}})
}

func (r *userRepo) IncrTotalPosts(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"account_info.total_posts": delta}})
}

func (r *userRepo) IncrTotalReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"account_info.total_reads": delta}})
}
