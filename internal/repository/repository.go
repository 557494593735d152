package repository

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type PostSort int

const (
	SortLatest PostSort = iota
	SortTrending
)

type PostFilter struct {
	Draft         *bool
	AuthorID      *uuid.UUID
	Tag           string
	TitleQuery    string
	ExcludeBlogID string
}

type NotificationFilter struct {
	RecipientID uuid.UUID
	// Empty Type matches every type.
	Type model.NotificationType
}

type User interface {
	// Create returns ErrDuplicate when the email or username is taken.
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	SearchByUsername(ctx context.Context, query string, limit int) ([]*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error
	// UpdateProfile returns ErrDuplicate when the username belongs to someone else.
	UpdateProfile(ctx context.Context, id uuid.UUID, username string, bio string, links model.SocialLinks) error
	PushPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error
	PullPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error
	IncrTotalPosts(ctx context.Context, id uuid.UUID, delta int64) error
	IncrTotalReads(ctx context.Context, id uuid.UUID, delta int64) error
}

type Post interface {
	Create(ctx context.Context, post model.Post) error
	// Update overwrites the editable fields: title, banner, des, content, tags, draft, publishedAt, updatedAt.
	Update(ctx context.Context, post model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindByBlogID(ctx context.Context, blogID string) (*model.Post, error)
	Find(ctx context.Context, filter PostFilter, sort PostSort, skip int, limit int) ([]*model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrReads(ctx context.Context, id uuid.UUID, delta int64) error
	IncrLikes(ctx context.Context, id uuid.UUID, delta int64) error
	IncrComments(ctx context.Context, id uuid.UUID, total int64, parents int64) error
	PushComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID) error
	PullComments(ctx context.Context, id uuid.UUID, commentIDs []uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// FindByPost returns every comment of a post regardless of depth.
	FindByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
	FindTopLevel(ctx context.Context, postID uuid.UUID, skip int, limit int) ([]*model.Comment, error)
	FindReplies(ctx context.Context, parentID uuid.UUID, skip int, limit int) ([]*model.Comment, error)
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Comment, error)
	PushChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error
	PullChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) error
	// CreateLikeIfAbsent inserts a like notification unless one already exists
	// for the (actor, post) pair and reports whether it inserted.
	CreateLikeIfAbsent(ctx context.Context, notification model.Notification) (bool, error)
	// DeleteLike reports whether a like notification was removed.
	DeleteLike(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error)
	LikeExists(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (bool, error)
	// SetReply returns ErrNotFound unless the notification exists and is addressed to recipientID.
	SetReply(ctx context.Context, id uuid.UUID, recipientID uuid.UUID, replyID uuid.UUID) error
	DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error
	UnsetReplies(ctx context.Context, replyIDs []uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
	// Find and Count never include notifications the recipient caused.
	Find(ctx context.Context, filter NotificationFilter, skip int, limit int) ([]*model.Notification, error)
	Count(ctx context.Context, filter NotificationFilter) (int64, error)
	ExistsUnseen(ctx context.Context, recipientID uuid.UUID) (bool, error)
	MarkSeen(ctx context.Context, ids []uuid.UUID) error
}

type Transactor interface {
	// WithinTx runs fn as one unit of work. Repository calls made with the
	// context passed to fn join it; a returned error rolls everything back.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Store struct {
	User
	Post
	Comment
	Notification
	Transactor
}

type Repository struct {
	Store *Store
	Redis *redisrepo.RedisRepository
}

func New(store *Store, rdb *redis.Client) *Repository {
	return &Repository{
		Store: store,
		Redis: redisrepo.New(rdb),
	}
}
