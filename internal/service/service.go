package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/identity"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	LATEST_PAGE_SIZE       = 5
	SEARCH_PAGE_SIZE       = 2
	MAX_SEARCH_LIMIT       = 20
	TRENDING_SIZE          = 5
	USER_POSTS_PAGE_SIZE   = 5
	COMMENTS_PAGE_SIZE     = 5
	NOTIFICATION_PAGE_SIZE = 10
	USER_SEARCH_LIMIT      = 50

	USER_CACHE_TTL     = time.Hour
	TRENDING_CACHE_TTL = time.Minute
)

func maxLimit(limit *int, max int) {
	if *limit > max {
		*limit = max
	}
}

type Auth interface {
	SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, input dto.SignInRequest) (*dto.AuthResponse, error)
	GoogleAuth(ctx context.Context, idToken string) (*dto.AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordRequest) error
	VerifyAccessToken(token string) (uuid.UUID, error)
}

type User interface {
	FindProfile(ctx context.Context, username string) (*model.User, error)
	Search(ctx context.Context, query string) ([]model.UserAuthor, error)
	UpdateProfileImg(ctx context.Context, userID uuid.UUID, url string) (string, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (string, error)
}

type UserCache interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	FindMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CachedUser, error)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type Post interface {
	Save(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (string, error)
	Get(ctx context.Context, viewerID *uuid.UUID, input dto.GetPostRequest) (*model.FullPost, error)
	Delete(ctx context.Context, userID uuid.UUID, blogID string) error
	Latest(ctx context.Context, page int) ([]*model.FullPost, error)
	LatestCount(ctx context.Context) (int64, error)
	Trending(ctx context.Context) ([]*model.FullPost, error)
	Search(ctx context.Context, input dto.SearchPostsRequest) ([]*model.FullPost, error)
	SearchCount(ctx context.Context, input dto.SearchPostsRequest) (int64, error)
	UserWritten(ctx context.Context, userID uuid.UUID, input dto.UserPostsRequest) ([]*model.FullPost, error)
	UserWrittenCount(ctx context.Context, userID uuid.UUID, input dto.UserPostsRequest) (int64, error)
}

type Like interface {
	// Like applies the user's intent: likedBefore is the state the client saw,
	// so false means like and true means unlike. Repeats are no-ops.
	Like(ctx context.Context, userID uuid.UUID, postID uuid.UUID, likedBefore bool) (bool, error)
	IsLiked(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error)
}

type Comment interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreateCommentRequest) (*dto.CreateCommentResponse, error)
	FindPostComments(ctx context.Context, postID uuid.UUID, skip int) ([]*model.FullComment, error)
	FindReplies(ctx context.Context, commentID uuid.UUID, skip int) ([]*model.FullComment, error)
	Delete(ctx context.Context, userID uuid.UUID, commentID uuid.UUID) error
}

type Notification interface {
	HasNew(ctx context.Context, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, userID uuid.UUID, input dto.NotificationsRequest) ([]*model.FullNotification, error)
	Count(ctx context.Context, userID uuid.UUID, filter string) (int64, error)
}

type Upload interface {
	UploadURL(ctx context.Context) (string, error)
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*identity.GoogleProfile, error)
}

type Presigner interface {
	UploadURL(ctx context.Context) (string, error)
}

type Options struct {
	Auth      config.AuthConfig
	Google    GoogleVerifier
	Presigner Presigner
}

type Service struct {
	Auth
	User
	UserCache
	Post
	Like
	Comment
	Notification
	Upload
}

func New(logger *zap.Logger, repo *repository.Repository, publisher rabbitmq.Publisher, opts Options) *Service {
	if publisher == nil {
		publisher = rabbitmq.Discard{}
	}

	userCache := newUserCacheService(logger, repo)
	notifier := newNotifier(logger, publisher)

	return &Service{
		Auth:         newAuthService(logger, repo, opts.Auth, opts.Google),
		User:         newUserService(logger, repo, userCache),
		UserCache:    userCache,
		Post:         newPostService(logger, repo, userCache),
		Like:         newLikeService(logger, repo, notifier),
		Comment:      newCommentService(logger, repo, userCache, notifier),
		Notification: newNotificationService(logger, repo, userCache),
		Upload:       newUploadService(logger, opts.Presigner),
	}
}
