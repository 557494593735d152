package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/blog-service/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	MAX_DES_LENGTH = 200
	MAX_TAGS       = 10
	EDIT_MODE      = "edit"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	userCache UserCache
}

func newPostService(logger *zap.Logger, repo *repository.Repository, userCache UserCache) Post {
	return &postService{
		logger:    logger,
		repo:      repo,
		userCache: userCache,
	}
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return lo.Uniq(normalized)
}

// validatePost always requires a title and a short description; publishing
// additionally requires every field a reader sees.
func validatePost(input dto.CreatePostRequest) error {
	if input.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(input.Des) > MAX_DES_LENGTH {
		return ErrDesInvalid
	}
	if input.Draft {
		return nil
	}

	if input.Des == "" {
		return ErrDesInvalid
	}
	if input.Banner == "" {
		return ErrBannerRequired
	}
	if len(input.Content.Blocks) == 0 {
		return ErrContentRequired
	}
	if len(input.Tags) == 0 || len(input.Tags) > MAX_TAGS {
		return ErrTagsInvalid
	}
	return nil
}

// newBlogID turns the title into a URL slug with a random suffix.
func newBlogID(title string) string {
	slug := strings.Trim(nonAlphanumeric.ReplaceAllString(title, "-"), "-")
	if slug == "" {
		return shortuuid.New()
	}
	return slug + "-" + shortuuid.New()
}

func (s *postService) Save(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (string, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Des = strings.TrimSpace(input.Des)
	input.Banner = strings.TrimSpace(input.Banner)
	input.Tags = normalizeTags(input.Tags)
	if err := validatePost(input); err != nil {
		return "", err
	}

	if input.ID != "" {
		return s.update(ctx, authorID, input)
	}

	now := time.Now().UTC()
	post := model.Post{
		ID:          uuid.New(),
		BlogID:      newBlogID(input.Title),
		Title:       input.Title,
		Banner:      input.Banner,
		Des:         input.Des,
		Content:     input.Content,
		Tags:        input.Tags,
		AuthorID:    authorID,
		Comments:    []uuid.UUID{},
		Draft:       input.Draft,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	err := s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Store.Post.Create(ctx, post); err != nil {
			return err
		}
		if err := s.repo.Store.User.PushPost(ctx, authorID, post.ID); err != nil {
			return err
		}
		if !post.Draft {
			return s.repo.Store.User.IncrTotalPosts(ctx, authorID, 1)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to create user(%s) blog: %s", authorID.String(), err.Error())
		return "", ErrInternal
	}

	if !post.Draft {
		s.invalidateTrending(ctx)
	}

	return post.BlogID, nil
}

func (s *postService) update(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (string, error) {
	post, err := s.findByBlogID(ctx, input.ID)
	if err != nil {
		return "", err
	}

	if post.AuthorID != authorID {
		return "", ErrNotPostAuthor
	}
	if !post.Draft && input.Draft {
		return "", ErrUnpublish
	}

	now := time.Now().UTC()
	publishing := post.Draft && !input.Draft

	post.Title = input.Title
	post.Banner = input.Banner
	post.Des = input.Des
	post.Content = input.Content
	post.Tags = input.Tags
	post.Draft = input.Draft
	post.UpdatedAt = now
	if publishing {
		post.PublishedAt = now
	}

	err = s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Store.Post.Update(ctx, *post); err != nil {
			return err
		}
		if publishing {
			return s.repo.Store.User.IncrTotalPosts(ctx, authorID, 1)
		}
		return nil
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to update blog(%s): %s", post.BlogID, err.Error())
		return "", ErrInternal
	}

	if !post.Draft {
		s.invalidateTrending(ctx)
	}

	return post.BlogID, nil
}

func (s *postService) findByBlogID(ctx context.Context, blogID string) (*model.Post, error) {
	post, err := s.repo.Store.Post.FindByBlogID(ctx, blogID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find blog(%s): %s", blogID, err.Error())
		return nil, ErrInternal
	}
	return post, nil
}

// Get counts a read unless the post is opened for editing. Drafts are only
// visible to their author.
func (s *postService) Get(ctx context.Context, viewerID *uuid.UUID, input dto.GetPostRequest) (*model.FullPost, error) {
	post, err := s.findByBlogID(ctx, input.BlogID)
	if err != nil {
		return nil, err
	}

	if post.Draft && (viewerID == nil || *viewerID != post.AuthorID) {
		return nil, ErrDraftAccess
	}

	if input.Mode != EDIT_MODE {
		err := s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.repo.Store.Post.IncrReads(ctx, post.ID, 1); err != nil {
				return err
			}
			return s.repo.Store.User.IncrTotalReads(ctx, post.AuthorID, 1)
		})
		if err != nil {
			s.logger.Sugar().Errorf("failed to count read of blog(%s): %s", post.BlogID, err.Error())
			return nil, ErrInternal
		}
		post.Activity.TotalReads++
	}

	posts, err := s.populate(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	return posts[0], nil
}

// Delete removes the post together with its comments and notifications.
func (s *postService) Delete(ctx context.Context, userID uuid.UUID, blogID string) error {
	post, err := s.findByBlogID(ctx, blogID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	err = s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Store.Notification.DeleteByPost(ctx, post.ID); err != nil {
			return err
		}
		if err := s.repo.Store.Comment.DeleteByPost(ctx, post.ID); err != nil {
			return err
		}
		if err := s.repo.Store.Post.Delete(ctx, post.ID); err != nil {
			return err
		}
		if err := s.repo.Store.User.PullPost(ctx, userID, post.ID); err != nil {
			return err
		}
		if !post.Draft {
			return s.repo.Store.User.IncrTotalPosts(ctx, userID, -1)
		}
		return nil
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete blog(%s): %s", blogID, err.Error())
		return ErrInternal
	}

	if !post.Draft {
		s.invalidateTrending(ctx)
	}

	return nil
}

func publishedFilter() repository.PostFilter {
	return repository.PostFilter{Draft: lo.ToPtr(false)}
}

func (s *postService) Latest(ctx context.Context, page int) ([]*model.FullPost, error) {
	return s.find(ctx, publishedFilter(), repository.SortLatest, pagination.Skip(page, LATEST_PAGE_SIZE, 0), LATEST_PAGE_SIZE)
}

func (s *postService) LatestCount(ctx context.Context) (int64, error) {
	return s.count(ctx, publishedFilter())
}

func (s *postService) Trending(ctx context.Context) ([]*model.FullPost, error) {
	cachedPosts, err := redisrepo.GetMany[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.TrendingPostsKey())
	if err == nil && cachedPosts != nil {
		return cachedPosts, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get trending blogs from redis: %s", err.Error())
	}

	posts, err := s.find(ctx, publishedFilter(), repository.SortTrending, 0, TRENDING_SIZE)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.TrendingPostsKey(), posts, TRENDING_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set trending blogs in redis: %s", err.Error())
	}

	return posts, nil
}

// searchFilter picks one criterion: tag, then title query, then author.
// ok is false when the request names none of them.
func searchFilter(input dto.SearchPostsRequest) (filter repository.PostFilter, ok bool) {
	filter = publishedFilter()

	switch {
	case strings.TrimSpace(input.Tag) != "":
		filter.Tag = strings.ToLower(strings.TrimSpace(input.Tag))
		filter.ExcludeBlogID = input.EliminateBlog
	case strings.TrimSpace(input.Query) != "":
		filter.TitleQuery = strings.TrimSpace(input.Query)
	case input.Author != nil:
		filter.AuthorID = input.Author
	default:
		return filter, false
	}

	return filter, true
}

func (s *postService) Search(ctx context.Context, input dto.SearchPostsRequest) ([]*model.FullPost, error) {
	filter, ok := searchFilter(input)
	if !ok {
		return []*model.FullPost{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = SEARCH_PAGE_SIZE
	}
	maxLimit(&limit, MAX_SEARCH_LIMIT)

	return s.find(ctx, filter, repository.SortLatest, pagination.Skip(input.Page, limit, 0), limit)
}

func (s *postService) SearchCount(ctx context.Context, input dto.SearchPostsRequest) (int64, error) {
	filter, ok := searchFilter(input)
	if !ok {
		return 0, nil
	}
	return s.count(ctx, filter)
}

func userWrittenFilter(userID uuid.UUID, input dto.UserPostsRequest) repository.PostFilter {
	return repository.PostFilter{
		Draft:      lo.ToPtr(input.Draft),
		AuthorID:   &userID,
		TitleQuery: strings.TrimSpace(input.Query),
	}
}

func (s *postService) UserWritten(ctx context.Context, userID uuid.UUID, input dto.UserPostsRequest) ([]*model.FullPost, error) {
	skip := pagination.Skip(input.Page, USER_POSTS_PAGE_SIZE, input.DeletedDocCount)
	return s.find(ctx, userWrittenFilter(userID, input), repository.SortLatest, skip, USER_POSTS_PAGE_SIZE)
}

func (s *postService) UserWrittenCount(ctx context.Context, userID uuid.UUID, input dto.UserPostsRequest) (int64, error) {
	return s.count(ctx, userWrittenFilter(userID, input))
}

func (s *postService) find(ctx context.Context, filter repository.PostFilter, sort repository.PostSort, skip int, limit int) ([]*model.FullPost, error) {
	posts, err := s.repo.Store.Post.Find(ctx, filter, sort, skip, limit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find blogs: %s", err.Error())
		return nil, ErrInternal
	}

	return s.populate(ctx, posts)
}

func (s *postService) count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	count, err := s.repo.Store.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count blogs: %s", err.Error())
		return 0, ErrInternal
	}
	return count, nil
}

func (s *postService) populate(ctx context.Context, posts []*model.Post) ([]*model.FullPost, error) {
	authorIDs := lo.Map(posts, func(post *model.Post, _ int) uuid.UUID {
		return post.AuthorID
	})

	authors, err := s.userCache.FindMany(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(posts, func(post *model.Post, _ int) *model.FullPost {
		return &model.FullPost{
			Post:   *post,
			Author: authorOf(authors, post.AuthorID),
		}
	}), nil
}

func (s *postService) invalidateTrending(ctx context.Context) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.TrendingPostsKey()).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete trending blogs from redis: %s", err.Error())
	}
}
