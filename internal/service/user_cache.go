package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type userCacheService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserCacheService(logger *zap.Logger, repo *repository.Repository) UserCache {
	return &userCacheService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userCacheService) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	cachedUser, err := redisrepo.Get[model.CachedUser](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id.String()))
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get cached user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Store.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	cached := user.Cached()
	s.set(ctx, cached)

	return &cached, nil
}

// FindMany resolves every id it can. Users missing from both redis and the
// store are absent from the result.
func (s *userCacheService) FindMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CachedUser, error) {
	ids = lo.Uniq(ids)
	result := make(map[uuid.UUID]model.CachedUser, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := lo.Map(ids, func(id uuid.UUID, _ int) string {
		return redisrepo.UserCacheKey(id.String())
	})

	cachedUsers, err := redisrepo.MGetJSON[model.CachedUser](s.repo.Redis.Default, ctx, keys...)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get %d cached users from redis: %s", len(keys), err.Error())
		cachedUsers = nil
	}

	var missing []uuid.UUID
	for i, id := range ids {
		if i < len(cachedUsers) && cachedUsers[i] != nil {
			result[id] = *cachedUsers[i]
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	users, err := s.repo.Store.User.FindManyByIDs(ctx, missing)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find %d users: %s", len(missing), err.Error())
		return nil, ErrInternal
	}

	for _, user := range users {
		cached := user.Cached()
		result[user.ID] = cached
		s.set(ctx, cached)
	}

	return result, nil
}

func (s *userCacheService) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserCacheKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached user(%s) from redis: %s", id.String(), err.Error())
	}
}

func (s *userCacheService) set(ctx context.Context, user model.CachedUser) {
	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserCacheKey(user.ID.String()), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", user.ID.String(), err.Error())
	}
}

// authorOf falls back to a bare id when the user no longer exists.
func authorOf(users map[uuid.UUID]model.CachedUser, id uuid.UUID) model.UserAuthor {
	if user, ok := users[id]; ok {
		return user.Author()
	}
	return model.UserAuthor{ID: id}
}
