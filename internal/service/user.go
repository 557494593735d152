package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	MIN_USERNAME_LENGTH = 3
	MAX_BIO_LENGTH      = 150
)

type userService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	userCache UserCache
}

func newUserService(logger *zap.Logger, repo *repository.Repository, userCache UserCache) User {
	return &userService{
		logger:    logger,
		repo:      repo,
		userCache: userCache,
	}
}

func (s *userService) FindProfile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.Store.User.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) Search(ctx context.Context, query string) ([]model.UserAuthor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.UserAuthor{}, nil
	}

	users, err := s.repo.Store.User.SearchByUsername(ctx, query, USER_SEARCH_LIMIT)
	if err != nil {
		s.logger.Sugar().Errorf("failed to search users by(%s): %s", query, err.Error())
		return nil, ErrInternal
	}

	return lo.Map(users, func(user *model.User, _ int) model.UserAuthor {
		return user.Cached().Author()
	}), nil
}

func (s *userService) UpdateProfileImg(ctx context.Context, userID uuid.UUID, imgURL string) (string, error) {
	imgURL = strings.TrimSpace(imgURL)
	if imgURL == "" {
		return "", ErrProfileImgRequired
	}

	if err := s.repo.Store.User.UpdateProfileImg(ctx, userID, imgURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to update user(%s) profile image: %s", userID.String(), err.Error())
		return "", ErrInternal
	}

	s.userCache.Invalidate(ctx, userID)

	return imgURL, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (string, error) {
	username := strings.TrimSpace(input.Username)
	if utf8.RuneCountInString(username) < MIN_USERNAME_LENGTH {
		return "", ErrUsernameTooShort
	}
	if utf8.RuneCountInString(input.Bio) > MAX_BIO_LENGTH {
		return "", ErrBioTooLong
	}

	links := input.SocialLinks
	for _, link := range links.Entries() {
		if link.URL == "" {
			continue
		}
		if !validSocialLink(link) {
			return "", invalid("%s link is invalid. You must enter a full link", link.Platform)
		}
	}

	if err := s.repo.Store.User.UpdateProfile(ctx, userID, username, input.Bio, links); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return "", ErrUsernameTaken
		case errors.Is(err, repository.ErrNotFound):
			return "", ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to update user(%s) profile: %s", userID.String(), err.Error())
		return "", ErrInternal
	}

	s.userCache.Invalidate(ctx, userID)

	return username, nil
}

// validSocialLink requires a full https URL; platform links must point at
// the platform's own domain.
func validSocialLink(link model.SocialLink) bool {
	u, err := url.Parse(link.URL)
	if err != nil || u.Scheme != "https" || u.Hostname() == "" {
		return false
	}

	if link.Platform == "website" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Hostname()), link.Platform+".com")
}
