package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/blog-service/internal/metrics"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type likeService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	notifier *notifier
}

func newLikeService(logger *zap.Logger, repo *repository.Repository, notifier *notifier) Like {
	return &likeService{
		logger:   logger,
		repo:     repo,
		notifier: notifier,
	}
}

// Like keeps total_likes equal to the number of like notifications on the
// post: the counter only moves when the notification was actually inserted
// or removed.
func (s *likeService) Like(ctx context.Context, userID uuid.UUID, postID uuid.UUID, likedBefore bool) (bool, error) {
	post, err := s.repo.Store.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find blog(%s): %s", postID.String(), err.Error())
		return false, ErrInternal
	}

	notification := model.Notification{
		ID:          uuid.New(),
		Type:        model.NotificationLike,
		PostID:      post.ID,
		RecipientID: post.AuthorID,
		ActorID:     userID,
		CreatedAt:   time.Now().UTC(),
	}

	changed := false
	err = s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		var delta int64
		if likedBefore {
			deleted, err := s.repo.Store.Notification.DeleteLike(ctx, post.ID, userID)
			if err != nil {
				return err
			}
			changed, delta = deleted, -1
		} else {
			inserted, err := s.repo.Store.Notification.CreateLikeIfAbsent(ctx, notification)
			if err != nil {
				return err
			}
			changed, delta = inserted, 1
		}

		if !changed {
			return nil
		}
		return s.repo.Store.Post.IncrLikes(ctx, post.ID, delta)
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to toggle like of user(%s) on blog(%s): %s", userID.String(), postID.String(), err.Error())
		return false, ErrInternal
	}

	liked := !likedBefore
	if changed {
		metrics.LikeToggled(liked)
		if liked {
			s.notifier.created(ctx, notification)
		}
	}

	return liked, nil
}

func (s *likeService) IsLiked(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	exists, err := s.repo.Store.Notification.LikeExists(ctx, postID, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like of user(%s) on blog(%s): %s", userID.String(), postID.String(), err.Error())
		return false, ErrInternal
	}
	return exists, nil
}
