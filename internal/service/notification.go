package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/pkg/pagination"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const ALL_NOTIFICATIONS = "all"

type notificationService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	userCache UserCache
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, userCache UserCache) Notification {
	return &notificationService{
		logger:    logger,
		repo:      repo,
		userCache: userCache,
	}
}

func notificationFilter(userID uuid.UUID, filter string) (repository.NotificationFilter, error) {
	result := repository.NotificationFilter{RecipientID: userID}
	if filter == "" || filter == ALL_NOTIFICATIONS {
		return result, nil
	}

	notificationType := model.NotificationType(filter)
	if !notificationType.Valid() {
		return result, ErrUnknownNotificationType
	}
	result.Type = notificationType

	return result, nil
}

func (s *notificationService) HasNew(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := s.repo.Store.Notification.ExistsUnseen(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check new notifications of user(%s): %s", userID.String(), err.Error())
		return false, ErrInternal
	}
	return exists, nil
}

// Find returns one page and marks it seen. The page itself still reports
// the state it had before this read.
func (s *notificationService) Find(ctx context.Context, userID uuid.UUID, input dto.NotificationsRequest) ([]*model.FullNotification, error) {
	filter, err := notificationFilter(userID, input.Filter)
	if err != nil {
		return nil, err
	}

	skip := pagination.Skip(input.Page, NOTIFICATION_PAGE_SIZE, input.DeletedDocCount)
	notifications, err := s.repo.Store.Notification.Find(ctx, filter, skip, NOTIFICATION_PAGE_SIZE)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find notifications of user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	result, err := s.populate(ctx, notifications)
	if err != nil {
		return nil, err
	}

	unseen := lo.FilterMap(notifications, func(n *model.Notification, _ int) (uuid.UUID, bool) {
		return n.ID, !n.Seen
	})
	if len(unseen) > 0 {
		if err := s.repo.Store.Notification.MarkSeen(ctx, unseen); err != nil {
			s.logger.Sugar().Errorf("failed to mark %d notifications of user(%s) seen: %s", len(unseen), userID.String(), err.Error())
			return nil, ErrInternal
		}
	}

	return result, nil
}

func (s *notificationService) Count(ctx context.Context, userID uuid.UUID, filter string) (int64, error) {
	f, err := notificationFilter(userID, filter)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.Store.Notification.Count(ctx, f)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count notifications of user(%s): %s", userID.String(), err.Error())
		return 0, ErrInternal
	}
	return count, nil
}

func (s *notificationService) populate(ctx context.Context, notifications []*model.Notification) ([]*model.FullNotification, error) {
	actorIDs := make([]uuid.UUID, 0, len(notifications))
	postIDs := make([]uuid.UUID, 0, len(notifications))
	var commentIDs []uuid.UUID
	for _, n := range notifications {
		actorIDs = append(actorIDs, n.ActorID)
		postIDs = append(postIDs, n.PostID)
		for _, id := range []*uuid.UUID{n.CommentID, n.ReplyID, n.RepliedOnCommentID} {
			if id != nil {
				commentIDs = append(commentIDs, *id)
			}
		}
	}

	actors, err := s.userCache.FindMany(ctx, actorIDs)
	if err != nil {
		return nil, err
	}

	posts := make(map[uuid.UUID]*model.Post)
	for _, id := range lo.Uniq(postIDs) {
		post, err := s.repo.Store.Post.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}

			s.logger.Sugar().Errorf("failed to find blog(%s): %s", id.String(), err.Error())
			return nil, ErrInternal
		}
		posts[id] = post
	}

	comments := make(map[uuid.UUID]model.CommentRef)
	if len(commentIDs) > 0 {
		found, err := s.repo.Store.Comment.FindManyByIDs(ctx, commentIDs)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find %d notification comments: %s", len(commentIDs), err.Error())
			return nil, ErrInternal
		}
		for _, c := range found {
			comments[c.ID] = model.CommentRef{ID: c.ID, Comment: c.Comment}
		}
	}

	commentRef := func(id *uuid.UUID) *model.CommentRef {
		if id == nil {
			return nil
		}
		if ref, ok := comments[*id]; ok {
			return &ref
		}
		return nil
	}

	return lo.Map(notifications, func(n *model.Notification, _ int) *model.FullNotification {
		blog := model.NotificationBlog{ID: n.PostID}
		if post, ok := posts[n.PostID]; ok {
			blog.BlogID = post.BlogID
			blog.Title = post.Title
		}

		return &model.FullNotification{
			ID:               n.ID,
			Type:             n.Type,
			Seen:             n.Seen,
			CreatedAt:        n.CreatedAt,
			Blog:             blog,
			User:             authorOf(actors, n.ActorID),
			Comment:          commentRef(n.CommentID),
			RepliedOnComment: commentRef(n.RepliedOnCommentID),
			Reply:            commentRef(n.ReplyID),
		}
	}), nil
}
