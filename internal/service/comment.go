package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/metrics"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type commentService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	userCache UserCache
	notifier  *notifier
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, userCache UserCache, notifier *notifier) Comment {
	return &commentService{
		logger:    logger,
		repo:      repo,
		userCache: userCache,
		notifier:  notifier,
	}
}

// Create stores a comment or, with ReplyingTo set, a reply. The comment,
// the post counters, the parent's children and the notification are
// written as one unit.
func (s *commentService) Create(ctx context.Context, userID uuid.UUID, input dto.CreateCommentRequest) (*dto.CreateCommentResponse, error) {
	text := strings.TrimSpace(input.Comment)
	if text == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.repo.Store.Post.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find blog(%s): %s", input.PostID.String(), err.Error())
		return nil, ErrInternal
	}

	now := time.Now().UTC()
	comment := model.Comment{
		ID:           uuid.New(),
		PostID:       post.ID,
		PostAuthorID: post.AuthorID,
		Comment:      text,
		Children:     []uuid.UUID{},
		AuthorID:     userID,
		IsReply:      input.ReplyingTo != nil,
		ParentID:     input.ReplyingTo,
		CommentedAt:  now,
	}
	notification := model.Notification{
		ID:          uuid.New(),
		Type:        model.NotificationComment,
		PostID:      post.ID,
		RecipientID: post.AuthorID,
		ActorID:     userID,
		CommentID:   &comment.ID,
		CreatedAt:   now,
	}

	err = s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		var parents int64 = 1
		if input.ReplyingTo != nil {
			parent, err := s.repo.Store.Comment.FindByID(ctx, *input.ReplyingTo)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrCommentNotFound
				}
				return err
			}
			if parent.PostID != post.ID {
				return ErrCommentNotFound
			}

			notification.Type = model.NotificationReply
			notification.RecipientID = parent.AuthorID
			notification.RepliedOnCommentID = &parent.ID
			parents = 0

			if err := s.repo.Store.Comment.PushChild(ctx, parent.ID, comment.ID); err != nil {
				return err
			}
		}

		if err := s.repo.Store.Comment.Create(ctx, comment); err != nil {
			return err
		}
		if err := s.repo.Store.Post.PushComment(ctx, post.ID, comment.ID); err != nil {
			return err
		}
		if err := s.repo.Store.Post.IncrComments(ctx, post.ID, 1, parents); err != nil {
			return err
		}
		if err := s.repo.Store.Notification.Create(ctx, notification); err != nil {
			return err
		}

		if input.NotificationID != nil {
			err := s.repo.Store.Notification.SetReply(ctx, *input.NotificationID, userID, comment.ID)
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotificationNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		var serviceErr *Error
		if errors.As(err, &serviceErr) {
			return nil, serviceErr
		}

		s.logger.Sugar().Errorf("failed to create user(%s) comment on blog(%s): %s", userID.String(), post.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.notifier.created(ctx, notification)

	return &dto.CreateCommentResponse{
		ID:          comment.ID,
		Comment:     comment.Comment,
		CommentedAt: comment.CommentedAt,
		UserID:      userID,
		Children:    comment.Children,
	}, nil
}

func (s *commentService) FindPostComments(ctx context.Context, postID uuid.UUID, skip int) ([]*model.FullComment, error) {
	comments, err := s.repo.Store.Comment.FindTopLevel(ctx, postID, max(skip, 0), COMMENTS_PAGE_SIZE)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments of blog(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.populate(ctx, comments)
}

func (s *commentService) FindReplies(ctx context.Context, commentID uuid.UUID, skip int) ([]*model.FullComment, error) {
	replies, err := s.repo.Store.Comment.FindReplies(ctx, commentID, max(skip, 0), COMMENTS_PAGE_SIZE)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find replies of comment(%s): %s", commentID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.populate(ctx, replies)
}

// Delete removes the comment and its whole reply subtree. Either the
// comment's author or the post's author may delete it.
func (s *commentService) Delete(ctx context.Context, userID uuid.UUID, commentID uuid.UUID) error {
	var deleted int64
	err := s.repo.Store.WithinTx(ctx, func(ctx context.Context) error {
		comment, err := s.repo.Store.Comment.FindByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}

		if comment.AuthorID != userID && comment.PostAuthorID != userID {
			return ErrCannotDeleteComment
		}

		thread, err := s.repo.Store.Comment.FindByPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		ids := subtreeIDs(comment.ID, thread)

		deleted, err = s.repo.Store.Comment.DeleteMany(ctx, ids)
		if err != nil {
			return err
		}
		// a concurrent delete already removed the thread and its counters
		if deleted == 0 {
			return ErrCommentNotFound
		}

		if comment.ParentID != nil {
			err := s.repo.Store.Comment.PullChild(ctx, *comment.ParentID, comment.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}

		if err := s.repo.Store.Notification.DeleteByComments(ctx, ids); err != nil {
			return err
		}
		if err := s.repo.Store.Notification.UnsetReplies(ctx, ids); err != nil {
			return err
		}
		if err := s.repo.Store.Post.PullComments(ctx, comment.PostID, ids); err != nil {
			return err
		}

		var parents int64
		if !comment.IsReply {
			parents = 1
		}
		return s.repo.Store.Post.IncrComments(ctx, comment.PostID, -deleted, -parents)
	})
	if err != nil {
		var serviceErr *Error
		if errors.As(err, &serviceErr) {
			return serviceErr
		}

		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", commentID.String(), err.Error())
		return ErrInternal
	}

	metrics.CommentsDeleted(int(deleted))

	return nil
}

func (s *commentService) populate(ctx context.Context, comments []*model.Comment) ([]*model.FullComment, error) {
	authorIDs := lo.Map(comments, func(c *model.Comment, _ int) uuid.UUID {
		return c.AuthorID
	})

	authors, err := s.userCache.FindMany(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(comments, func(c *model.Comment, _ int) *model.FullComment {
		return &model.FullComment{
			Comment:     *c,
			CommentedBy: authorOf(authors, c.AuthorID),
		}
	}), nil
}
