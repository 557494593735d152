package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type commentRepo struct {
	d *db
}

func cloneComment(c model.Comment) *model.Comment {
	c.Children = slices.Clone(c.Children)
	if c.ParentID != nil {
		parentID := *c.ParentID
		c.ParentID = &parentID
	}
	return &c
}

func newestFirst(comments []*model.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CommentedAt.Equal(comments[j].CommentedAt) {
			return comments[i].CommentedAt.After(comments[j].CommentedAt)
		}
		return comments[i].ID.String() < comments[j].ID.String()
	})
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	if _, ok := r.d.comments[comment.ID]; ok {
		return repository.ErrDuplicate
	}
	r.d.comments[comment.ID] = *cloneComment(comment)
	return nil
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	c, ok := r.d.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneComment(c), nil
}

func (r *commentRepo) collect(match func(c model.Comment) bool) []*model.Comment {
	var comments []*model.Comment
	for _, c := range r.d.comments {
		if match(c) {
			comments = append(comments, cloneComment(c))
		}
	}
	newestFirst(comments)
	return comments
}

func (r *commentRepo) FindByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.collect(func(c model.Comment) bool {
		return c.PostID == postID
	}), nil
}

func (r *commentRepo) FindTopLevel(ctx context.Context, postID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return window(r.collect(func(c model.Comment) bool {
		return c.PostID == postID && !c.IsReply
	}), skip, limit), nil
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return window(r.collect(func(c model.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), skip, limit), nil
}

func (r *commentRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Comment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	comments := make([]*model.Comment, 0, len(ids))
	for _, id := range lo.Uniq(ids) {
		if c, ok := r.d.comments[id]; ok {
			comments = append(comments, cloneComment(c))
		}
	}
	return comments, nil
}

func (r *commentRepo) update(ctx context.Context, id uuid.UUID, fn func(c *model.Comment)) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	c, ok := r.d.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&c)
	r.d.comments[id] = c
	return nil
}

func (r *commentRepo) PushChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return r.update(ctx, parentID, func(c *model.Comment) {
		c.Children = appendID(c.Children, childID)
	})
}

func (r *commentRepo) PullChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return r.update(ctx, parentID, func(c *model.Comment) {
		c.Children = lo.Without(c.Children, childID)
	})
}

func (r *commentRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	unlock := r.d.lock(ctx)
	defer unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := r.d.comments[id]; ok {
			delete(r.d.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *commentRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	for id, c := range r.d.comments {
		if c.PostID == postID {
			delete(r.d.comments, id)
		}
	}
	return nil
}
