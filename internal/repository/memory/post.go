package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type postRepo struct {
	d *db
}

func clonePost(p model.Post) *model.Post {
	p.Tags = slices.Clone(p.Tags)
	p.Comments = slices.Clone(p.Comments)
	p.Content.Blocks = slices.Clone(p.Content.Blocks)
	return &p
}

func (r *postRepo) Create(ctx context.Context, post model.Post) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	for _, p := range r.d.posts {
		if p.ID == post.ID || p.BlogID == post.BlogID {
			return repository.ErrDuplicate
		}
	}

	r.d.posts[post.ID] = *clonePost(post)
	return nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	return r.update(ctx, post.ID, func(p *model.Post) {
		p.Title = post.Title
		p.Banner = post.Banner
		p.Des = post.Des
		p.Content = post.Content
		p.Content.Blocks = slices.Clone(post.Content.Blocks)
		p.Tags = slices.Clone(post.Tags)
		p.Draft = post.Draft
		p.PublishedAt = post.PublishedAt
		p.UpdatedAt = post.UpdatedAt
	})
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	p, ok := r.d.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *postRepo) FindByBlogID(ctx context.Context, blogID string) (*model.Post, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, p := range r.d.posts {
		if p.BlogID == blogID {
			return clonePost(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func matchPost(p model.Post, f repository.PostFilter) bool {
	if f.Draft != nil && p.Draft != *f.Draft {
		return false
	}
	if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
		return false
	}
	if f.Tag != "" && !lo.Contains(p.Tags, f.Tag) {
		return false
	}
	if f.TitleQuery != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.TitleQuery)) {
		return false
	}
	if f.ExcludeBlogID != "" && p.BlogID == f.ExcludeBlogID {
		return false
	}
	return true
}

func (r *postRepo) filter(f repository.PostFilter) []*model.Post {
	var posts []*model.Post
	for _, p := range r.d.posts {
		if matchPost(p, f) {
			posts = append(posts, clonePost(p))
		}
	}
	return posts
}

func (r *postRepo) Find(ctx context.Context, filter repository.PostFilter, order repository.PostSort, skip int, limit int) ([]*model.Post, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	posts := r.filter(filter)
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if order == repository.SortTrending {
			if a.Activity.TotalReads != b.Activity.TotalReads {
				return a.Activity.TotalReads > b.Activity.TotalReads
			}
			if a.Activity.TotalLikes != b.Activity.TotalLikes {
				return a.Activity.TotalLikes > b.Activity.TotalLikes
			}
		}
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	return window(posts, skip, limit), nil
}

func (r *postRepo) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return int64(len(r.filter(filter))), nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	if _, ok := r.d.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.posts, id)
	return nil
}

func (r *postRepo) update(ctx context.Context, id uuid.UUID, fn func(p *model.Post)) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	p, ok := r.d.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&p)
	r.d.posts[id] = p
	return nil
}

func (r *postRepo) IncrReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.update(ctx, id, func(p *model.Post) {
		p.Activity.TotalReads += delta
	})
}

func (r *postRepo) IncrLikes(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.update(ctx, id, func(p *model.Post) {
		p.Activity.TotalLikes += delta
	})
}

func (r *postRepo) IncrComments(ctx context.Context, id uuid.UUID, total int64, parents int64) error {
	return r.update(ctx, id, func(p *model.Post) {
		p.Activity.TotalComments += total
		p.Activity.TotalParentComments += parents
	})
}

func (r *postRepo) PushComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID) error {
	return r.update(ctx, id, func(p *model.Post) {
		p.Comments = appendID(p.Comments, commentID)
	})
}

func (r *postRepo) PullComments(ctx context.Context, id uuid.UUID, commentIDs []uuid.UUID) error {
	return r.update(ctx, id, func(p *model.Post) {
		p.Comments = lo.Without(p.Comments, commentIDs...)
	})
}
