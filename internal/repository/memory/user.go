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

type userRepo struct {
	d *db
}

func cloneUser(u model.User) *model.User {
	u.Blogs = slices.Clone(u.Blogs)
	return &u
}

func (r *userRepo) Create(ctx context.Context, user model.User) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	for _, u := range r.d.users {
		if strings.EqualFold(u.PersonalInfo.Email, user.PersonalInfo.Email) || u.PersonalInfo.Username == user.PersonalInfo.Username {
			return repository.ErrDuplicate
		}
	}

	r.d.users[user.ID] = *cloneUser(user)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	u, ok := r.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) find(match func(u model.User) bool) (*model.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, u := range r.d.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool {
		return strings.EqualFold(u.PersonalInfo.Email, email)
	})
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u model.User) bool {
		return u.PersonalInfo.Username == username
	})
}

func (r *userRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	users := make([]*model.User, 0, len(ids))
	for _, id := range lo.Uniq(ids) {
		if u, ok := r.d.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepo) SearchByUsername(ctx context.Context, query string, limit int) ([]*model.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	query = strings.ToLower(query)
	var users []*model.User
	for _, u := range r.d.users {
		if strings.Contains(strings.ToLower(u.PersonalInfo.Username), query) {
			users = append(users, cloneUser(u))
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].PersonalInfo.Username < users[j].PersonalInfo.Username
	})

	return window(users, 0, limit), nil
}

func (r *userRepo) update(ctx context.Context, id uuid.UUID, fn func(u *model.User) error) error {
	unlock := r.d.lock(ctx)
	defer unlock()

	u, ok := r.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	r.d.users[id] = u
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.PersonalInfo.Password = hash
		return nil
	})
}

func (r *userRepo) UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.PersonalInfo.ProfileImg = url
		return nil
	})
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username string, bio string, links model.SocialLinks) error {
	return r.update(ctx, id, func(u *model.User) error {
		for otherID, other := range r.d.users {
			if otherID != id && other.PersonalInfo.Username == username {
				return repository.ErrDuplicate
			}
		}
		u.PersonalInfo.Username = username
		u.PersonalInfo.Bio = bio
		u.SocialLinks = links
		return nil
	})
}

func (r *userRepo) PushPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.Blogs = appendID(u.Blogs, postID)
		return nil
	})
}

func (r *userRepo) PullPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.Blogs = lo.Without(u.Blogs, postID)
		return nil
	})
}

func (r *userRepo) IncrTotalPosts(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.AccountInfo.TotalPosts += delta
		return nil
	})
}

func (r *userRepo) IncrTotalReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.update(ctx, id, func(u *model.User) error {
		u.AccountInfo.TotalReads += delta
		return nil
	})
}
