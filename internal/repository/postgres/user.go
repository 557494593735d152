package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

const userColumns = `id, fullname, email, password, username, bio, profile_img,
	youtube, instagram, facebook, twitter, github, website,
	total_posts, total_reads, google_auth, blogs, joined_at`

type userRepo struct {
	conn
}

func newUserRepo(c conn) *userRepo {
	return &userRepo{conn: c}
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.PersonalInfo.Fullname,
		&u.PersonalInfo.Email,
		&u.PersonalInfo.Password,
		&u.PersonalInfo.Username,
		&u.PersonalInfo.Bio,
		&u.PersonalInfo.ProfileImg,
		&u.SocialLinks.Youtube,
		&u.SocialLinks.Instagram,
		&u.SocialLinks.Facebook,
		&u.SocialLinks.Twitter,
		&u.SocialLinks.Github,
		&u.SocialLinks.Website,
		&u.AccountInfo.TotalPosts,
		&u.AccountInfo.TotalReads,
		&u.GoogleAuth,
		&u.Blogs,
		&u.JoinedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user model.User) error {
	if user.Blogs == nil {
		user.Blogs = []uuid.UUID{}
	}

	_, err := r.q(ctx).Exec(
		ctx,
		"INSERT INTO users("+userColumns+") VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)",
		user.ID,
		user.PersonalInfo.Fullname,
		user.PersonalInfo.Email,
		user.PersonalInfo.Password,
		user.PersonalInfo.Username,
		user.PersonalInfo.Bio,
		user.PersonalInfo.ProfileImg,
		user.SocialLinks.Youtube,
		user.SocialLinks.Instagram,
		user.SocialLinks.Facebook,
		user.SocialLinks.Twitter,
		user.SocialLinks.Github,
		user.SocialLinks.Website,
		user.AccountInfo.TotalPosts,
		user.AccountInfo.TotalReads,
		user.GoogleAuth,
		user.Blogs,
		user.JoinedAt,
	)
	return mapErr(err)
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.q(ctx).QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.q(ctx).QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1)", email))
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.q(ctx).QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (r *userRepo) findMany(ctx context.Context, sql string, args ...any) ([]*model.User, error) {
	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	return r.findMany(ctx, "SELECT "+userColumns+" FROM users WHERE id = ANY($1)", ids)
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	return exists, err
}

func (r *userRepo) SearchByUsername(ctx context.Context, query string, limit int) ([]*model.User, error) {
	return r.findMany(
		ctx,
		"SELECT "+userColumns+" FROM users WHERE username ILIKE $1 ORDER BY username LIMIT $2",
		"%"+escapeLike(query)+"%",
		limit,
	)
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.execOne(ctx, "UPDATE users SET password = $2 WHERE id = $1", id, hash)
}

func (r *userRepo) UpdateProfileImg(ctx context.Context, id uuid.UUID, url string) error {
	return r.execOne(ctx, "UPDATE users SET profile_img = $2 WHERE id = $1", id, url)
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username string, bio string, links model.SocialLinks) error {
	return r.execOne(
		ctx,
		`UPDATE users SET username = $2, bio = $3,
		youtube = $4, instagram = $5, facebook = $6, twitter = $7, github = $8, website = $9
		WHERE id = $1`,
		id,
		username,
		bio,
		links.Youtube,
		links.Instagram,
		links.Facebook,
		links.Twitter,
		links.Github,
		links.Website,
	)
}

func (r *userRepo) PushPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE users SET blogs = array_append(blogs, $2) WHERE id = $1", id, postID)
}

func (r *userRepo) PullPost(ctx context.Context, id uuid.UUID, postID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE users SET blogs = array_remove(blogs, $2) WHERE id = $1", id, postID)
}

func (r *userRepo) IncrTotalPosts(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.execOne(ctx, "UPDATE users SET total_posts = total_posts + $2 WHERE id = $1", id, delta)
}

func (r *userRepo) IncrTotalReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.execOne(ctx, "UPDATE users SET total_reads = total_reads + $2 WHERE id = $1", id, delta)
}
