package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

const postColumns = `id, blog_id, title, banner, des, content, tags, author_id,
	total_likes, total_comments, total_reads, total_parent_comments,
	comments, draft, published_at, updated_at`

type postRepo struct {
	conn
}

func newPostRepo(c conn) *postRepo {
	return &postRepo{conn: c}
}

func scanPost(row scanner) (*model.Post, error) {
	var (
		p       model.Post
		content []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.BlogID,
		&p.Title,
		&p.Banner,
		&p.Des,
		&content,
		&p.Tags,
		&p.AuthorID,
		&p.Activity.TotalLikes,
		&p.Activity.TotalComments,
		&p.Activity.TotalReads,
		&p.Activity.TotalParentComments,
		&p.Comments,
		&p.Draft,
		&p.PublishedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, mapErr(err)
	}

	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, err
	}

	return &p, nil
}

func postWhere(f repository.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Draft != nil {
		add("draft = $%d", *f.Draft)
	}
	if f.AuthorID != nil {
		add("author_id = $%d", *f.AuthorID)
	}
	if f.Tag != "" {
		add("$%d = ANY(tags)", f.Tag)
	}
	if f.TitleQuery != "" {
		add("title ILIKE $%d", "%"+escapeLike(f.TitleQuery)+"%")
	}
	if f.ExcludeBlogID != "" {
		add("blog_id <> $%d", f.ExcludeBlogID)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *postRepo) Create(ctx context.Context, post model.Post) error {
	content, err := json.Marshal(post.Content)
	if err != nil {
		return err
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Comments == nil {
		post.Comments = []uuid.UUID{}
	}

	_, err = r.q(ctx).Exec(
		ctx,
		"INSERT INTO posts("+postColumns+") VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)",
		post.ID,
		post.BlogID,
		post.Title,
		post.Banner,
		post.Des,
		content,
		post.Tags,
		post.AuthorID,
		post.Activity.TotalLikes,
		post.Activity.TotalComments,
		post.Activity.TotalReads,
		post.Activity.TotalParentComments,
		post.Comments,
		post.Draft,
		post.PublishedAt,
		post.UpdatedAt,
	)
	return mapErr(err)
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	content, err := json.Marshal(post.Content)
	if err != nil {
		return err
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	return r.execOne(
		ctx,
		`UPDATE posts SET title = $2, banner = $3, des = $4, content = $5, tags = $6,
		draft = $7, published_at = $8, updated_at = $9
		WHERE id = $1`,
		post.ID,
		post.Title,
		post.Banner,
		post.Des,
		content,
		post.Tags,
		post.Draft,
		post.PublishedAt,
		post.UpdatedAt,
	)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return scanPost(r.q(ctx).QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id))
}

func (r *postRepo) FindByBlogID(ctx context.Context, blogID string) (*model.Post, error) {
	return scanPost(r.q(ctx).QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE blog_id = $1", blogID))
}

func (r *postRepo) Find(ctx context.Context, filter repository.PostFilter, sort repository.PostSort, skip int, limit int) ([]*model.Post, error) {
	where, args := postWhere(filter)

	order := " ORDER BY published_at DESC, id"
	if sort == repository.SortTrending {
		order = " ORDER BY total_reads DESC, total_likes DESC, published_at DESC, id"
	}

	args = append(args, limit, skip)
	query := fmt.Sprintf("SELECT %s FROM posts%s%s LIMIT $%d OFFSET $%d", postColumns, where, order, len(args)-1, len(args))

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	where, args := postWhere(filter)

	var count int64
	err := r.q(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&count)
	return count, err
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "DELETE FROM posts WHERE id = $1", id)
}

func (r *postRepo) IncrReads(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.execOne(ctx, "UPDATE posts SET total_reads = total_reads + $2 WHERE id = $1", id, delta)
}

func (r *postRepo) IncrLikes(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.execOne(ctx, "UPDATE posts SET total_likes = total_likes + $2 WHERE id = $1", id, delta)
}

func (r *postRepo) IncrComments(ctx context.Context, id uuid.UUID, total int64, parents int64) error {
	return r.execOne(
		ctx,
		"UPDATE posts SET total_comments = total_comments + $2, total_parent_comments = total_parent_comments + $3 WHERE id = $1",
		id,
		total,
		parents,
	)
}

func (r *postRepo) PushComment(ctx context.Context, id uuid.UUID, commentID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE posts SET comments = array_append(comments, $2) WHERE id = $1", id, commentID)
}

func (r *postRepo) PullComments(ctx context.Context, id uuid.UUID, commentIDs []uuid.UUID) error {
	return r.execOne(
		ctx,
		"UPDATE posts SET comments = ARRAY(SELECT c FROM unnest(comments) AS c WHERE c <> ALL($2::uuid[])) WHERE id = $1",
		id,
		commentIDs,
	)
}
