package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
)

const commentColumns = "id, post_id, post_author_id, comment, children, author_id, is_reply, parent_id, commented_at"

type commentRepo struct {
	conn
}

func newCommentRepo(c conn) *commentRepo {
	return &commentRepo{conn: c}
}

func scanComment(row scanner) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.PostAuthorID,
		&c.Comment,
		&c.Children,
		&c.AuthorID,
		&c.IsReply,
		&c.ParentID,
		&c.CommentedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) error {
	if comment.Children == nil {
		comment.Children = []uuid.UUID{}
	}

	_, err := r.q(ctx).Exec(
		ctx,
		"INSERT INTO comments("+commentColumns+") VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		comment.ID,
		comment.PostID,
		comment.PostAuthorID,
		comment.Comment,
		comment.Children,
		comment.AuthorID,
		comment.IsReply,
		comment.ParentID,
		comment.CommentedAt,
	)
	return mapErr(err)
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return scanComment(r.q(ctx).QueryRow(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id))
}

func (r *commentRepo) findMany(ctx context.Context, sql string, args ...any) ([]*model.Comment, error) {
	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) FindByPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	return r.findMany(ctx, "SELECT "+commentColumns+" FROM comments WHERE post_id = $1 ORDER BY commented_at DESC, id", postID)
}

func (r *commentRepo) FindTopLevel(ctx context.Context, postID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	return r.findMany(
		ctx,
		`SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1 AND NOT is_reply
		ORDER BY commented_at DESC, id
		LIMIT $2 OFFSET $3`,
		postID,
		limit,
		skip,
	)
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID uuid.UUID, skip int, limit int) ([]*model.Comment, error) {
	return r.findMany(
		ctx,
		`SELECT `+commentColumns+` FROM comments
		WHERE parent_id = $1
		ORDER BY commented_at DESC, id
		LIMIT $2 OFFSET $3`,
		parentID,
		limit,
		skip,
	)
}

func (r *commentRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Comment, error) {
	return r.findMany(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ANY($1)", ids)
}

func (r *commentRepo) PushChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE comments SET children = array_append(children, $2) WHERE id = $1", parentID, childID)
}

func (r *commentRepo) PullChild(ctx context.Context, parentID uuid.UUID, childID uuid.UUID) error {
	return r.execOne(ctx, "UPDATE comments SET children = array_remove(children, $2) WHERE id = $1", parentID, childID)
}

func (r *commentRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, "DELETE FROM comments WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *commentRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, "DELETE FROM comments WHERE post_id = $1", postID)
	return err
}
