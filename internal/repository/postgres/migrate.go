package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		fullname TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL UNIQUE,
		bio TEXT NOT NULL DEFAULT '',
		profile_img TEXT NOT NULL DEFAULT '',
		youtube TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		github TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		total_posts BIGINT NOT NULL DEFAULT 0,
		total_reads BIGINT NOT NULL DEFAULT 0,
		google_auth BOOLEAN NOT NULL DEFAULT FALSE,
		blogs UUID[] NOT NULL DEFAULT '{}',
		joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		blog_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		banner TEXT NOT NULL DEFAULT '',
		des TEXT NOT NULL DEFAULT '',
		content JSONB NOT NULL DEFAULT '{}',
		tags TEXT[] NOT NULL DEFAULT '{}',
		author_id UUID NOT NULL REFERENCES users(id),
		total_likes BIGINT NOT NULL DEFAULT 0,
		total_comments BIGINT NOT NULL DEFAULT 0,
		total_reads BIGINT NOT NULL DEFAULT 0,
		total_parent_comments BIGINT NOT NULL DEFAULT 0,
		comments UUID[] NOT NULL DEFAULT '{}',
		draft BOOLEAN NOT NULL DEFAULT FALSE,
		published_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS posts_draft_published_at_idx ON posts(draft, published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_tags_idx ON posts USING GIN(tags)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		post_author_id UUID NOT NULL,
		comment TEXT NOT NULL,
		children UUID[] NOT NULL DEFAULT '{}',
		author_id UUID NOT NULL,
		is_reply BOOLEAN NOT NULL DEFAULT FALSE,
		parent_id UUID,
		commented_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments(post_id, commented_at DESC)`,
	`CREATE INDEX IF NOT EXISTS comments_parent_id_idx ON comments(parent_id, commented_at DESC)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL,
		post_id UUID NOT NULL,
		recipient_id UUID NOT NULL,
		actor_id UUID NOT NULL,
		comment_id UUID,
		reply_id UUID,
		replied_on_comment_id UUID,
		seen BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS notifications_like_uniq ON notifications(post_id, actor_id) WHERE type = 'like'`,
	`CREATE INDEX IF NOT EXISTS notifications_recipient_idx ON notifications(recipient_id, created_at DESC)`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
