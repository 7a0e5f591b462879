package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

// CreatePost appends a post and returns it with generated id and timestamp.
func (s *Storage) CreatePost(ctx context.Context, text string, authorEmail domain.Email) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	post := domain.Post{
		Id:          uuid.New().String(),
		Text:        text,
		AuthorEmail: authorEmail,
		Date:        time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (uuid, text, author_email, date) VALUES ($1, $2, $3, $4)",
		post.Id, post.Text, post.AuthorEmail, post.Date)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

// DeletePost removes a single post scoped to (id, author_email).
func (s *Storage) DeletePost(ctx context.Context, id domain.PostId, authorEmail domain.Email) error {
	return s.deleteWhere(ctx, "uuid = $1 AND author_email = $2", id, authorEmail)
}

// DeletePostAny removes a post regardless of author. Moderator path only.
func (s *Storage) DeletePostAny(ctx context.Context, id domain.PostId) error {
	return s.deleteWhere(ctx, "uuid = $1", id)
}

func (s *Storage) deleteWhere(ctx context.Context, condition string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE "+condition, args...)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

// LatestPosts returns up to limit posts, most recent first, ties broken by
// insertion order. A non-empty hashtag restricts to posts whose text contains
// the literal substring "#<hashtag>" (case-sensitive, no tokenization).
func (s *Storage) LatestPosts(ctx context.Context, limit int, hashtag string) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// position() gives a literal substring match without LIKE escaping concerns.
	rows, err := s.db.QueryContext(ctx, `
	SELECT uuid, text, author_email, date
	FROM posts
	WHERE $2 = '' OR position('#' || $2 in text) > 0
	ORDER BY date DESC, seq DESC
	LIMIT $1`, limit, hashtag)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Text, &p.AuthorEmail, &p.Date); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
