package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

type PostService interface {
	Create(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error)
	Delete(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error
}

type PostStorage interface {
	CreatePost(ctx context.Context, text string, authorEmail domain.Email) (domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId, authorEmail domain.Email) error
	DeletePostAny(ctx context.Context, id domain.PostId) error
}

type Post struct {
	storage  PostStorage
	sanitize *bluemonday.Policy
}

func NewPost(storage PostStorage) PostService {
	// Snippets are plain text with URLs and hashtags; any markup is stripped
	// before storage.
	return &Post{storage: storage, sanitize: bluemonday.StrictPolicy()}
}

func (p *Post) Create(ctx context.Context, authorEmail domain.Email, text string) (domain.Post, error) {
	if text == "" {
		return domain.Post{}, internal_errors.Validation("Please enter a text")
	}
	clean := strings.TrimSpace(p.sanitize.Sanitize(text))
	if clean == "" {
		return domain.Post{}, internal_errors.Validation("Please enter a text")
	}
	return p.storage.CreatePost(ctx, clean, authorEmail)
}

// Delete removes at most the single row scoped to (id, author); moderators
// may delete any post.
func (p *Post) Delete(ctx context.Context, id domain.PostId, requesterEmail domain.Email, roles domain.RoleSet) error {
	if id == "" {
		return internal_errors.Validation("Post id is required")
	}
	if roles.Moderator && !roles.Blocked {
		return p.storage.DeletePostAny(ctx, id)
	}
	return p.storage.DeletePost(ctx, id, requesterEmail)
}
