package service

import (
	"context"

	"github.com/linkboard-dev/linkboard/internal/domain"
)

type FeedService interface {
	Latest(ctx context.Context, viewer domain.Identity, roles domain.RoleSet, limit int, hashtag string) ([]domain.AnnotatedPost, error)
}

type FeedPostStorage interface {
	LatestPosts(ctx context.Context, limit int, hashtag string) ([]domain.Post, error)
}

type FeedStatisticStorage interface {
	StatisticsForPost(ctx context.Context, postId domain.PostId) ([]domain.StatisticCount, error)
}

// Feed joins the post store with the statistics store to produce the
// viewer-scoped, anonymized feed. It is a pure query given a role set;
// whether the viewer may see any posts at all is the caller's decision.
type Feed struct {
	posts      FeedPostStorage
	statistics FeedStatisticStorage
}

func NewFeed(posts FeedPostStorage, statistics FeedStatisticStorage) FeedService {
	return &Feed{posts: posts, statistics: statistics}
}

func (f *Feed) Latest(ctx context.Context, viewer domain.Identity, roles domain.RoleSet, limit int, hashtag string) ([]domain.AnnotatedPost, error) {
	if limit <= 0 {
		return []domain.AnnotatedPost{}, nil
	}

	posts, err := f.posts.LatestPosts(ctx, limit, hashtag)
	if err != nil {
		return nil, err
	}

	annotated := make([]domain.AnnotatedPost, 0, len(posts))
	for _, post := range posts {
		stats, err := f.statistics.StatisticsForPost(ctx, post.Id)
		if err != nil {
			return nil, err
		}
		if stats == nil {
			stats = []domain.StatisticCount{}
		}

		// AuthorEmail stops here: AnnotatedPost has no author field.
		annotated = append(annotated, domain.AnnotatedPost{
			Id:         post.Id,
			Text:       post.Text,
			Date:       post.Date,
			Statistics: stats,
			Permissions: domain.PostPermissions{
				CanDelete: canDelete(viewer, roles, post),
			},
		})
	}
	return annotated, nil
}

// canDelete mirrors the delete authorization: moderators may delete any post,
// authors their own, and blocked always loses.
func canDelete(viewer domain.Identity, roles domain.RoleSet, post domain.Post) bool {
	if roles.Blocked {
		return false
	}
	if roles.Moderator {
		return true
	}
	return viewer.Email != "" && viewer.Email == post.AuthorEmail && roles.InternalUser && roles.Invited
}
