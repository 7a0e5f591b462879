package service

import (
	"context"

	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	"github.com/linkboard-dev/linkboard/internal/logger"
)

type StatisticService interface {
	Record(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error
}

type StatisticStorage interface {
	RecordStatistic(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error
}

type Statistic struct {
	storage StatisticStorage
}

func NewStatistic(storage StatisticStorage) StatisticService {
	return &Statistic{storage}
}

// Record appends one engagement event. Empty action or post id writes
// nothing; the rejection is logged and surfaced as a validation error.
func (s *Statistic) Record(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error {
	if postId == "" {
		logger.Log.Warn("statistic rejected, no post uuid", "actor", actorEmail, "action", action)
		return internal_errors.Validation("No post uuid")
	}
	if action == "" {
		logger.Log.Warn("statistic rejected, no action", "actor", actorEmail, "post", postId)
		return internal_errors.Validation("No action")
	}
	return s.storage.RecordStatistic(ctx, actorEmail, action, postId, content)
}
