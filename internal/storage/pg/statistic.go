package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkboard-dev/linkboard/internal/domain"
)

// RecordStatistic appends one engagement event. There is no update or delete
// counterpart; the statistics table is append-only.
func (s *Storage) RecordStatistic(ctx context.Context, actorEmail domain.Email, action string, postId domain.PostId, content string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO statistics (uuid, actor_email, action, subject_post_uuid, subject_content, date)
	VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), actorEmail, action, postId, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert statistic: %w", err)
	}
	return nil
}

// StatisticsForPost groups the post's events by subject content, yielding
// per-element engagement counts.
func (s *Storage) StatisticsForPost(ctx context.Context, postId domain.PostId) ([]domain.StatisticCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
	SELECT subject_content, COUNT(*)
	FROM statistics
	WHERE subject_post_uuid = $1
	GROUP BY subject_content
	ORDER BY COUNT(*) DESC, subject_content`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	var counts []domain.StatisticCount
	for rows.Next() {
		var c domain.StatisticCount
		if err := rows.Scan(&c.Content, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan statistic count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
