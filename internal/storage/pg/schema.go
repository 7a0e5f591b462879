package pg

import (
	"context"
	"database/sql"
)

// One-time schema initialization at process startup. The seq columns give a
// stable insertion-order tie break for equal timestamps.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS invites (
		uuid TEXT PRIMARY KEY,
		issued_to_email TEXT NOT NULL,
		used_by_email TEXT NOT NULL DEFAULT '',
		date_issued TIMESTAMPTZ NOT NULL,
		date_used TIMESTAMPTZ,
		seq BIGSERIAL
	)`,
	`CREATE INDEX IF NOT EXISTS invites_issued_to_email_idx ON invites (issued_to_email)`,
	`CREATE INDEX IF NOT EXISTS invites_used_by_email_idx ON invites (used_by_email)`,
	`CREATE TABLE IF NOT EXISTS posts (
		uuid TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		author_email TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		seq BIGSERIAL
	)`,
	`CREATE INDEX IF NOT EXISTS posts_date_idx ON posts (date DESC, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS statistics (
		uuid TEXT PRIMARY KEY,
		actor_email TEXT NOT NULL,
		action TEXT NOT NULL,
		subject_post_uuid TEXT NOT NULL,
		subject_content TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS statistics_subject_post_uuid_idx ON statistics (subject_post_uuid)`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
