package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

// IssueBatch inserts count fresh invites attributed to ownerEmail in a single
// transaction, so a batch is either fully issued or not at all.
func (s *Storage) IssueBatch(ctx context.Context, ownerEmail domain.Email, count int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	issued := time.Now().UTC()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT INTO invites (uuid, issued_to_email, used_by_email, date_issued) VALUES ($1, $2, '', $3)")
		if err != nil {
			return fmt.Errorf("failed to prepare invite insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < count; i++ {
			if _, err := stmt.Exec(uuid.New().String(), ownerEmail, issued); err != nil {
				return fmt.Errorf("failed to insert invite: %w", err)
			}
		}
		return nil
	})
}

// CountInvites returns the total number of invites ever issued.
func (s *Storage) CountInvites(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invites").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invites: %w", err)
	}
	return count, nil
}

// InvitesOf returns every invite belonging to email's batches, oldest first.
func (s *Storage) InvitesOf(ctx context.Context, email domain.Email) ([]domain.Invite, error) {
	return s.invitesWhere(ctx, "issued_to_email = $1", email)
}

// InvitesUsedBy returns the invites consumed by email (zero or one in
// practice, but the ledger does not enforce that).
func (s *Storage) InvitesUsedBy(ctx context.Context, email domain.Email) ([]domain.Invite, error) {
	return s.invitesWhere(ctx, "used_by_email = $1", email)
}

func (s *Storage) invitesWhere(ctx context.Context, condition string, arg any) ([]domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
	SELECT uuid, issued_to_email, used_by_email, date_issued, date_used
	FROM invites
	WHERE %s
	ORDER BY date_issued, seq`, condition)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query invites: %w", err)
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		var inv domain.Invite
		var used sql.NullTime
		if err := rows.Scan(&inv.Id, &inv.IssuedToEmail, &inv.UsedByEmail, &inv.DateIssued, &used); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		if used.Valid {
			inv.DateUsed = used.Time
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// ConsumeInvite marks the invite as used by consumerEmail, exactly once.
// The row is locked for the read-check, and the update itself re-checks
// used_by_email, so two racing consumers cannot both land a write: the loser
// observes AlreadyUsed.
func (s *Storage) ConsumeInvite(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var usedBy string
		err := tx.QueryRow("SELECT used_by_email FROM invites WHERE uuid = $1 FOR UPDATE", id).Scan(&usedBy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Invite not found")
			}
			return fmt.Errorf("failed to query invite: %w", err)
		}
		if usedBy != "" {
			return internal_errors.AlreadyUsed("Invite already used")
		}

		res, err := tx.Exec(`
		UPDATE invites SET used_by_email = $2, date_used = $3
		WHERE uuid = $1 AND used_by_email = ''`,
			id, consumerEmail, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to consume invite: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read consume result: %w", err)
		}
		if affected == 0 {
			return internal_errors.AlreadyUsed("Invite already used")
		}
		return nil
	})
}
