package service

import (
	"context"

	"github.com/linkboard-dev/linkboard/internal/config"
	"github.com/linkboard-dev/linkboard/internal/domain"
	"github.com/linkboard-dev/linkboard/internal/logger"
)

type RoleService interface {
	Derive(ctx context.Context, identity domain.Identity) domain.RoleSet
}

// RoleLedger is the slice of the invite ledger the role engine needs.
type RoleLedger interface {
	CountInvites(ctx context.Context) (int, error)
	IssueBatch(ctx context.Context, ownerEmail domain.Email, count int) error
	InvitesOf(ctx context.Context, email domain.Email) ([]domain.Invite, error)
	InvitesUsedBy(ctx context.Context, email domain.Email) ([]domain.Invite, error)
	ConsumeInvite(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error
}

type Roles struct {
	ledger    RoleLedger
	lists     config.AccessLists
	batchSize int
}

func NewRoles(ledger RoleLedger, lists config.AccessLists, batchSize int) RoleService {
	if batchSize <= 0 {
		batchSize = config.DefaultInviteBatchSize
	}
	return &Roles{ledger: ledger, lists: lists, batchSize: batchSize}
}

// Derive computes the role set for one request. External identities never
// touch the ledger. For internal identities the ledger may be written as a
// side effect: the very first member bootstraps itself (fresh batch + self
// consume), and a freshly invited member is replenished with a batch of its
// own. Ledger failures degrade to the minimal safe role set instead of
// failing the request.
func (r *Roles) Derive(ctx context.Context, identity domain.Identity) domain.RoleSet {
	if !identity.Internal() {
		return domain.RoleSet{ExternalUser: true}
	}

	roles := domain.RoleSet{InternalUser: true}

	invited, err := r.deriveInvited(ctx, identity.Email)
	if err != nil {
		logger.Log.Error("role derivation degraded, ledger unavailable", "email", identity.Email, "error", err)
		return roles
	}
	roles.Invited = invited

	roles.Blocked = r.lists.IsBlocked(identity.Email)
	roles.Moderator = r.lists.IsModerator(identity.Email)
	return roles
}

func (r *Roles) deriveInvited(ctx context.Context, email domain.Email) (bool, error) {
	total, err := r.ledger.CountInvites(ctx)
	if err != nil {
		return false, err
	}

	if total == 0 {
		return r.bootstrap(ctx, email)
	}

	usedInvites, err := r.ledger.InvitesUsedBy(ctx, email)
	if err != nil {
		return false, err
	}
	if len(usedInvites) == 0 {
		return false, nil
	}

	// An invited member becomes an inviter: issue its own batch once.
	ownInvites, err := r.ledger.InvitesOf(ctx, email)
	if err != nil {
		return false, err
	}
	if len(ownInvites) == 0 {
		if err := r.ledger.IssueBatch(ctx, email, r.batchSize); err != nil {
			return false, err
		}
		logger.Log.Info("issued replenishment invite batch", "email", email, "count", r.batchSize)
	}
	return true, nil
}

// bootstrap resolves the empty-ledger chicken-and-egg problem: the first
// internal identity issues itself a batch and consumes one of its own
// invites.
func (r *Roles) bootstrap(ctx context.Context, email domain.Email) (bool, error) {
	if err := r.ledger.IssueBatch(ctx, email, r.batchSize); err != nil {
		return false, err
	}
	invites, err := r.ledger.InvitesOf(ctx, email)
	if err != nil {
		return false, err
	}
	if len(invites) == 0 {
		// Issued above; an empty batch here means the ledger lost the write.
		return false, nil
	}
	if err := r.ledger.ConsumeInvite(ctx, invites[0].Id, email); err != nil {
		return false, err
	}
	logger.Log.Info("bootstrapped invite ledger", "email", email, "count", r.batchSize)
	return true, nil
}
