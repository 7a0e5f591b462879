package service

import (
	"context"

	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

type InviteService interface {
	Mine(ctx context.Context, email domain.Email) ([]domain.Invite, error)
	Consume(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error
}

type InviteStorage interface {
	InvitesOf(ctx context.Context, email domain.Email) ([]domain.Invite, error)
	ConsumeInvite(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error
}

type Invite struct {
	storage InviteStorage
}

func NewInvite(storage InviteStorage) InviteService {
	return &Invite{storage}
}

// Mine lists the caller's own batch, issue order.
func (i *Invite) Mine(ctx context.Context, email domain.Email) ([]domain.Invite, error) {
	return i.storage.InvitesOf(ctx, email)
}

// Consume redeems an invite on the caller's behalf. The storage layer
// guarantees exactly-once; a racing loser gets AlreadyUsed.
func (i *Invite) Consume(ctx context.Context, id domain.InviteId, consumerEmail domain.Email) error {
	if id == "" {
		return internal_errors.Validation("Invite id is required")
	}
	return i.storage.ConsumeInvite(ctx, id, consumerEmail)
}
