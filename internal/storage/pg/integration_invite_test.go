package pg

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
)

func TestIssueBatch(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	require.NoError(t, storage.IssueBatch(ctx, "owner@x.org", 5))

	count, err := storage.CountInvites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	invites, err := storage.InvitesOf(ctx, "owner@x.org")
	require.NoError(t, err)
	require.Len(t, invites, 5)
	for _, inv := range invites {
		assert.Equal(t, "owner@x.org", inv.IssuedToEmail)
		assert.False(t, inv.Used())
		assert.True(t, inv.DateUsed.IsZero())
	}

	// All invites in one batch share the issuance timestamp, so ordering
	// must fall back to insertion order and stay stable across reads.
	again, err := storage.InvitesOf(ctx, "owner@x.org")
	require.NoError(t, err)
	for i := range invites {
		assert.Equal(t, invites[i].Id, again[i].Id)
	}
}

func TestInvitesOfScopedToOwner(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	require.NoError(t, storage.IssueBatch(ctx, "a@x.org", 2))
	require.NoError(t, storage.IssueBatch(ctx, "b@x.org", 3))

	invites, err := storage.InvitesOf(ctx, "a@x.org")
	require.NoError(t, err)
	assert.Len(t, invites, 2)

	invites, err = storage.InvitesOf(ctx, "nobody@x.org")
	require.NoError(t, err)
	assert.Empty(t, invites)
}

func TestConsumeInvite(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	require.NoError(t, storage.IssueBatch(ctx, "owner@x.org", 1))
	invites, err := storage.InvitesOf(ctx, "owner@x.org")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	id := invites[0].Id

	t.Run("first consume succeeds", func(t *testing.T) {
		require.NoError(t, storage.ConsumeInvite(ctx, id, "friend@x.org"))

		used, err := storage.InvitesUsedBy(ctx, "friend@x.org")
		require.NoError(t, err)
		require.Len(t, used, 1)
		assert.Equal(t, id, used[0].Id)
		assert.True(t, used[0].Used())
		assert.WithinDuration(t, time.Now().UTC(), used[0].DateUsed, time.Minute)
	})

	t.Run("second consume reports already used", func(t *testing.T) {
		err := storage.ConsumeInvite(ctx, id, "other@x.org")
		require.Error(t, err)
		assert.True(t, internal_errors.IsAlreadyUsed(err))

		// The original consumer keeps the invite.
		used, err := storage.InvitesUsedBy(ctx, "other@x.org")
		require.NoError(t, err)
		assert.Empty(t, used)
	})

	t.Run("unknown invite reports not found", func(t *testing.T) {
		err := storage.ConsumeInvite(ctx, "00000000-0000-0000-0000-000000000000", "friend@x.org")
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestConsumeInviteConcurrent(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	require.NoError(t, storage.IssueBatch(ctx, "owner@x.org", 1))
	invites, err := storage.InvitesOf(ctx, "owner@x.org")
	require.NoError(t, err)
	id := invites[0].Id

	consumers := []string{"c1@x.org", "c2@x.org", "c3@x.org", "c4@x.org", "c5@x.org"}
	errs := make([]error, len(consumers))

	var wg sync.WaitGroup
	for i, email := range consumers {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			errs[i] = storage.ConsumeInvite(ctx, id, email)
		}(i, email)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, internal_errors.IsAlreadyUsed(err))
		}
	}
	assert.Equal(t, 1, winners, "exactly one racing consumer may win")

	// The stored consumer must be one of the racers.
	var usedBy string
	require.NoError(t, storage.db.QueryRow("SELECT used_by_email FROM invites WHERE uuid = $1", id).Scan(&usedBy))
	assert.Contains(t, consumers, usedBy)
}
