package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanupRemovesExpiredTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	org := seedOrg(t, st, "acme", owner)

	now := time.Now().UTC()
	for i, exp := range []time.Time{now.Add(-time.Hour), now.Add(-time.Minute), now.Add(time.Hour)} {
		require.NoError(t, st.InviteTokens().CreateInviteToken(ctx, domain.InviteToken{
			ID:             idx.New().String(),
			Token:          "tok-" + string(rune('a'+i)),
			OrganizationID: org.ID,
			Kind:           domain.InviteKindLink,
			ExpiresAt:      exp,
		}))
	}

	var logs bytes.Buffer
	hk := NewHousekeepingService(st, slog.New(slog.NewTextHandler(&logs, nil)), time.Hour)
	require.EqualValues(t, 2, hk.Cleanup(ctx))
	require.EqualValues(t, 0, hk.Cleanup(ctx))

	_, err := st.InviteTokens().GetInviteTokenByToken(ctx, "tok-c")
	require.NoError(t, err)
	require.Contains(t, logs.String(), "housekeeping cleanup completed")
}

func TestHousekeepingKeepsTokensWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	org := seedOrg(t, st, "acme", owner)
	past := time.Now().UTC().Add(-time.Hour)

	for _, tok := range []domain.InviteToken{
		{ID: idx.New().String(), Token: "old-link", OrganizationID: org.ID, Kind: domain.InviteKindLink, ExpiresAt: past},
		{ID: idx.New().String(), Token: "old-targeted", OrganizationID: org.ID, Kind: domain.InviteKindTargeted, ExpiresAt: past},
	} {
		require.NoError(t, st.InviteTokens().CreateInviteToken(ctx, tok))
	}

	linkPolicy := InvitePolicy{EnforceExpiry: false}
	hk := NewHousekeepingService(st, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), time.Hour)
	hk.LinkPolicy = linkPolicy
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	_, err := st.InviteTokens().GetInviteTokenByToken(ctx, "old-targeted")
	require.Error(t, err)

	// The expired link survives and still lets a user join
	invites := newInviteService(t, st, mail.NewMemoryQueue(1))
	invites.LinkPolicy = linkPolicy
	joiner := seedUser(t, st, "Bob", "bob@example.com")
	_, err = invites.JoinOrganizationByInvite(ctx, "old-link", joiner.ID)
	require.NoError(t, err)

	hk.TargetedPolicy = InvitePolicy{}
	require.EqualValues(t, 0, hk.Cleanup(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)
	hk := NewHousekeepingService(st, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
