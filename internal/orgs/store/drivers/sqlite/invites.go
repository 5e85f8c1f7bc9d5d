package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite/gen"
)

type inviteTokensRepo struct {
	q *gen.Queries
}

func (r *inviteTokensRepo) CreateInviteToken(ctx context.Context, t domain.InviteToken) error {
	err := r.q.CreateInviteToken(ctx, gen.CreateInviteTokenParams{
		ID:             t.ID,
		Token:          t.Token,
		OrganizationID: t.OrganizationID,
		Kind:           string(t.Kind),
		ExpiresAt:      t.ExpiresAt.UTC(),
		CreatedAt:      orNow(t.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *inviteTokensRepo) GetInviteTokenByToken(ctx context.Context, token string) (domain.InviteToken, error) {
	row, err := r.q.GetInviteTokenByToken(ctx, token)
	if err != nil {
		return domain.InviteToken{}, mapNotFound(err)
	}
	return mapInviteToken(row), nil
}

func (r *inviteTokensRepo) MarkInviteTokenUsed(ctx context.Context, id, userID string, at time.Time) error {
	return requireAffected(r.q.MarkInviteTokenUsed(ctx, gen.MarkInviteTokenUsedParams{
		UsedAt: mapTimeNull(at),
		UsedBy: mapStringNull(userID),
		ID:     id,
	}))
}

func (r *inviteTokensRepo) TouchInviteTokenUsed(ctx context.Context, id, userID string, at time.Time) error {
	return requireAffected(r.q.TouchInviteTokenUsed(ctx, gen.TouchInviteTokenUsedParams{
		UsedAt: mapTimeNull(at),
		UsedBy: mapStringNull(userID),
		ID:     id,
	}))
}

func (r *inviteTokensRepo) DeleteExpiredInviteTokens(ctx context.Context, now time.Time, kinds ...domain.InviteKind) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}
	params := gen.DeleteExpiredInviteTokensParams{ExpiresAt: now.UTC()}
	for _, k := range kinds {
		params.Kinds = append(params.Kinds, string(k))
	}
	return r.q.DeleteExpiredInviteTokens(ctx, params)
}

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:             inv.ID,
		Token:          inv.Token,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		InviteTokenID:  inv.InviteTokenID,
		CreatedAt:      orNow(inv.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByTokenAndEmail(
	ctx context.Context,
	token, email string,
) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByTokenAndEmail(ctx, gen.GetInvitationByTokenAndEmailParams{
		Token: token,
		Email: email,
	})
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error {
	return requireAffected(r.q.MarkInvitationAccepted(ctx, gen.MarkInvitationAcceptedParams{
		AcceptedAt: mapTimeNull(at),
		ID:         id,
	}))
}
