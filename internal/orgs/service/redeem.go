package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

// JoinOrganizationByInvite redeems token for userID and returns the joined
// organization. It performs the following steps:
// 1. Resolves the acting user
// 2. Prefers a targeted invitation addressed to the user's email
// 3. Falls back to the token alone
// 4. Resolves the organization
// 5. Rejects users who are already members
// 6. Applies the expiry and single-use policy for the token's kind
// 7. Inserts the membership and consumes the token in the same transaction
func (s *InviteService) JoinOrganizationByInvite(
	ctx context.Context,
	token string,
	userID string,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx).With(slog.String("user_id", userID))

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Organization{}, invalidRequest(MsgTokenRequired)
	}

	// 1. Resolve acting user
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite redemption by unknown user")
			return domain.Organization{}, notFound(MsgRegisterFirst)
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.Organization{}, internal(MsgRedeemFailed, err)
	}

	var joined domain.Organization
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Targeted invitation for this user's email takes precedence
		var invitation *domain.Invitation
		inv, err := tx.Invitations().GetInvitationByTokenAndEmail(ctx, token, user.Email)
		switch {
		case err == nil:
			invitation = &inv
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		// 3. The token row carries expiry and usage for both paths
		tok, err := tx.InviteTokens().GetInviteTokenByToken(ctx, token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(MsgInvalidToken)
			}
			return err
		}

		orgID := tok.OrganizationID
		if invitation != nil {
			orgID = invitation.OrganizationID
		}

		// 4. Resolve organization
		org, err := tx.Organizations().GetOrganizationByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(MsgOrgNotFound)
			}
			return err
		}

		// 5. Already a member
		if _, err := tx.Memberships().GetMembership(ctx, user.ID, org.ID); err == nil {
			return conflict(MsgAlreadyMember)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 6. Policy
		now := s.now()
		policy := s.policyFor(tok.Kind)
		if policy.EnforceExpiry && tok.Expired(now) {
			return notFound(MsgInviteExpired)
		}
		if policy.SingleUse && tok.Used() {
			return conflict(MsgInviteUsed)
		}

		// 7. Insert the edge; the primary key catches a lost race
		err = tx.Memberships().CreateMembership(ctx, domain.Membership{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           domain.RoleUser,
			CreatedAt:      now,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return conflict(MsgAlreadyMember)
			}
			return err
		}

		if policy.SingleUse {
			if err := tx.InviteTokens().MarkInviteTokenUsed(ctx, tok.ID, user.ID, now); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return conflict(MsgInviteUsed)
				}
				return err
			}
		} else if err := tx.InviteTokens().TouchInviteTokenUsed(ctx, tok.ID, user.ID, now); err != nil {
			return err
		}

		if invitation != nil {
			err := tx.Invitations().MarkInvitationAccepted(ctx, invitation.ID, now)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		joined = org
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			log.Warn("invite redemption rejected", slog.String("reason", err.Error()))
			return domain.Organization{}, err
		}
		log.Error("failed to redeem invite", slog.Any("error", err))
		return domain.Organization{}, internal(MsgRedeemFailed, err)
	}

	log.Info("user joined organization", slog.String("org_id", joined.ID))
	return joined, nil
}
