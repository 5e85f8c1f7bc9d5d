package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

// CreateOrganization is the caller-supplied part of a new organization.
type CreateOrganization struct {
	Name        string
	Email       string
	Description string
	Industry    string
	Type        string
	Country     string
	Address     string
	State       string
}

// OrganizationPatch holds optional field updates; nil fields are left alone.
type OrganizationPatch struct {
	Name        *string
	Email       *string
	Description *string
	Industry    *string
	Type        *string
	Country     *string
	Address     *string
	State       *string
}

// RemoveResult reports each step of RemoveUser separately. EdgeRemoved is
// false when the user was not a member. RosterUpdated means the removed user
// owned the organization and it was re-saved, bumping its updated_at.
type RemoveResult struct {
	User          *domain.User
	EdgeRemoved   bool
	RosterUpdated bool
}

type OrganizationService struct {
	Store store.Store
}

// CreateOrganization persists the organization and the owner's admin
// membership in one transaction.
func (s *OrganizationService) CreateOrganization(
	ctx context.Context,
	payload CreateOrganization,
	ownerUserID string,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return domain.Organization{}, invalidRequest(MsgNameRequired)
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:          idx.New().String(),
		Name:        payload.Name,
		Email:       strings.TrimSpace(payload.Email),
		Description: payload.Description,
		Industry:    payload.Industry,
		Type:        payload.Type,
		Country:     payload.Country,
		Address:     payload.Address,
		State:       payload.State,
		OwnerID:     ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 2. Organization and admin edge commit together or not at all
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			UserID:         ownerUserID,
			OrganizationID: org.ID,
			Role:           domain.RoleAdmin,
			CreatedAt:      now,
		})
	})
	if err != nil {
		log.Error("failed to create organization",
			slog.String("owner_id", ownerUserID),
			slog.Any("error", err),
		)
		return domain.Organization{}, clientError(err)
	}

	log.Info("organization created",
		slog.String("org_id", org.ID),
		slog.String("owner_id", ownerUserID),
	)

	return org, nil
}

// RemoveUser deletes the (user, org) membership. When the removed user owns
// the organization it is saved back so its updated_at records the change.
func (s *OrganizationService) RemoveUser(ctx context.Context, orgID, userID string) (RemoveResult, error) {
	log := slogx.FromContext(ctx).With(
		slog.String("org_id", orgID),
		slog.String("user_id", userID),
	)

	var res RemoveResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		res = RemoveResult{}

		// 1. Find the edge; a non-member is a no-op
		if _, err := tx.Memberships().GetMembership(ctx, userID, orgID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		// 2. Delete it
		if err := tx.Memberships().DeleteMembership(ctx, userID, orgID); err != nil {
			return err
		}
		res.User = &user
		res.EdgeRemoved = true

		// 3. Only the owner's organization is re-saved
		org, err := tx.Organizations().GetOrganizationByIDAndOwner(ctx, orgID, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Organizations().UpdateOrganization(ctx, org); err != nil {
			return err
		}
		res.RosterUpdated = true
		return nil
	})
	if err != nil {
		log.Error("failed to remove user from organization", slog.Any("error", err))
		return RemoveResult{}, internal(MsgRemoveUserFailed, err)
	}

	if res.EdgeRemoved {
		log.Info("user removed from organization", slog.Bool("roster_updated", res.RosterUpdated))
	} else {
		log.Debug("remove user skipped, not a member")
	}

	return res, nil
}

// GetOrganizationsByUserID lists every organization the user belongs to.
func (s *OrganizationService) GetOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.Store.Organizations().ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list organizations",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, internal(MsgListOrgsFailed, err)
	}
	return orgs, nil
}

// GetSingleOrg returns the organization only if userID is a member of it,
// and nil otherwise.
func (s *OrganizationService) GetSingleOrg(ctx context.Context, orgID, userID string) (*domain.Organization, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Memberships().GetMembership(ctx, userID, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		log.Error("failed to fetch membership", slog.String("org_id", orgID), slog.Any("error", err))
		return nil, internal(MsgGetOrgFailed, err)
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		log.Error("failed to fetch organization", slog.String("org_id", orgID), slog.Any("error", err))
		return nil, internal(MsgGetOrgFailed, err)
	}

	return &org, nil
}

// UpdateOrganizationDetails merges patch into the stored organization and
// returns the merged value. UpdatedAt on the result is the local time of
// the write, not re-read from the store.
func (s *OrganizationService) UpdateOrganizationDetails(
	ctx context.Context,
	orgID string,
	patch OrganizationPatch,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Organization{}, invalidRequest(MsgNameRequired)
	}

	var merged domain.Organization
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		org, err := tx.Organizations().GetOrganizationByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound(MsgOrgNotFound)
			}
			return err
		}

		patch.apply(&org)
		org.UpdatedAt = time.Now().UTC()

		if err := tx.Organizations().UpdateOrganization(ctx, org); err != nil {
			return err
		}
		merged = org
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return domain.Organization{}, err
		}
		log.Error("failed to update organization", slog.String("org_id", orgID), slog.Any("error", err))
		return domain.Organization{}, internal(MsgUpdateOrgFailed, err)
	}

	return merged, nil
}

// ListMembers returns the organization's roster with roles.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID string) ([]domain.Member, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(MsgOrgNotFound)
		}
		log.Error("failed to fetch organization", slog.String("org_id", orgID), slog.Any("error", err))
		return nil, internal(MsgListMembersFailed, err)
	}

	members, err := s.Store.Memberships().ListMembers(ctx, orgID)
	if err != nil {
		log.Error("failed to list members", slog.String("org_id", orgID), slog.Any("error", err))
		return nil, internal(MsgListMembersFailed, err)
	}
	return members, nil
}

func (p OrganizationPatch) apply(o *domain.Organization) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&o.Name, p.Name)
	set(&o.Email, p.Email)
	set(&o.Description, p.Description)
	set(&o.Industry, p.Industry)
	set(&o.Type, p.Type)
	set(&o.Country, p.Country)
	set(&o.Address, p.Address)
	set(&o.State, p.State)
	o.Name = strings.TrimSpace(o.Name)
}

func isServiceError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
