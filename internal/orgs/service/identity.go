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

// IdentityService keeps the local users table in step with the identities
// the auth service vouches for.
type IdentityService struct {
	Store store.Store
}

// EnsureUser provisions or refreshes the row for u. Empty fields keep the
// stored values; a new row takes the subject as its name when none is given.
// Subjects that arrive without an email cannot be provisioned and are left
// untouched. Writes happen only when something changed.
func (s *IdentityService) EnsureUser(ctx context.Context, u domain.User) error {
	log := slogx.FromContext(ctx)

	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	existing, err := s.Store.Users().GetUserByID(ctx, u.ID)
	switch {
	case err == nil:
		if u.Name == "" {
			u.Name = existing.Name
		}
		if u.Email == "" {
			u.Email = existing.Email
		}
		if existing.Name == u.Name && strings.EqualFold(existing.Email, u.Email) {
			return nil
		}
	case errors.Is(err, store.ErrNotFound):
		if u.Email == "" {
			log.Debug("token has no email, user not provisioned")
			return nil
		}
		if u.Name == "" {
			u.Name = u.ID
		}
	default:
		log.Error("failed to load user", slog.Any("error", err))
		return internal(MsgProvisionFailed, err)
	}

	if err := s.Store.Users().UpsertUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return conflict(MsgEmailTaken)
		}
		log.Error("failed to provision user", slog.Any("error", err))
		return internal(MsgProvisionFailed, err)
	}

	log.Info("user provisioned", "email", u.Email)
	return nil
}
