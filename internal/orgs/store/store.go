package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// hand out sub-repositories, so callers can't accidentally open a
// transaction inside a transaction.
type Store interface {
	Users() Users
	Organizations() Organizations
	Memberships() Memberships
	InviteTokens() InviteTokens
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction. A non-nil error from fn rolls
	// back, otherwise the transaction is committed. Inside fn only the
	// repos of tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users mirrors identities issued by the auth service. Rows are written from
// verified token claims; CreateUser also serves seeding.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	CreateUser(ctx context.Context, u domain.User) error

	// UpsertUser creates u or refreshes the name and email of an existing id.
	UpsertUser(ctx context.Context, u domain.User) error
}

type Organizations interface {
	// CreateOrganization inserts a new organization (id is provided by app via ULID).
	CreateOrganization(ctx context.Context, o domain.Organization) error

	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationByIDAndOwner only matches when ownerID owns the organization.
	GetOrganizationByIDAndOwner(ctx context.Context, id, ownerID string) (domain.Organization, error)

	// ListOrganizationsByUserID follows the user's membership edges.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)

	// UpdateOrganization overwrites the mutable columns and bumps updated_at.
	UpdateOrganization(ctx context.Context, o domain.Organization) error

	// DeleteOrganization cascades to memberships, invite tokens and invitations.
	DeleteOrganization(ctx context.Context, id string) error
}

type Memberships interface {
	// CreateMembership returns ErrAlreadyExists when the (user, org) edge exists.
	CreateMembership(ctx context.Context, m domain.Membership) error

	GetMembership(ctx context.Context, userID, orgID string) (domain.Membership, error)

	DeleteMembership(ctx context.Context, userID, orgID string) error

	// ListMembers returns the roster ordered by join time.
	ListMembers(ctx context.Context, orgID string) ([]domain.Member, error)

	// CountMemberships is the number of edges for (user, org); used by tests
	// and consistency checks.
	CountMemberships(ctx context.Context, userID, orgID string) (int64, error)

	// SearchMembersByName matches a case-insensitive substring of the user name.
	SearchMembersByName(ctx context.Context, term string) ([]domain.MemberMatch, error)

	// SearchMembersByEmail matches a case-insensitive substring of the user email.
	SearchMembersByEmail(ctx context.Context, term string) ([]domain.MemberMatch, error)
}

type InviteTokens interface {
	CreateInviteToken(ctx context.Context, t domain.InviteToken) error

	GetInviteTokenByToken(ctx context.Context, token string) (domain.InviteToken, error)

	// MarkInviteTokenUsed stamps the first redemption. It returns ErrNotFound
	// when the token was already used, so concurrent redemptions of a
	// single-use token can't both succeed.
	MarkInviteTokenUsed(ctx context.Context, id, userID string, at time.Time) error

	// TouchInviteTokenUsed records the latest redemption of a reusable token.
	TouchInviteTokenUsed(ctx context.Context, id, userID string, at time.Time) error

	// DeleteExpiredInviteTokens is housekeeping: it removes tokens of the
	// given kinds that expired at or before now. No kinds deletes nothing.
	// Invitations cascade.
	DeleteExpiredInviteTokens(ctx context.Context, now time.Time, kinds ...domain.InviteKind) (int64, error)
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByTokenAndEmail resolves a targeted invitation; email is
	// matched case-insensitively.
	GetInvitationByTokenAndEmail(ctx context.Context, token, email string) (domain.Invitation, error)

	MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error
}
