package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at dsn. SQLite allows a single writer, so the
// pool is pinned to one connection: transactions queue up behind each other
// instead of failing with SQLITE_BUSY. Code running inside WithTx must only
// use the tx repos or it will wait on itself.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) Organizations() store.Organizations { return &organizationsRepo{q: s.q} }
func (s *Store) Memberships() store.Memberships     { return &membershipsRepo{q: s.q} }
func (s *Store) InviteTokens() store.InviteTokens   { return &inviteTokensRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations     { return &invitationsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns primary key and unique violations into
// store.ErrAlreadyExists. Other constraint failures (foreign keys, checks)
// pass through untouched.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return err
}

// requireAffected reports ErrNotFound for writes that matched no row.
func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapTimeNull(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func mapOrganization(row gen.Organization) domain.Organization {
	return domain.Organization{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Description: row.Description,
		Industry:    row.Industry,
		Type:        row.Type,
		Country:     row.Country,
		Address:     row.Address,
		State:       row.State,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

func mapMembership(row gen.UserOrganization) domain.Membership {
	return domain.Membership{
		UserID:         row.UserID,
		OrganizationID: row.OrganizationID,
		Role:           domain.Role(row.Role),
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

func mapInviteToken(row gen.InviteToken) domain.InviteToken {
	return domain.InviteToken{
		ID:             row.ID,
		Token:          row.Token,
		OrganizationID: row.OrganizationID,
		Kind:           domain.InviteKind(row.Kind),
		ExpiresAt:      row.ExpiresAt.UTC(),
		UsedAt:         mapNullTimePtr(row.UsedAt),
		UsedBy:         mapNullString(row.UsedBy),
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

func mapInvitation(row gen.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:             row.ID,
		Token:          row.Token,
		OrganizationID: row.OrganizationID,
		Email:          row.Email,
		InviteTokenID:  row.InviteTokenID,
		AcceptedAt:     mapNullTimePtr(row.AcceptedAt),
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

// orNow stamps zero times so callers may leave CreatedAt empty.
func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
