package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/stretchr/testify/require"
)

func TestEnsureUserProvisionsUnknownSubject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &IdentityService{Store: st}

	require.NoError(t, svc.EnsureUser(ctx, domain.User{ID: "sub-1", Name: " Anna ", Email: "anna@example.com"}))

	got, err := st.Users().GetUserByID(ctx, "sub-1")
	require.NoError(t, err)
	require.Equal(t, "Anna", got.Name)
	require.Equal(t, "anna@example.com", got.Email)

	// The new row is enough to own an organization
	org := seedOrg(t, st, "acme", got)
	require.Equal(t, "sub-1", org.OwnerID)
}

func TestEnsureUserWithoutEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &IdentityService{Store: st}

	require.NoError(t, svc.EnsureUser(ctx, domain.User{ID: "sub-1", Name: "Anna"}))
	_, err := st.Users().GetUserByID(ctx, "sub-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	bob := seedUser(t, st, "Bob", "bob@example.com")
	require.NoError(t, svc.EnsureUser(ctx, domain.User{ID: bob.ID, Name: "Bobby"}))

	got, err := st.Users().GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "Bobby", got.Name)
	require.Equal(t, "bob@example.com", got.Email)
}

func TestEnsureUserFallsBackToSubjectName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &IdentityService{Store: st}

	require.NoError(t, svc.EnsureUser(ctx, domain.User{ID: "sub-1", Email: "anna@example.com"}))

	got, err := st.Users().GetUserByID(ctx, "sub-1")
	require.NoError(t, err)
	require.Equal(t, "sub-1", got.Name)
}

func TestEnsureUserEmailTakenIsConflict(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &IdentityService{Store: st}
	seedUser(t, st, "Bob", "bob@example.com")

	err := svc.EnsureUser(ctx, domain.User{ID: "sub-1", Name: "Mallory", Email: "Bob@Example.com"})
	require.ErrorIs(t, err, ErrConflict)
	require.Equal(t, MsgEmailTaken, err.Error())
}
