package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://app.example.com"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "orgs.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newInviteService(t *testing.T, st store.Store, q mail.Queue) *InviteService {
	t.Helper()

	r, err := mail.NewRenderer()
	require.NoError(t, err)

	return &InviteService{
		Store:          st,
		Queue:          q,
		Renderer:       r,
		BaseURL:        testBaseURL,
		MailFrom:       "invites@example.com",
		LinkPolicy:     DefaultLinkPolicy,
		TargetedPolicy: DefaultTargetedPolicy,
	}
}

func seedUser(t *testing.T, st store.Store, name, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Name: name, Email: email}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedOrg(t *testing.T, st store.Store, name string, owner domain.User) domain.Organization {
	t.Helper()
	svc := &OrganizationService{Store: st}
	org, err := svc.CreateOrganization(context.Background(), CreateOrganization{Name: name, Email: "hello@" + name + ".test"}, owner.ID)
	require.NoError(t, err)
	return org
}

func addMember(t *testing.T, st store.Store, u domain.User, org domain.Organization) {
	t.Helper()
	require.NoError(t, st.Memberships().CreateMembership(context.Background(), domain.Membership{
		UserID:         u.ID,
		OrganizationID: org.ID,
		Role:           domain.RoleUser,
	}))
}

func countEdges(t *testing.T, st store.Store, userID, orgID string) int64 {
	t.Helper()
	n, err := st.Memberships().CountMemberships(context.Background(), userID, orgID)
	require.NoError(t, err)
	return n
}

func requireKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
	if msg != "" {
		require.Equal(t, msg, err.Error())
	}
}
