package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizationAddsAdminEdge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	svc := &OrganizationService{Store: st}

	org, err := svc.CreateOrganization(ctx, CreateOrganization{
		Name:     "  Acme  ",
		Email:    "hello@acme.test",
		Industry: "widgets",
		Country:  "AU",
	}, owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, org.ID)
	require.Equal(t, "Acme", org.Name)
	require.Equal(t, owner.ID, org.OwnerID)

	m, err := st.Memberships().GetMembership(ctx, owner.ID, org.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, m.Role)
	require.EqualValues(t, 1, countEdges(t, st, owner.ID, org.ID))
}

func TestCreateOrganizationRequiresName(t *testing.T) {
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	svc := &OrganizationService{Store: st}

	_, err := svc.CreateOrganization(context.Background(), CreateOrganization{Name: "  "}, owner.ID)
	requireKind(t, err, KindInvalidRequest, MsgNameRequired)
}

func TestCreateOrganizationUnknownOwnerIsClientError(t *testing.T) {
	st := newTestStore(t)
	svc := &OrganizationService{Store: st}

	_, err := svc.CreateOrganization(context.Background(), CreateOrganization{Name: "acme"}, "ghost")
	requireKind(t, err, KindClient, MsgClientError)
}

// failingMembershipStore fails the membership insert inside any transaction
// and remembers which organization it was for.
type failingMembershipStore struct {
	store.Store
	orgID *string
}

func (f failingMembershipStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return f.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(failingMembershipTx{wrappedTx: tx, orgID: f.orgID})
	})
}

// wrappedTx names the embedded transaction so its Tx method is still promoted.
type wrappedTx = store.Tx

type failingMembershipTx struct {
	wrappedTx
	orgID *string
}

// The wrapper must still satisfy store.Tx when handed to the service.
var _ store.Tx = failingMembershipTx{}

func (f failingMembershipTx) Memberships() store.Memberships {
	return failingMemberships{Memberships: f.wrappedTx.Memberships(), orgID: f.orgID}
}

type failingMemberships struct {
	store.Memberships
	orgID *string
}

func (f failingMemberships) CreateMembership(_ context.Context, m domain.Membership) error {
	*f.orgID = m.OrganizationID
	return errors.New("membership write failed")
}

func TestCreateOrganizationRollsBackWhenMembershipFails(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")

	var orgID string
	svc := &OrganizationService{Store: failingMembershipStore{Store: st, orgID: &orgID}}

	_, err := svc.CreateOrganization(ctx, CreateOrganization{Name: "acme"}, owner.ID)
	requireKind(t, err, KindClient, MsgClientError)
	require.ErrorIs(t, err, ErrClient)

	require.NotEmpty(t, orgID)
	_, err = st.Organizations().GetOrganizationByID(ctx, orgID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveUserNonMemberIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	stranger := seedUser(t, st, "Stranger", "stranger@example.com")
	org := seedOrg(t, st, "acme", owner)
	before, err := st.Organizations().GetOrganizationByID(ctx, org.ID)
	require.NoError(t, err)

	svc := &OrganizationService{Store: st}
	res, err := svc.RemoveUser(ctx, org.ID, stranger.ID)
	require.NoError(t, err)
	require.False(t, res.EdgeRemoved)
	require.False(t, res.RosterUpdated)
	require.Nil(t, res.User)

	after, err := st.Organizations().GetOrganizationByID(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.EqualValues(t, 1, countEdges(t, st, owner.ID, org.ID))
}

func TestRemoveUserMember(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	org := seedOrg(t, st, "acme", owner)
	addMember(t, st, bob, org)

	svc := &OrganizationService{Store: st}
	res, err := svc.RemoveUser(ctx, org.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, res.EdgeRemoved)
	require.False(t, res.RosterUpdated, "bob does not own the organization")
	require.NotNil(t, res.User)
	require.Equal(t, bob.ID, res.User.ID)

	require.Zero(t, countEdges(t, st, bob.ID, org.ID))
	require.EqualValues(t, 1, countEdges(t, st, owner.ID, org.ID))
}

func TestRemoveUserOwnerResavesOrganization(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")

	past := time.Now().UTC().Add(-time.Hour)
	org := domain.Organization{ID: idx.New().String(), Name: "acme", OwnerID: owner.ID, CreatedAt: past, UpdatedAt: past}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, org))
	require.NoError(t, st.Memberships().CreateMembership(ctx, domain.Membership{
		UserID: owner.ID, OrganizationID: org.ID, Role: domain.RoleAdmin,
	}))

	svc := &OrganizationService{Store: st}
	res, err := svc.RemoveUser(ctx, org.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, res.EdgeRemoved)
	require.True(t, res.RosterUpdated)
	require.Equal(t, owner.ID, res.User.ID)

	// The organization outlives its last membership and records the change.
	got, err := st.Organizations().GetOrganizationByID(ctx, org.ID)
	require.NoError(t, err)
	require.True(t, got.UpdatedAt.After(past))
	require.Equal(t, "acme", got.Name)

	members, err := svc.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestGetSingleOrgIsMembershipGated(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	stranger := seedUser(t, st, "Stranger", "stranger@example.com")
	org := seedOrg(t, st, "acme", owner)
	svc := &OrganizationService{Store: st}

	got, err := svc.GetSingleOrg(ctx, org.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, org.ID, got.ID)

	got, err = svc.GetSingleOrg(ctx, org.ID, stranger.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = svc.GetSingleOrg(ctx, "missing", owner.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetOrganizationsByUserID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	a := seedOrg(t, st, "a", owner)
	b := seedOrg(t, st, "b", owner)
	seedOrg(t, st, "c", bob)
	addMember(t, st, bob, a)
	svc := &OrganizationService{Store: st}

	orgs, err := svc.GetOrganizationsByUserID(ctx, owner.ID)
	require.NoError(t, err)
	ids := []string{}
	for _, o := range orgs {
		ids = append(ids, o.ID)
	}
	require.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	orgs, err = svc.GetOrganizationsByUserID(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 2)

	orgs, err = svc.GetOrganizationsByUserID(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, orgs)
}

func TestUpdateOrganizationDetails(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	org := seedOrg(t, st, "acme", owner)
	svc := &OrganizationService{Store: st}

	desc := "we make widgets"
	state := "NSW"
	merged, err := svc.UpdateOrganizationDetails(ctx, org.ID, OrganizationPatch{Description: &desc, State: &state})
	require.NoError(t, err)
	require.Equal(t, "acme", merged.Name)
	require.Equal(t, desc, merged.Description)
	require.Equal(t, state, merged.State)
	require.Equal(t, org.Email, merged.Email)

	stored, err := st.Organizations().GetOrganizationByID(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, desc, stored.Description)
	require.Equal(t, state, stored.State)

	_, err = svc.UpdateOrganizationDetails(ctx, "missing", OrganizationPatch{Description: &desc})
	requireKind(t, err, KindNotFound, MsgOrgNotFound)

	blank := " "
	_, err = svc.UpdateOrganizationDetails(ctx, org.ID, OrganizationPatch{Name: &blank})
	requireKind(t, err, KindInvalidRequest, MsgNameRequired)
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	org := seedOrg(t, st, "acme", owner)
	addMember(t, st, bob, org)
	svc := &OrganizationService{Store: st}

	members, err := svc.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	roles := map[string]domain.Role{}
	for _, m := range members {
		roles[m.User.ID] = m.Role
	}
	require.Equal(t, domain.RoleAdmin, roles[owner.ID])
	require.Equal(t, domain.RoleUser, roles[bob.ID])

	_, err = svc.ListMembers(ctx, "missing")
	requireKind(t, err, KindNotFound, MsgOrgNotFound)
}
