package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/stretchr/testify/require"
)

func memberNames(g domain.OrganizationMembers) []string {
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		out = append(out, m.UserName)
	}
	return out
}

func TestSearchOrganizationMembersByName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	founder := seedUser(t, st, "Founder", "founder@example.com")
	anna := seedUser(t, st, "Anna", "anna@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	annette := seedUser(t, st, "Annette", "annette@example.com")

	a := seedOrg(t, st, "A", founder)
	b := seedOrg(t, st, "B", founder)
	addMember(t, st, anna, a)
	addMember(t, st, bob, a)
	addMember(t, st, annette, b)

	svc := &SearchService{Store: st}
	groups, err := svc.SearchOrganizationMembers(ctx, SearchCriteria{Name: "ann"})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	require.Equal(t, a.ID, groups[0].OrganizationID)
	require.Equal(t, "A", groups[0].OrganizationName)
	require.Equal(t, a.Email, groups[0].OrganizationEmail)
	require.Equal(t, []string{"Anna"}, memberNames(groups[0]))

	require.Equal(t, b.ID, groups[1].OrganizationID)
	require.Equal(t, []string{"Annette"}, memberNames(groups[1]))
}

func TestSearchOrganizationMembersCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	founder := seedUser(t, st, "Founder", "founder@example.com")
	anna := seedUser(t, st, "ANNA", "Anna.Smith@Example.com")
	org := seedOrg(t, st, "acme", founder)
	addMember(t, st, anna, org)
	svc := &SearchService{Store: st}

	groups, err := svc.SearchOrganizationMembers(ctx, SearchCriteria{Name: "nn"})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	groups, err = svc.SearchOrganizationMembers(ctx, SearchCriteria{Email: "SMITH@"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, anna.ID, groups[0].Members[0].UserID)
	require.Equal(t, "Anna.Smith@Example.com", groups[0].Members[0].UserEmail)
}

func TestSearchOrganizationMembersNameWins(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	founder := seedUser(t, st, "Founder", "founder@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	org := seedOrg(t, st, "acme", founder)
	addMember(t, st, bob, org)
	svc := &SearchService{Store: st}

	// The email alone would match bob, but the name filter takes precedence.
	groups, err := svc.SearchOrganizationMembers(ctx, SearchCriteria{Name: "zed", Email: "bob@"})
	require.NoError(t, err)
	require.NotNil(t, groups)
	require.Empty(t, groups)
}

func TestSearchOrganizationMembersEmptyCriteriaListsAll(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	founder := seedUser(t, st, "Founder", "founder@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	org := seedOrg(t, st, "acme", founder)
	addMember(t, st, bob, org)
	svc := &SearchService{Store: st}

	groups, err := svc.SearchOrganizationMembers(ctx, SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.ElementsMatch(t, []string{"Founder", "Bob"}, memberNames(groups[0]))
}

func TestGroupByOrganizationPreservesFirstSeenOrder(t *testing.T) {
	rows := []domain.MemberMatch{
		{OrganizationID: "b", UserID: "1"},
		{OrganizationID: "a", UserID: "2"},
		{OrganizationID: "b", UserID: "3"},
	}

	groups := groupByOrganization(rows)
	require.Len(t, groups, 2)
	require.Equal(t, "b", groups[0].OrganizationID)
	require.Len(t, groups[0].Members, 2)
	require.Equal(t, "3", groups[0].Members[1].UserID)
	require.Equal(t, "a", groups[1].OrganizationID)

	empty := groupByOrganization(nil)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
