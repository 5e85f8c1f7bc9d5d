package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

// SearchCriteria filters members. Name wins when both are set; an empty
// criteria matches everyone.
type SearchCriteria struct {
	Name  string
	Email string
}

type SearchService struct {
	Store store.Store
}

// SearchOrganizationMembers matches members by a case-insensitive substring
// of their name (or, failing that, email) and groups them by organization
// in the order organizations are first seen. Only matching members are
// listed per group.
func (s *SearchService) SearchOrganizationMembers(
	ctx context.Context,
	criteria SearchCriteria,
) ([]domain.OrganizationMembers, error) {
	log := slogx.FromContext(ctx)

	name := strings.TrimSpace(criteria.Name)
	email := strings.TrimSpace(criteria.Email)

	var (
		rows []domain.MemberMatch
		err  error
	)
	// With neither set, the empty name pattern lists every membership.
	if name == "" && email != "" {
		rows, err = s.Store.Memberships().SearchMembersByEmail(ctx, email)
	} else {
		rows, err = s.Store.Memberships().SearchMembersByName(ctx, name)
	}
	if err != nil {
		log.Error("failed to search members", slog.Any("error", err))
		return nil, internal(MsgSearchFailed, err)
	}

	return groupByOrganization(rows), nil
}

func groupByOrganization(rows []domain.MemberMatch) []domain.OrganizationMembers {
	out := make([]domain.OrganizationMembers, 0)
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.OrganizationID]
		if !ok {
			i = len(out)
			index[r.OrganizationID] = i
			out = append(out, domain.OrganizationMembers{
				OrganizationID:    r.OrganizationID,
				OrganizationName:  r.OrganizationName,
				OrganizationEmail: r.OrganizationEmail,
			})
		}
		out[i].Members = append(out[i].Members, domain.MemberSummary{
			UserID:    r.UserID,
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
		})
	}
	return out
}
