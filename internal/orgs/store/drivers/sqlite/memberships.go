package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite/gen"
)

type membershipsRepo struct {
	q *gen.Queries
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	err := r.q.CreateMembership(ctx, gen.CreateMembershipParams{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
		CreatedAt:      orNow(m.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, orgID string) (domain.Membership, error) {
	row, err := r.q.GetMembership(ctx, gen.GetMembershipParams{
		UserID:         userID,
		OrganizationID: orgID,
	})
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return mapMembership(row), nil
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, orgID string) error {
	return requireAffected(r.q.DeleteMembership(ctx, gen.DeleteMembershipParams{
		UserID:         userID,
		OrganizationID: orgID,
	}))
}

func (r *membershipsRepo) CountMemberships(ctx context.Context, userID, orgID string) (int64, error) {
	return r.q.CountMemberships(ctx, gen.CountMembershipsParams{
		UserID:         userID,
		OrganizationID: orgID,
	})
}

func (r *membershipsRepo) ListMembers(ctx context.Context, orgID string) ([]domain.Member, error) {
	rows, err := r.q.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Member{
			User: domain.User{
				ID:        row.ID,
				Name:      row.Name,
				Email:     row.Email,
				CreatedAt: row.UserCreatedAt.UTC(),
			},
			Role:      domain.Role(row.Role),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *membershipsRepo) SearchMembersByName(ctx context.Context, term string) ([]domain.MemberMatch, error) {
	rows, err := r.q.SearchMembersByName(ctx, escapeLike(term))
	if err != nil {
		return nil, err
	}

	out := make([]domain.MemberMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.MemberMatch(row))
	}
	return out, nil
}

func (r *membershipsRepo) SearchMembersByEmail(ctx context.Context, term string) ([]domain.MemberMatch, error) {
	rows, err := r.q.SearchMembersByEmail(ctx, escapeLike(term))
	if err != nil {
		return nil, err
	}

	out := make([]domain.MemberMatch, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.MemberMatch(row))
	}
	return out, nil
}
