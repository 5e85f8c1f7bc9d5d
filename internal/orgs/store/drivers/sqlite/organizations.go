package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite/gen"
)

type organizationsRepo struct {
	q *gen.Queries
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	created := orNow(o.CreatedAt)
	updated := o.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	err := r.q.CreateOrganization(ctx, gen.CreateOrganizationParams{
		ID:          o.ID,
		Name:        o.Name,
		Email:       o.Email,
		Description: o.Description,
		Industry:    o.Industry,
		Type:        o.Type,
		Country:     o.Country,
		Address:     o.Address,
		State:       o.State,
		OwnerID:     o.OwnerID,
		CreatedAt:   created,
		UpdatedAt:   updated.UTC(),
	})
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row, err := r.q.GetOrganizationByID(ctx, id)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return mapOrganization(row), nil
}

func (r *organizationsRepo) GetOrganizationByIDAndOwner(
	ctx context.Context,
	id, ownerID string,
) (domain.Organization, error) {
	row, err := r.q.GetOrganizationByIDAndOwner(ctx, gen.GetOrganizationByIDAndOwnerParams{
		ID:      id,
		OwnerID: ownerID,
	})
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return mapOrganization(row), nil
}

func (r *organizationsRepo) ListOrganizationsByUserID(
	ctx context.Context,
	userID string,
) ([]domain.Organization, error) {
	rows, err := r.q.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOrganization(row))
	}
	return out, nil
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o domain.Organization) error {
	return requireAffected(r.q.UpdateOrganization(ctx, gen.UpdateOrganizationParams{
		Name:        o.Name,
		Email:       o.Email,
		Description: o.Description,
		Industry:    o.Industry,
		Type:        o.Type,
		Country:     o.Country,
		Address:     o.Address,
		State:       o.State,
		UpdatedAt:   time.Now().UTC(),
		ID:          o.ID,
	}))
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireAffected(r.q.DeleteOrganization(ctx, id))
}
