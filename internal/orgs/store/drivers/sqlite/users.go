package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: orNow(u.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	err := r.q.UpsertUser(ctx, gen.UpsertUserParams{
		ID:        u.ID,
		Name:      u.Name,
		Email:     strings.TrimSpace(u.Email),
		CreatedAt: orNow(u.CreatedAt),
	})
	return mapConstraint(err)
}
