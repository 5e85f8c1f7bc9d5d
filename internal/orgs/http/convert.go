package http

import (
	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
)

func toOrganization(o domain.Organization) orgsdk.Organization {
	return orgsdk.Organization{
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
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrganizations(in []domain.Organization) []orgsdk.Organization {
	out := make([]orgsdk.Organization, 0, len(in))
	for _, o := range in {
		out = append(out, toOrganization(o))
	}
	return out
}

func toMembers(in []domain.Member) []orgsdk.Member {
	out := make([]orgsdk.Member, 0, len(in))
	for _, m := range in {
		out = append(out, orgsdk.Member{
			UserID:   m.User.ID,
			Name:     m.User.Name,
			Email:    m.User.Email,
			Role:     string(m.Role),
			JoinedAt: m.CreatedAt,
		})
	}
	return out
}

func toOrganizationMembers(in []domain.OrganizationMembers) []orgsdk.OrganizationMembers {
	out := make([]orgsdk.OrganizationMembers, 0, len(in))
	for _, g := range in {
		members := make([]orgsdk.MemberSummary, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, orgsdk.MemberSummary(m))
		}
		out = append(out, orgsdk.OrganizationMembers{
			OrganizationID:    g.OrganizationID,
			OrganizationName:  g.OrganizationName,
			OrganizationEmail: g.OrganizationEmail,
			Members:           members,
		})
	}
	return out
}

func fromCreateRequest(req orgsdk.CreateOrganizationRequest) service.CreateOrganization {
	return service.CreateOrganization(req)
}

func fromUpdateRequest(req orgsdk.UpdateOrganizationRequest) service.OrganizationPatch {
	return service.OrganizationPatch(req)
}
