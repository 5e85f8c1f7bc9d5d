package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/orgs/internal/orgs/domain"
	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

type ctxKey string

const ctxKeyOrganization ctxKey = "organization"

// RequireMember loads the {org_id} organization and rejects callers without a
// membership edge. Non-members get the same 404 as a missing organization.
func RequireMember(orgs *service.OrganizationService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			orgID := r.PathValue("org_id")
			org, err := orgs.GetSingleOrg(ctx, orgID, userID)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			if org == nil {
				writeError(w, http.StatusNotFound, orgsdk.ErrorCodeNotFound, service.MsgOrgNotFound)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyOrganization, *org)
			ctx = slogx.With(ctx, "org_id", org.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func organizationFromContext(ctx context.Context) (domain.Organization, bool) {
	org, ok := ctx.Value(ctxKeyOrganization).(domain.Organization)
	return org, ok
}

type OrganizationsHandler struct {
	OrganizationService *service.OrganizationService
}

// HandleCreate godoc
//
//	@Summary		Create Organization
//	@Description	Creates an organization owned by the caller and makes the caller its admin
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		orgsdk.CreateOrganizationRequest	true	"Organization details"
//	@Success		201		{object}	orgsdk.OrganizationResponse
//	@Failure		400		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		401		"Unauthorized"
//	@Router			/v1/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	var req orgsdk.CreateOrganizationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	org, err := h.OrganizationService.CreateOrganization(ctx, fromCreateRequest(req), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, orgsdk.OrganizationResponse{
		Status:       "success",
		Message:      "Organization created successfully",
		Organization: toOrganization(org),
	})
}

// HandleList godoc
//
//	@Summary		List Organizations
//	@Description	Lists every organization the caller is a member of
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	orgsdk.OrganizationListResponse
//	@Failure		401	"Unauthorized"
//	@Failure		500	{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations [get].
func (h *OrganizationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	orgs, err := h.OrganizationService.GetOrganizationsByUserID(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.OrganizationListResponse{
		Status:        "success",
		Organizations: toOrganizations(orgs),
	})
}

// HandleGet godoc
//
//	@Summary		Get Organization
//	@Description	Returns one organization the caller belongs to
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string	true	"Organization ID"
//	@Success		200		{object}	orgsdk.OrganizationResponse
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/{org_id} [get].
func (h *OrganizationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	org, ok := organizationFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, orgsdk.ErrorCodeNotFound, service.MsgOrgNotFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.OrganizationResponse{
		Status:       "success",
		Organization: toOrganization(org),
	})
}

// HandleUpdate godoc
//
//	@Summary		Update Organization
//	@Description	Updates only the fields present in the request body
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string								true	"Organization ID"
//	@Param			request	body		orgsdk.UpdateOrganizationRequest	true	"Fields to change"
//	@Success		200		{object}	orgsdk.OrganizationResponse
//	@Failure		400		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/{org_id} [patch].
func (h *OrganizationsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req orgsdk.UpdateOrganizationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	org, err := h.OrganizationService.UpdateOrganizationDetails(ctx, r.PathValue("org_id"), fromUpdateRequest(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.OrganizationResponse{
		Status:       "success",
		Message:      "Organization updated successfully",
		Organization: toOrganization(org),
	})
}

// HandleMembers godoc
//
//	@Summary		List Members
//	@Description	Lists the organization's members with their roles
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string	true	"Organization ID"
//	@Success		200		{object}	orgsdk.MemberListResponse
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/{org_id}/members [get].
func (h *OrganizationsHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.OrganizationService.ListMembers(r.Context(), r.PathValue("org_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.MemberListResponse{
		Status:  "success",
		Members: toMembers(members),
	})
}

// HandleRemoveUser godoc
//
//	@Summary		Remove Member
//	@Description	Removes a user's membership. Removing a non-member succeeds with edge_removed=false
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string	true	"Organization ID"
//	@Param			user_id	path		string	true	"User ID"
//	@Success		200		{object}	orgsdk.RemoveUserResponse
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/{org_id}/users/{user_id} [delete].
func (h *OrganizationsHandler) HandleRemoveUser(w http.ResponseWriter, r *http.Request) {
	res, err := h.OrganizationService.RemoveUser(r.Context(), r.PathValue("org_id"), r.PathValue("user_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := orgsdk.RemoveUserResponse{
		Status:        "success",
		Message:       "User is not a member of this organization",
		EdgeRemoved:   res.EdgeRemoved,
		RosterUpdated: res.RosterUpdated,
	}
	if res.EdgeRemoved {
		resp.Message = "User removed from organization"
		resp.UserID = res.User.ID
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
