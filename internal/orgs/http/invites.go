package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleLink godoc
//
//	@Summary		Generate Invite Link
//	@Description	Mints a reusable invite link for the organization
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string	true	"Organization ID"
//	@Success		200		{object}	orgsdk.InviteLinkResponse	"invite_link"
//	@Failure		404		{object}	orgsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/organizations/{org_id}/invite [get].
func (h *InvitesHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.InviteService.GenerateInviteLink(r.Context(), r.PathValue("org_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.InviteLinkResponse{
		Status:     "success",
		InviteLink: link,
	})
}

// HandleSend godoc
//
//	@Summary		Send Invitations
//	@Description	Creates a single-use invitation per email and queues the invitation emails
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			org_id	path		string						true	"Organization ID"
//	@Param			request	body		orgsdk.SendInvitesRequest	true	"Recipient emails"
//	@Success		200		{object}	orgsdk.SendInvitesResponse
//	@Failure		400		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/{org_id}/send-invite [post].
func (h *InvitesHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req orgsdk.SendInvitesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := h.InviteService.SendInviteLinks(r.Context(), r.PathValue("org_id"), req.Emails)
	if err != nil {
		if res.Sent > 0 {
			slogx.FromContext(r.Context()).Warn("invites partially sent", "sent", res.Sent)
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.SendInvitesResponse{
		Status:  "success",
		Message: "Invitations sent successfully",
		Sent:    res.Sent,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Joins the caller to the organization the invite token belongs to.
//	@Description	The token may be sent in the JSON body or as the token query parameter.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		orgsdk.AcceptInviteRequest	false	"Invite token"
//	@Param			token	query		string						false	"Invite token"
//	@Success		200		{object}	orgsdk.AcceptInviteResponse
//	@Failure		400		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations/accept-invite [post].
func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" && r.ContentLength != 0 {
		var req orgsdk.AcceptInviteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		token = strings.TrimSpace(req.Token)
	}

	org, err := h.InviteService.JoinOrganizationByInvite(ctx, token, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.AcceptInviteResponse{
		Status:         "success",
		Message:        "Successfully joined " + org.Name,
		OrganizationID: org.ID,
	})
}
