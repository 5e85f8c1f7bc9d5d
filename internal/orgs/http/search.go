package http

import (
	"net/http"

	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
)

type SearchHandler struct {
	SearchService *service.SearchService
}

// ServeHTTP godoc
//
//	@Summary		Search Members
//	@Description	Case-insensitive substring search over member names, or emails when no name is given.
//	@Description	Results are grouped by organization.
//	@Tags			Members
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name	query		string	false	"Name fragment"
//	@Param			email	query		string	false	"Email fragment"
//	@Success		200		{object}	orgsdk.SearchMembersResponse
//	@Failure		403		"Insufficient scope"
//	@Failure		500		{object}	orgsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/members/search [get].
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groups, err := h.SearchService.SearchOrganizationMembers(r.Context(), service.SearchCriteria{
		Name:  q.Get("name"),
		Email: q.Get("email"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgsdk.SearchMembersResponse{
		Status: "success",
		Data:   toOrganizationMembers(groups),
	})
}
