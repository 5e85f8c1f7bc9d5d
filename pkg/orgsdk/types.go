package orgsdk

import "time"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Type        string `json:"type,omitempty"`
	Country     string `json:"country,omitempty"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
}

// UpdateOrganizationRequest only changes the fields that are present.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Type        *string `json:"type,omitempty"`
	Country     *string `json:"country,omitempty"`
	Address     *string `json:"address,omitempty"`
	State       *string `json:"state,omitempty"`
}

// Organization is the public projection of an organization.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Type        string    `json:"type"`
	Country     string    `json:"country"`
	Address     string    `json:"address"`
	State       string    `json:"state"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrganizationResponse struct {
	Status       string       `json:"status"`
	Message      string       `json:"message"`
	Organization Organization `json:"organization"`
}

type OrganizationListResponse struct {
	Status        string         `json:"status"`
	Organizations []Organization `json:"organizations"`
}

type Member struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type MemberListResponse struct {
	Status  string   `json:"status"`
	Members []Member `json:"members"`
}

type RemoveUserResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	UserID        string `json:"user_id,omitempty"`
	EdgeRemoved   bool   `json:"edge_removed"`
	RosterUpdated bool   `json:"roster_updated"`
}

type InviteLinkResponse struct {
	Status     string `json:"status"`
	InviteLink string `json:"invite_link"`
}

type SendInvitesRequest struct {
	Emails []string `json:"emails"`
}

type SendInvitesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
}

type AcceptInviteRequest struct {
	Token string `json:"token"`
}

type AcceptInviteResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	OrganizationID string `json:"organization_id"`
}

type MemberSummary struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type OrganizationMembers struct {
	OrganizationID    string          `json:"organizationId"`
	OrganizationName  string          `json:"organizationName"`
	OrganizationEmail string          `json:"organizationEmail"`
	Members           []MemberSummary `json:"members"`
}

type SearchMembersResponse struct {
	Status string                `json:"status"`
	Data   []OrganizationMembers `json:"data"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
