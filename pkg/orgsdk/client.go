package orgsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the organization service with a fixed bearer token.
type Client struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		AccessToken: accessToken,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var out OrganizationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/organizations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Organization, nil
}

func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var out OrganizationListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/organizations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (*Organization, error) {
	var out OrganizationResponse
	if err := c.do(ctx, http.MethodGet, "/v1/organizations/"+url.PathEscape(orgID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Organization, nil
}

func (c *Client) UpdateOrganization(ctx context.Context, orgID string, req UpdateOrganizationRequest) (*Organization, error) {
	var out OrganizationResponse
	if err := c.do(ctx, http.MethodPatch, "/v1/organizations/"+url.PathEscape(orgID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Organization, nil
}

func (c *Client) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	var out MemberListResponse
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/members"
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (c *Client) RemoveUser(ctx context.Context, orgID, userID string) (*RemoveUserResponse, error) {
	var out RemoveUserResponse
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateInviteLink returns a shareable invite URL.
func (c *Client) GenerateInviteLink(ctx context.Context, orgID string) (string, error) {
	var out InviteLinkResponse
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/invite"
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.InviteLink, nil
}

func (c *Client) SendInvites(ctx context.Context, orgID string, emails []string) (*SendInvitesResponse, error) {
	var out SendInvitesResponse
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/send-invite"
	if err := c.do(ctx, http.MethodPost, path, SendInvitesRequest{Emails: emails}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvite redeems token for the caller.
func (c *Client) AcceptInvite(ctx context.Context, token string) (*AcceptInviteResponse, error) {
	var out AcceptInviteResponse
	if err := c.do(ctx, http.MethodPost, "/v1/organizations/accept-invite", AcceptInviteRequest{Token: token}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchMembers(ctx context.Context, name, email string) ([]OrganizationMembers, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if email != "" {
		q.Set("email", email)
	}
	path := "/v1/members/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out SearchMembersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends body as JSON (when non-nil) and decodes a response with
// expectedStatus into target.
func (c *Client) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
