/*
Package orgsdk provides the wire types and a small client for the
organization membership service.

	client := orgsdk.NewClient("https://orgs.example.com", accessToken)

	org, err := client.CreateOrganization(ctx, orgsdk.CreateOrganizationRequest{Name: "Acme"})
	link, err := client.GenerateInviteLink(ctx, org.ID)
	joined, err := client.AcceptInvite(ctx, token)

Every non-2xx response is returned as an *APIError carrying the service's
error code and description.
*/
package orgsdk
