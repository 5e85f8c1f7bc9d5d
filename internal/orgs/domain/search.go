package domain

// MemberMatch is one row of a member search: a user in an organization.
type MemberMatch struct {
	OrganizationID    string
	OrganizationName  string
	OrganizationEmail string
	UserID            string
	UserName          string
	UserEmail         string
}

type OrganizationMembers struct {
	OrganizationID    string
	OrganizationName  string
	OrganizationEmail string
	Members           []MemberSummary
}

type MemberSummary struct {
	UserID    string
	UserName  string
	UserEmail string
}
