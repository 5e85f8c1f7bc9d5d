package domain

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleSuperAdmin:
		return true
	}
	return false
}

// Membership links a user to an organization. (UserID, OrganizationID) is
// unique.
type Membership struct {
	UserID         string
	OrganizationID string
	Role           Role
	CreatedAt      time.Time
}

// Member is a membership joined with its user.
type Member struct {
	User      User
	Role      Role
	CreatedAt time.Time
}
